package engine

// IntentKind enumerates the commands the engine accepts
type IntentKind int

const (
	NavigateUp IntentKind = iota
	NavigateDown
	NavigateLeft
	NavigateRight
	Activate
	TogglePause
	Pause
	VolumeUp
	VolumeDown
	NextTrack
	PrevTrack
	ToggleLike
	ToggleLyric
	Login
	Quit
	Tick
	OpenDetail
	Back
)

var intentNames = map[IntentKind]string{
	NavigateUp:    "navigate-up",
	NavigateDown:  "navigate-down",
	NavigateLeft:  "navigate-left",
	NavigateRight: "navigate-right",
	Activate:      "activate",
	TogglePause:   "toggle-pause",
	Pause:         "pause",
	VolumeUp:      "volume-up",
	VolumeDown:    "volume-down",
	NextTrack:     "next-track",
	PrevTrack:     "prev-track",
	ToggleLike:    "toggle-like",
	ToggleLyric:   "toggle-lyric",
	Login:         "login",
	Quit:          "quit",
	Tick:          "tick",
	OpenDetail:    "open-detail",
	Back:          "back",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is one command for the engine. Username and Password are only
// read for Login.
type Intent struct {
	Kind     IntentKind
	Username string
	Password string
}

// Of wraps a kind that carries no payload
func Of(kind IntentKind) Intent {
	return Intent{Kind: kind}
}

// LoginWith builds a Login intent
func LoginWith(username, password string) Intent {
	return Intent{Kind: Login, Username: username, Password: password}
}

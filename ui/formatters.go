package ui

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
	"github.com/yhkl-dev/EaseCLI/domain"
)

var (
	barStart = mustHex("#1db954")
	barEnd   = mustHex("#00bcd4")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FormatDuration renders milliseconds as mm:ss, or h:mm:ss past the hour
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	minutes := ms % 3_600_000 / 60_000
	seconds := ms % 60_000 / 1000

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Progress is seek over duration, clamped to [0, 1]
func Progress(seekMS, durationMS int) float64 {
	if durationMS <= 0 {
		return 0
	}
	p := float64(seekMS) / float64(durationMS)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// CreateProgressBar creates a visual progress bar. With enhanced graphics
// the filled part fades from green to cyan.
func CreateProgressBar(progress float64, width int, enhanced bool) string {
	if width <= 0 {
		return ""
	}
	filledWidth := int(progress * float64(width))

	var bar strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i >= filledWidth:
			if enhanced {
				bar.WriteString("[darkgray]░")
			} else {
				bar.WriteString("-")
			}
		case enhanced:
			t := 0.0
			if width > 1 {
				t = float64(i) / float64(width-1)
			}
			fmt.Fprintf(&bar, "[%s]▓", barStart.BlendLuv(barEnd, t).Clamped().Hex())
		default:
			bar.WriteString("=")
		}
	}
	return bar.String() + fmt.Sprintf("[white] %.1f%%", progress*100)
}

// Truncate shortens s to at most width terminal cells, counting wide
// characters as two
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// FormatVolume renders a [0,1] volume as a percentage
func FormatVolume(v float32) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// FormatTrackInfo describes the playing track for the status panel
func FormatTrackInfo(track domain.Track, liked bool, status, progressBar string) string {
	heart := "[darkgray]♡"
	if liked {
		heart = "[red]♥"
	}
	album := track.Album.Name
	if album == "" {
		album = "-"
	}

	return fmt.Sprintf(`%s %s

[gray]Artist: [white]%s
[gray]Album:  [white]%s
[gray]Length: [white]%s
%s`,
		heart, status,
		tview.Escape(track.ArtistNames()), tview.Escape(album),
		FormatDuration(track.DurationMS), progressBar)
}

// CreateProgressText creates the progress time display
func CreateProgressText(currentTime, totalTime, volumeText string, paused bool) string {
	state := "playing"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf(`[darkgray]%s/%s  vol [white]%s [darkgray]%s`,
		currentTime, totalTime, volumeText, tview.Escape("["+state+"]"))
}

// CreateWelcomeMessage creates the idle home panel text
func CreateWelcomeMessage(account domain.Account, playlists int) string {
	return fmt.Sprintf(`
[lightgreen] Welcome to EaseCLI, %s
[darkgray]Ready to Play Music!

[gray]  ←/→ (switch panel) | ↑/↓ (move)
[gray]  Enter (open / play) | Space (pause)
[gray]  Ctrl+←/→ (prev/next) | -/= (volume)
[gray]  Ctrl+l (like) | Ctrl+d (lyric)
[gray]  i (detail) | ? (help) | q (quit)

[darkgray]// %d playlists loaded`, tview.Escape(account.Nickname), playlists)
}

// FormatInputField renders one login field. The focused field carries a
// block cursor that blinks with the system tick.
func FormatInputField(label, value, placeholder string, password, focused bool, tick uint64) string {
	shown := value
	switch {
	case value == "":
		shown = "[darkgray]" + tview.Escape(placeholder) + "[white]"
	case password:
		shown = strings.Repeat("*", len([]rune(value)))
	default:
		shown = tview.Escape(value)
	}

	cursor := ""
	if focused {
		if tick%2 == 0 {
			cursor = "[black:white] [-:-]"
		} else {
			cursor = " "
		}
	}

	labelColor := "gray"
	if focused {
		labelColor = "yellow"
	}
	return fmt.Sprintf("[%s]%-9s[white] %s%s", labelColor, label, shown, cursor)
}

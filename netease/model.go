package netease

// Wire types of the music API. Field names are lowerCamelCase on the wire.

type Account struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	VipType  int    `json:"vipType"`
}

type Profile struct {
	Nickname  string `json:"nickname"`
	UserID    int64  `json:"userId"`
	AvatarURL string `json:"avatarUrl"`
	Signature string `json:"signature"`
}

type LoginResponse struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Account Account `json:"account"`
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
	Cookie  string  `json:"cookie"`
}

type Creator struct {
	Nickname string `json:"nickname"`
	UserID   int64  `json:"userId"`
}

type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	PicURL string `json:"picUrl"`
}

type Track struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Ar   []Artist `json:"ar"`
	Al   Album    `json:"al"`
	Dt   int      `json:"dt"` // duration in ms
}

type Playlist struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	CoverImgURL string  `json:"coverImgUrl"`
	TrackCount  int     `json:"trackCount"`
	PlayCount   int64   `json:"playCount"`
	SpecialType int     `json:"specialType"`
	Creator     Creator `json:"creator"`
	Tracks      []Track `json:"tracks"`
}

type UserPlaylistResponse struct {
	Code     int        `json:"code"`
	More     bool       `json:"more"`
	Playlist []Playlist `json:"playlist"`
}

type PlaylistDetailResponse struct {
	Code     int      `json:"code"`
	Playlist Playlist `json:"playlist"`
}

type SongURL struct {
	ID   int64  `json:"id"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Br   int    `json:"br"`
	MD5  string `json:"md5"`
}

type SongURLResponse struct {
	Code int       `json:"code"`
	Data []SongURL `json:"data"`
}

type LikeListResponse struct {
	Code int     `json:"code"`
	IDs  []int64 `json:"ids"`
}

type lyricBlock struct {
	Lyric string `json:"lyric"`
}

type LyricResponse struct {
	Code   int        `json:"code"`
	Lrc    lyricBlock `json:"lrc"`
	Tlyric lyricBlock `json:"tlyric"`
}

type statusResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

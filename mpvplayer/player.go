package mpvplayer

import (
	"github.com/wildeyedskies/go-mpv/mpv"
)

// Mpvplayer is one libmpv handle playing local files, one at a time
type Mpvplayer struct {
	*mpv.Mpv
	// pending is set between loadfile and the matching FILE_LOADED or
	// END_FILE event, while idle-active can still read true
	pending bool
	loaded  bool
}

func New() (*Mpvplayer, error) {
	instance, err := CreateMPVInstance()
	if err != nil {
		return nil, err
	}
	return &Mpvplayer{Mpv: instance}, nil
}

func (m *Mpvplayer) Load(path string) error {
	if err := m.Command([]string{"loadfile", path, "replace"}); err != nil {
		return err
	}
	m.pending = true
	return nil
}

func (m *Mpvplayer) Stop() error {
	m.pending, m.loaded = false, false
	return m.Command([]string{"stop"})
}

func (m *Mpvplayer) SetPaused(paused bool) error {
	return m.SetProperty("pause", mpv.FORMAT_FLAG, paused)
}

func (m *Mpvplayer) IsPaused() (bool, error) {
	pause, err := m.GetProperty("pause", mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	}
	return pause.(bool), nil
}

// SetVolume takes a percentage, 0 to 100
func (m *Mpvplayer) SetVolume(percent float64) error {
	return m.SetProperty("volume", mpv.FORMAT_DOUBLE, percent)
}

func (m *Mpvplayer) GetVolume() (float64, error) {
	vol, err := m.GetProperty("volume", mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	}
	return vol.(float64), nil
}

// Idle drains pending events without blocking and reports whether no file
// is loaded or about to be.
func (m *Mpvplayer) Idle() bool {
	for {
		e := m.WaitEvent(0)
		if e == nil || e.Event_Id == mpv.EVENT_NONE {
			break
		}
		switch e.Event_Id {
		case mpv.EVENT_FILE_LOADED:
			m.pending, m.loaded = false, true
		case mpv.EVENT_END_FILE:
			m.pending, m.loaded = false, false
		}
	}
	return !m.pending && !m.loaded
}

func (m *Mpvplayer) Close() {
	m.Command([]string{"quit"})
	m.TerminateDestroy()
}

func CreateMPVInstance() (*mpv.Mpv, error) {
	mpvInstance := mpv.Create()

	mpvInstance.SetOptionString("audio-display", "no")
	mpvInstance.SetOptionString("video", "no")
	mpvInstance.SetOptionString("idle", "yes")
	mpvInstance.SetOptionString("terminal", "no")

	err := mpvInstance.Initialize()
	if err != nil {
		mpvInstance.TerminateDestroy()
		return nil, err
	}
	return mpvInstance, nil
}

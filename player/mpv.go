package player

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/logging"
	"github.com/yhkl-dev/EaseCLI/mpvplayer"
)

// MPVSink plays through a private libmpv instance
type MPVSink struct {
	mu       sync.Mutex
	instance *mpvplayer.Mpvplayer
	gain     float32
	log      *logrus.Entry
}

// NewMPVSink creates a new libmpv instance for one playback
func NewMPVSink() (*MPVSink, error) {
	instance, err := mpvplayer.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MPV instance")
	}
	return &MPVSink{
		instance: instance,
		gain:     1,
		log:      logging.For("player"),
	}, nil
}

func (p *MPVSink) Append(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.instance == nil {
		return errors.New("MPV instance already stopped")
	}
	if err := p.instance.SetVolume(float64(p.gain) * 100); err != nil {
		p.log.WithError(err).Warn("set volume")
	}
	return errors.Wrap(p.instance.Load(path), "loadfile")
}

// CanPlay only checks that path is a readable file; libmpv detects the
// format when it loads it.
func (p *MPVSink) CanPlay(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "stat audio file")
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}
	return nil
}

func (p *MPVSink) Play() {
	p.setPaused(false)
}

func (p *MPVSink) Pause() {
	p.setPaused(true)
}

func (p *MPVSink) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.instance == nil {
		return
	}
	if err := p.instance.SetPaused(paused); err != nil {
		p.log.WithError(err).Warn("set pause")
	}
}

func (p *MPVSink) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.instance == nil {
		return
	}
	if err := p.instance.Stop(); err != nil {
		p.log.WithError(err).Debug("stop")
	}
	p.instance.Close()
	p.instance = nil
}

func (p *MPVSink) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.instance == nil {
		return true
	}
	return p.instance.Idle()
}

func (p *MPVSink) SetVolume(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gain = clampGain(v)
	if p.instance == nil {
		return
	}
	if err := p.instance.SetVolume(float64(p.gain) * 100); err != nil {
		p.log.WithError(err).Warn("set volume")
	}
}

func (p *MPVSink) Volume() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gain
}

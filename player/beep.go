package player

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/logging"
)

const (
	speakerRate     = beep.SampleRate(44100)
	resampleQuality = 4
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(100*time.Millisecond))
	})
	return speakerErr
}

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(f)
	},
}

func decoderFor(path string) (decodeFunc, bool) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return dec, ok
}

// volumeGain maps a linear gain in [0,1] onto effects.Volume with base 2.
// Zero is reported as silent.
func volumeGain(v float32) (level float64, silent bool) {
	if v <= 0 {
		return 0, true
	}
	return math.Log2(float64(v)), false
}

// BeepSink plays through the process-wide speaker. Each sink owns at most
// one decoded stream.
type BeepSink struct {
	mu       sync.Mutex
	source   beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	gain     float32
	paused   bool
	finished bool
	log      *logrus.Entry
}

func NewBeepSink() (*BeepSink, error) {
	if err := initSpeaker(); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	return &BeepSink{
		gain:     1,
		finished: true,
		log:      logging.For("player"),
	}, nil
}

// openStream opens and decodes path. The caller owns the returned stream.
func openStream(path string) (beep.StreamSeekCloser, beep.Format, error) {
	decode, ok := decoderFor(path)
	if !ok {
		return nil, beep.Format{}, errors.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "open audio file")
	}
	source, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return source, format, nil
}

func (s *BeepSink) CanPlay(path string) error {
	source, _, err := openStream(path)
	if err != nil {
		return err
	}
	return errors.Wrap(source.Close(), "close stream")
}

func (s *BeepSink) Append(path string) error {
	source, format, err := openStream(path)
	if err != nil {
		return err
	}

	var stream beep.Streamer = source
	if format.SampleRate != speakerRate {
		stream = beep.Resample(resampleQuality, format.SampleRate, speakerRate, source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeSourceLocked()

	level, silent := volumeGain(s.gain)
	s.source = source
	s.finished = false
	s.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(stream, beep.Callback(s.markFinished)),
		Paused:   s.paused,
	}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2, Volume: level, Silent: silent}

	speaker.Play(s.volume)
	s.log.WithField("file", filepath.Base(path)).Debug("stream started")
	return nil
}

// markFinished runs on the speaker goroutine, which holds the speaker lock
func (s *BeepSink) markFinished() {
	go func() {
		s.mu.Lock()
		s.finished = true
		s.mu.Unlock()
	}()
}

func (s *BeepSink) Play() {
	s.setPaused(false)
}

func (s *BeepSink) Pause() {
	s.setPaused(true)
}

func (s *BeepSink) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *BeepSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeSourceLocked()
	s.finished = true
}

func (s *BeepSink) closeSourceLocked() {
	if s.ctrl != nil {
		speaker.Lock()
		// a nil streamer makes the mixer drop this stream
		s.ctrl.Streamer = nil
		speaker.Unlock()
		s.ctrl = nil
		s.volume = nil
	}
	if s.source != nil {
		if err := s.source.Close(); err != nil {
			s.log.WithError(err).Warn("close stream")
		}
		s.source = nil
	}
}

func (s *BeepSink) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *BeepSink) SetVolume(v float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = clampGain(v)
	if s.volume == nil {
		return
	}
	level, silent := volumeGain(s.gain)
	speaker.Lock()
	s.volume.Volume = level
	s.volume.Silent = silent
	speaker.Unlock()
}

func (s *BeepSink) Volume() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

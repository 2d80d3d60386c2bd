package player

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/yhkl-dev/EaseCLI/config"
)

// NewFactory returns the Factory for a configured backend name
func NewFactory(backend string) (Factory, error) {
	switch backend {
	case config.BackendBeep:
		return func() (Sink, error) { return NewBeepSink() }, nil
	case config.BackendMPV:
		return func() (Sink, error) { return NewMPVSink() }, nil
	}
	return nil, errors.Errorf("unknown player backend %q", backend)
}

func clampGain(v float32) float32 {
	return lo.Clamp(v, 0, 1)
}

var (
	_ Sink = (*BeepSink)(nil)
	_ Sink = (*MPVSink)(nil)
)

package test

import (
	"sync"

	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks so tests can run OnStart and OnStop by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub records the options of every Shutdown call, exit codes included.
type ShutdownerStub struct {
	Called chan struct{}

	mu      sync.Mutex
	options []fx.ShutdownOption
}

func (s *ShutdownerStub) Shutdown(opts ...fx.ShutdownOption) error {
	s.mu.Lock()
	s.options = append(s.options, opts...)
	s.mu.Unlock()
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Options returns the shutdown options received so far.
func (s *ShutdownerStub) Options() []fx.ShutdownOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fx.ShutdownOption(nil), s.options...)
}

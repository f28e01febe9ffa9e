package sim

import (
	"context"
	"time"

	"github.com/san-kum/particlefield/internal/field"
)

// Loop couples a simulator to a FrameQueue and a ManualClock, so a host
// only has to call Tick once per displayed frame.
type Loop struct {
	*Simulator
	Queue *FrameQueue
	Clock *ManualClock
}

func NewLoop(effect Effect, surface field.Surface, cfg Config) (*Loop, error) {
	q := NewFrameQueue()
	c := NewManualClock()
	s, err := New(effect, surface, q, c, cfg)
	if err != nil {
		return nil, err
	}
	return &Loop{Simulator: s, Queue: q, Clock: c}, nil
}

// Interval is the nominal time between frames.
func (l *Loop) Interval() time.Duration {
	return time.Duration(float64(time.Second) / l.cfg.FPS)
}

// Tick advances host time by dt, firing due timers, then runs the pending
// frame callbacks. It reports whether a frame was drawn.
func (l *Loop) Tick(dt time.Duration) bool {
	l.Clock.Advance(dt)
	before := l.renders
	l.Queue.Flush()
	return l.renders != before
}

// Run starts the simulator and ticks it frames times at the nominal
// interval, for headless use. With reduced motion it returns after the
// single static frame.
func (l *Loop) Run(ctx context.Context, frames int) (*Result, error) {
	for _, m := range l.metrics {
		m.Reset()
	}
	if err := l.Start(); err != nil {
		return nil, err
	}
	if l.cfg.ReducedMotion {
		return l.Result(), nil
	}

	dt := l.Interval()
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return l.Result(), ctx.Err()
		default:
		}
		if l.stopped {
			return l.Result(), ErrStopped
		}
		l.Tick(dt)
	}
	return l.Result(), nil
}

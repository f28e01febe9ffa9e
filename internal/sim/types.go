package sim

import (
	"time"

	"github.com/san-kum/particlefield/internal/field"
)

// Effect is an animated background: it can be sized, stepped one frame and
// drawn onto a surface.
type Effect interface {
	Name() string
	Resize(width, height float64)
	Advance()
	Render(s field.Surface)
}

// Reporter is implemented by effects that can summarize their last frame.
type Reporter interface {
	Report() Report
}

type Report struct {
	Particles   int
	Connections int
	MeanOpacity float64
	Escaped     int
}

// FrameInfo is passed to metrics and observers after every render.
type FrameInfo struct {
	Frame   int
	Width   float64
	Height  float64
	Elapsed time.Duration
	Report
}

type Metric interface {
	Name() string
	Observe(f FrameInfo)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f FrameInfo)
}

type FrameHandle uint64

// Scheduler invokes a callback at most once, before the next displayed frame.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

type Timer interface {
	Stop() bool
}

// Clock runs fn once after d has passed.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type State int

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

type Config struct {
	Width          float64
	Height         float64
	FPS            float64
	ReducedMotion  bool
	ResizeDebounce time.Duration
}

const (
	DefaultFPS      = 60
	DefaultDebounce = 250 * time.Millisecond
)

type Result struct {
	Frames        int
	Renders       int
	Advances      int
	Regenerations int
	Elapsed       time.Duration
	Metrics       map[string]float64
}

package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/particlefield/internal/field"
)

var ErrStopped = errors.New("sim: simulator stopped")

// Simulator drives one effect. It is either RUNNING, with exactly one frame
// request outstanding, or PAUSED, with none. All methods must be called from
// the goroutine that flushes the scheduler.
type Simulator struct {
	effect    Effect
	surface   field.Surface
	scheduler Scheduler
	cfg       Config
	logger    *log.Logger

	state    State
	handle   FrameHandle
	pending  bool
	resize   *Debouncer
	started  bool
	stopped  bool
	rendered bool

	width, height float64
	frame         int
	renders       int
	advances      int
	regenerations int

	metrics   []Metric
	observers []Observer
}

func New(effect Effect, surface field.Surface, scheduler Scheduler, clock Clock, cfg Config) (*Simulator, error) {
	if surface == nil {
		return nil, field.ErrNoSurface
	}
	if effect == nil {
		return nil, errors.New("sim: nil effect")
	}
	if scheduler == nil {
		return nil, errors.New("sim: nil scheduler")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}

	s := &Simulator{
		effect:    effect,
		surface:   surface,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    log.New(io.Discard),
		resize:    NewDebouncer(clock, cfg.ResizeDebounce),
		width:     cfg.Width,
		height:    cfg.Height,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	effect.Resize(cfg.Width, cfg.Height)
	return s, nil
}

func validateConfig(cfg Config) error {
	if cfg.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %f", cfg.FPS)
	}
	if cfg.ResizeDebounce < 0 {
		return fmt.Errorf("resize debounce must not be negative, got %s", cfg.ResizeDebounce)
	}
	return nil
}

func (s *Simulator) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Effect() Effect     { return s.effect }
func (s *Simulator) State() State       { return s.state }
func (s *Simulator) Frame() int         { return s.frame }
func (s *Simulator) Renders() int       { return s.renders }
func (s *Simulator) Advances() int      { return s.advances }
func (s *Simulator) Regenerations() int { return s.regenerations }
func (s *Simulator) Stopped() bool      { return s.stopped }

func (s *Simulator) Size() (float64, float64) { return s.width, s.height }

// Start begins the animation. With reduced motion the effect is drawn once
// and the simulator stays paused.
func (s *Simulator) Start() error {
	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	s.started = true
	if s.cfg.ReducedMotion {
		s.logger.Debug("reduced motion, drawing a static frame", "effect", s.effect.Name())
		s.renderStatic()
		return nil
	}
	s.run()
	return nil
}

// SetVisible pauses the loop while the surface is hidden and resumes it
// when it becomes visible again.
func (s *Simulator) SetVisible(visible bool) {
	if s.stopped || !s.started || s.cfg.ReducedMotion {
		return
	}
	if !visible {
		if s.state == Running {
			s.logger.Debug("hidden, pausing", "frame", s.frame)
		}
		s.pause()
		return
	}
	if s.state == Paused {
		s.logger.Debug("visible, resuming", "frame", s.frame)
		s.run()
	}
}

// Resize schedules a regeneration for the new surface size. Calls closer
// together than the debounce window collapse into one.
func (s *Simulator) Resize(width, height float64) {
	if s.stopped {
		return
	}
	s.resize.Trigger(func() { s.applyResize(width, height) })
}

// ResizePending reports whether a debounced resize has not fired yet.
func (s *Simulator) ResizePending() bool { return s.resize.Pending() }

func (s *Simulator) applyResize(width, height float64) {
	if s.stopped {
		return
	}
	s.width, s.height = width, height
	s.effect.Resize(width, height)
	s.regenerations++
	s.logger.Debug("regenerated", "effect", s.effect.Name(), "width", width, "height", height)
}

// Stop cancels any outstanding frame and pending resize. The simulator
// cannot be restarted.
func (s *Simulator) Stop() {
	if s.stopped {
		return
	}
	s.pause()
	s.resize.Stop()
	s.stopped = true
	s.logger.Debug("stopped", "frames", s.frame, "renders", s.renders)
}

func (s *Simulator) run() {
	s.state = Running
	if !s.pending {
		s.handle = s.scheduler.RequestFrame(s.step)
		s.pending = true
	}
}

func (s *Simulator) pause() {
	if s.pending {
		s.scheduler.CancelFrame(s.handle)
		s.pending = false
	}
	s.state = Paused
}

func (s *Simulator) step() {
	s.pending = false
	if s.state != Running || s.stopped {
		return
	}
	s.effect.Advance()
	s.advances++
	s.render()
	s.handle = s.scheduler.RequestFrame(s.step)
	s.pending = true
}

func (s *Simulator) renderStatic() {
	if s.rendered {
		return
	}
	s.render()
	s.rendered = true
	s.state = Paused
}

func (s *Simulator) render() {
	s.effect.Render(s.surface)
	s.renders++
	s.frame++

	info := FrameInfo{
		Frame:   s.frame,
		Width:   s.width,
		Height:  s.height,
		Elapsed: s.frameTime(s.frame),
	}
	if r, ok := s.effect.(Reporter); ok {
		info.Report = r.Report()
	}
	for _, m := range s.metrics {
		m.Observe(info)
	}
	for _, o := range s.observers {
		o.OnFrame(info)
	}
}

func (s *Simulator) frameTime(n int) time.Duration {
	return time.Duration(float64(n) / s.cfg.FPS * float64(time.Second))
}

func (s *Simulator) Result() *Result {
	r := &Result{
		Frames:        s.frame,
		Renders:       s.renders,
		Advances:      s.advances,
		Regenerations: s.regenerations,
		Elapsed:       s.frameTime(s.frame),
		Metrics:       make(map[string]float64),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}

package gui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
)

var ErrUnknownBackend = errors.New("gui: unknown backend")

const (
	BackendRaylib = "raylib"
	BackendEbiten = "ebiten"

	telemetryCapacity = 200
)

type Options struct {
	Effect  sim.Effect
	Config  sim.Config
	Metrics []sim.Metric
	Title   string
	// Background is painted before every frame; effects clear to
	// transparent.
	Background field.Color
	ShowHUD    bool
	Logger     *log.Logger
}

// Run opens a window with the named backend and blocks until it closes.
func Run(backend string, opts Options) error {
	if opts.Title == "" {
		opts.Title = "particlefield"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	switch backend {
	case "", BackendRaylib:
		return RunRaylib(opts)
	case BackendEbiten:
		return RunEbiten(opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// windowHost is the backend-independent part of a desktop host. Each
// backend reports the window size, whether it is showing and the frame
// time, once per display frame.
type windowHost struct {
	opts          Options
	loop          *sim.Loop
	surface       field.Surface
	width, height int
	dpr           float64
	visible       bool
	paused        bool
	telemetry     []float64
	last          sim.FrameInfo
}

// dprSetter is implemented by effects whose geometry depends on the
// device pixel ratio.
type dprSetter interface {
	SetDPR(dpr float64)
}

// newWindowHost starts the effect on a width x height logical surface that
// the backend presents at dpr device pixels per logical pixel.
func newWindowHost(opts Options, surface field.Surface, width, height int, dpr float64) (*windowHost, error) {
	if dpr <= 0 {
		dpr = 1
	}
	if d, ok := opts.Effect.(dprSetter); ok {
		d.SetDPR(dpr)
	}
	cfg := opts.Config
	cfg.Width, cfg.Height = float64(width), float64(height)
	loop, err := sim.NewLoop(opts.Effect, surface, cfg)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		loop.SetLogger(opts.Logger)
	}
	h := &windowHost{opts: opts, loop: loop, surface: surface, width: width, height: height, dpr: dpr, visible: true}
	loop.AddObserver(h)
	for _, m := range opts.Metrics {
		loop.AddMetric(m)
	}
	if err := loop.Start(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *windowHost) OnFrame(f sim.FrameInfo) {
	h.last = f
	h.telemetry = append(h.telemetry, float64(f.Connections))
	if len(h.telemetry) > telemetryCapacity {
		h.telemetry = h.telemetry[1:]
	}
}

// frame feeds one display frame into the loop and reports whether the
// effect drew.
func (h *windowHost) frame(width, height int, showing bool, dt time.Duration) bool {
	if width != h.width || height != h.height {
		h.width, h.height = width, height
		h.loop.Resize(float64(width), float64(height))
	}
	visible := showing && !h.paused
	if visible != h.visible {
		h.visible = visible
		h.loop.SetVisible(visible)
	}
	return h.loop.Tick(dt)
}

// present runs one display frame and reports whether anything was painted.
// A showing window whose frame the simulator skipped is repainted without
// Advance, since raylib does not keep its back buffer and the HUD needs a
// clean frame. A hidden window is left alone.
func (h *windowHost) present(width, height int, showing bool, dt time.Duration) bool {
	if h.frame(width, height, showing, dt) {
		return true
	}
	if !showing {
		return false
	}
	h.loop.Effect().Render(h.surface)
	return true
}

func (h *windowHost) togglePause() {
	h.paused = !h.paused
}

func (h *windowHost) status() string {
	switch {
	case h.opts.Config.ReducedMotion:
		return "STATIC"
	case h.loop.State() == sim.Running:
		return "RUNNING"
	}
	return "PAUSED"
}

func (h *windowHost) hudLines() []string {
	lines := []string{
		fmt.Sprintf("%s :: %s", h.opts.Effect.Name(), h.status()),
		fmt.Sprintf("frame %d  %.0fx%.0f @%gx", h.last.Frame, h.last.Width, h.last.Height, h.dpr),
	}
	if h.last.Particles > 0 {
		lines = append(lines, fmt.Sprintf("particles %d  lines %d  opacity %.2f",
			h.last.Particles, h.last.Connections, h.last.MeanOpacity))
	}
	return append(lines, "[SPACE] PAUSE  [H] HUD  [Q] QUIT")
}

func (h *windowHost) close() {
	h.loop.Stop()
	r := h.loop.Result()
	h.opts.Logger.Info("window closed", "effect", h.opts.Effect.Name(), "frames", r.Frames, "regenerations", r.Regenerations)
}

// pixelRatio is the device pixels per logical pixel of a window whose
// framebuffer is fb wide and whose logical width is logical. fallback is
// used while either size is unknown.
func pixelRatio(fb, logical int, fallback float64) float64 {
	if fb > 0 && logical > 0 {
		return float64(fb) / float64(logical)
	}
	if fallback > 0 {
		return fallback
	}
	return 1
}

// telemetryPoints maps the connection history into a w x ht box whose
// bottom-left corner is (x, y+ht).
func telemetryPoints(values []float64, x, y, w, ht float64) [][2]float64 {
	if len(values) < 2 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pts := make([][2]float64, len(values))
	for i, v := range values {
		px := x + float64(i)/float64(len(values)-1)*w
		py := y + ht - (v-lo)/(hi-lo)*ht
		pts[i] = [2]float64{px, py}
	}
	return pts
}

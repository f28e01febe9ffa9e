package effect

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
)

type RunConfig struct {
	Effect  string
	Seed    int64
	Frames  int
	Sim     sim.Config
	Logger  *log.Logger
	Metrics bool
}

// Run is a headless animation of one registered effect.
type Run struct {
	cfg      RunConfig
	registry *Registry
	loop     *sim.Loop
}

func NewRun(registry *Registry, cfg RunConfig) *Run {
	return &Run{cfg: cfg, registry: registry}
}

func (r *Run) Setup(surface field.Surface, observers ...sim.Observer) error {
	e, err := r.registry.Get(r.cfg.Effect, r.cfg.Seed)
	if err != nil {
		return err
	}
	r.loop, err = sim.NewLoop(e, surface, r.cfg.Sim)
	if err != nil {
		return err
	}
	if r.cfg.Logger != nil {
		r.loop.SetLogger(r.cfg.Logger)
	}
	if r.cfg.Metrics {
		for _, m := range r.registry.DefaultMetrics(r.cfg.Effect) {
			r.loop.AddMetric(m)
		}
	}
	for _, o := range observers {
		r.loop.AddObserver(o)
	}
	return nil
}

func (r *Run) Run(ctx context.Context) (*sim.Result, error) {
	if r.loop == nil {
		return nil, fmt.Errorf("run not setup")
	}
	return r.loop.Run(ctx, r.cfg.Frames)
}

// Loop returns the underlying loop for hosts that drive it themselves.
func (r *Run) Loop() *sim.Loop {
	return r.loop
}

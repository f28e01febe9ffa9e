package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/effect"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
	"github.com/san-kum/particlefield/internal/storage"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields keep the base configuration's
// values.
type ScenarioStep struct {
	Effect        string             `yaml:"effect"`
	Preset        string             `yaml:"preset"`
	Seed          int64              `yaml:"seed"`
	Frames        int                `yaml:"frames"`
	Width         float64            `yaml:"width"`
	Height        float64            `yaml:"height"`
	ReducedMotion bool               `yaml:"reduced_motion"`
	Params        map[string]float64 `yaml:"params"`
	Save          bool               `yaml:"save"`
}

// StepResult pairs a step with its outcome. RunID is empty for unsaved
// steps.
type StepResult struct {
	Step   ScenarioStep
	Effect string
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// StepConfig resolves a step against base: the step's preset replaces
// base, then the step's own fields and params apply.
func StepConfig(base *config.Config, step ScenarioStep) (*config.Config, error) {
	cfg := *base
	name := step.Effect
	if name == "" {
		name = cfg.Effect
	}
	if step.Preset != "" {
		p, err := config.GetPreset(name, step.Preset)
		if err != nil {
			return nil, err
		}
		cfg = *p
	}
	cfg.Effect = name
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if step.Width > 0 {
		cfg.Width = step.Width
	}
	if step.Height > 0 {
		cfg.Height = step.Height
	}
	if step.ReducedMotion {
		cfg.ReducedMotion = true
	}
	for k, v := range step.Params {
		if err := cfg.Particles.Set(k, v); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are written
// to st, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, st *storage.Store, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := StepConfig(base, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		frames := step.Frames
		if frames <= 0 {
			frames = int(cfg.FPS) * 10
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "effect", cfg.Effect, "frames", frames)

		rec := &storage.Recorder{}
		registry := effect.NewRegistry(cfg.EffectParams())
		run := effect.NewRun(registry, effect.RunConfig{
			Effect:  cfg.Effect,
			Seed:    cfg.Seed,
			Frames:  frames,
			Sim:     cfg.SimConfig(),
			Logger:  logger,
			Metrics: true,
		})
		if err := run.Setup(field.Discard, rec); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := run.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Effect: cfg.Effect, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save to", i+1)
			}
			sr.RunID, err = st.Save(storage.RunMetadata{
				Effect:        cfg.Effect,
				Preset:        step.Preset,
				Seed:          cfg.Seed,
				FPS:           cfg.FPS,
				Width:         cfg.Width,
				Height:        cfg.Height,
				ReducedMotion: cfg.ReducedMotion,
			}, result, rec.Frames)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

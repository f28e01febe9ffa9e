package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/particlefield/internal/analysis"
	"github.com/san-kum/particlefield/internal/automation"
	"github.com/san-kum/particlefield/internal/effect"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/optim"
	"github.com/san-kum/particlefield/internal/storage"
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	series, err := storage.Column(frames, column)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	s := analysis.Summarize(series)
	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Effect)
	fmt.Printf("series: %s, %d frames\n\n", column, s.N)
	fmt.Printf("  mean:   %.4f\n", s.Mean)
	fmt.Printf("  stddev: %.4f\n", s.StdDev)
	fmt.Printf("  min:    %.4f\n", s.Min)
	fmt.Printf("  max:    %.4f\n", s.Max)

	if period, ok := analysis.DominantPeriod(series, meta.FPS); ok {
		fmt.Printf("  dominant period: %.3fs\n", period)
	} else {
		fmt.Println("  dominant period: none")
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepRanges) == 0 {
		return fmt.Errorf("at least one --param range is required")
	}

	names := make([]string, 0, len(sweepRanges))
	ranges := make([][]float64, 0, len(sweepRanges))
	for _, r := range sweepRanges {
		name, values, err := optim.ParseRange(r)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		c := *cfg
		for k, v := range params {
			if err := c.Particles.Set(k, v); err != nil {
				return 0, err
			}
		}
		if err := c.Validate(); err != nil {
			return 0, err
		}
		run := effect.NewRun(newRegistry(&c), effect.RunConfig{
			Effect:  c.Effect,
			Seed:    c.Seed,
			Frames:  sweepFrames,
			Sim:     c.SimConfig(),
			Metrics: true,
		})
		if err := run.Setup(field.Discard); err != nil {
			return 0, err
		}
		result, err := run.Run(ctx)
		if err != nil {
			return 0, err
		}
		v, ok := result.Metrics[metricName]
		if !ok {
			return 0, fmt.Errorf("effect %s has no metric %q", c.Effect, metricName)
		}
		logger.Debug("candidate", "params", params, metricName, v)
		return math.Abs(v - target), nil
	}

	g := optim.NewGridSearch(names, ranges)
	best, score, err := g.Search(cmd.Context(), objective)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "evaluated %d combinations of %s\n", g.Evaluated(), strings.Join(names, ", "))
	fmt.Fprintf(out, "best (|%s - %g| = %.4f):\n", metricName, target, score)
	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %g\n", k, best[k])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if sc.Description != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(cmd.Context(), sc, base, st, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tEFFECT\tPRESET\tFRAMES\tCONNECTIONS\tRUN")
	for i, r := range results {
		conns := "-"
		if v, ok := r.Result.Metrics["connections"]; ok {
			conns = fmt.Sprintf("%.1f", v)
		}
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		preset := r.Step.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n", i+1, r.Effect, preset, r.Result.Frames, conns, runID)
	}
	return w.Flush()
}

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/effect"
	"github.com/san-kum/particlefield/internal/export"
	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/gui"
	"github.com/san-kum/particlefield/internal/logging"
	"github.com/san-kum/particlefield/internal/sim"
	"github.com/san-kum/particlefield/internal/stars"
	"github.com/san-kum/particlefield/internal/storage"
	"github.com/san-kum/particlefield/internal/viz"
)

// loadConfig resolves a command's configuration: defaults, then the preset,
// then the config file, then flags the user set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		effectName := name
		if effectName == "" {
			effectName = config.DefaultEffect
		}
		p, err := config.GetPreset(effectName, preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets(effectName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if name != "" {
		cfg.Effect = name
	}
	flags := cmd.Flags()
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("dpr") {
		cfg.DPR = dpr
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRegistry(cfg *config.Config) *effect.Registry {
	return effect.NewRegistry(cfg.EffectParams())
}

// background is what hosts paint under effects that clear to transparent.
func background(cfg *config.Config) field.Color {
	return cfg.Shooting.Background
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)

	build := func(name string) (viz.Options, error) {
		e, err := registry.Get(name, cfg.Seed)
		if err != nil {
			return viz.Options{}, err
		}
		return viz.Options{
			Effect:  e,
			Config:  cfg.SimConfig(),
			Metrics: registry.DefaultMetrics(name),
			Theme:   cfg.Theme,
			GIFPath: gifPath,
			// the terminal belongs to the ui while it runs
			Logger: logging.Discard(),
		}, nil
	}

	if len(args) == 0 && configFile == "" && preset == "" {
		return viz.RunInteractive(registry.List(), build)
	}
	opts, err := build(cfg.Effect)
	if err != nil {
		return err
	}
	return viz.Run(opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)
	e, err := registry.Get(cfg.Effect, cfg.Seed)
	if err != nil {
		return err
	}

	logger.Info("opening window", "effect", cfg.Effect, "backend", backend, "seed", cfg.Seed)
	return gui.Run(backend, gui.Options{
		Effect:     e,
		Config:     cfg.SimConfig(),
		Metrics:    registry.DefaultMetrics(cfg.Effect),
		Title:      "particlefield :: " + cfg.Effect,
		Background: background(cfg),
		ShowHUD:    showHUD,
		Logger:     logger,
	})
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	var surface field.Surface
	var raster *export.RasterSurface
	var svg *export.SVGSurface
	switch ext := strings.ToLower(filepath.Ext(snapshotOut)); ext {
	case ".png":
		raster = export.NewRasterSurface(int(cfg.Width), int(cfg.Height), cfg.DPR, background(cfg))
		surface = raster
	case ".svg":
		svg = export.NewSVGSurface(background(cfg))
		surface = svg
	default:
		return fmt.Errorf("unsupported snapshot format %q (use .png or .svg)", ext)
	}

	run := effect.NewRun(newRegistry(cfg), effect.RunConfig{
		Effect: cfg.Effect,
		Seed:   cfg.Seed,
		Frames: snapshotFrame,
		Sim:    cfg.SimConfig(),
		Logger: logger,
	})
	if err := run.Setup(surface); err != nil {
		return err
	}
	result, err := run.Run(cmd.Context())
	if err != nil {
		return err
	}

	if raster != nil {
		err = export.WritePNG(snapshotOut, raster.Image())
	} else {
		err = os.WriteFile(snapshotOut, []byte(svg.String()), 0644)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (frame %d, %gx%g)\n", snapshotOut, result.Frames, cfg.Width, cfg.Height)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rec := &storage.Recorder{}
	observers := []sim.Observer{rec}
	surface := field.Discard
	var gifRec *export.GIFRecorder
	if gifPath != "" {
		raster := export.NewRasterSurface(int(cfg.Width), int(cfg.Height), cfg.DPR, background(cfg))
		surface = raster
		every := max(1, gifEvery)
		gifRec = export.NewGIFRecorder(int(math.Round(100 * float64(every) / cfg.FPS)))
		observers = append(observers, &export.FrameRecorder{GIF: gifRec, Surface: raster, Every: every})
	}

	run := effect.NewRun(newRegistry(cfg), effect.RunConfig{
		Effect:  cfg.Effect,
		Seed:    cfg.Seed,
		Frames:  recordFrames,
		Sim:     cfg.SimConfig(),
		Logger:  logger,
		Metrics: true,
	})
	if err := run.Setup(surface, observers...); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Effect)
	start := time.Now()
	result, err := run.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Effect:        cfg.Effect,
		Preset:        preset,
		Seed:          cfg.Seed,
		FPS:           cfg.FPS,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ReducedMotion: cfg.ReducedMotion,
	}, result, rec.Frames)
	if err != nil {
		return err
	}
	logger.Info("run stored", "id", runID, "frames", result.Frames)

	if gifRec != nil {
		if err := gifRec.Save(gifPath); err != nil {
			return fmt.Errorf("write gif: %w", err)
		}
		fmt.Printf("gif: %s (%d frames)\n", gifPath, gifRec.Len())
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEFFECT\tTIME\tFRAMES\tSIZE\tSEED\tCONNECTIONS")

	for _, run := range runs {
		conns := "-"
		if v, ok := run.Metrics["connections"]; ok {
			conns = fmt.Sprintf("%.1f", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gx%g\t%d\t%s\n",
			run.ID,
			run.Effect,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height,
			run.Seed,
			conns,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
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
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	series, err := storage.Column(frames, column)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("effect: %s\n", meta.Effect)
	fmt.Printf("frames: %d\n\n", len(frames))

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(column+" per frame"),
	)
	fmt.Println(graph)

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.SeriesToSVG(series, 800, 300, "#7dd3fc")), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsvg: %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportOut == "" {
		return st.Export(os.Stdout, args[0])
	}
	if err := st.ExportFile(exportOut, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], exportOut)
	return nil
}

func benchEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	modes := []string{""}
	if cfg.Effect == "particles" {
		modes = []string{field.NeighborsPairs, field.NeighborsGrid}
	}
	numRuns := max(1, runs)

	fmt.Printf("benchmarking %s (%d frames x %d runs, %gx%g)\n\n", cfg.Effect, benchFrames, numRuns, cfg.Width, cfg.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tFRAMES\tTIME\tFRAMES/SEC\tCONNECTIONS")

	for _, mode := range modes {
		c := *cfg
		if mode != "" {
			c.Particles.Neighbors = mode
		}
		registry := newRegistry(&c)
		factory := func(s int64) (sim.Effect, field.Surface, []sim.Metric, error) {
			e, err := registry.Get(c.Effect, s)
			if err != nil {
				return nil, nil, nil, err
			}
			return e, field.Discard, registry.DefaultMetrics(c.Effect), nil
		}

		start := time.Now()
		results, err := sim.NewEnsemble(factory, c.SimConfig(), numRuns, c.Seed).Run(cmd.Context(), benchFrames)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		total, conns := 0, 0.0
		for _, r := range results {
			total += r.Frames
			conns += r.Metrics["connections"]
		}
		label := mode
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.1f\n",
			label, total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds(), conns/float64(len(results)))
	}

	return w.Flush()
}

func printCSS(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	e, err := newRegistry(cfg).Get(cfg.Effect, cfg.Seed)
	if err != nil {
		return err
	}
	switch v := e.(type) {
	case *stars.Starfield:
		fmt.Print(stars.StarfieldCSS(v))
	case *stars.ShootingStars:
		fmt.Print(stars.ShootingStarsCSS(v))
	default:
		return fmt.Errorf("effect %s has no stylesheet", cfg.Effect)
	}
	return nil
}

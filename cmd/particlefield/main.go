package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlefield/internal/config"
	"github.com/san-kum/particlefield/internal/logging"
)

var (
	dataDir       string
	configFile    string
	preset        string
	seed          int64
	reducedMotion bool
	logLevel      string

	width         float64
	height        float64
	dpr           float64
	snapshotFrame int
	recordFrames  int
	benchFrames   int

	snapshotOut string
	exportOut   string
	gifPath     string
	gifEvery    int
	theme       string
	backend     string
	showHUD     bool
	runs        int
	column      string
	svgPath     string
	plotWidth   int

	sweepRanges []string
	sweepFrames int
	metricName  string
	target      float64

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlefield",
		Short: "animated particle, starfield and shooting star backgrounds",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.Setup(logLevel)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".particlefield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	pf.BoolVar(&reducedMotion, "reduced-motion", false, "draw a single static frame")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	liveCmd := &cobra.Command{
		Use:   "live [effect]",
		Short: "animate an effect in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "", "terminal theme")
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "gif written on quit when recording (g)")

	guiCmd := &cobra.Command{
		Use:   "gui [effect]",
		Short: "animate an effect in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend (raylib, ebiten)")
	guiCmd.Flags().BoolVar(&showHUD, "hud", true, "show the status overlay")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [effect]",
		Short: "render one frame to png or svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "snapshot.png", "output file (.png or .svg)")
	snapshotCmd.Flags().IntVar(&snapshotFrame, "frames", 1, "frame to capture")
	addSurfaceFlags(snapshotCmd)

	recordCmd := &cobra.Command{
		Use:   "record [effect]",
		Short: "run headless and store per-frame stats",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&recordFrames, "frames", 600, "frames to run")
	recordCmd.Flags().StringVar(&gifPath, "gif", "", "also write an animated gif")
	recordCmd.Flags().IntVar(&gifEvery, "gif-every", 2, "capture every nth frame into the gif")
	addSurfaceFlags(recordCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored per-frame series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "connections", "series (particles, connections, mean_opacity, escaped)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the series as svg")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width in columns")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (stdout when empty)")

	benchCmd := &cobra.Command{
		Use:   "bench [effect]",
		Short: "benchmark frames per second",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchEffect,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per run")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "concurrent runs with consecutive seeds")
	addSurfaceFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [effect]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			effects := args
			if len(effects) == 0 {
				effects = newRegistry(config.DefaultConfig()).List()
			}
			for _, name := range effects {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					fmt.Printf("no presets for effect: %s\n", name)
					continue
				}
				fmt.Printf("presets for %s:\n", name)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	cssCmd := &cobra.Command{
		Use:       "css [starfield|shooting-stars]",
		Short:     "print the stylesheet version of an effect",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"starfield", "shooting-stars"},
		RunE:      printCSS,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary and dominant period of a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "connections", "series to analyze")

	sweepCmd := &cobra.Command{
		Use:   "sweep [effect]",
		Short: "grid search particle parameters towards a metric target",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&sweepRanges, "param", nil, "parameter range, name=v1,v2 or name=lo:hi:steps (repeatable)")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 300, "frames per candidate")
	sweepCmd.Flags().StringVar(&metricName, "metric", "connections", "metric to steer")
	sweepCmd.Flags().Float64Var(&target, "target", 40, "desired metric value")
	addSurfaceFlags(sweepCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of headless steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, snapshotCmd, recordCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd, cssCmd, analyzeCmd, sweepCmd, scenarioCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addSurfaceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "surface width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "surface height")
	cmd.Flags().Float64Var(&dpr, "dpr", 1, "device pixel ratio")
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/config"
	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/observability"
	"github.com/san-kum/constellate/internal/pointer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Config file
	configFile string
	// Preset name
	preset string

	width     int
	height    int
	count     int
	size      float64
	color     string
	maxLine   float64
	lineWidth float64
	seed      int64
	frameRate int

	// Scripted pointer for headless modes, "x,y"
	pointerAt string

	// Terminal canvas size in cells
	cols int
	rows int
	// Theme name for the terminal view
	theme string

	recordFrames   int
	recordOut      string
	snapshotFrames int
	snapshotOut    string
	duration       float64
	// Parallel seeded runs for bench
	runs       int
	benchFrame int
)

// main is the entry point for the constellate CLI; it registers commands and flags, runs the terminal view when no subcommand is provided, and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "constellate",
		Short: "particle constellation simulator",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "surface width")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "surface height")
	rootCmd.PersistentFlags().IntVar(&count, "count", config.DefaultCount, "number of particles")
	rootCmd.PersistentFlags().Float64Var(&size, "size", config.DefaultSize, "particle radius")
	rootCmd.PersistentFlags().StringVar(&color, "color", config.DefaultColor, "particle color (#rgb or #rrggbb)")
	rootCmd.PersistentFlags().Float64Var(&maxLine, "max-line", config.DefaultMaxLine, "longest connecting line")
	rootCmd.PersistentFlags().Float64Var(&lineWidth, "line-width", config.DefaultLineWidth, "connecting line width")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().IntVar(&cols, "cols", 80, "canvas width in terminal cells")
		c.Flags().IntVar(&rows, "rows", 30, "canvas height in terminal cells")
		c.Flags().StringVar(&theme, "theme", "field", "color theme")
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the field in an Ebiten window",
		RunE:  runWindow,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a Raylib window",
		RunE:  runGUI,
	}

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record frames to an animated GIF",
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&recordFrames, "frames", 120, "number of frames")
	recordCmd.Flags().StringVar(&recordOut, "out", "constellate.gif", "output file")
	recordCmd.Flags().StringVar(&pointerAt, "pointer", "", "hold the pointer at x,y")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to PNG or SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 0, "frames to advance before the snapshot")
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "constellate.png", "output file (.png or .svg)")
	snapshotCmd.Flags().StringVar(&pointerAt, "pointer", "", "hold the pointer at x,y")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark headless frames",
		RunE:  runBench,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 3.0, "duration in seconds")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "parallel runs with consecutive seeds")
	benchCmd.Flags().IntVar(&benchFrame, "frames", 600, "frames per run when --runs > 1")
	benchCmd.Flags().StringVar(&pointerAt, "pointer", "", "hold the pointer at x,y")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, windowCmd, guiCmd, recordCmd, snapshotCmd, benchCmd, presetsCmd)

	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the run configuration: preset, then config file, then
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Field.Width = width
	}
	if flags.Changed("height") {
		cfg.Field.Height = height
	}
	if flags.Changed("count") {
		cfg.Field.Count = count
	}
	if flags.Changed("size") {
		cfg.Field.Size = size
	}
	if flags.Changed("color") {
		cfg.Field.Color = color
	}
	if flags.Changed("max-line") {
		cfg.Field.MaxLine = maxLine
	}
	if flags.Changed("line-width") {
		cfg.Field.LineWidth = lineWidth
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newField builds a field from cfg driven by sched. A nil clock uses wall
// time.
func newField(cfg *config.Config, fc field.Config, newSurface field.SurfaceFactory, sched anim.Scheduler, clock anim.Clock) (*field.Field, error) {
	log := observability.GetLogger()
	f, err := field.New(fc, newSurface,
		field.WithMotion(cfg.MotionModel()),
		field.WithScheduler(sched),
		field.WithClock(clock),
		field.WithSeed(cfg.Seed),
		field.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Info("field ready",
		zap.Int("count", fc.Count),
		zap.Int("fps", cfg.Render.FPS),
		zap.Int64("seed", cfg.Seed))
	return f, nil
}

// parsePointer reads "x,y". An empty string means no pointer.
func parsePointer(s string) (pointer.State, error) {
	if s == "" {
		return pointer.State{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return pointer.State{}, fmt.Errorf("invalid pointer %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return pointer.State{}, fmt.Errorf("invalid pointer x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return pointer.State{}, fmt.Errorf("invalid pointer y: %w", err)
	}
	return pointer.At(x, y), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/config"
	"github.com/san-kum/constellate/internal/ensemble"
	"github.com/san-kum/constellate/internal/export"
	"github.com/san-kum/constellate/internal/gui"
	"github.com/san-kum/constellate/internal/metrics"
	"github.com/san-kum/constellate/internal/observability"
	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/raster"
	"github.com/san-kum/constellate/internal/viz"
	"github.com/san-kum/constellate/internal/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setup loads the config and starts logging. Interactive terminal runs
// keep the console quiet so log lines do not tear the view.
func setup(cmd *cobra.Command, quiet bool) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logCfg := cfg.Log
	if quiet {
		logCfg.Console = false
	}
	observability.InitializeLogger(logCfg)
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, true)
	if err != nil {
		return err
	}

	q := &anim.FrameQueue{}
	f, err := newField(cfg, cfg.FieldConfig(), viz.Factory(cols, rows), q, nil)
	if err != nil {
		return err
	}
	defer f.Destroy()

	fps := cfg.Render.FPS
	if !cmd.Flags().Changed("fps") && fps > 30 {
		// terminals rarely keep up with more
		fps = 30
	}
	m, err := viz.NewModel(f, q, fps, theme)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, false)
	if err != nil {
		return err
	}

	q := &anim.FrameQueue{}
	game := window.NewGame(q)
	fc := cfg.FieldConfig()
	fc.Host = game
	f, err := newField(cfg, fc, window.NewSurface, q, nil)
	if err != nil {
		return err
	}
	game.OnClose(f.Destroy)
	defer f.Destroy()

	return window.Run(game, "constellate", cfg.Render.FPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, false)
	if err != nil {
		return err
	}

	q := &anim.FrameQueue{}
	f, err := newField(cfg, cfg.FieldConfig(), gui.NewSurface, q, nil)
	if err != nil {
		return err
	}
	return gui.Run(f, q, cfg.Render.FPS)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, false)
	if err != nil {
		return err
	}
	ptr, err := parsePointer(pointerAt)
	if err != nil {
		return err
	}
	if recordFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", recordFrames)
	}
	fps := cfg.Render.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}

	q := &anim.FrameQueue{}
	sink := raster.NewSink(100 / fps)
	fc := cfg.FieldConfig()
	fc.Host = sink
	clock := anim.NewStepClock(time.Unix(0, 0), anim.FrameStep(fps))
	f, err := newField(cfg, fc, raster.NewSurface, q, clock)
	if err != nil {
		return err
	}
	defer f.Destroy()
	f.SetPointer(ptr)

	log := observability.GetLogger()
	log.Info("recording", zap.Int("frames", recordFrames), zap.String("out", recordOut))
	start := time.Now()
	for i := 0; i < recordFrames; i++ {
		q.RunFrame()
		if err := sink.Capture(); err != nil {
			return err
		}
	}

	out, err := os.Create(recordOut)
	if err != nil {
		return err
	}
	if err := sink.EncodeGIF(out); err != nil {
		out.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("recorded %d frames to %s in %v\n", sink.Frames(), recordOut, time.Since(start).Round(time.Millisecond))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, false)
	if err != nil {
		return err
	}
	ptr, err := parsePointer(pointerAt)
	if err != nil {
		return err
	}
	fps := cfg.Render.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}

	q := &anim.FrameQueue{}
	clock := anim.NewStepClock(time.Unix(0, 0), anim.FrameStep(fps))
	fc := cfg.FieldConfig()

	var write func(*os.File) error
	switch ext := strings.ToLower(filepath.Ext(snapshotOut)); ext {
	case ".svg":
		f, err := newField(cfg, fc, export.NewSurface, q, clock)
		if err != nil {
			return err
		}
		defer f.Destroy()
		f.SetPointer(ptr)
		for i := 0; i < snapshotFrames; i++ {
			q.RunFrame()
		}
		svg := f.Surface().(*export.SVG)
		write = func(out *os.File) error {
			_, err := svg.WriteTo(out)
			return err
		}
	case ".png":
		sink := raster.NewSink(0)
		fc.Host = sink
		f, err := newField(cfg, fc, raster.NewSurface, q, clock)
		if err != nil {
			return err
		}
		defer f.Destroy()
		f.SetPointer(ptr)
		for i := 0; i < snapshotFrames; i++ {
			q.RunFrame()
		}
		write = func(out *os.File) error { return sink.EncodePNG(out) }
	default:
		return fmt.Errorf("unsupported snapshot format %q (want .png or .svg)", ext)
	}

	out, err := os.Create(snapshotOut)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", snapshotOut)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, false)
	if err != nil {
		return err
	}
	ptr, err := parsePointer(pointerAt)
	if err != nil {
		return err
	}
	if runs > 1 {
		return runEnsemble(cfg, ptr)
	}

	q := &anim.FrameQueue{}
	f, err := newField(cfg, cfg.FieldConfig(), raster.NewSurface, q, nil)
	if err != nil {
		return err
	}
	defer f.Destroy()
	f.SetPointer(ptr)

	set := metrics.Default()
	var lines, frameMs []float64
	var observe func()
	observe = func() {
		stats := f.Stats()
		set.Observe(metrics.NewFrame(f.LastElapsed(), stats, f.Particles()))
		lines = append(lines, float64(stats.Lines))
		frameMs = append(frameMs, f.LastElapsed())
		q.RequestFrame(observe)
	}
	q.RequestFrame(observe)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(duration*float64(time.Second)))
	defer cancel()

	limiter := anim.NewFrameLimiter(0)
	if cmd.Flags().Changed("fps") {
		limiter = anim.NewFrameLimiter(cfg.Render.FPS)
	}

	fmt.Printf("benchmarking %d particles for %.1fs...\n", cfg.Field.Count, duration)
	start := time.Now()
	err = anim.Pump(ctx, q, limiter)
	elapsed := time.Since(start)
	if err != nil && ctx.Err() == nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	n := f.Frames()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "frames:\t%d\n", n)
	fmt.Fprintf(w, "wall time:\t%v\n", elapsed.Round(time.Millisecond))
	if n > 0 {
		fmt.Fprintf(w, "time/frame:\t%v\n", elapsed/time.Duration(n))
	}
	values := set.Values()
	for _, name := range set.Names() {
		fmt.Fprintf(w, "%s:\t%.3f\n", name, values[name])
	}
	// the first frame also spans field setup
	if len(frameMs) > 1 {
		j := metrics.FrameJitter(frameMs[1:])
		fmt.Fprintf(w, "frame time:\t%.3f ms +/- %.3f\n", j.MeanMs, j.StdDevMs)
		if j.Period > 0 {
			fmt.Fprintf(w, "jitter:\t%.3f ms every %.1f frames\n", j.Amplitude, j.Period)
		}
	}
	w.Flush()

	if len(lines) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(downsample(lines, 60), asciigraph.Height(8), asciigraph.Caption("lines per frame")))
	}
	return nil
}

// runEnsemble advances runs fields in parallel on fixed-step clocks and
// prints one row per seed.
func runEnsemble(cfg *config.Config, ptr pointer.State) error {
	e := ensemble.New(cfg.FieldConfig(), cfg.MotionModel(), raster.NewSurface, runs, cfg.Seed)
	if cfg.Render.FPS > 0 {
		e.Step = anim.FrameStep(cfg.Render.FPS)
	}
	e.Pointer = ptr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d fields x %d frames...\n", runs, benchFrame)
	start := time.Now()
	results, err := e.Run(ctx, benchFrame)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	set := metrics.Default()
	names := set.Names()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "seed\tframes\t%s\n", strings.Join(names, "\t"))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d", r.Seed, r.Frames)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.3f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	total := uint64(0)
	for _, r := range results {
		total += r.Frames
	}
	if total > 0 {
		fmt.Printf("\n%d frames in %v (%v/frame)\n", total, elapsed.Round(time.Millisecond), elapsed/time.Duration(total))
	}
	return nil
}

// downsample keeps at most n evenly spaced samples.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	step := float64(len(data)) / float64(n)
	for i := range out {
		out[i] = data[int(float64(i)*step)]
	}
	return out
}

// Package ensemble runs independent headless fields side by side, one per
// seed, and collects their frame metrics.
package ensemble

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/metrics"
	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/pointer"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Seed    int64
	Frames  uint64
	Metrics map[string]float64
}

// Ensemble runs numRuns fields seeded seedStart, seedStart+1, ... Each
// field owns its queue and fixed-step clock; at most Workers run at once.
type Ensemble struct {
	cfg        field.Config
	motion     particle.Motion
	newSurface field.SurfaceFactory
	numRuns    int
	seedStart  int64

	Step    time.Duration
	Pointer pointer.State
	Workers int
}

func New(cfg field.Config, motion particle.Motion, newSurface field.SurfaceFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		cfg:        cfg,
		motion:     motion,
		newSurface: newSurface,
		numRuns:    numRuns,
		seedStart:  seedStart,
		Step:       anim.FrameStep(60),
		Workers:    runtime.NumCPU(),
	}
}

// Run advances every field by frames frames. Results are ordered by seed.
func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("ensemble: runs must be positive, got %d", e.numRuns)
	}
	cfg := e.cfg
	cfg.Host = nil

	results := make([]*Result, e.numRuns)

	g, groupCtx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			r, err := e.runOne(groupCtx, cfg, e.seedStart+int64(idx), frames)
			if err != nil {
				return fmt.Errorf("seed %d: %w", e.seedStart+int64(idx), err)
			}
			results[idx] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, cfg field.Config, seed int64, frames int) (*Result, error) {
	q := &anim.FrameQueue{}
	f, err := field.New(cfg, e.newSurface,
		field.WithMotion(e.motion),
		field.WithScheduler(q),
		field.WithClock(anim.NewStepClock(time.Unix(0, 0), e.Step)),
		field.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	defer f.Destroy()
	f.SetPointer(e.Pointer)

	set := metrics.Default()
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q.RunFrame()
		set.Observe(metrics.NewFrame(f.LastElapsed(), f.Stats(), f.Particles()))
	}

	return &Result{Seed: seed, Frames: f.Frames(), Metrics: set.Values()}, nil
}

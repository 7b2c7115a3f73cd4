// Package metrics aggregates per-frame statistics of a running field.
package metrics

import (
	"sort"

	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/render"
)

// Frame is what a metric sees of one rendered frame.
type Frame struct {
	ElapsedMs float64
	Lines     int
	Markers   int
	MeanSpeed float64
}

func NewFrame(elapsedMs float64, stats render.FrameStats, ps []particle.Particle) Frame {
	f := Frame{ElapsedMs: elapsedMs, Lines: stats.Lines, Markers: stats.Markers}
	if len(ps) > 0 {
		total := 0.0
		for _, p := range ps {
			total += p.Speed
		}
		f.MeanSpeed = total / float64(len(ps))
	}
	return f
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Set fans observations out to several metrics.
type Set []Metric

// Default is the metric set reported by the CLI.
func Default() Set {
	return Set{NewFrameRate(), NewLineDensity(), NewMeanSpeed()}
}

func (s Set) Observe(f Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, m := range s {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

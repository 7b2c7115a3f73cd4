// Package render draws a particle field onto a Surface.
//
// Every frame is rebuilt from scratch: the surface is cleared, each pair of
// particles closer than MaxLine (and farther than Size) is joined by a line
// whose alpha fades with distance, and every particle gets a filled marker.
// Pair evaluation is O(n^2) and dominates frame cost.
package render

import (
	"github.com/san-kum/constellate/internal/geom"
	"github.com/san-kum/constellate/internal/particle"
)

type FrameStats struct {
	Lines   int
	Markers int
}

type Renderer struct {
	Color     Color
	Size      float64
	MaxLine   float64
	LineWidth float64
}

func (r Renderer) Render(s Surface, ps []particle.Particle) FrameStats {
	var stats FrameStats
	w, h := s.Size()
	s.ClearRect(0, 0, float64(w), float64(h))
	s.SetFillColor(r.Color)

	for i := range ps {
		p := ps[i].Pos()
		for j := i + 1; j < len(ps); j++ {
			q := ps[j].Pos()
			d := geom.Distance(p, q)
			if d <= r.Size || d >= r.MaxLine {
				continue
			}
			s.BeginPath()
			s.SetStrokeColor(r.Color.WithAlpha(LineAlpha(d, r.MaxLine)))
			s.SetLineWidth(r.LineWidth)
			s.MoveTo(p.X, p.Y)
			s.LineTo(q.X, q.Y)
			s.Stroke()
			stats.Lines++
		}

		s.BeginPath()
		s.Arc(p.X, p.Y, r.Size)
		s.Fill()
		stats.Markers++
	}
	return stats
}

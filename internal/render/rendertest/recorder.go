// Package rendertest provides a Surface that records draw calls.
package rendertest

import "github.com/san-kum/constellate/internal/render"

type Stroke struct {
	Line  render.Line
	Color render.Color
	Width float64
}

type Marker struct {
	Circle render.Circle
	Color  render.Color
}

// Recorder is a render.Surface that keeps the strokes and fills of the
// frame drawn since the last full clear.
type Recorder struct {
	render.Path
	W, H    int
	Clears  int
	Strokes []Stroke
	Markers []Marker

	fill   render.Color
	stroke render.Color
	width  float64
}

func New(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Clears++
	if x <= 0 && y <= 0 && w >= float64(r.W) && h >= float64(r.H) {
		r.Strokes = r.Strokes[:0]
		r.Markers = r.Markers[:0]
	}
}

func (r *Recorder) SetFillColor(c render.Color)   { r.fill = c }
func (r *Recorder) SetStrokeColor(c render.Color) { r.stroke = c }
func (r *Recorder) SetLineWidth(w float64)        { r.width = w }

func (r *Recorder) Stroke() {
	for _, l := range r.Lines {
		r.Strokes = append(r.Strokes, Stroke{Line: l, Color: r.stroke, Width: r.width})
	}
}

func (r *Recorder) Fill() {
	for _, c := range r.Circles {
		r.Markers = append(r.Markers, Marker{Circle: c, Color: r.fill})
	}
}

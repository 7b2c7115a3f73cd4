package render

import (
	"image"
	"math"
)

// Surface is a 2D raster drawing target with a canvas-style path API.
// Coordinates are surface pixels with y growing downward.
type Surface interface {
	Size() (width, height int)
	ClearRect(x, y, w, h float64)
	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a full circle of radius r centered on (x, y).
	Arc(x, y, r float64)
	Stroke()
	Fill()
}

type Line struct {
	X0, Y0, X1, Y1 float64
}

type Circle struct {
	X, Y, R float64
}

// Path accumulates the current path for surfaces backed by immediate-mode
// drawing APIs. Embed it and flush Lines on Stroke and Circles on Fill.
type Path struct {
	Lines   []Line
	Circles []Circle
	penX    float64
	penY    float64
	hasPen  bool
}

func (p *Path) BeginPath() {
	p.Lines = p.Lines[:0]
	p.Circles = p.Circles[:0]
	p.hasPen = false
}

func (p *Path) MoveTo(x, y float64) {
	p.penX, p.penY, p.hasPen = x, y, true
}

func (p *Path) LineTo(x, y float64) {
	if p.hasPen {
		p.Lines = append(p.Lines, Line{X0: p.penX, Y0: p.penY, X1: x, Y1: y})
	}
	p.penX, p.penY, p.hasPen = x, y, true
}

func (p *Path) Arc(x, y, r float64) {
	p.Circles = append(p.Circles, Circle{X: x, Y: y, R: r})
}

// ClearArea is the pixel rectangle a ClearRect(x, y, w, h) call covers on a
// width x height surface. full reports that the whole surface is covered.
func ClearArea(x, y, w, h float64, width, height int) (r image.Rectangle, full bool) {
	bounds := image.Rect(0, 0, width, height)
	r = image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(bounds)
	return r, !bounds.Empty() && r == bounds
}

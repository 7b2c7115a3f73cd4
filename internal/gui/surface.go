package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/render"
)

type opKind int

const (
	opClear opKind = iota
	opErase
	opLine
	opCircle
)

type op struct {
	kind   opKind
	x0, y0 float32
	x1, y1 float32
	r      float32
	color  rl.Color
}

// Surface records draw calls as a display list. Raylib can only draw
// between Begin/End pairs on the window thread, so the App replays the
// list into its render texture once per frame.
type Surface struct {
	render.Path
	pointer.Hub

	width, height int
	fill          rl.Color
	stroke        rl.Color
	lineWidth     float32
	ops           []op
}

func NewSurface(w, h int) (render.Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("gui: surface must be positive, got %dx%d", w, h)
	}
	return &Surface{width: w, height: h, lineWidth: 1}, nil
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) ClearRect(x, y, w, h float64) {
	r, full := render.ClearArea(x, y, w, h, s.width, s.height)
	switch {
	case full:
		s.ops = append(s.ops[:0], op{kind: opClear})
	case !r.Empty():
		s.ops = append(s.ops, op{
			kind: opErase,
			x0:   float32(r.Min.X), y0: float32(r.Min.Y),
			x1: float32(r.Dx()), y1: float32(r.Dy()),
		})
	}
}

func (s *Surface) SetFillColor(c render.Color)   { s.fill = toRaylib(c) }
func (s *Surface) SetStrokeColor(c render.Color) { s.stroke = toRaylib(c) }
func (s *Surface) SetLineWidth(w float64)        { s.lineWidth = float32(w) }

func (s *Surface) Stroke() {
	for _, l := range s.Lines {
		s.ops = append(s.ops, op{
			kind: opLine,
			x0:   float32(l.X0), y0: float32(l.Y0),
			x1: float32(l.X1), y1: float32(l.Y1),
			r:     s.lineWidth,
			color: s.stroke,
		})
	}
}

func (s *Surface) Fill() {
	for _, c := range s.Circles {
		s.ops = append(s.ops, op{kind: opCircle, x0: float32(c.X), y0: float32(c.Y), r: float32(c.R), color: s.fill})
	}
}

// flush replays and drops the pending display list. Call inside
// BeginTextureMode.
func (s *Surface) flush() {
	for _, o := range s.ops {
		switch o.kind {
		case opClear:
			rl.ClearBackground(rl.Blank)
		case opErase:
			// drawing Blank blends over and erases nothing; clear under a scissor
			rl.BeginScissorMode(int32(o.x0), int32(o.y0), int32(o.x1), int32(o.y1))
			rl.ClearBackground(rl.Blank)
			rl.EndScissorMode()
		case opLine:
			rl.DrawLineEx(rl.NewVector2(o.x0, o.y0), rl.NewVector2(o.x1, o.y1), o.r, o.color)
		case opCircle:
			rl.DrawCircleV(rl.NewVector2(o.x0, o.y0), o.r, o.color)
		}
	}
	s.ops = s.ops[:0]
}

func toRaylib(c render.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/render"
)

// MinLineAlpha hides faint lines; Braille dots have no opacity.
const MinLineAlpha = 0x40

// Surface adapts a Braille canvas to render.Surface. Field coordinates are
// scaled onto the canvas sub-pixel grid.
type Surface struct {
	render.Path
	pointer.Hub
	Canvas *Canvas

	width, height  int
	scaleX, scaleY float64
	stroke         render.Color
	fill           render.Color
}

func NewSurface(width, height int, canvas *Canvas) *Surface {
	return &Surface{
		Canvas: canvas,
		width:  width,
		height: height,
		scaleX: float64(canvas.Width*2) / float64(width),
		scaleY: float64(canvas.Height*4) / float64(height),
	}
}

// Factory returns a field.SurfaceFactory drawing onto a cols x rows
// terminal canvas.
func Factory(cols, rows int) func(int, int) (render.Surface, error) {
	return func(w, h int) (render.Surface, error) {
		if cols <= 0 || rows <= 0 {
			return nil, fmt.Errorf("viz: canvas must be positive, got %dx%d cells", cols, rows)
		}
		return NewSurface(w, h, NewCanvas(cols, rows)), nil
	}
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= float64(s.width) && h >= float64(s.height) {
		s.Canvas.Clear()
		return
	}
	x0, y0 := s.project(x, y)
	x1, y1 := s.project(x+w, y+h)
	s.Canvas.ClearRect(x0, y0, x1, y1)
}

func (s *Surface) SetFillColor(c render.Color)   { s.fill = c }
func (s *Surface) SetStrokeColor(c render.Color) { s.stroke = c }
func (s *Surface) SetLineWidth(float64)          {}

func (s *Surface) Stroke() {
	if s.stroke.A < MinLineAlpha {
		return
	}
	for _, l := range s.Lines {
		x0, y0 := s.project(l.X0, l.Y0)
		x1, y1 := s.project(l.X1, l.Y1)
		s.Canvas.DrawLine(x0, y0, x1, y1)
	}
}

func (s *Surface) Fill() {
	for _, c := range s.Circles {
		x, y := s.project(c.X, c.Y)
		r := int(math.Round(c.R * math.Min(s.scaleX, s.scaleY)))
		s.Canvas.FillDisk(x, y, r)
	}
}

func (s *Surface) project(x, y float64) (int, int) {
	return int(x * s.scaleX), int(y * s.scaleY)
}

// FieldPos maps a canvas cell to the field coordinates of its center.
func (s *Surface) FieldPos(col, row int) (float64, float64) {
	return (float64(col*2) + 1) / s.scaleX, (float64(row*4) + 2) / s.scaleY
}

// Screen is the terminal host; it holds the surface the program displays.
type Screen struct {
	surface *Surface
}

func (sc *Screen) Attach(s render.Surface) error {
	ts, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("terminal screen cannot hold %T", s)
	}
	sc.surface = ts
	return nil
}

func (sc *Screen) Surface() *Surface { return sc.surface }

// Package window hosts a field in a desktop window driven by Ebiten.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/render"
)

// Background fills the window behind the field surface.
var Background = color.RGBA{0x0a, 0x0a, 0x0a, 0xff}

// Surface draws onto an offscreen Ebiten image.
type Surface struct {
	render.Path
	pointer.Hub

	img       *ebiten.Image
	fill      render.Color
	stroke    render.Color
	lineWidth float64
}

func NewSurface(w, h int) (render.Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("window: surface must be positive, got %dx%d", w, h)
	}
	return &Surface{img: ebiten.NewImage(w, h), lineWidth: 1}, nil
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	sw, sh := s.Size()
	r, full := render.ClearArea(x, y, w, h, sw, sh)
	switch {
	case full:
		s.img.Clear()
	case !r.Empty():
		s.img.SubImage(r).(*ebiten.Image).Clear()
	}
}

func (s *Surface) SetFillColor(c render.Color)   { s.fill = c }
func (s *Surface) SetStrokeColor(c render.Color) { s.stroke = c }
func (s *Surface) SetLineWidth(w float64)        { s.lineWidth = w }

func (s *Surface) Stroke() {
	for _, l := range s.Lines {
		vector.StrokeLine(s.img, float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1), float32(s.lineWidth), s.stroke, true)
	}
}

func (s *Surface) Fill() {
	for _, c := range s.Circles {
		vector.DrawFilledCircle(s.img, float32(c.X), float32(c.Y), float32(c.R), s.fill, true)
	}
}

func (s *Surface) Image() *ebiten.Image { return s.img }

// Game is the Ebiten host. Each Update publishes the cursor to the surface
// and runs one queued frame.
type Game struct {
	queue   *anim.FrameQueue
	surface *Surface
	onClose func()
}

func NewGame(q *anim.FrameQueue) *Game {
	return &Game{queue: q}
}

// OnClose registers fn to run when the window is closed.
func (g *Game) OnClose(fn func()) { g.onClose = fn }

func (g *Game) Attach(s render.Surface) error {
	ws, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("ebiten window cannot hold %T", s)
	}
	g.surface = ws
	return nil
}

func (g *Game) Update() error {
	if g.surface == nil {
		return fmt.Errorf("window: no surface attached")
	}
	if ebiten.IsWindowBeingClosed() {
		if g.onClose != nil {
			g.onClose()
		}
		return ebiten.Termination
	}
	w, h := g.surface.Size()
	cx, cy := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && onSurface(cx, cy, w, h)
	g.surface.Track(float64(cx), float64(cy), inside)
	g.queue.RunFrame()
	return nil
}

// onSurface reports whether pixel (x, y) lies on a w x h surface.
func onSurface(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(Background)
	if g.surface != nil {
		screen.DrawImage(g.surface.img, nil)
	}
}

func (g *Game) Layout(int, int) (int, int) {
	if g.surface == nil {
		return 1, 1
	}
	return g.surface.Size()
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, tps int) error {
	if g.surface == nil {
		return fmt.Errorf("window: no surface attached")
	}
	w, h := g.surface.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	return ebiten.RunGame(g)
}

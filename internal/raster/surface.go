// Package raster renders a field into an in-memory RGBA image using the
// software backend of tfriedel6/canvas, for snapshots and recordings.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/render"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// Surface is a render.Surface over an HTML5-style canvas. Pointer events
// can be injected through the embedded Hub.
type Surface struct {
	pointer.Hub
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
}

// NewSurface matches field.SurfaceFactory.
func NewSurface(width, height int) (render.Surface, error) {
	return New(width, height), nil
}

func New(width, height int) *Surface {
	backend := softwarebackend.New(width, height)
	return &Surface{backend: backend, cv: canvas.New(backend)}
}

func (s *Surface) Size() (int, int) { return s.cv.Width(), s.cv.Height() }

func (s *Surface) ClearRect(x, y, w, h float64) { s.cv.ClearRect(x, y, w, h) }

func (s *Surface) SetFillColor(c render.Color)   { s.cv.SetFillStyle(c.String()) }
func (s *Surface) SetStrokeColor(c render.Color) { s.cv.SetStrokeStyle(c.String()) }
func (s *Surface) SetLineWidth(w float64)        { s.cv.SetLineWidth(w) }

func (s *Surface) BeginPath()          { s.cv.BeginPath() }
func (s *Surface) MoveTo(x, y float64) { s.cv.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64) { s.cv.LineTo(x, y) }

func (s *Surface) Arc(x, y, r float64) {
	s.cv.MoveTo(x+r, y)
	s.cv.Arc(x, y, r, 0, 2*math.Pi, false)
}

func (s *Surface) Stroke() { s.cv.Stroke() }
func (s *Surface) Fill()   { s.cv.Fill() }

// Image is the live backing image; it changes on every frame.
func (s *Surface) Image() *image.RGBA { return s.backend.Image }

// Flatten composites the current frame over an opaque background.
func (s *Surface) Flatten(bg color.Color) *image.RGBA {
	src := s.backend.Image
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return dst
}

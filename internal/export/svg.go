package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/constellate/internal/render"
)

// SVG is a render.Surface that serializes each frame as SVG elements.
// Only the most recent frame is kept; a full clear starts a new one.
type SVG struct {
	render.Path
	width, height int
	background    string

	body      strings.Builder
	fill      render.Color
	stroke    render.Color
	lineWidth float64
}

// NewSurface matches field.SurfaceFactory.
func NewSurface(width, height int) (render.Surface, error) {
	return NewSVG(width, height, "#0a0a0a"), nil
}

// NewSVG creates an SVG surface. An empty background leaves it transparent.
func NewSVG(width, height int, background string) *SVG {
	return &SVG{width: width, height: height, background: background, lineWidth: 1}
}

func (s *SVG) Size() (int, int) { return s.width, s.height }

func (s *SVG) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= float64(s.width) && h >= float64(s.height) {
		s.body.Reset()
		return
	}
	if s.background != "" {
		s.body.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, w, h, s.background))
	}
}

func (s *SVG) SetFillColor(c render.Color)   { s.fill = c }
func (s *SVG) SetStrokeColor(c render.Color) { s.stroke = c }
func (s *SVG) SetLineWidth(w float64)        { s.lineWidth = w }

func (s *SVG) Stroke() {
	for _, l := range s.Lines {
		s.body.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>
`, l.X0, l.Y0, l.X1, l.Y1, s.stroke.Hex(), float64(s.stroke.A)/255, s.lineWidth))
	}
}

func (s *SVG) Fill() {
	for _, c := range s.Circles {
		s.body.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, c.X, c.Y, c.R, s.fill.Hex()))
	}
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height))
	if s.background != "" {
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, s.background))
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("render: invalid color")

// Color is a non-premultiplied RGBA color. It satisfies color.Color.
type Color struct {
	R, G, B, A uint8
}

// ParseColor accepts "#rgb" and "#rrggbb". The result is opaque.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	// colorful.Hex ignores trailing input and reads "#rrggb" as three fields
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 0xff}, nil
}

func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex formats the color without alpha, "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String formats the color with its alpha channel appended, "#rrggbbaa".
func (c Color) String() string {
	return c.Hex() + fmt.Sprintf("%02x", c.A)
}

func (c Color) RGBA() (r, g, b, a uint32) {
	r, g, b, a = uint32(c.R), uint32(c.G), uint32(c.B), uint32(c.A)
	r |= r << 8
	r = r * a / 0xff
	g |= g << 8
	g = g * a / 0xff
	b |= b << 8
	b = b * a / 0xff
	a |= a << 8
	return
}

// LineAlpha is the stroke opacity for a line of length d: opaque near zero,
// transparent at maxLine.
func LineAlpha(d, maxLine float64) uint8 {
	f := 1 - d/maxLine
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= 1 {
		return 0xff
	}
	return uint8(math.Round(f * 0xff))
}

// AlphaHex is LineAlpha as two lower-case hex digits.
func AlphaHex(d, maxLine float64) string {
	return fmt.Sprintf("%02x", LineAlpha(d, maxLine))
}

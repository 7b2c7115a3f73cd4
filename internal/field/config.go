package field

import (
	"fmt"

	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/render"
)

// Host accepts a drawing surface as a visible child.
type Host interface {
	Attach(s render.Surface) error
}

// SurfaceFactory allocates a drawing surface of the given pixel size.
type SurfaceFactory func(width, height int) (render.Surface, error)

type Config struct {
	Width     int
	Height    int
	Count     int
	Size      float64
	Color     string
	MaxLine   float64
	LineWidth float64

	// Host is optional; a field can be mounted later.
	Host Host
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: surface must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	case c.Size < 0:
		return fmt.Errorf("%w: size must not be negative, got %v", ErrInvalidConfig, c.Size)
	case c.MaxLine <= c.Size:
		return fmt.Errorf("%w: max line %v must exceed size %v", ErrInvalidConfig, c.MaxLine, c.Size)
	case c.LineWidth <= 0:
		return fmt.Errorf("%w: line width must be positive, got %v", ErrInvalidConfig, c.LineWidth)
	}
	if _, err := render.ParseColor(c.Color); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func validateMotion(m particle.Motion) error {
	if m.BaseSpeed < 0 || m.AttractRadius < 0 || m.SpeedScale < 0 {
		return fmt.Errorf("%w: motion parameters must not be negative: %+v", ErrInvalidConfig, m)
	}
	return nil
}

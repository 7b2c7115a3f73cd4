package geom

import (
	"fmt"
	"math"
	"math/rand"
)

type Point struct {
	X, Y float64
}

// Axis selects the mirror line for ReflectAngle.
type Axis int

const (
	// AxisX mirrors across the horizontal axis (vertical bounce).
	AxisX Axis = iota
	// AxisY mirrors across the vertical axis (horizontal bounce).
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

const (
	radToDeg = 180 / math.Pi
	degToRad = math.Pi / 180
)

// Radians converts a heading in degrees to radians.
func Radians(deg float64) float64 { return deg * degToRad }

// Sampler draws uniform values from a seeded source. Not safe for
// concurrent use.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns a value in [lo, hi].
func (s *Sampler) Uniform(lo, hi float64) (float64, error) {
	if !isFinite(lo) || !isFinite(hi) {
		return 0, fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidRange, lo, hi)
	}
	if lo >= hi {
		return 0, fmt.Errorf("%w: lo must be less than hi, got [%v, %v]", ErrInvalidRange, lo, hi)
	}
	return lo + s.rng.Float64()*(hi-lo), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AngleTo returns the heading of the vector from origin to target. ok is
// false when the two points coincide; there is no direction to report.
func AngleTo(origin, target Point) (angle float64, ok bool) {
	dx := target.X - origin.X
	// y grows downward on the surface, headings grow upward
	dy := origin.Y - target.Y

	if dx == 0 {
		switch {
		case dy > 0:
			return 90, true
		case dy < 0:
			return -90, true
		default:
			return 0, false
		}
	}

	angle = math.Atan(dy/dx) * radToDeg
	if dx < 0 {
		if dy >= 0 {
			angle += 180
		} else {
			angle -= 180
		}
	}
	return angle, true
}

// ReflectAngle mirrors a heading. AxisX negates it. AxisY maps [0, 180) to
// 180-a and [-180, 0) to -180-a; anything else is returned unchanged.
func ReflectAngle(angle float64, axis Axis) float64 {
	switch axis {
	case AxisX:
		return -angle
	case AxisY:
		switch {
		case angle >= 0 && angle < 180:
			return 180 - angle
		case angle >= -180 && angle < 0:
			return -180 - angle
		}
	}
	return angle
}

// NormalizeAngle folds any finite angle into (-180, 180].
func NormalizeAngle(angle float64) float64 {
	if !isFinite(angle) {
		return 0
	}
	a := math.Mod(angle, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

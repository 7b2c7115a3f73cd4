// Package particle holds particle state and the per-frame motion model.
package particle

import (
	"math"

	"github.com/san-kum/constellate/internal/geom"
	"github.com/san-kum/constellate/internal/pointer"
)

const (
	DefaultBaseSpeed     = 50.0  // px/s
	DefaultAttractRadius = 200.0 // surface units
	DefaultSpeedScale    = 0.5   // px/s gained per unit of pointer distance
)

// Particle is a point on the surface moving at Speed px/s along Angle
// degrees.
type Particle struct {
	X, Y  float64
	Speed float64
	Angle float64
}

func (p Particle) Pos() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

type Bounds struct {
	Width, Height float64
}

// Motion advances particles. The pointer pulls particles within
// AttractRadius toward it; everything else coasts at BaseSpeed.
type Motion struct {
	BaseSpeed     float64
	AttractRadius float64
	SpeedScale    float64
}

func DefaultMotion() Motion {
	return Motion{
		BaseSpeed:     DefaultBaseSpeed,
		AttractRadius: DefaultAttractRadius,
		SpeedScale:    DefaultSpeedScale,
	}
}

// Step moves p by elapsedMs milliseconds and bounces it off the bounds.
// After Step, 0 <= p.X <= b.Width and 0 <= p.Y <= b.Height.
func (m Motion) Step(p *Particle, elapsedMs float64, ptr pointer.State, b Bounds) {
	if ptr.Present {
		d := geom.Distance(p.Pos(), ptr.Point())
		if d < m.AttractRadius {
			if angle, ok := geom.AngleTo(p.Pos(), ptr.Point()); ok {
				p.Angle = angle
				p.Speed = d*m.SpeedScale + m.BaseSpeed
			}
		}
	} else {
		p.Speed = m.BaseSpeed
	}
	if p.Speed < 0 {
		p.Speed = 0
	}

	if elapsedMs > 0 && !math.IsInf(elapsedMs, 0) {
		r := p.Speed * elapsedMs / 1000
		sin, cos := math.Sincos(geom.Radians(p.Angle))
		p.X += r * cos
		p.Y -= r * sin
	}

	p.X = bounce(p.X, b.Width, &p.Angle, geom.AxisY)
	p.Y = bounce(p.Y, b.Height, &p.Angle, geom.AxisX)
	p.Angle = geom.NormalizeAngle(p.Angle)
}

func bounce(v, limit float64, angle *float64, axis geom.Axis) float64 {
	switch {
	case v > limit:
		v = limit
	case v < 0:
		v = -v
		if v > limit {
			v = limit
		}
	default:
		return v
	}
	// headings are stored in (-180, 180]; a due-west 180 must still flip
	// when it hits the left wall
	if axis == geom.AxisY && *angle == 180 {
		*angle = -180
	}
	*angle = geom.ReflectAngle(*angle, axis)
	return v
}

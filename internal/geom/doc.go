// Package geom provides the plane geometry used by the particle field.
//
// Angles are in degrees. A heading of 0 points along +x and positive
// headings rotate toward screen-up (-y), so the usual math convention holds
// on a y-down raster:
//
//	AngleTo(Point{0, 0}, Point{0, -1}) // 90
//	ReflectAngle(45, AxisY)            // 135
//
// Random sampling goes through a [Sampler] so every field can own a seeded,
// reproducible source.
package geom

// Package field is the public facade of the particle constellation.
//
// A [Field] owns its particles, pointer state and animation driver:
//
//	f, err := field.New(cfg, raster.NewSurface, field.WithScheduler(queue))
//	if err != nil { ... }
//	defer f.Destroy()
//	f.Mount(host)
//
// Each frame the driver advances every particle through the motion model
// using the latest pointer state, then redraws the whole frame.
//
// # Thread Safety
//
// Particle state is not guarded. Host callbacks and frame ticks must run on
// the host's frame goroutine. Pointer events, the pointer accessors and
// Destroy are safe from any goroutine; the loop observes Destroy on its
// next tick and skips any frame still queued.
package field

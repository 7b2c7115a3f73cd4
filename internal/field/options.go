package field

import (
	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/particle"
	"go.uber.org/zap"
)

type Option func(*Field)

func WithMotion(m particle.Motion) Option {
	return func(f *Field) { f.motion = m }
}

// WithScheduler sets the next-frame scheduler. Without it the field owns a
// FrameQueue, reachable through Scheduler.
func WithScheduler(s anim.Scheduler) Option {
	return func(f *Field) { f.sched = s }
}

func WithClock(c anim.Clock) Option {
	return func(f *Field) { f.clock = c }
}

func WithSeed(seed int64) Option {
	return func(f *Field) { f.seed = seed }
}

// WithParticles replaces random seeding with explicit particles. The slice
// length must equal Config.Count.
func WithParticles(ps []particle.Particle) Option {
	return func(f *Field) {
		f.preset = make([]particle.Particle, len(ps))
		copy(f.preset, ps)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

package field

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/geom"
	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/render"
	"go.uber.org/zap"
)

// speedJitter spreads initial speeds around the base speed.
const speedJitter = 0.1

type Field struct {
	cfg      Config
	motion   particle.Motion
	renderer render.Renderer
	bounds   particle.Bounds

	surface   render.Surface
	particles []particle.Particle
	preset    []particle.Particle
	stats     render.FrameStats
	elapsed   float64

	sched  anim.Scheduler
	clock  anim.Clock
	driver *anim.Driver
	seed   int64

	host      Host
	destroyed atomic.Bool
	log       *zap.Logger

	// mu guards the pointer state and the observer subscription, the only
	// state Destroy touches besides the flags.
	mu            sync.Mutex
	ptr           pointer.State
	stopObserving func()
}

func New(cfg Config, newSurface SurfaceFactory, opts ...Option) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Host != nil && isNil(cfg.Host) {
		return nil, fmt.Errorf("%w: %T is nil", ErrInvalidHost, cfg.Host)
	}

	f := &Field{
		cfg:    cfg,
		motion: particle.DefaultMotion(),
		bounds: particle.Bounds{Width: float64(cfg.Width), Height: float64(cfg.Height)},
		seed:   1,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := validateMotion(f.motion); err != nil {
		return nil, err
	}
	if f.preset != nil && len(f.preset) != cfg.Count {
		return nil, fmt.Errorf("%w: %d particles supplied for count %d", ErrInvalidConfig, len(f.preset), cfg.Count)
	}
	if f.sched == nil {
		f.sched = &anim.FrameQueue{}
	}

	color, _ := render.ParseColor(cfg.Color)
	f.renderer = render.Renderer{
		Color:     color,
		Size:      cfg.Size,
		MaxLine:   cfg.MaxLine,
		LineWidth: cfg.LineWidth,
	}

	surface, err := newSurface(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("allocate surface: %w", err)
	}
	f.surface = surface

	if cfg.Host != nil {
		if err := f.Mount(cfg.Host); err != nil {
			return nil, err
		}
	}

	if err := f.Reseed(f.seed); err != nil {
		return nil, err
	}
	f.draw()

	if src, ok := surface.(pointer.Source); ok {
		stop := src.Subscribe(f.handlePointer)
		f.mu.Lock()
		f.stopObserving = stop
		f.mu.Unlock()
	}

	f.driver = anim.NewDriver(f, f.sched, f.clock)
	f.driver.Start()

	f.log.Debug("field created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("count", cfg.Count),
		zap.Int64("seed", f.seed))
	return f, nil
}

// Reseed scatters the particles again from seed. Explicit particles given
// with WithParticles are restored instead.
func (f *Field) Reseed(seed int64) error {
	f.seed = seed
	if f.preset != nil {
		f.particles = append(f.particles[:0], f.preset...)
		return nil
	}

	s := geom.NewSampler(seed)
	ps := make([]particle.Particle, f.cfg.Count)
	for i := range ps {
		x, err := s.Uniform(0, f.bounds.Width)
		if err != nil {
			return err
		}
		y, err := s.Uniform(0, f.bounds.Height)
		if err != nil {
			return err
		}
		angle, err := s.Uniform(-180, 180)
		if err != nil {
			return err
		}
		jitter, err := s.Uniform(1-speedJitter, 1+speedJitter)
		if err != nil {
			return err
		}
		ps[i] = particle.Particle{X: x, Y: y, Angle: geom.NormalizeAngle(angle), Speed: f.motion.BaseSpeed * jitter}
	}
	f.particles = ps
	return nil
}

// Mount attaches the surface to host. It does nothing when the field is
// already mounted or destroyed.
func (f *Field) Mount(host Host) error {
	if f.destroyed.Load() || f.host != nil {
		return nil
	}
	if host == nil || isNil(host) {
		return fmt.Errorf("%w: %T", ErrInvalidHost, host)
	}
	if err := host.Attach(f.surface); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHost, err)
	}
	f.host = host
	f.log.Debug("field mounted", zap.String("host", fmt.Sprintf("%T", host)))
	return nil
}

// Destroy detaches pointer observers and stops the frame loop. It is safe
// to call from any goroutine.
func (f *Field) Destroy() {
	if f.destroyed.Swap(true) {
		return
	}
	f.driver.Stop()

	f.mu.Lock()
	stop := f.stopObserving
	f.stopObserving = nil
	f.ptr = pointer.State{}
	f.mu.Unlock()

	if stop != nil {
		stop()
	}
	f.log.Debug("field destroyed", zap.Uint64("frames", f.driver.Frames()))
}

// Advance moves every particle by elapsedMs and redraws the frame.
func (f *Field) Advance(elapsedMs float64) {
	if f.destroyed.Load() {
		return
	}
	ptr := f.Pointer()
	f.elapsed = elapsedMs
	for i := range f.particles {
		f.motion.Step(&f.particles[i], elapsedMs, ptr, f.bounds)
	}
	f.draw()
}

func (f *Field) draw() {
	f.stats = f.renderer.Render(f.surface, f.particles)
}

func (f *Field) handlePointer(ev pointer.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed.Load() {
		return
	}
	switch ev.Kind {
	case pointer.Move:
		f.ptr = pointer.At(ev.X, ev.Y)
	case pointer.Leave:
		f.ptr = pointer.State{}
	}
}

// SetPointer overrides the pointer state until the next pointer event.
func (f *Field) SetPointer(s pointer.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.destroyed.Load() {
		f.ptr = s
	}
}

func (f *Field) Pointer() pointer.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ptr
}

// Particles returns the live particle slice. Callers must not retain it
// across frames.
func (f *Field) Particles() []particle.Particle { return f.particles }

func (f *Field) Surface() render.Surface { return f.surface }

func (f *Field) Stats() render.FrameStats { return f.stats }

// LastElapsed is the frame time of the most recent Advance, in ms.
func (f *Field) LastElapsed() float64 { return f.elapsed }

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Motion() particle.Motion { return f.motion }

func (f *Field) Seed() int64 { return f.seed }

// Logger is the logger given with WithLogger, or a no-op logger.
func (f *Field) Logger() *zap.Logger { return f.log }

func (f *Field) Scheduler() anim.Scheduler { return f.sched }

func (f *Field) Frames() uint64 { return f.driver.Frames() }

func (f *Field) Running() bool { return f.driver.Running() }

// SetPaused freezes or resumes the simulation without stopping the loop.
func (f *Field) SetPaused(paused bool) {
	if paused {
		f.driver.Pause()
	} else {
		f.driver.Resume()
	}
}

func (f *Field) Paused() bool { return f.driver.Paused() }

func (f *Field) Mounted() bool { return f.host != nil }

func (f *Field) Destroyed() bool { return f.destroyed.Load() }

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

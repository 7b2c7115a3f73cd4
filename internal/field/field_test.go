package field_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/pointer"
	"github.com/san-kum/constellate/internal/render"
	"github.com/san-kum/constellate/internal/render/rendertest"
)

type testSurface struct {
	*rendertest.Recorder
	pointer.Hub
}

type testHost struct {
	attached []render.Surface
	err      error
}

func (h *testHost) Attach(s render.Surface) error {
	if h.err != nil {
		return h.err
	}
	h.attached = append(h.attached, s)
	return nil
}

func baseConfig() field.Config {
	return field.Config{
		Width:     200,
		Height:    100,
		Count:     12,
		Size:      2,
		Color:     "#efefef",
		MaxLine:   50,
		LineWidth: 1,
	}
}

var _ = Describe("Field", func() {
	var (
		surface *testSurface
		factory field.SurfaceFactory
		queue   *anim.FrameQueue
		clock   *anim.StepClock
	)

	BeforeEach(func() {
		surface = nil
		factory = func(w, h int) (render.Surface, error) {
			surface = &testSurface{Recorder: rendertest.New(w, h)}
			return surface, nil
		}
		queue = &anim.FrameQueue{}
		clock = anim.NewStepClock(time.Unix(0, 0), 20*time.Millisecond)
	})

	newField := func(cfg field.Config, opts ...field.Option) *field.Field {
		opts = append([]field.Option{field.WithScheduler(queue), field.WithClock(clock)}, opts...)
		f, err := field.New(cfg, factory, opts...)
		Expect(err).NotTo(HaveOccurred())
		return f
	}

	Describe("construction", func() {
		DescribeTable("rejects invalid configs",
			func(mutate func(*field.Config)) {
				cfg := baseConfig()
				mutate(&cfg)
				_, err := field.New(cfg, factory)
				Expect(err).To(MatchError(field.ErrInvalidConfig))
			},
			Entry("zero width", func(c *field.Config) { c.Width = 0 }),
			Entry("negative height", func(c *field.Config) { c.Height = -1 }),
			Entry("no particles", func(c *field.Config) { c.Count = 0 }),
			Entry("max line not above size", func(c *field.Config) { c.MaxLine = c.Size }),
			Entry("zero line width", func(c *field.Config) { c.LineWidth = 0 }),
			Entry("bad color", func(c *field.Config) { c.Color = "tomato" }),
		)

		It("rejects negative motion parameters", func() {
			_, err := field.New(baseConfig(), factory, field.WithMotion(particle.Motion{BaseSpeed: -1}))
			Expect(err).To(MatchError(field.ErrInvalidConfig))
		})

		It("rejects a typed nil host", func() {
			cfg := baseConfig()
			var host *testHost
			cfg.Host = host
			_, err := field.New(cfg, factory)
			Expect(err).To(MatchError(field.ErrInvalidHost))
		})

		It("surfaces allocation failures", func() {
			boom := errors.New("no surface")
			_, err := field.New(baseConfig(), func(int, int) (render.Surface, error) { return nil, boom })
			Expect(err).To(MatchError(boom))
		})

		It("seeds particles inside the surface and renders once", func() {
			f := newField(baseConfig())
			Expect(f.Particles()).To(HaveLen(12))
			for _, p := range f.Particles() {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<=", 200))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<=", 100))
				Expect(p.Speed).To(BeNumerically("~", particle.DefaultBaseSpeed, particle.DefaultBaseSpeed*0.1))
				Expect(p.Angle).To(BeNumerically(">", -180))
				Expect(p.Angle).To(BeNumerically("<=", 180))
			}
			Expect(surface.Clears).To(Equal(1))
			Expect(surface.Markers).To(HaveLen(12))
			Expect(f.Running()).To(BeTrue())
		})

		It("is reproducible per seed", func() {
			a := newField(baseConfig(), field.WithSeed(9))
			b := newField(baseConfig(), field.WithSeed(9))
			Expect(a.Particles()).To(Equal(b.Particles()))
		})

		It("attaches to a host given in the config", func() {
			host := &testHost{}
			cfg := baseConfig()
			cfg.Host = host
			f := newField(cfg)
			Expect(f.Mounted()).To(BeTrue())
			Expect(host.attached).To(HaveLen(1))
		})
	})

	Describe("rendering", func() {
		It("draws one line and two markers for a close pair", func() {
			cfg := baseConfig()
			cfg.Count, cfg.Size, cfg.MaxLine = 2, 1, 20
			f := newField(cfg, field.WithParticles([]particle.Particle{{X: 0, Y: 0}, {X: 10, Y: 0}}))

			Expect(f.Stats()).To(Equal(render.FrameStats{Lines: 1, Markers: 2}))
			Expect(surface.Strokes).To(HaveLen(1))
			Expect(surface.Markers).To(HaveLen(2))
		})

		It("rejects explicit particles that do not match the count", func() {
			_, err := field.New(baseConfig(), factory, field.WithParticles([]particle.Particle{{}}))
			Expect(err).To(MatchError(field.ErrInvalidConfig))
		})
	})

	Describe("mount", func() {
		It("only attaches to the first host", func() {
			f := newField(baseConfig())
			first, second := &testHost{}, &testHost{}

			Expect(f.Mount(first)).To(Succeed())
			Expect(f.Mount(second)).To(Succeed())

			Expect(first.attached).To(HaveLen(1))
			Expect(second.attached).To(BeEmpty())
		})

		It("is a no-op after destroy", func() {
			f := newField(baseConfig())
			f.Destroy()
			host := &testHost{}
			Expect(f.Mount(host)).To(Succeed())
			Expect(host.attached).To(BeEmpty())
			Expect(f.Mounted()).To(BeFalse())
		})

		It("rejects invalid hosts", func() {
			f := newField(baseConfig())
			var nilHost *testHost
			Expect(f.Mount(nil)).To(MatchError(field.ErrInvalidHost))
			Expect(f.Mount(nilHost)).To(MatchError(field.ErrInvalidHost))
			Expect(f.Mount(&testHost{err: errors.New("full")})).To(MatchError(field.ErrInvalidHost))
			Expect(f.Mounted()).To(BeFalse())
		})
	})

	Describe("pointer", func() {
		It("tracks move and leave events", func() {
			f := newField(baseConfig())
			surface.Publish(pointer.Event{Kind: pointer.Move, X: 30, Y: 40})
			Expect(f.Pointer()).To(Equal(pointer.At(30, 40)))

			surface.Publish(pointer.Event{Kind: pointer.Leave})
			Expect(f.Pointer().Present).To(BeFalse())
		})

		It("steers particles within the attraction radius", func() {
			cfg := baseConfig()
			cfg.Count = 1
			f := newField(cfg, field.WithParticles([]particle.Particle{{X: 100, Y: 0, Speed: 50}}))
			surface.Publish(pointer.Event{Kind: pointer.Move, X: 0, Y: 0})

			f.Advance(0)

			p := f.Particles()[0]
			m := f.Motion()
			Expect(p.Angle).To(Equal(180.0))
			Expect(p.Speed).To(Equal(100*m.SpeedScale + m.BaseSpeed))
		})
	})

	Describe("frame loop", func() {
		It("advances particles on each frame", func() {
			cfg := baseConfig()
			cfg.Count = 1
			f := newField(cfg, field.WithParticles([]particle.Particle{{X: 50, Y: 50, Speed: 50, Angle: 0}}))

			Expect(queue.RunFrame()).To(Equal(1))
			Expect(f.Particles()[0].X).To(BeNumerically("~", 51, 1e-9))
			Expect(f.Frames()).To(Equal(uint64(1)))
		})

		It("keeps every particle in bounds over many frames", func() {
			f := newField(baseConfig(), field.WithSeed(4))
			for i := 0; i < 300; i++ {
				queue.RunFrame()
				for _, p := range f.Particles() {
					Expect(p.X).To(BeNumerically(">=", 0))
					Expect(p.X).To(BeNumerically("<=", 200))
					Expect(p.Y).To(BeNumerically(">=", 0))
					Expect(p.Y).To(BeNumerically("<=", 100))
				}
			}
		})
	})

	Describe("destroy", func() {
		It("detaches observers, stops the loop and is idempotent", func() {
			f := newField(baseConfig())
			Expect(surface.Observers()).To(Equal(1))

			f.Destroy()
			f.Destroy()

			Expect(f.Destroyed()).To(BeTrue())
			Expect(surface.Observers()).To(BeZero())
			queue.RunFrame()
			Expect(queue.Len()).To(BeZero())
			Expect(f.Frames()).To(BeZero())

			surface.Publish(pointer.Event{Kind: pointer.Move, X: 1, Y: 1})
			Expect(f.Pointer().Present).To(BeFalse())
		})

		It("can be called from another goroutine while frames run", func() {
			f := newField(baseConfig())
			started := make(chan struct{})
			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; queue.Len() > 0 && i < 100000; i++ {
					surface.Track(float64(i%200), 50, true)
					queue.RunFrame()
					if i == 10 {
						close(started)
					}
				}
			}()

			Eventually(started).Should(BeClosed())
			f.Destroy()
			Eventually(done).Should(BeClosed())

			Expect(f.Destroyed()).To(BeTrue())
			Expect(f.Running()).To(BeFalse())
			Expect(surface.Observers()).To(BeZero())
			Expect(f.Pointer().Present).To(BeFalse())
		})
	})
})

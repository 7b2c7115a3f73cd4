package anim

import (
	"sync/atomic"
	"time"
)

// Stepper is advanced by elapsed milliseconds once per frame.
type Stepper interface {
	Advance(elapsedMs float64)
}

type StepperFunc func(elapsedMs float64)

func (f StepperFunc) Advance(elapsedMs float64) { f(elapsedMs) }

type Driver struct {
	target Stepper
	sched  Scheduler
	clock  Clock

	alive  atomic.Bool
	paused atomic.Bool
	gen    atomic.Uint64
	frames atomic.Uint64
	last   time.Time
}

func NewDriver(target Stepper, sched Scheduler, clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{target: target, sched: sched, clock: clock}
}

// Start stamps the clock and schedules the first tick. Starting a running
// driver does nothing.
func (d *Driver) Start() {
	if d.alive.Swap(true) {
		return
	}
	gen := d.gen.Add(1)
	d.last = d.clock.Now()
	d.sched.RequestFrame(func() { d.tick(gen) })
}

// Stop ends the loop. The already scheduled tick runs as a no-op and does
// not reschedule.
func (d *Driver) Stop() { d.alive.Store(false) }

func (d *Driver) Running() bool { return d.alive.Load() }

// Pause keeps the loop scheduled but stops advancing the stepper. Time
// spent paused is not replayed on resume.
func (d *Driver) Pause() { d.paused.Store(true) }

func (d *Driver) Resume() { d.paused.Store(false) }

func (d *Driver) Paused() bool { return d.paused.Load() }

func (d *Driver) Frames() uint64 { return d.frames.Load() }

func (d *Driver) tick(gen uint64) {
	if !d.alive.Load() || d.gen.Load() != gen {
		return
	}
	now := d.clock.Now()
	elapsed := float64(now.Sub(d.last)) / float64(time.Millisecond)
	d.last = now

	if !d.paused.Load() {
		d.target.Advance(elapsed)
		d.frames.Add(1)
	}

	d.sched.RequestFrame(func() { d.tick(gen) })
}

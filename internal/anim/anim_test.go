package anim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestDriver(q *FrameQueue) (*Driver, *[]float64) {
	var got []float64
	clock := NewStepClock(time.Unix(0, 0), 16*time.Millisecond)
	d := NewDriver(StepperFunc(func(ms float64) { got = append(got, ms) }), q, clock)
	return d, &got
}

func TestDriverTicksWithElapsed(t *testing.T) {
	var q FrameQueue
	d, got := newTestDriver(&q)
	d.Start()
	require.Equal(t, 1, q.Len())

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, q.RunFrame())
	}

	assert.Equal(t, []float64{16, 16, 16}, *got)
	assert.Equal(t, uint64(3), d.Frames())
	assert.Equal(t, 1, q.Len())
}

func TestDriverStopHaltsRescheduling(t *testing.T) {
	var q FrameQueue
	d, got := newTestDriver(&q)
	d.Start()
	q.RunFrame()

	d.Stop()
	assert.False(t, d.Running())
	assert.Equal(t, 1, q.RunFrame())
	assert.Zero(t, q.Len())
	assert.Len(t, *got, 1)
}

func TestDriverRestartDropsStaleTick(t *testing.T) {
	var q FrameQueue
	d, got := newTestDriver(&q)
	d.Start()
	d.Stop()
	d.Start()
	d.Start()

	assert.Equal(t, 2, q.RunFrame())
	assert.Len(t, *got, 1)
	assert.Equal(t, 1, q.Len())
}

func TestDriverPauseSkipsTime(t *testing.T) {
	var q FrameQueue
	d, got := newTestDriver(&q)
	d.Start()
	q.RunFrame()

	d.Pause()
	q.RunFrame()
	q.RunFrame()
	assert.True(t, d.Paused())
	assert.Len(t, *got, 1)

	d.Resume()
	q.RunFrame()
	assert.Equal(t, []float64{16, 16}, *got)
	assert.Equal(t, uint64(2), d.Frames())
}

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	var q FrameQueue
	runs := 0
	q.RequestFrame(func() {
		runs++
		q.RequestFrame(func() { runs++ })
	})
	assert.Equal(t, 1, q.RunFrame())
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, q.RunFrame())
	assert.Equal(t, 2, runs)
}

func TestPumpReturnsWhenDriverStops(t *testing.T) {
	var q FrameQueue
	var d *Driver
	n := 0
	d = NewDriver(StepperFunc(func(float64) {
		n++
		if n == 5 {
			d.Stop()
		}
	}), &q, NewStepClock(time.Unix(0, 0), time.Millisecond))
	d.Start()

	err := Pump(context.Background(), &q, NewFrameLimiter(0))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPumpHonorsCancel(t *testing.T) {
	var q FrameQueue
	d := NewDriver(StepperFunc(func(float64) {}), &q, nil)
	d.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Pump(ctx, &q, NewFrameLimiter(120)) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after cancel")
	}
	assert.Greater(t, d.Frames(), uint64(0))
}

func TestFrameStep(t *testing.T) {
	assert.Equal(t, 20*time.Millisecond, FrameStep(50))
	assert.Zero(t, FrameStep(0))
}

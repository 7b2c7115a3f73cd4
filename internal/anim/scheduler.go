package anim

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Scheduler runs fn once, before the host's next repaint.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue collects next-frame callbacks. Callbacks requested while a
// frame runs are deferred to the following frame.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *FrameQueue) RequestFrame(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunFrame runs the callbacks queued so far and reports how many ran.
func (q *FrameQueue) RunFrame() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// NewFrameLimiter paces a Pump at fps frames per second. fps <= 0 means
// unpaced.
func NewFrameLimiter(fps int) *rate.Limiter {
	if fps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(fps), 1)
}

// Pump drains q one frame at a time until it is empty or ctx is done.
func Pump(ctx context.Context, q *FrameQueue, limiter *rate.Limiter) error {
	for q.Len() > 0 {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		q.RunFrame()
	}
	return nil
}

// Package politely serializes outbound calls to a third-party service:
// one call at a time, a fixed minimum gap between calls, and a hard
// per-call timeout. The gap is a usage-policy obligation toward the
// remote service, not a performance knob, and it only applies to work
// that actually goes out on the wire — cache hits must bypass the runner
// entirely.
package politely

import (
	"context"
	"time"
)

// Runner spaces sequential tasks for one external service.
type Runner struct {
	// MinDelay is the minimum time between the start of two tasks.
	MinDelay time.Duration
	// Timeout bounds each task; the task's context is cancelled when it
	// expires.
	Timeout time.Duration

	last time.Time
	// now and sleep are swappable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewRunner returns a Runner with the given inter-call delay and per-call
// timeout.
func NewRunner(minDelay, timeout time.Duration) *Runner {
	return &Runner{
		MinDelay: minDelay,
		Timeout:  timeout,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Do waits out the remaining delay since the previous call, then runs fn
// with a context bounded by the per-call timeout. The delay is paid before
// the call so a burst of cache misses never exceeds the service's rate.
func (r *Runner) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.last.IsZero() {
		if wait := r.MinDelay - r.now().Sub(r.last); wait > 0 {
			r.sleep(wait)
		}
	}
	r.last = r.now()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	return fn(ctx)
}

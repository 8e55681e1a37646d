// Package poll owns the recurring-refresh lifecycle for screens. A
// Refresher is created when a screen mounts and stopped on teardown;
// completions check their generation before touching state so a late
// response from a stopped or superseded cycle is discarded instead of
// overwriting fresher data.
package poll

import (
	"context"
	"sync"
	"time"
)

// RefreshFunc performs one refresh. Implementations must call
// Refresher.Current(gen) before applying fetched data to screen state.
type RefreshFunc func(ctx context.Context, gen uint64)

type Refresher struct {
	mu       sync.Mutex
	interval time.Duration
	fn       RefreshFunc
	cancel   context.CancelFunc
	gen      uint64
	running  bool
}

func NewRefresher(interval time.Duration, fn RefreshFunc) *Refresher {
	return &Refresher{
		interval: interval,
		fn:       fn,
	}
}

// Start begins a new polling cycle: one immediate refresh, then one per
// interval. A running cycle is stopped first.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.running {
		r.stopLocked()
	}
	r.gen++
	gen := r.gen
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	go func() {
		r.fn(ctx, gen)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.fn(ctx, gen)
			}
		}
	}()
}

// Stop cancels the cycle and invalidates its generation. In-flight
// refreshes keep running until their context fires, but Current reports
// false for them from this point on.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Refresher) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
	r.running = false
}

// Current reports whether gen is still the live polling generation.
func (r *Refresher) Current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running && r.gen == gen
}

func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Countdown is the OTP resend timer: Reset sets it to the full cooldown
// and it ticks down to zero once per second. Ready reports whether a
// resend is allowed.
type Countdown struct {
	mu        sync.Mutex
	seconds   int
	tick      time.Duration
	remaining int
	cancel    context.CancelFunc
}

func NewCountdown(seconds int) *Countdown {
	return &Countdown{
		seconds: seconds,
		tick:    time.Second,
	}
}

// NewCountdownWithTick exists for tests that cannot wait wall-clock
// seconds.
func NewCountdownWithTick(seconds int, tick time.Duration) *Countdown {
	return &Countdown{
		seconds: seconds,
		tick:    tick,
	}
}

// Reset starts (or restarts) the cooldown at its full value.
func (c *Countdown) Reset() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.remaining = c.seconds
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.mu.Lock()
				if c.remaining > 0 {
					c.remaining--
				}
				done := c.remaining == 0
				c.mu.Unlock()
				if done {
					return
				}
			}
		}
	}()
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Ready() bool {
	return c.Remaining() == 0
}

// Stop halts the timer without changing the remaining value.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

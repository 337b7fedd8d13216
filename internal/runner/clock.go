package runner

import (
	"sync"
	"time"

	"github.com/Iron-Ham/limber/internal/routine"
)

// Ticker is the subset of *time.Ticker the clock needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// TickerClock is a routine.Clock backed by a time.Ticker. Each Acquire
// starts a fresh ticker; Release stops it and clears the channel before
// returning, so the run loop can never observe a tick from a released handle.
type TickerClock struct {
	mu        sync.Mutex
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	current   *tickerHandle
}

// NewTickerClock creates a clock ticking every interval. newTicker may be
// nil to use real time.
func NewTickerClock(interval time.Duration, newTicker func(time.Duration) Ticker) *TickerClock {
	if interval <= 0 {
		interval = time.Second
	}
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	return &TickerClock{interval: interval, newTicker: newTicker}
}

// Acquire implements routine.Clock.
func (c *TickerClock) Acquire() routine.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.ticker.Stop()
	}
	h := &tickerHandle{clock: c, ticker: c.newTicker(c.interval)}
	c.current = h
	return h
}

// C returns the channel of the held handle, or nil when none is held.
// A nil channel blocks forever in a select, which is what the run loop wants.
func (c *TickerClock) C() <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	return c.current.ticker.C()
}

// Active reports whether a handle is held.
func (c *TickerClock) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

type tickerHandle struct {
	clock  *TickerClock
	ticker Ticker
	once   sync.Once
}

// Release implements routine.Handle.
func (h *tickerHandle) Release() {
	h.once.Do(func() {
		h.clock.mu.Lock()
		defer h.clock.mu.Unlock()
		h.ticker.Stop()
		if h.clock.current == h {
			h.clock.current = nil
		}
	})
}

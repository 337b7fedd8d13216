package routine

import "sync"

// Clock is a source of one-second ticks. The engine acquires a Handle when a
// session becomes active and releases it when the session leaves the active
// phases. The presenter that owns the Clock delivers ticks by calling
// Engine.Tick while a handle is held.
type Clock interface {
	Acquire() Handle
}

// Handle is a scoped claim on a Clock. Release stops tick delivery for this
// claim and is safe to call more than once.
type Handle interface {
	Release()
}

// nopClock is used when the engine is driven purely by explicit Tick calls.
type nopClock struct{}

func (nopClock) Acquire() Handle { return nopHandle{} }

type nopHandle struct{}

func (nopHandle) Release() {}

// ManualClock records handle lifecycles without producing ticks. It is used
// where the caller drives Tick directly.
type ManualClock struct {
	mu       sync.Mutex
	acquired int
	released int
	active   *manualHandle
}

// NewManualClock creates a ManualClock.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Acquire implements Clock.
func (c *ManualClock) Acquire() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.acquired++
	h := &manualHandle{clock: c}
	c.active = h
	return h
}

// Active reports whether an unreleased handle exists.
func (c *ManualClock) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Acquired returns how many handles have been acquired.
func (c *ManualClock) Acquired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acquired
}

// Released returns how many handles have been released.
func (c *ManualClock) Released() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

type manualHandle struct {
	clock *ManualClock
	once  sync.Once
}

func (h *manualHandle) Release() {
	h.once.Do(func() {
		c := h.clock
		c.mu.Lock()
		defer c.mu.Unlock()
		c.released++
		if c.active == h {
			c.active = nil
		}
	})
}

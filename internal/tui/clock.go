package tui

import (
	"time"

	"github.com/Iron-Ham/limber/internal/routine"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickInterval is the period between engine ticks.
const DefaultTickInterval = time.Second

// tickMsg is delivered by tea.Tick for one clock generation.
type tickMsg struct {
	gen uint64
	at  time.Time
}

// Clock is a routine.Clock backed by tea.Tick. Every Acquire starts a new
// generation; ticks carrying any other generation are stale and dropped, so
// a released handle can never deliver another tick even if its tea.Tick is
// still in flight.
//
// Clock is only touched from the Bubble Tea Update loop and is not safe for
// concurrent use.
type Clock struct {
	interval time.Duration
	gen      uint64
	active   uint64 // 0 when no handle is held
	pending  bool   // a new generation needs its first tick scheduled
}

// NewClock creates a Clock ticking every interval.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Clock{interval: interval}
}

// Acquire implements routine.Clock.
func (c *Clock) Acquire() routine.Handle {
	c.gen++
	c.active = c.gen
	c.pending = true
	return &clockHandle{clock: c, gen: c.gen}
}

// Active reports whether a handle is currently held.
func (c *Clock) Active() bool {
	return c.active != 0
}

// Current reports whether msg belongs to the held handle.
func (c *Clock) Current(msg tickMsg) bool {
	return c.active != 0 && msg.gen == c.active
}

// Schedule returns the first tick for a freshly acquired handle, or nil.
// Call it after any engine operation that may have acquired a handle.
func (c *Clock) Schedule() tea.Cmd {
	if !c.pending || c.active == 0 {
		c.pending = false
		return nil
	}
	c.pending = false
	return c.tick(c.active)
}

// Next returns the tick following msg, or nil once msg's handle is released.
func (c *Clock) Next(msg tickMsg) tea.Cmd {
	if !c.Current(msg) {
		return nil
	}
	return c.tick(msg.gen)
}

func (c *Clock) tick(gen uint64) tea.Cmd {
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

type clockHandle struct {
	clock    *Clock
	gen      uint64
	released bool
}

// Release implements routine.Handle.
func (h *clockHandle) Release() {
	if h.released {
		return
	}
	h.released = true
	if h.clock.active == h.gen {
		h.clock.active = 0
		h.clock.pending = false
	}
}

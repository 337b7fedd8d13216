package routine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/event"
)

// recorder captures published events in order.
type recorder struct {
	events []event.Event
}

func (r *recorder) Publish(e event.Event) { r.events = append(r.events, e) }

func (r *recorder) sides() []event.SideCompletedEvent {
	var out []event.SideCompletedEvent
	for _, e := range r.events {
		if sc, ok := e.(event.SideCompletedEvent); ok {
			out = append(out, sc)
		}
	}
	return out
}

func (r *recorder) count(eventType string) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

// fakeNow is a manually advanced wall clock.
type fakeNow struct{ t time.Time }

func newFakeNow() *fakeNow {
	return &fakeNow{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeNow) Now() time.Time          { return f.t }
func (f *fakeNow) Advance(d time.Duration) { f.t = f.t.Add(d) }

// abc is the catalog used by the reference scenario: A is bilateral, B and C
// are single-sided.
func abc() catalog.Catalog {
	return catalog.Catalog{
		{Name: "A", Bilateral: true},
		{Name: "B"},
		{Name: "C"},
	}
}

type harness struct {
	engine *Engine
	clock  *ManualClock
	events *recorder
	now    *fakeNow
}

func newHarness(t *testing.T, c catalog.Catalog, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		clock:  NewManualClock(),
		events: &recorder{},
		now:    newFakeNow(),
	}
	base := []Option{
		WithClock(h.clock),
		WithPublisher(h.events),
		WithNow(h.now.Now),
		WithSelector(FixedSelector()),
		WithAllowedLengths([]int{1, 2, 3, 5, 7}),
	}
	e, err := NewEngine(c, append(base, opts...)...)
	require.NoError(t, err)
	h.engine = e
	return h
}

// tickN calls Tick n times, advancing the wall clock one second per tick.
func (h *harness) tickN(n int) {
	for i := 0; i < n; i++ {
		h.now.Advance(time.Second)
		h.engine.Tick()
	}
}

// runOut ticks until the current phase's countdown expires.
func (h *harness) runOut() {
	h.tickN(h.engine.TimeRemaining())
}

type step struct {
	phase     Phase
	exercise  string
	side      Side
	remaining int
}

func (h *harness) state() step {
	name := ""
	if ex, ok := h.engine.CurrentExercise(); ok && h.engine.Phase() != PhaseComplete {
		name = ex.Name
	}
	return step{
		phase:     h.engine.Phase(),
		exercise:  name,
		side:      h.engine.CurrentSide(),
		remaining: h.engine.TimeRemaining(),
	}
}

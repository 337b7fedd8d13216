// Package event defines event types for decoupling the routine engine from
// its collaborators (presenters, feedback, logging).
package event

import "time"

// Event type identifiers.
const (
	TypeRoutineStarted   = "routine.started"
	TypeRoutineCompleted = "routine.completed"
	TypeRoutineReset     = "routine.reset"
	TypePhaseChanged     = "phase.changed"
	TypeSideCompleted    = "side.completed"
	TypeCatalogReloaded  = "catalog.reloaded"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "side.completed").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is implemented by anything that can dispatch events, usually a *Bus.
type Publisher interface {
	Publish(Event)
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Routine Lifecycle Events
// -----------------------------------------------------------------------------

// RoutineStartedEvent is emitted when a new routine session begins.
type RoutineStartedEvent struct {
	baseEvent
	SessionID string
	Length    int
	Exercises []string // Names in selection order
}

// NewRoutineStartedEvent creates a RoutineStartedEvent.
func NewRoutineStartedEvent(sessionID string, exercises []string) RoutineStartedEvent {
	return RoutineStartedEvent{
		baseEvent: newBaseEvent(TypeRoutineStarted),
		SessionID: sessionID,
		Length:    len(exercises),
		Exercises: exercises,
	}
}

// RoutineCompletedEvent is emitted once when the final side is finished.
type RoutineCompletedEvent struct {
	baseEvent
	SessionID    string
	Exercises    int
	Sides        int
	SidesSkipped int
	Elapsed      time.Duration
}

// NewRoutineCompletedEvent creates a RoutineCompletedEvent.
func NewRoutineCompletedEvent(sessionID string, exercises, sides, skipped int, elapsed time.Duration) RoutineCompletedEvent {
	return RoutineCompletedEvent{
		baseEvent:    newBaseEvent(TypeRoutineCompleted),
		SessionID:    sessionID,
		Exercises:    exercises,
		Sides:        sides,
		SidesSkipped: skipped,
		Elapsed:      elapsed,
	}
}

// RoutineResetEvent is emitted when a session is discarded.
type RoutineResetEvent struct {
	baseEvent
	SessionID string
	Phase     string // Phase the session was in when reset
}

// NewRoutineResetEvent creates a RoutineResetEvent.
func NewRoutineResetEvent(sessionID, phase string) RoutineResetEvent {
	return RoutineResetEvent{
		baseEvent: newBaseEvent(TypeRoutineReset),
		SessionID: sessionID,
		Phase:     phase,
	}
}

// -----------------------------------------------------------------------------
// Progress Events
// -----------------------------------------------------------------------------

// PhaseChangedEvent is emitted on every phase transition.
type PhaseChangedEvent struct {
	baseEvent
	SessionID string
	From      string
	To        string
	Exercise  string // Current exercise after the transition
	Side      string
	Index     int
	Duration  int // Seconds allotted to the new phase
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(sessionID, from, to, exercise, side string, index, duration int) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent(TypePhaseChanged),
		SessionID: sessionID,
		From:      from,
		To:        to,
		Exercise:  exercise,
		Side:      side,
		Index:     index,
		Duration:  duration,
	}
}

// SideCompletedEvent is the completion signal: emitted each time a stretch
// side is finished, either naturally or via skip.
type SideCompletedEvent struct {
	baseEvent
	SessionID string
	Exercise  string
	Side      string
	Index     int
	Skipped   bool // Finished early by the user
	Final     bool // Last side of the routine
}

// NewSideCompletedEvent creates a SideCompletedEvent.
func NewSideCompletedEvent(sessionID, exercise, side string, index int, skipped, final bool) SideCompletedEvent {
	return SideCompletedEvent{
		baseEvent: newBaseEvent(TypeSideCompleted),
		SessionID: sessionID,
		Exercise:  exercise,
		Side:      side,
		Index:     index,
		Skipped:   skipped,
		Final:     final,
	}
}

// -----------------------------------------------------------------------------
// Catalog Events
// -----------------------------------------------------------------------------

// CatalogReloadedEvent is emitted when a watched catalog file is reloaded.
type CatalogReloadedEvent struct {
	baseEvent
	Path  string
	Size  int    // Number of exercises, 0 on failure
	Error string // Non-empty if the reload failed and the old catalog was kept
}

// NewCatalogReloadedEvent creates a CatalogReloadedEvent.
func NewCatalogReloadedEvent(path string, size int, errMsg string) CatalogReloadedEvent {
	return CatalogReloadedEvent{
		baseEvent: newBaseEvent(TypeCatalogReloaded),
		Path:      path,
		Size:      size,
		Error:     errMsg,
	}
}

package routine

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/errors"
	"github.com/Iron-Ham/limber/internal/event"
	"github.com/Iron-Ham/limber/internal/logging"
)

// session is the state of one routine run. It exists from Start until Reset
// or a superseding Start.
type session struct {
	id        string
	exercises []catalog.Exercise
	index     int
	side      Side
	remaining int
	paused    bool
	startedAt time.Time
	elapsed   time.Duration

	sidesCompleted int
	sidesSkipped   int

	logger *logging.Logger
}

func (s *session) current() catalog.Exercise {
	return s.exercises[s.index]
}

func (s *session) isLastIndex() bool {
	return s.index == len(s.exercises)-1
}

// Engine is the routine state machine.
type Engine struct {
	catalog   catalog.Catalog
	allowed   []int
	durations Durations

	clock     Clock
	publisher event.Publisher
	logger    *logging.Logger
	now       func() time.Time
	selector  Selector
	newID     func() string

	phase   Phase
	session *session
	handle  Handle
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the tick source whose handle the engine acquires.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithPublisher sets where routine events are published.
func WithPublisher(p event.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithLogger sets the engine's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithNow overrides the wall clock used for elapsed time.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSelector overrides how exercises are chosen on Start.
func WithSelector(s Selector) Option {
	return func(e *Engine) { e.selector = s }
}

// WithDurations sets the phase durations.
func WithDurations(d Durations) Option {
	return func(e *Engine) { e.durations = d }
}

// WithAllowedLengths sets the routine lengths Start accepts.
func WithAllowedLengths(lengths []int) Option {
	return func(e *Engine) { e.allowed = slices.Clone(lengths) }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

type nopPublisher struct{}

func (nopPublisher) Publish(event.Event) {}

// NewEngine creates an engine in the setup phase. It fails with a
// ConfigurationError when the durations, allowed lengths or catalog are
// unusable.
func NewEngine(c catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:   c.Clone(),
		allowed:   slices.Clone(DefaultAllowedLengths),
		durations: DefaultDurations(),
		clock:     nopClock{},
		publisher: nopPublisher{},
		logger:    logging.NopLogger(),
		now:       time.Now,
		selector:  SelectRoutine,
		newID:     func() string { return uuid.NewString() },
		phase:     PhaseSetup,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.durations.Validate(); err != nil {
		return nil, err
	}
	if len(e.allowed) == 0 {
		return nil, errors.NewConfigurationError("no routine lengths allowed", errors.ErrLengthNotAllowed)
	}
	for _, n := range e.allowed {
		if n < 1 {
			return nil, errors.NewConfigurationError("routine lengths must be positive", errors.ErrLengthNotAllowed).
				WithLength(n).
				WithAllowed(e.allowed)
		}
	}
	if err := e.catalog.Validate(); err != nil {
		return nil, errors.NewConfigurationError("invalid catalog", err)
	}
	return e, nil
}

// SetCatalog replaces the catalog used by subsequent Starts. A running
// session keeps the exercises it was started with.
func (e *Engine) SetCatalog(c catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.catalog = c.Clone()
	e.logger.Info("catalog replaced", "exercises", len(c))
	return nil
}

// Catalog returns a copy of the catalog Start draws from.
func (e *Engine) Catalog() catalog.Catalog { return e.catalog.Clone() }

// AllowedLengths returns the routine lengths Start accepts.
func (e *Engine) AllowedLengths() []int { return slices.Clone(e.allowed) }

// Durations returns the configured phase durations.
func (e *Engine) Durations() Durations { return e.durations }

// Start begins a new session of length exercises, discarding any session in
// progress. It returns a ConfigurationError, and leaves the engine
// untouched, when length is not allowed or exceeds the catalog.
func (e *Engine) Start(length int) error {
	if !slices.Contains(e.allowed, length) {
		return errors.NewConfigurationError("routine length not allowed", errors.ErrLengthNotAllowed).
			WithLength(length).
			WithAllowed(e.allowed)
	}
	if length > len(e.catalog) {
		return errors.NewConfigurationError("not enough exercises in catalog", errors.ErrCatalogTooSmall).
			WithLength(length).
			WithCatalogSize(len(e.catalog))
	}

	exercises, err := e.selector(length, e.catalog)
	if err != nil {
		return err
	}
	if len(exercises) != length {
		return errors.NewConfigurationError("selector returned the wrong number of exercises", nil).
			WithLength(len(exercises))
	}

	if e.session != nil {
		e.session.logger.Info("session superseded", "phase", string(e.phase))
		e.releaseClock()
	}

	id := e.newID()
	e.session = &session{
		id:        id,
		exercises: exercises,
		side:      SideLeft,
		remaining: e.durations.Warmup,
		startedAt: e.now(),
		logger:    e.logger.WithSession(id),
	}
	e.phase = PhaseWarmup
	e.handle = e.clock.Acquire()

	names := make([]string, len(exercises))
	for i, ex := range exercises {
		names[i] = ex.Name
	}
	e.session.logger.Info("routine started", "length", length, "exercises", names)
	e.publisher.Publish(event.NewRoutineStartedEvent(id, names))
	e.publishPhase(PhaseSetup)
	return nil
}

// Tick applies one second of elapsed time. When the countdown reaches zero
// the engine advances exactly once. Ticks while paused or outside the active
// phases have no effect.
func (e *Engine) Tick() {
	if !e.phase.Active() || e.session.paused {
		return
	}
	s := e.session
	if s.remaining <= 0 {
		return
	}
	s.remaining--
	if s.remaining == 0 {
		e.transition(false)
	}
}

// Advance moves to the next phase as if the current countdown had expired.
// It is a no-op in setup and complete.
func (e *Engine) Advance() {
	if !e.phase.Active() {
		return
	}
	e.transition(false)
}

// Skip ends the current phase early. Skipping the left side of a bilateral
// exercise leads to the rest before its right side, exactly as if the left
// side had run out; the right side is always stretched. It is a no-op in
// setup and complete.
func (e *Engine) Skip() {
	if !e.phase.Active() {
		return
	}
	e.session.logger.Debug("skip requested", "phase", string(e.phase), "remaining", e.session.remaining)
	e.transition(true)
}

// transition applies the phase-transition rules. skipped marks a stretch
// that ended before its countdown did.
func (e *Engine) transition(skipped bool) {
	s := e.session
	from := e.phase

	switch e.phase {
	case PhaseWarmup:
		e.enterStretch(sideFor(s.current(), SideLeft))

	case PhaseStretch:
		early := skipped && s.remaining > 0
		s.sidesCompleted++
		if early {
			s.sidesSkipped++
		}

		ex := s.current()
		final := !(ex.Bilateral && s.side == SideLeft) && s.isLastIndex()
		e.publisher.Publish(event.NewSideCompletedEvent(s.id, ex.Name, string(s.side), s.index, early, final))

		if final {
			e.complete()
			return
		}
		e.phase = PhaseRest
		s.remaining = e.durations.Rest

	case PhaseRest:
		ex := s.current()
		if ex.Bilateral && s.side == SideLeft {
			e.enterStretch(SideRight)
		} else {
			s.index++
			e.enterStretch(sideFor(s.current(), SideLeft))
		}

	default:
		return
	}

	e.publishPhase(from)
}

func (e *Engine) enterStretch(side Side) {
	e.phase = PhaseStretch
	e.session.side = side
	e.session.remaining = e.durations.Stretch
}

// sideFor returns the side to stretch first for ex.
func sideFor(ex catalog.Exercise, bilateral Side) Side {
	if ex.Bilateral {
		return bilateral
	}
	return SideSingle
}

func (e *Engine) complete() {
	s := e.session
	e.phase = PhaseComplete
	s.remaining = 0
	s.paused = false
	s.elapsed = e.now().Sub(s.startedAt)
	e.releaseClock()

	summary := e.Summary()
	s.logger.Info("routine completed",
		"elapsed", s.elapsed.String(),
		"sides", summary.TotalSides,
		"skipped", summary.SidesSkipped)
	e.publishPhase(PhaseStretch)
	e.publisher.Publish(event.NewRoutineCompletedEvent(s.id, summary.Exercises, summary.TotalSides, summary.SidesSkipped, s.elapsed))
}

func (e *Engine) publishPhase(from Phase) {
	s := e.session
	ex := s.current()
	s.logger.Debug("phase changed",
		"from", string(from),
		"to", string(e.phase),
		"exercise", ex.Name,
		"side", string(s.side),
		"index", s.index)
	e.publisher.Publish(event.NewPhaseChangedEvent(s.id, string(from), string(e.phase),
		ex.Name, string(s.side), s.index, e.durations.For(e.phase)))
}

// Pause stops ticks from having any effect. No-op outside the active phases.
func (e *Engine) Pause() {
	if !e.phase.Active() || e.session.paused {
		return
	}
	e.session.paused = true
	e.session.logger.Debug("paused", "phase", string(e.phase), "remaining", e.session.remaining)
}

// Resume undoes Pause. No-op outside the active phases.
func (e *Engine) Resume() {
	if !e.phase.Active() || !e.session.paused {
		return
	}
	e.session.paused = false
	e.session.logger.Debug("resumed", "phase", string(e.phase), "remaining", e.session.remaining)
}

// TogglePause pauses a running session or resumes a paused one.
func (e *Engine) TogglePause() {
	if !e.phase.Active() {
		return
	}
	if e.session.paused {
		e.Resume()
	} else {
		e.Pause()
	}
}

// Reset discards the session and returns to setup.
func (e *Engine) Reset() {
	if e.session == nil {
		return
	}
	s := e.session
	from := e.phase
	e.releaseClock()
	e.session = nil
	e.phase = PhaseSetup

	s.logger.Info("routine reset", "phase", string(from))
	e.publisher.Publish(event.NewRoutineResetEvent(s.id, string(from)))
}

func (e *Engine) releaseClock() {
	if e.handle != nil {
		e.handle.Release()
		e.handle = nil
	}
}

package routine

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/limber/internal/catalog"
)

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// SessionID returns the current session's id, or "" in setup.
func (e *Engine) SessionID() string {
	if e.session == nil {
		return ""
	}
	return e.session.id
}

// TimeRemaining returns the seconds left in the current phase.
func (e *Engine) TimeRemaining() int {
	if e.session == nil {
		return 0
	}
	return e.session.remaining
}

// Paused reports whether the session is paused.
func (e *Engine) Paused() bool {
	return e.session != nil && e.session.paused
}

// Exercises returns the session's selected exercises in order.
func (e *Engine) Exercises() []catalog.Exercise {
	if e.session == nil {
		return nil
	}
	return slices.Clone(e.session.exercises)
}

// CurrentIndex returns the position of the current exercise.
func (e *Engine) CurrentIndex() int {
	if e.session == nil {
		return 0
	}
	return e.session.index
}

// CurrentSide returns the side being stretched, or rested after.
func (e *Engine) CurrentSide() Side {
	if e.session == nil {
		return ""
	}
	return e.session.side
}

// CurrentExercise returns the exercise at the current index.
func (e *Engine) CurrentExercise() (catalog.Exercise, bool) {
	if e.session == nil {
		return catalog.Exercise{}, false
	}
	return e.session.current(), true
}

// TotalSteps returns the number of sides in the session: two for each
// bilateral exercise and one for each other exercise.
func (e *Engine) TotalSteps() int {
	if e.session == nil {
		return 0
	}
	total := 0
	for _, ex := range e.session.exercises {
		total += ex.Steps()
	}
	return total
}

// CurrentStep returns the 1-based number of the side in progress, or 0 in
// setup. It equals TotalSteps once the session is complete.
func (e *Engine) CurrentStep() int {
	if e.session == nil {
		return 0
	}
	s := e.session
	step := 0
	for _, ex := range s.exercises[:s.index] {
		step += ex.Steps()
	}
	if s.current().Bilateral && s.side == SideRight {
		step++
	}
	return step + 1
}

// NextUp returns the stretch that follows the current activity: during
// warmup and rest the stretch about to begin, during a stretch the one after
// it. Complete is set when the current stretch is the last. The zero value
// is returned in setup and complete.
func (e *Engine) NextUp() NextUp {
	if !e.phase.Active() {
		return NextUp{}
	}
	s := e.session
	ex := s.current()

	if e.phase == PhaseWarmup {
		return NextUp{Name: ex.Name, Side: sideFor(ex, SideLeft)}
	}

	// Stretch and rest share a successor: rest keeps the side it follows.
	if ex.Bilateral && s.side == SideLeft {
		return NextUp{Name: ex.Name, Side: SideRight}
	}
	if s.isLastIndex() {
		return NextUp{Complete: true}
	}
	next := s.exercises[s.index+1]
	return NextUp{Name: next.Name, Side: sideFor(next, SideLeft)}
}

// CurrentTitle returns the headline for the presenter: "Prepare" between
// stretches, the exercise name with its side tag while stretching.
func (e *Engine) CurrentTitle() string {
	switch e.phase {
	case PhaseWarmup, PhaseRest:
		return "Prepare"
	case PhaseStretch:
		ex := e.session.current()
		if tag := e.session.side.Tag(); ex.Bilateral && tag != "" {
			return fmt.Sprintf("%s - %s", ex.Name, tag)
		}
		return ex.Name
	case PhaseComplete:
		return "Routine Complete"
	default:
		return ""
	}
}

// IsLastStep reports whether the current side is the final side of the
// session.
func (e *Engine) IsLastStep() bool {
	if e.session == nil {
		return false
	}
	s := e.session
	return s.isLastIndex() && (!s.current().Bilateral || s.side == SideRight)
}

// Summary returns the session's progress. Elapsed is fixed at completion and
// measured against the wall clock before then.
func (e *Engine) Summary() Summary {
	if e.session == nil {
		return Summary{}
	}
	s := e.session
	elapsed := s.elapsed
	if e.phase != PhaseComplete {
		elapsed = e.now().Sub(s.startedAt)
	}
	return Summary{
		Exercises:      len(s.exercises),
		TotalSides:     e.TotalSteps(),
		SidesCompleted: s.sidesCompleted,
		SidesSkipped:   s.sidesSkipped,
		Elapsed:        elapsed,
	}
}

// Snapshot returns every presenter-facing value at once.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:  e.phase,
		Title:  e.CurrentTitle(),
		NextUp: e.NextUp(),
	}
	if e.session == nil {
		return snap
	}
	s := e.session
	ex := s.current()
	snap.SessionID = s.id
	snap.Exercise = ex.Name
	snap.Side = s.side
	snap.Bilateral = ex.Bilateral
	snap.Step = e.CurrentStep()
	snap.TotalSteps = e.TotalSteps()
	snap.Index = s.index
	snap.Length = len(s.exercises)
	snap.TimeRemaining = s.remaining
	snap.PhaseDuration = e.durations.For(e.phase)
	snap.Paused = s.paused
	snap.IsLastStep = e.IsLastStep()
	snap.Summary = e.Summary()
	return snap
}

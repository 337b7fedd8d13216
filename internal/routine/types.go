package routine

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/limber/internal/errors"
)

// Phase is the engine's position in the routine lifecycle.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseWarmup   Phase = "warmup"
	PhaseStretch  Phase = "stretch"
	PhaseRest     Phase = "rest"
	PhaseComplete Phase = "complete"
)

// Active reports whether ticks have an effect in this phase.
func (p Phase) Active() bool {
	return p == PhaseWarmup || p == PhaseStretch || p == PhaseRest
}

// String implements fmt.Stringer.
func (p Phase) String() string { return string(p) }

// Side identifies which side of an exercise is being stretched.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideSingle Side = "single"
)

// Tag returns the upper-case side label shown next to a bilateral
// exercise's name, or "" for single-sided exercises.
func (s Side) Tag() string {
	switch s {
	case SideLeft, SideRight:
		return strings.ToUpper(string(s))
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (s Side) String() string { return string(s) }

// Durations holds the length of each timed phase in seconds.
type Durations struct {
	Warmup  int
	Stretch int
	Rest    int
}

// DefaultDurations returns 15s warmup, 120s stretch and 15s rest.
func DefaultDurations() Durations {
	return Durations{Warmup: 15, Stretch: 120, Rest: 15}
}

// For returns the duration of phase p in seconds, or 0 for inactive phases.
func (d Durations) For(p Phase) int {
	switch p {
	case PhaseWarmup:
		return d.Warmup
	case PhaseStretch:
		return d.Stretch
	case PhaseRest:
		return d.Rest
	default:
		return 0
	}
}

// Validate requires every duration to be positive.
func (d Durations) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"warmup", d.Warmup},
		{"stretch", d.Stretch},
		{"rest", d.Rest},
	} {
		if f.value <= 0 {
			return errors.NewConfigurationError(
				fmt.Sprintf("%s duration must be positive, got %d", f.name, f.value), nil)
		}
	}
	return nil
}

// DefaultAllowedLengths are the routine lengths offered when none are configured.
var DefaultAllowedLengths = []int{3, 5, 7}

// NextUp describes the stretch that follows the current activity.
type NextUp struct {
	Name     string
	Side     Side
	Complete bool // Nothing remains after the current stretch
}

// IsZero reports whether there is nothing to show (setup and complete).
func (n NextUp) IsZero() bool {
	return n.Name == "" && !n.Complete
}

// Label renders the next-up line, e.g. "Lunge (Right)" or "Complete!".
func (n NextUp) Label() string {
	switch {
	case n.Complete:
		return "Complete!"
	case n.Name == "":
		return ""
	case n.Side == SideLeft || n.Side == SideRight:
		s := string(n.Side)
		return fmt.Sprintf("%s (%s)", n.Name, strings.ToUpper(s[:1])+s[1:])
	default:
		return n.Name
	}
}

// Summary describes a session's progress, and its outcome once complete.
type Summary struct {
	Exercises      int
	TotalSides     int
	SidesCompleted int
	SidesSkipped   int
	Elapsed        time.Duration
}

// FormatElapsed renders d as "Xm Ys", or "Ys" under a minute.
func FormatElapsed(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	if secs >= 60 {
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Snapshot is a read-only view of the engine for presenters.
type Snapshot struct {
	SessionID     string
	Phase         Phase
	Title         string
	Exercise      string
	Side          Side
	Bilateral     bool
	NextUp        NextUp
	Step          int
	TotalSteps    int
	Index         int
	Length        int
	TimeRemaining int
	PhaseDuration int
	Paused        bool
	IsLastStep    bool
	Summary       Summary
}

// Progress returns the fraction of steps completed, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.TotalSteps == 0 {
		return 0
	}
	if s.Phase == PhaseComplete {
		return 1
	}
	done := s.Step - 1
	if s.Phase == PhaseRest {
		done = s.Step
	}
	if done < 0 {
		done = 0
	}
	return float64(done) / float64(s.TotalSteps)
}

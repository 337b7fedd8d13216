// Package runner is the line-oriented presenter used when stdout is not a
// terminal or plain output is requested. It prints one line per phase change
// and a countdown line at a fixed interval, and reads single-letter commands
// from its input. Ticks, commands and catalog reloads are serialized through
// a single select loop, the only place the engine is touched.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/event"
	"github.com/Iron-Ham/limber/internal/logging"
	"github.com/Iron-Ham/limber/internal/routine"
	"github.com/Iron-Ham/limber/internal/util"
)

// Commands read from input, one per line.
const (
	CmdPause = "p"
	CmdSkip  = "n"
	CmdReset = "r"
	CmdQuit  = "q"
	CmdStart = "s"
)

// Options configures a Runner.
type Options struct {
	// Engine must have been created with Clock and publish to Bus.
	Engine *routine.Engine
	Clock  *TickerClock
	Bus    *event.Bus

	// Length is the routine length started by Run and by the start command.
	Length int
	// StatusEvery prints the countdown every this many seconds. Zero disables it.
	StatusEvery int

	// Watcher, when set, feeds catalog reloads into the loop.
	Watcher *catalog.Watcher

	In     io.Reader
	Out    io.Writer
	Logger *logging.Logger
}

// Runner drives an engine from a plain text stream.
type Runner struct {
	engine      *routine.Engine
	clock       *TickerClock
	bus         *event.Bus
	length      int
	statusEvery int
	watcher     *catalog.Watcher
	in          io.Reader
	out         io.Writer
	logger      *logging.Logger

	reloads chan catalogUpdate
}

type catalogUpdate struct {
	catalog catalog.Catalog
	err     error
}

// New creates a Runner.
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	in := opts.In
	if in == nil {
		in = strings.NewReader("")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(logger)
	}
	return &Runner{
		engine:      opts.Engine,
		clock:       opts.Clock,
		bus:         bus,
		length:      opts.Length,
		statusEvery: opts.StatusEvery,
		watcher:     opts.Watcher,
		in:          in,
		out:         out,
		logger:      logger,
		reloads:     make(chan catalogUpdate, 1),
	}
}

// Run starts a routine and blocks until it completes, the user quits, or ctx
// is cancelled. A Start error is returned before anything is printed.
func (r *Runner) Run(ctx context.Context) error {
	ids := r.subscribe()
	defer func() {
		for _, id := range ids {
			r.bus.Unsubscribe(id)
		}
	}()

	// done must close before the watcher stops: a reload callback may be
	// blocked handing its catalog to the loop.
	if r.watcher != nil {
		defer r.watcher.Stop()
	}
	done := make(chan struct{})
	defer close(done)
	if r.watcher != nil {
		r.watchCatalog(done)
	}

	if err := r.engine.Start(r.length); err != nil {
		return err
	}
	r.printf("Commands: %s pause/resume, %s next, %s reset, %s quit\n", CmdPause, CmdSkip, CmdReset, CmdQuit)

	lines := r.readLines(done)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("plain runner cancelled", "reason", ctx.Err())
			r.engine.Reset()
			return nil

		case <-r.clock.C():
			r.engine.Tick()
			if r.engine.Phase() == routine.PhaseComplete {
				return nil
			}
			r.maybeStatus()

		case u := <-r.reloads:
			r.applyCatalog(u)

		case line, ok := <-lines:
			if !ok {
				// Input closed: an active routine runs on the clock alone,
				// but nothing can start one again.
				if !r.engine.Phase().Active() {
					r.logger.Info("input closed with no routine running")
					return nil
				}
				lines = nil
				continue
			}
			if quit := r.handleCommand(line); quit {
				return nil
			}
			if r.engine.Phase() == routine.PhaseComplete {
				return nil
			}
		}
	}
}

// handleCommand applies one input line and reports whether to quit.
func (r *Runner) handleCommand(line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))
	phase := r.engine.Phase()

	switch {
	case cmd == CmdQuit:
		r.engine.Reset()
		r.printf("Bye.\n")
		return true

	case phase == routine.PhaseSetup && (cmd == CmdStart || cmd == ""):
		if err := r.engine.Start(r.length); err != nil {
			r.printf("Cannot start: %v\n", err)
		}

	case cmd == CmdPause:
		if !phase.Active() {
			return false
		}
		r.engine.TogglePause()
		if r.engine.Paused() {
			r.printf("Paused at %s. %s to resume.\n", routine.FormatClock(r.engine.TimeRemaining()), CmdPause)
		} else {
			r.printf("Resumed.\n")
		}

	case cmd == CmdSkip:
		r.engine.Skip()

	case cmd == CmdReset:
		if phase == routine.PhaseSetup {
			return false
		}
		r.engine.Reset()
		r.printf("Routine reset. Press enter to start a new %s routine, %s to quit.\n",
			util.Plural(r.length, "exercise"), CmdQuit)

	case cmd == "":

	default:
		r.printf("Unknown command %q. Use %s, %s, %s or %s.\n", cmd, CmdPause, CmdSkip, CmdReset, CmdQuit)
	}
	return false
}

// subscribe prints routine events. The bus is synchronous and the engine
// only publishes from the run loop, so printing stays in order.
func (r *Runner) subscribe() []string {
	return []string{
		r.bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
			if pc, ok := e.(event.PhaseChangedEvent); ok {
				r.printPhase(pc)
			}
		}),
		r.bus.Subscribe(event.TypeRoutineCompleted, func(e event.Event) {
			if rc, ok := e.(event.RoutineCompletedEvent); ok {
				r.printSummary(rc)
			}
		}),
	}
}

func (r *Runner) printPhase(pc event.PhaseChangedEvent) {
	snap := r.engine.Snapshot()
	switch routine.Phase(pc.To) {
	case routine.PhaseWarmup:
		r.printf("Warm-up %s. Next up: %s\n", routine.FormatClock(pc.Duration), snap.NextUp.Label())
	case routine.PhaseStretch:
		r.printf("Stretch %d/%d: %s %s\n", snap.Step, snap.TotalSteps, snap.Title, routine.FormatClock(pc.Duration))
	case routine.PhaseRest:
		r.printf("Rest %s. Next up: %s\n", routine.FormatClock(pc.Duration), snap.NextUp.Label())
	}
}

func (r *Runner) printSummary(rc event.RoutineCompletedEvent) {
	line := fmt.Sprintf("Routine complete: %s, %s in %s",
		util.Plural(rc.Exercises, "exercise"), util.Plural(rc.Sides, "side"), routine.FormatElapsed(rc.Elapsed))
	if rc.SidesSkipped > 0 {
		line += fmt.Sprintf(" (%d skipped)", rc.SidesSkipped)
	}
	r.printf("%s\n", line)
}

// maybeStatus prints the countdown on every StatusEvery boundary. The first
// second of a phase is skipped since its phase line already shows the time.
func (r *Runner) maybeStatus() {
	phase := r.engine.Phase()
	if r.statusEvery <= 0 || !phase.Active() || r.engine.Paused() {
		return
	}
	remaining := r.engine.TimeRemaining()
	if remaining <= 0 || remaining%r.statusEvery != 0 || remaining == r.engine.Durations().For(phase) {
		return
	}
	r.printf("  %s remaining\n", routine.FormatClock(remaining))
}

func (r *Runner) watchCatalog(done <-chan struct{}) {
	send := func(u catalogUpdate) {
		select {
		case r.reloads <- u:
		case <-done:
		}
	}
	r.watcher.OnReload(func(c catalog.Catalog) { send(catalogUpdate{catalog: c}) })
	r.watcher.OnError(func(err error) { send(catalogUpdate{err: err}) })
	r.watcher.Start()
}

func (r *Runner) applyCatalog(u catalogUpdate) {
	path := r.watcher.Path()
	if u.err != nil {
		r.logger.Warn("catalog reload failed", "path", path, "error", u.err)
		r.bus.Publish(event.NewCatalogReloadedEvent(path, 0, u.err.Error()))
		r.printf("Catalog reload failed, keeping previous catalog: %v\n", u.err)
		return
	}
	if err := r.engine.SetCatalog(u.catalog); err != nil {
		r.bus.Publish(event.NewCatalogReloadedEvent(path, 0, err.Error()))
		r.printf("Catalog rejected: %v\n", err)
		return
	}
	r.bus.Publish(event.NewCatalogReloadedEvent(path, len(u.catalog), ""))
	r.printf("Catalog reloaded: %s. Applies to the next routine.\n", util.Plural(len(u.catalog), "exercise"))
}

// readLines scans input on its own goroutine. The channel closes at EOF.
func (r *Runner) readLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.logger.Warn("reading commands failed", "error", err)
		}
	}()
	return lines
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

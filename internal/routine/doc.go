// Package routine implements the stretching routine state machine.
//
// An [Engine] owns one session at a time. A session moves through
// warmup, stretch and rest phases until every side of every selected
// exercise has been stretched, then enters complete. Bilateral exercises
// are always stretched left then right; the right side can never be skipped
// and an exercise never completes on its left side.
//
// # Driving the engine
//
// The engine does not keep time itself. A presenter acquires ticks from a
// [Clock] and calls [Engine.Tick] once per second. The engine acquires a
// [Handle] when a session starts and releases it when the session completes,
// is reset, or is replaced by a new Start, so stale ticks never reach a
// superseded session.
//
//	engine, err := routine.NewEngine(catalog.Default(),
//	    routine.WithClock(clock),
//	    routine.WithPublisher(bus),
//	)
//	if err := engine.Start(5); err != nil {
//	    return err
//	}
//	// once per second:
//	engine.Tick()
//
// # Concurrency
//
// The engine is not safe for concurrent use. Every tick and user action
// must be applied from a single goroutine, for example a Bubble Tea Update
// loop or a select loop.
package routine

// Package event provides a pub-sub event bus for decoupled communication
// between the routine engine and its collaborators.
//
// The engine publishes events through the [Publisher] interface and never
// depends on who consumes them. The completion signal ([SideCompletedEvent])
// is consumed by the feedback package; the CLI subscribes a logging handler
// to every event.
//
// # Event Types
//
//   - routine.started, routine.completed, routine.reset
//   - phase.changed
//   - side.completed
//   - catalog.reloaded
//
// # Usage
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypeSideCompleted, func(e event.Event) {
//	    done := e.(event.SideCompletedEvent)
//	    log.Printf("finished %s (%s)", done.Exercise, done.Side)
//	})
//
// Handlers run synchronously and are panic-isolated. Handlers that do slow
// work (sound playback) must hand it off to another goroutine.
package event

package tui

import (
	"context"
	"errors"
	"io"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/event"
	"github.com/Iron-Ham/limber/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// AppConfig configures how the program runs.
type AppConfig struct {
	AltScreen bool
	// Watcher, when set, feeds catalog reloads into the running program.
	Watcher *catalog.Watcher
	// Publisher receives catalog.reloaded events. Optional.
	Publisher event.Publisher
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
	Logger *logging.Logger
}

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	config  AppConfig
	logger  *logging.Logger
}

// New creates a new TUI application
func New(model Model, cfg AppConfig) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:  model,
		config: cfg,
		logger: logger,
	}
}

// Run starts the TUI application and blocks until the user quits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if a.config.Input != nil {
		opts = append(opts, tea.WithInput(a.config.Input))
	}
	if a.config.Output != nil {
		opts = append(opts, tea.WithOutput(a.config.Output))
	}

	a.program = tea.NewProgram(a.model, opts...)

	// Watcher callbacks run on the watcher goroutine; Send hands them to
	// the Update loop so the engine is only touched there.
	if w := a.config.Watcher; w != nil {
		w.OnReload(func(c catalog.Catalog) {
			a.publish(event.NewCatalogReloadedEvent(w.Path(), len(c), ""))
			a.program.Send(catalogReloadedMsg{catalog: c})
		})
		w.OnError(func(err error) {
			a.publish(event.NewCatalogReloadedEvent(w.Path(), 0, err.Error()))
			a.program.Send(catalogErrorMsg{err: err})
		})
		w.Start()
		defer w.Stop()
	}

	a.logger.Info("tui started", "alt_screen", a.config.AltScreen)
	_, err := a.program.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		a.logger.Info("tui stopped", "reason", ctx.Err())
		return nil
	}
	a.logger.Info("tui stopped")
	return err
}

func (a *App) publish(e event.Event) {
	if a.config.Publisher != nil {
		a.config.Publisher.Publish(e)
	}
}

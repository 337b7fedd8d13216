package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/config"
	"github.com/Iron-Ham/limber/internal/event"
	"github.com/Iron-Ham/limber/internal/feedback"
	"github.com/Iron-Ham/limber/internal/logging"
	"github.com/Iron-Ham/limber/internal/routine"
	"github.com/Iron-Ham/limber/internal/runner"
	"github.com/Iron-Ham/limber/internal/tui"
	"github.com/Iron-Ham/limber/internal/tui/keymap"
	"github.com/Iron-Ham/limber/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a stretching routine",
	Long: `Start a stretching routine.

In a terminal this opens the interactive screen where you pick a routine
length and follow along. When stdout is not a terminal, or with --plain,
the routine runs immediately with line-oriented output and reads
commands from stdin: p pause/resume, n next, r reset, q quit.

Examples:
  # Pick a length interactively
  limber start

  # Run a five-stretch routine as plain text
  limber start --plain --length 5

  # Use your own exercises, in file order
  limber start --catalog ~/stretches.yaml --in-order`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

var (
	startLength  int
	startPlain   bool
	startCatalog string
	startInOrder bool
)

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().IntVarP(&startLength, "length", "l", 0, "Number of stretches (default: routine.default_length)")
	startCmd.Flags().BoolVar(&startPlain, "plain", false, "Plain text output instead of the interactive screen")
	startCmd.Flags().StringVar(&startCatalog, "catalog", "", "Exercise catalog YAML file (default: routine.catalog_file or built-in)")
	startCmd.Flags().BoolVar(&startInOrder, "in-order", false, "Take exercises in catalog order instead of shuffling")
}

// session bundles what both presenters share.
type session struct {
	cfg     *config.Config
	logger  *logging.Logger
	bus     *event.Bus
	catalog catalog.Catalog
	watcher *catalog.Watcher
	length  int
	source  string
	output  *tui.TerminalOutput
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	path := resolveCatalogPath(startCatalog, cfg)
	cat, err := loadCatalog(path)
	if err != nil {
		return err
	}

	bus := event.NewBus(logger)
	logEvents(bus, logger)

	cues := feedback.Config{
		Enabled:   cfg.Feedback.Enabled,
		Bell:      cfg.Feedback.Bell,
		UseSound:  cfg.Feedback.UseSound,
		SoundPath: cfg.Feedback.SoundPath,
	}
	// The TUI owns stdout, so the bell goes through its serialized output.
	plain := startPlain || !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd()))
	var bell io.Writer = os.Stdout
	var output *tui.TerminalOutput
	if !plain {
		output = tui.NewTerminalOutput(os.Stdout)
		bell = output
	}
	chime := feedback.New(cues, bell, logger)
	chime.Attach(bus)
	defer chime.Wait()
	defer chime.Detach()

	s := &session{
		cfg:     cfg,
		logger:  logger,
		bus:     bus,
		catalog: cat,
		length:  startLength,
		source:  "built-in",
		output:  output,
	}
	if s.length == 0 {
		s.length = cfg.Routine.DefaultLength
	}
	if path != "" {
		s.source = path
		if cfg.Routine.WatchCatalog {
			w, err := catalog.NewWatcher(appFs, path)
			if err != nil {
				return fmt.Errorf("failed to watch catalog: %w", err)
			}
			defer w.Stop()
			s.watcher = w
			s.catalog = w.Current()
		}
	}

	logger.Info("starting",
		"catalog", s.source,
		"exercises", len(s.catalog),
		"length", s.length,
		"feedback", cues.Describe())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if plain {
		return s.runPlain(ctx, cmd)
	}
	return s.runTUI(ctx)
}

// engineOptions are the engine settings shared by both presenters.
func (s *session) engineOptions(clock routine.Clock) []routine.Option {
	opts := []routine.Option{
		routine.WithClock(clock),
		routine.WithPublisher(s.bus),
		routine.WithLogger(s.logger),
		routine.WithDurations(durations(s.cfg)),
		routine.WithAllowedLengths(s.cfg.Routine.AllowedLengths),
	}
	if startInOrder {
		opts = append(opts, routine.WithSelector(routine.FixedSelector()))
	}
	return opts
}

func (s *session) runPlain(ctx context.Context, cmd *cobra.Command) error {
	clock := runner.NewTickerClock(time.Second, nil)
	engine, err := routine.NewEngine(s.catalog, s.engineOptions(clock)...)
	if err != nil {
		return err
	}

	r := runner.New(runner.Options{
		Engine:      engine,
		Clock:       clock,
		Bus:         s.bus,
		Length:      s.length,
		StatusEvery: s.cfg.TUI.PlainStatusIntervalSeconds,
		Watcher:     s.watcher,
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Logger:      s.logger,
	})
	return r.Run(ctx)
}

func (s *session) runTUI(ctx context.Context) error {
	km := keymap.DefaultKeymap()
	if len(s.cfg.TUI.Keys) > 0 {
		if err := km.Override(s.cfg.TUI.Keys); err != nil {
			return fmt.Errorf("invalid tui.keys: %w", err)
		}
	}

	theme := s.cfg.TUI.Theme
	if theme != "" && !styles.IsValidTheme(theme) {
		s.logger.Warn("unknown theme, using default", "theme", theme)
	}

	clock := tui.NewClock(tui.DefaultTickInterval)
	engine, err := routine.NewEngine(s.catalog, s.engineOptions(clock)...)
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Engine:         engine,
		Clock:          clock,
		Keymap:         km,
		Styles:         styles.ForTheme(theme),
		Logger:         s.logger,
		DefaultLength:  s.length,
		FlashThreshold: s.cfg.TUI.FlashThresholdSeconds,
		CatalogSource:  s.source,
	})

	app := tui.New(model, tui.AppConfig{
		AltScreen: s.cfg.TUI.AltScreen,
		Watcher:   s.watcher,
		Publisher: s.bus,
		Output:    s.output,
		Logger:    s.logger,
	})
	return app.Run(ctx)
}

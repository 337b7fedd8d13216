package cmd

import (
	"fmt"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/config"
	lerrors "github.com/Iron-Ham/limber/internal/errors"
	"github.com/Iron-Ham/limber/internal/event"
	"github.com/Iron-Ham/limber/internal/logging"
	"github.com/Iron-Ham/limber/internal/routine"
	"github.com/spf13/afero"
)

// appFs is the file system catalog commands read and write.
var appFs = afero.NewOsFs()

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, lerrors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// newLogger opens the debug log, or returns a no-op logger when logging is
// disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(cfg.Logging.ResolveDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return logger, nil
}

// resolveCatalogPath prefers the flag value over routine.catalog_file.
func resolveCatalogPath(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Routine.ResolveCatalogFile()
}

// loadCatalog reads path, or returns the built-in catalog when path is empty.
func loadCatalog(path string) (catalog.Catalog, error) {
	c, err := catalog.LoadOrDefault(appFs, path)
	if err != nil {
		return nil, lerrors.Wrap(err, "failed to load catalog")
	}
	return c, nil
}

// durations converts the routine section to engine durations.
func durations(cfg *config.Config) routine.Durations {
	return routine.Durations{
		Warmup:  cfg.Routine.WarmupSeconds,
		Stretch: cfg.Routine.StretchSeconds,
		Rest:    cfg.Routine.RestSeconds,
	}
}

// logEvents records every bus event in the debug log.
func logEvents(bus *event.Bus, logger *logging.Logger) {
	bus.SubscribeAll(func(e event.Event) {
		switch ev := e.(type) {
		case event.PhaseChangedEvent:
			logger.WithSession(ev.SessionID).WithPhase(ev.To).Info("entered phase",
				"from", ev.From, "exercise", ev.Exercise, "side", ev.Side, "index", ev.Index)
		case event.SideCompletedEvent:
			logger.WithSession(ev.SessionID).WithPhase("stretch").Info("side completed",
				"exercise", ev.Exercise, "side", ev.Side, "skipped", ev.Skipped, "final", ev.Final)
		case event.CatalogReloadedEvent:
			if ev.Error != "" {
				logger.Warn("catalog reload failed", "path", ev.Path, "error", ev.Error)
			} else {
				logger.Info("catalog reloaded", "path", ev.Path, "exercises", ev.Size)
			}
		default:
			logger.Debug("event", "type", e.EventType())
		}
	})
}

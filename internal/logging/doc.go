// Package logging provides structured logging for limber.
//
// It wraps log/slog to write JSON lines to a debug.log file in the
// configured log directory, with child loggers that carry the routine
// session and phase on every entry.
//
// # Basic Usage
//
//	logger, err := logging.NewLoggerWithRotation(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	sessionLogger := logger.WithSession(sessionID)
//	sessionLogger.Info("routine started", "length", 5)
//
// # Reading Logs
//
// [ReadLogs] and [FilterLogs] back the `limber logs` command:
//
//	entries, err := logging.ReadLogs(dir)
//	warnings := logging.FilterLogs(entries, logging.LogFilter{Level: "WARN"})
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a
// bytes.Buffer to assert on entries.
package logging

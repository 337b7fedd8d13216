package cmd

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Iron-Ham/limber/internal/logging"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the debug log",
	Long: `View and filter the JSON debug log written during routines.

Examples:
  # Show the last 50 entries
  limber logs

  # Show everything from one session
  limber logs -s 3f2a -n 0

  # Only warnings and errors from the last hour
  limber logs --level warn --since 1h

  # Search messages
  limber logs --grep "catalog|skipped"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsSessionID string
	logsTail      int
	logsLevel     string
	logsSince     string
	logsGrep      string
	logsPhase     string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "Session ID or prefix")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter messages matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsPhase, "phase", "", "Filter by routine phase (warmup/stretch/rest/complete)")
}

// buildLogFilter turns the command flags into a LogFilter.
func buildLogFilter(now time.Time) (logging.LogFilter, error) {
	filter := logging.LogFilter{
		SessionID: logsSessionID,
		Phase:     strings.ToLower(logsPhase),
	}

	if logsLevel != "" {
		level := strings.ToUpper(logsLevel)
		if logging.ParseLevel(level) != level {
			return filter, fmt.Errorf("invalid level %q: must be one of %s",
				logsLevel, strings.ToLower(strings.Join(logging.ValidLevels(), ", ")))
		}
		filter.Level = level
	}

	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return filter, fmt.Errorf("invalid --since duration: %w", err)
		}
		filter.Since = now.Add(-d)
	}

	if logsGrep != "" {
		re, err := regexp.Compile(logsGrep)
		if err != nil {
			return filter, fmt.Errorf("invalid --grep pattern: %w", err)
		}
		filter.Pattern = re
	}
	return filter, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filter, err := buildLogFilter(time.Now())
	if err != nil {
		return err
	}

	entries, err := logging.ReadLogs(cfg.Logging.ResolveDir())
	if err != nil {
		return err
	}
	entries = logging.FilterLogs(entries, filter)

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(out, logging.FormatEntry(e))
	}
	return nil
}

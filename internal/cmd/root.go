package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/limber/internal/config"
	lerrors "github.com/Iron-Ham/limber/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "limber",
	Short: "Guided stretching routines in your terminal",
	Long: `Limber walks you through a timed stretching routine: a short warm-up,
then each stretch held for a fixed time with rests in between. Two-sided
stretches are done left then right before moving on.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// Exit codes returned by ReportError.
const (
	ExitError = 1
	ExitUsage = 2
)

// ReportError writes err to w and returns the process exit code. Problems
// with the user's input (bad catalog, disallowed length) are reported by
// severity and exit with ExitUsage.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if lerrors.IsUserFacing(err) {
		fmt.Fprintf(w, "%s: %v\n", lerrors.GetSeverity(err), err)
		if lerrors.GetSeverity(err) == lerrors.SeverityError {
			return ExitError
		}
		return ExitUsage
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitError
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/limber/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/limber")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LIMBER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., LIMBER_ROUTINE_STRETCH_SECONDS for routine.stretch_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

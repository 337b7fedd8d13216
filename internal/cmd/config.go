package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Iron-Ham/limber/internal/config"
	"github.com/Iron-Ham/limber/internal/feedback"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify limber configuration",
	Long: `View or modify limber configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation and values are YAML, e.g.:
  limber config set routine.stretch_seconds 90
  limber config set routine.allowed_lengths "[3, 5, 7, 10]"
  limber config set feedback.use_sound true
  limber config set tui.keys.skip tab

The whole configuration is validated before the file is written.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/limber/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}
	fb := feedback.Config{
		Enabled:   cfg.Feedback.Enabled,
		Bell:      cfg.Feedback.Bell,
		UseSound:  cfg.Feedback.UseSound,
		SoundPath: cfg.Feedback.SoundPath,
	}
	fmt.Fprintf(out, "# Feedback: %s\n", fb.Describe())
	fmt.Fprintf(out, "# Logs: %s\n\n", cfg.Logging.ResolveDir())

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// settableKey reports whether key names a configuration value.
func settableKey(key string) bool {
	if strings.HasPrefix(key, "tui.keys.") && len(key) > len("tui.keys.") {
		return true
	}
	return slices.Contains(viper.AllKeys(), key)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	raw := args[1]

	if !settableKey(key) {
		return fmt.Errorf("unknown configuration key: %s\nRun 'limber config show' to see valid keys", key)
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if value == nil {
		value = ""
	}

	viper.Set(key, value)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

const configHeader = `# limber configuration
#
# routine.allowed_lengths   routine lengths offered on the setup screen
# routine.*_seconds         phase durations
# routine.catalog_file      YAML exercise catalog (see 'limber catalog --help')
# feedback.*                bell and sound played when a side finishes
# tui.theme                 default, nord, gruvbox or dracula
# tui.keys                  rebind commands, e.g. {skip: tab, reset: x}
# logging.*                 debug log written to logging.dir/debug.log

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'limber config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to encode default configuration: %w", err)
	}
	if err := os.WriteFile(configFile, append([]byte(configHeader), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", configFile)
	fmt.Fprintf(out, "  2. $HOME/.config/limber/config.yaml\n")
	fmt.Fprintln(out, "\nEnvironment variables: LIMBER_* (e.g., LIMBER_ROUTINE_STRETCH_SECONDS)")
	return nil
}

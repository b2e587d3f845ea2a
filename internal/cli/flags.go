package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ucs/internal/config"
)

// OutputFormat selects how a command prints its result.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ValidateOutputFormat rejects anything but table, json or yaml.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(strings.ToLower(format)) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (supported: table, json, yaml)", format)
	}
}

// CommandFlags holds the global flag values shared by every command.
type CommandFlags struct {
	// ConfigPath is the per-user configuration directory.
	ConfigPath string
	// Debug writes debug records to stderr.
	Debug bool
	// Quiet suppresses the progress spinner.
	Quiet bool
	// Width overrides the detected terminal width for tables.
	Width int
}

// RegisterCommonFlags registers the global flags on cmd.
//
// The registered flags are:
//   - --config-path: Configuration directory (env: UCS_CONFIG_PATH)
//   - --debug: Enable debug logging
//   - --quiet/-q: Suppress the progress spinner
//   - --width: Table width, 0 detects the terminal
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	defaultDir, err := config.GetDefaultConfigPath()
	if err != nil {
		defaultDir = ""
	}
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", "", fmt.Sprintf("Configuration directory (default %s, env: %s)", defaultDir, config.EnvConfigPath))
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress the progress indicator")
	cmd.PersistentFlags().IntVar(&flags.Width, "width", 0, "Table width in characters, 0 detects the terminal")
}

// RegisterFormatFlag registers --format with the table default.
func RegisterFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "format", string(OutputFormatTable), "Display data in table, json or yaml format")
}

// FlagValues returns the string form of every flag that was set on cmd,
// for the restricted character check.
func FlagValues(cmd *cobra.Command) []string {
	var values []string
	cmd.Flags().Visit(func(f *pflag.Flag) {
		values = append(values, f.Value.String())
	})
	return values
}

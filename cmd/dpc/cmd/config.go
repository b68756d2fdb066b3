package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the fully merged configuration (defaults, config file,
// env, CLI flags) as YAML, using the same tags cliconfig.Config carries for
// reading a config file, so the dump round-trips as a starting point for one.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Print the fully merged configuration (built-in defaults, config file,
environment variables, and CLI flags, in that precedence order) as YAML.
Useful for saving a starting point for a config file, or for debugging why a
run picked up unexpected settings.`,
	SilenceUsage: true,
	RunE:         runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
	return err
}

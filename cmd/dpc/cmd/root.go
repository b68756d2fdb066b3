package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/dpc/internal/cliconfig"
	"github.com/MeKo-Tech/dpc/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configLoader *cliconfig.Loader
	globalConfig *cliconfig.Config
	cfgFile      string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dpc",
	Short: "Design parity checker for comparing implementations against a reference design",
	Long: `dpc compares a reference design (an image, a rendered web page, or a Figma
frame) against an implementation and reports a weighted similarity score, a
set of typed findings, and optional diff artifacts. A quality subcommand
scores a single input for standalone design quality.

Examples:
  dpc compare --ref design.png --impl http://localhost:3000
  dpc quality --input http://localhost:3000
  dpc serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dpc version %s (commit %s, built %s)\n", ver, commit, date)
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/dpc, /etc/dpc)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().Bool("version", false, "print version information and exit")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
	if err := viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

// initConfig prepares the viper instance; validation happens per-command.
func initConfig() {
	configLoader = cliconfig.NewLoader()
}

// setupLogging configures the global slog logger from the resolved config.
func setupLogging(cfg *cliconfig.Config) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// GetConfig returns the merged configuration (defaults, config file, env,
// CLI flags), validating and logging setup as a side effect.
func GetConfig() *cliconfig.Config {
	loader := GetConfigLoader()

	var cfg *cliconfig.Config
	var err error
	if cfgFile != "" {
		cfg, err = loader.LoadWithFile(cfgFile)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}

	setupLogging(cfg)
	globalConfig = cfg
	return globalConfig
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *cliconfig.Loader {
	if configLoader == nil {
		configLoader = cliconfig.NewLoader()
	}
	return configLoader
}

package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "dpc"

	// EnvPrefix is the prefix for environment variables read by viper's
	// AutomaticEnv binding (e.g. DPC_THRESHOLD, DPC_VIEWPORT_WIDTH). This is
	// distinct from the MOCK_RENDER_* and FIGMA_* keys ingestion reads
	// directly via ingest.EnvSnapshot (§4.C, §6).
	EnvPrefix = "DPC"
)

// Loader handles loading configuration from files, environment variables,
// and cobra flag bindings, in that ascending precedence order.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader backed by the global viper
// instance, so flag bindings made via cobra's PersistentFlags keep working.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and defaults,
// then validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.LoadWithoutValidation()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithoutValidation loads configuration without running Validate; Load
// calls it and then validates the result.
func (l *Loader) LoadWithoutValidation() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Get returns a raw value from the configuration.
func (l *Loader) Get(key string) interface{} { return l.v.Get(key) }

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string { return l.v.GetString(key) }

// Set sets a value in the configuration, overriding file/env/default values.
func (l *Loader) Set(key string, value interface{}) { l.v.Set(key, value) }

// GetConfigFileUsed returns the path of the config file used, or "" if none.
func (l *Loader) GetConfigFileUsed() string { return l.v.ConfigFileUsed() }

// GetViper returns the underlying viper instance, for cobra flag binding.
func (l *Loader) GetViper() *viper.Viper { return l.v }

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "dpc"))
	}
	l.v.AddConfigPath("/etc/dpc")
	if configDir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		l.v.AddConfigPath(filepath.Join(configDir, "dpc"))
	}
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("artifacts_dir", d.ArtifactsDir)
	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("verbose", d.Verbose)

	l.v.SetDefault("viewport.width", d.Viewport.Width)
	l.v.SetDefault("viewport.height", d.Viewport.Height)

	l.v.SetDefault("weights.pixel", d.Weights.Pixel)
	l.v.SetDefault("weights.layout", d.Weights.Layout)
	l.v.SetDefault("weights.typography", d.Weights.Typography)
	l.v.SetDefault("weights.color", d.Weights.Color)
	l.v.SetDefault("weights.content", d.Weights.Content)

	l.v.SetDefault("threshold", d.Threshold)

	l.v.SetDefault("timeouts.navigation_ms", d.Timeouts.NavigationMS)
	l.v.SetDefault("timeouts.network_idle_ms", d.Timeouts.NetworkIdleMS)
	l.v.SetDefault("timeouts.process_ms", d.Timeouts.ProcessMS)

	l.v.SetDefault("figma.token_env", d.Figma.TokenEnv)
	l.v.SetDefault("figma.oauth_token_env", d.Figma.OAuthTokenEnv)

	l.v.SetDefault("server.host", d.Server.Host)
	l.v.SetDefault("server.port", d.Server.Port)
	l.v.SetDefault("server.cors_origin", d.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", d.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", d.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	l.v.SetDefault("server.metrics_enabled", d.Server.MetricsEnabled)
}

// GetConfigSearchPaths returns the paths where configuration files are
// searched, in order, for diagnostic output.
func GetConfigSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home, filepath.Join(home, ".config", "dpc"))
	}
	paths = append(paths, "/etc/dpc")
	if configDir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		paths = append(paths, filepath.Join(configDir, "dpc"))
	}
	return paths
}

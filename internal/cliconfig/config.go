// Package cliconfig is the viper-backed configuration loader shared by
// every cmd/dpc subcommand: viewport, metric weights, pass/fail threshold,
// ignore selectors, mock-renderer directories, Figma credentials, and
// server settings all live here, using the same layering
// (defaults -> file -> env -> flag overrides, validated before use).
package cliconfig

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/dpc/internal/filter"
	"github.com/MeKo-Tech/dpc/internal/ingest"
	"github.com/MeKo-Tech/dpc/internal/metrics"
	"github.com/MeKo-Tech/dpc/internal/view"
)

const (
	infoLevel  = "info"
	debugLevel = "debug"
	warnLevel  = "warn"
	errorLevel = "error"
)

// ViewportConfig is the target raster size every view is normalized to.
type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width" json:"width"`
	Height int `mapstructure:"height" yaml:"height" json:"height"`
}

// WeightsConfig mirrors view.ScoreWeights in a viper/yaml-friendly shape.
type WeightsConfig struct {
	Pixel      float64 `mapstructure:"pixel" yaml:"pixel" json:"pixel"`
	Layout     float64 `mapstructure:"layout" yaml:"layout" json:"layout"`
	Typography float64 `mapstructure:"typography" yaml:"typography" json:"typography"`
	Color      float64 `mapstructure:"color" yaml:"color" json:"color"`
	Content    float64 `mapstructure:"content" yaml:"content" json:"content"`
}

// TimeoutsConfig bounds a single render_url call, in milliseconds.
type TimeoutsConfig struct {
	NavigationMS  int `mapstructure:"navigation_ms" yaml:"navigation_ms" json:"navigation_ms"`
	NetworkIdleMS int `mapstructure:"network_idle_ms" yaml:"network_idle_ms" json:"network_idle_ms"`
	ProcessMS     int `mapstructure:"process_ms" yaml:"process_ms" json:"process_ms"`
}

// FigmaConfig names the environment variables the Figma credentials are read from.
type FigmaConfig struct {
	TokenEnv      string `mapstructure:"token_env" yaml:"token_env" json:"token_env"`
	OAuthTokenEnv string `mapstructure:"oauth_token_env" yaml:"oauth_token_env" json:"oauth_token_env"`
}

// ServerConfig configures the optional HTTP+WebSocket server.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled" yaml:"metrics_enabled" json:"metrics_enabled"`
}

// Config is the fully resolved configuration for any dpc subcommand.
type Config struct {
	ArtifactsDir  string             `mapstructure:"artifacts_dir" yaml:"artifacts_dir" json:"artifacts_dir"`
	LogLevel      string             `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose       bool               `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	Viewport      ViewportConfig     `mapstructure:"viewport" yaml:"viewport" json:"viewport"`
	Weights       WeightsConfig      `mapstructure:"weights" yaml:"weights" json:"weights"`
	Threshold     float64            `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	Timeouts      TimeoutsConfig     `mapstructure:"timeouts" yaml:"timeouts" json:"timeouts"`
	Metrics       []string           `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
	IgnoreRegions []view.IgnoreRegion `mapstructure:"-" yaml:"-" json:"-"`
	Selectors     string             `mapstructure:"selectors" yaml:"selectors" json:"selectors"`
	MockDir       string             `mapstructure:"mock_dir" yaml:"mock_dir" json:"mock_dir"`
	Figma         FigmaConfig        `mapstructure:"figma" yaml:"figma" json:"figma"`
	Server        ServerConfig       `mapstructure:"server" yaml:"server" json:"server"`
}

// DefaultConfig returns a configuration with sensible defaults, mirroring
// spec §3's default weights/threshold and a common 1280x800 viewport.
func DefaultConfig() Config {
	return Config{
		ArtifactsDir: "./artifacts",
		LogLevel:     infoLevel,
		Verbose:      false,
		Viewport:     ViewportConfig{Width: 1280, Height: 800},
		Weights: WeightsConfig{
			Pixel: 0.35, Layout: 0.25, Typography: 0.15, Color: 0.15, Content: 0.10,
		},
		Threshold: view.DefaultThreshold,
		Timeouts: TimeoutsConfig{
			NavigationMS:  30000,
			NetworkIdleMS: 5000,
			ProcessMS:     2000,
		},
		Figma: FigmaConfig{
			TokenEnv:      "FIGMA_TOKEN",
			OAuthTokenEnv: "FIGMA_OAUTH_TOKEN",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			MetricsEnabled:  true,
		},
	}
}

// Validate checks the configuration for internally inconsistent values,
// returning a plain descriptive error (not a dpcerr) on the first violation
// found.
func (c *Config) Validate() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	if err := c.validateWeights(); err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("invalid threshold: %f (must be in [0,1])", c.Threshold)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("invalid viewport: %dx%d (both dimensions must be positive)", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	for _, m := range c.Metrics {
		if !validMetric(m) {
			return fmt.Errorf("invalid metric %q (must be one of: pixel, layout, typography, color, content)", m)
		}
	}
	return nil
}

func (c *Config) validateLogLevel() error {
	valid := []string{debugLevel, infoLevel, warnLevel, errorLevel}
	for _, v := range valid {
		if c.LogLevel == v {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(valid, ", "))
}

func (c *Config) validateWeights() error {
	w := c.Weights
	for name, val := range map[string]float64{
		"pixel": w.Pixel, "layout": w.Layout, "typography": w.Typography, "color": w.Color, "content": w.Content,
	} {
		if val < 0 {
			return fmt.Errorf("invalid weight %s: %f (must be >= 0)", name, val)
		}
	}
	return nil
}

func validMetric(m string) bool {
	switch metrics.Metric(m) {
	case metrics.Pixel, metrics.Layout, metrics.Typography, metrics.Color, metrics.Content:
		return true
	default:
		return false
	}
}

// ToWeights converts WeightsConfig to the combiner's view.ScoreWeights.
func (c *Config) ToWeights() view.ScoreWeights {
	return view.ScoreWeights{
		Pixel:      c.Weights.Pixel,
		Layout:     c.Weights.Layout,
		Typography: c.Weights.Typography,
		Color:      c.Weights.Color,
		Content:    c.Weights.Content,
	}
}

// ToMetricSelection converts the configured metric names into the engine's
// []metrics.Metric form; an empty list defers to the engine's own
// activation policy.
func (c *Config) ToMetricSelection() []metrics.Metric {
	out := make([]metrics.Metric, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		out = append(out, metrics.Metric(m))
	}
	return out
}

// ToViewport converts ViewportConfig to ingest.Viewport.
func (c *Config) ToViewport() ingest.Viewport {
	return ingest.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// ToTimeouts converts TimeoutsConfig to ingest.Timeouts.
func (c *Config) ToTimeouts() ingest.Timeouts {
	return ingest.Timeouts{
		Navigation:  c.Timeouts.NavigationMS,
		NetworkIdle: c.Timeouts.NetworkIdleMS,
		Process:     c.Timeouts.ProcessMS,
	}
}

// ToSelectors parses the configured Selectors string into filter.Selector
// values via filter.ParseSelectors.
func (c *Config) ToSelectors() []filter.Selector {
	if strings.TrimSpace(c.Selectors) == "" {
		return nil
	}
	return filter.ParseSelectors(c.Selectors)
}

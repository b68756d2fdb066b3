package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearDpcEnvVars() {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DPC_") {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) > 0 {
				_ = os.Unsetenv(parts[0])
			}
		}
	}
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if loader.v == nil {
		t.Error("Loader viper instance is nil")
	}
}

func TestLoadWithNoConfigFileUsesDefaults(t *testing.T) {
	clearDpcEnvVars()

	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != infoLevel {
		t.Errorf("expected default log level %q, got %q", infoLevel, cfg.LogLevel)
	}
	if cfg.Viewport.Width != 1280 || cfg.Viewport.Height != 800 {
		t.Errorf("expected default viewport 1280x800, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.Threshold != 0.95 {
		t.Errorf("expected default threshold 0.95, got %f", cfg.Threshold)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadWithValidYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "dpc.yaml")

	yamlContent := `
log_level: debug
verbose: true
threshold: 0.9
viewport:
  width: 1920
  height: 1080
weights:
  pixel: 0.5
  layout: 0.2
  typography: 0.1
  color: 0.1
  content: 0.1
server:
  port: 9090
`
	if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := NewLoader().LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.LogLevel != debugLevel {
		t.Errorf("expected log level %q, got %q", debugLevel, cfg.LogLevel)
	}
	if !cfg.Verbose {
		t.Error("expected verbose=true")
	}
	if cfg.Threshold != 0.9 {
		t.Errorf("expected threshold 0.9, got %f", cfg.Threshold)
	}
	if cfg.Viewport.Width != 1920 || cfg.Viewport.Height != 1080 {
		t.Errorf("expected viewport 1920x1080, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.Weights.Pixel != 0.5 {
		t.Errorf("expected pixel weight 0.5, got %f", cfg.Weights.Pixel)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoadWithFileMissingReturnsError(t *testing.T) {
	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadWithInvalidThresholdFailsValidation(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "dpc.yaml")
	if err := os.WriteFile(configFile, []byte("threshold: 1.5\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := NewLoader().LoadWithFile(configFile)
	if err == nil {
		t.Fatal("expected validation error for out-of-range threshold")
	}
}

func TestGetConfigSearchPathsIncludesCurrentDir(t *testing.T) {
	paths := GetConfigSearchPaths()
	if len(paths) == 0 || paths[0] != "." {
		t.Errorf("expected first search path to be '.', got %v", paths)
	}
}

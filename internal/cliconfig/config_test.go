package cliconfig

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate, got: %v", err)
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose-ish"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Layout = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestValidateRejectsOutOfRangeThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 1.01
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for threshold > 1")
	}
}

func TestValidateRejectsZeroViewport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Viewport.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero-width viewport")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestValidateRejectsUnknownMetricName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = []string{"pixel", "sparkle"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown metric name")
	}
}

func TestToWeightsMatchesConfig(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.ToWeights()
	if w.Pixel != cfg.Weights.Pixel || w.Content != cfg.Weights.Content {
		t.Errorf("ToWeights() mismatch: %+v vs %+v", w, cfg.Weights)
	}
}

func TestToViewportMatchesConfig(t *testing.T) {
	cfg := DefaultConfig()
	vp := cfg.ToViewport()
	if vp.Width != cfg.Viewport.Width || vp.Height != cfg.Viewport.Height {
		t.Errorf("ToViewport() mismatch: %+v vs %+v", vp, cfg.Viewport)
	}
}

func TestToMetricSelectionEmptyWhenUnset(t *testing.T) {
	cfg := DefaultConfig()
	if sel := cfg.ToMetricSelection(); len(sel) != 0 {
		t.Errorf("expected empty selection, got %v", sel)
	}
}

func TestToSelectorsParsesCommaSeparatedList(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selectors = "#ads, .tracking-pixel, iframe"
	sel := cfg.ToSelectors()
	if len(sel) != 3 {
		t.Fatalf("expected 3 selectors, got %d", len(sel))
	}
}

func TestToSelectorsEmptyWhenBlank(t *testing.T) {
	cfg := DefaultConfig()
	if sel := cfg.ToSelectors(); sel != nil {
		t.Errorf("expected nil selectors for blank string, got %v", sel)
	}
}

// Package support implements the godog step vocabulary for the dpc CLI
// integration suite: it shells out to the built dpc binary and asserts on
// its stdout, stderr, and exit code.
package support

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// TestContext holds per-scenario state: the working directory, the last
// command's captured output, and the decoded JSON envelope (if any).
type TestContext struct {
	binPath string

	WorkingDir string

	LastOutput   string
	LastExitCode int

	Envelope map[string]interface{}
}

// NewTestContext creates a fresh scenario context rooted at a new temp dir.
func NewTestContext(binPath string) *TestContext {
	dir, err := os.MkdirTemp("", "dpc-integration-*")
	if err != nil {
		panic(fmt.Sprintf("failed to create scenario temp dir: %v", err))
	}
	return &TestContext{binPath: binPath, WorkingDir: dir}
}

// Cleanup removes the scenario's temp directory.
func (tc *TestContext) Cleanup() {
	_ = os.RemoveAll(tc.WorkingDir)
}

func (tc *TestContext) solidImageNamed(name string, w, h int, r, g, b, a int) error {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	c := color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(tc.WorkingDir, name)
	f, err := os.Create(path) //nolint:gosec // G304: fixed scenario-controlled path
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (tc *TestContext) runDpc(argLine string) error {
	args := strings.Fields(argLine)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, tc.binPath, args...)
	cmd.Dir = tc.WorkingDir
	cmd.Env = append(os.Environ(), "FIGMA_TOKEN=", "FIGMA_OAUTH_TOKEN=")

	out, err := cmd.CombinedOutput()
	tc.LastOutput = string(out)

	tc.LastExitCode = 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		tc.LastExitCode = exitErr.ExitCode()
	} else if err != nil {
		return fmt.Errorf("failed to run dpc: %w", err)
	}

	tc.Envelope = nil
	if trimmed := strings.TrimSpace(tc.LastOutput); trimmed != "" {
		var env map[string]interface{}
		if jsonErr := json.Unmarshal([]byte(trimmed), &env); jsonErr == nil {
			tc.Envelope = env
		}
	}
	return nil
}

func (tc *TestContext) exitCodeShouldBe(code int) error {
	if tc.LastExitCode != code {
		return fmt.Errorf("expected exit code %d, got %d (output: %s)", code, tc.LastExitCode, tc.LastOutput)
	}
	return nil
}

func (tc *TestContext) envelopeFieldShouldBe(path, expected string) error {
	got, err := tc.lookupField(path)
	if err != nil {
		return err
	}
	if fmt.Sprintf("%v", got) != expected {
		return fmt.Errorf("expected %s=%q, got %q", path, expected, got)
	}
	return nil
}

func (tc *TestContext) envelopeFieldShouldExceed(path string, threshold float64) error {
	got, err := tc.lookupField(path)
	if err != nil {
		return err
	}
	f, ok := got.(float64)
	if !ok {
		return fmt.Errorf("field %s is not numeric: %v", path, got)
	}
	if f < threshold {
		return fmt.Errorf("expected %s >= %v, got %v", path, threshold, f)
	}
	return nil
}

func (tc *TestContext) outputShouldContain(needle string) error {
	if !strings.Contains(tc.LastOutput, needle) {
		return fmt.Errorf("expected output to contain %q, got: %s", needle, tc.LastOutput)
	}
	return nil
}

// lookupField resolves a dotted path (e.g. "error.category") against the
// last decoded envelope.
func (tc *TestContext) lookupField(path string) (interface{}, error) {
	if tc.Envelope == nil {
		return nil, fmt.Errorf("no JSON envelope captured (output: %s)", tc.LastOutput)
	}
	var cur interface{} = tc.Envelope
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("path %q does not resolve: not an object at %q", path, part)
		}
		cur, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("path %q: field %q not found", path, part)
		}
	}
	return cur, nil
}

// RegisterSteps binds every step phrase used by features/*.feature.
func (tc *TestContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a (\d+)x(\d+) solid "\[(\d+),(\d+),(\d+),(\d+)\]" image named "([^"]+)"$`,
		func(w, h, r, g, b, a int, name string) error {
			return tc.solidImageNamed(name, w, h, r, g, b, a)
		})
	sc.Step(`^I run "([^"]*)"$`, tc.runDpc)
	sc.Step(`^the exit code should be (\d+)$`, tc.exitCodeShouldBe)
	sc.Step(`^the envelope field "([^"]+)" should be "([^"]*)"$`, tc.envelopeFieldShouldBe)
	sc.Step(`^the envelope field "([^"]+)" should be at least ([\d.]+)$`, func(path, val string) error {
		var f float64
		if _, err := fmt.Sscanf(val, "%f", &f); err != nil {
			return err
		}
		return tc.envelopeFieldShouldExceed(path, f)
	})
	sc.Step(`^the output should contain "([^"]*)"$`, tc.outputShouldContain)
}

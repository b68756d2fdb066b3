package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MeKo-Tech/dpc/internal/filter"
	"github.com/MeKo-Tech/dpc/internal/ingest"
	"github.com/MeKo-Tech/dpc/internal/runner"
	"github.com/spf13/cobra"
)

// compareCmd runs a single compare job and prints the compare envelope.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a reference design against an implementation",
	Long: `Compare a reference (an image, a rendered web page, or a Figma frame) against
an implementation, reporting a weighted similarity score, per-metric
breakdowns, and a truncated list of the most significant issues.

Examples:
  dpc compare --ref design.png --impl http://localhost:3000
  dpc compare --ref https://www.figma.com/file/FILE123/Mock?node-id=1-2 --impl impl.png`,
	SilenceUsage: true,
	RunE:         runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("ref", "", "reference resource: image path, URL, or Figma URL")
	compareCmd.Flags().String("impl", "", "implementation resource: image path, URL, or Figma URL")
	compareCmd.Flags().Int("viewport-width", 0, "viewport width override (0 = use configured default)")
	compareCmd.Flags().Int("viewport-height", 0, "viewport height override (0 = use configured default)")
	compareCmd.Flags().Float64("threshold", 0, "pass/fail similarity threshold override (0 = use configured default)")
	compareCmd.Flags().String("metrics", "", "comma-separated metric selection override (pixel,layout,typography,color,content)")
	compareCmd.Flags().String("selectors", "", "comma-separated selectors of DOM nodes to ignore")
	compareCmd.Flags().Bool("artifacts", false, "emit diff artifacts (overlay image, PDF report, manifest)")
	compareCmd.Flags().String("artifacts-dir", "", "directory for artifacts (default: configured artifacts_dir)")
	_ = compareCmd.MarkFlagRequired("ref")
	_ = compareCmd.MarkFlagRequired("impl")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	refValue, _ := cmd.Flags().GetString("ref")
	implValue, _ := cmd.Flags().GetString("impl")

	vp := cfg.ToViewport()
	if w, _ := cmd.Flags().GetInt("viewport-width"); w > 0 {
		vp.Width = w
	}
	if h, _ := cmd.Flags().GetInt("viewport-height"); h > 0 {
		vp.Height = h
	}

	threshold := cfg.Threshold
	if t, _ := cmd.Flags().GetFloat64("threshold"); t > 0 {
		threshold = t
	}

	selection := cfg.ToMetricSelection()
	if m, _ := cmd.Flags().GetString("metrics"); m != "" {
		tmp := *cfg
		tmp.Metrics = splitCSV(m)
		selection = tmp.ToMetricSelection()
	}

	selectors := cfg.ToSelectors()
	if sel, _ := cmd.Flags().GetString("selectors"); sel != "" {
		selectors = filter.ParseSelectors(sel)
	}

	artifactsDir := cfg.ArtifactsDir
	if dir, _ := cmd.Flags().GetString("artifacts-dir"); dir != "" {
		artifactsDir = dir
	}
	emitArtifacts, _ := cmd.Flags().GetBool("artifacts")

	env := ingest.EnvSnapshot{Lookup: os.LookupEnv}
	creds := ingest.FigmaCredentials{
		Token:      env.Get(cfg.Figma.TokenEnv),
		OAuthToken: env.Get(cfg.Figma.OAuthTokenEnv),
	}
	timeouts := cfg.ToTimeouts()

	opts := runner.CompareOptions{
		Ref:  parseResource(refValue),
		Impl: parseResource(implValue),
		RefOpts: ingest.Options{
			Viewport: vp, Timeouts: timeouts, ArtifactsDir: artifactsDir, Prefix: "ref",
			Env: env, FigmaCreds: creds, MockDir: cfg.MockDir,
		},
		ImplOpts: ingest.Options{
			Viewport: vp, Timeouts: timeouts, ArtifactsDir: artifactsDir, Prefix: "impl",
			Env: env, FigmaCreds: creds, MockDir: cfg.MockDir,
		},
		Selection:     selection,
		Weights:       cfg.ToWeights(),
		Threshold:     threshold,
		Selectors:     selectors,
		IgnoreRegions: nil,
		EmitArtifacts: emitArtifacts,
		ArtifactsDir:  artifactsDir,
	}

	result, err := runner.Compare(cmd.Context(), opts)
	if err != nil {
		return emitResultAndExit(cmd, runner.ToErrorEnvelope(err), runner.ExitCode(err, false))
	}
	return emitResultAndExit(cmd, result, runner.ExitCode(nil, !result.Passed))
}

// emitResultAndExit writes env as indented JSON to stdout and exits the
// process with code (exit codes are specified behavior, §6, so this command
// calls os.Exit directly rather than returning a cobra error).
func emitResultAndExit(cmd *cobra.Command, env interface{}, code int) error {
	bts, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output envelope: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(bts)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

package cmd

import (
	"os"

	"github.com/MeKo-Tech/dpc/internal/filter"
	"github.com/MeKo-Tech/dpc/internal/ingest"
	"github.com/MeKo-Tech/dpc/internal/runner"
	"github.com/spf13/cobra"
)

// qualityCmd scores a single input for standalone design quality.
var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Score a single input for standalone design quality",
	Long: `Score a single input (an image, a rendered web page, or a Figma frame) using
structural heuristics: alignment consistency, spacing regularity, and
text/heading hierarchy, with no reference to compare against.

Examples:
  dpc quality --input http://localhost:3000
  dpc quality --input design.png`,
	SilenceUsage: true,
	RunE:         runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)

	qualityCmd.Flags().String("input", "", "resource to score: image path, URL, or Figma URL")
	qualityCmd.Flags().Int("viewport-width", 0, "viewport width override (0 = use configured default)")
	qualityCmd.Flags().Int("viewport-height", 0, "viewport height override (0 = use configured default)")
	qualityCmd.Flags().String("selectors", "", "comma-separated selectors of DOM nodes to ignore")
	qualityCmd.Flags().String("artifacts-dir", "", "directory for the ingested screenshot (default: configured artifacts_dir)")
	_ = qualityCmd.MarkFlagRequired("input")
}

func runQuality(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	inputValue, _ := cmd.Flags().GetString("input")

	vp := cfg.ToViewport()
	if w, _ := cmd.Flags().GetInt("viewport-width"); w > 0 {
		vp.Width = w
	}
	if h, _ := cmd.Flags().GetInt("viewport-height"); h > 0 {
		vp.Height = h
	}

	selector := cfg.ToSelectors()
	if sel, _ := cmd.Flags().GetString("selectors"); sel != "" {
		selector = filter.ParseSelectors(sel)
	}

	artifactsDir := cfg.ArtifactsDir
	if dir, _ := cmd.Flags().GetString("artifacts-dir"); dir != "" {
		artifactsDir = dir
	}

	env := ingest.EnvSnapshot{Lookup: os.LookupEnv}
	creds := ingest.FigmaCredentials{
		Token:      env.Get(cfg.Figma.TokenEnv),
		OAuthToken: env.Get(cfg.Figma.OAuthTokenEnv),
	}

	opts := runner.QualityOptions{
		Input: parseResource(inputValue),
		Opts: ingest.Options{
			Viewport: vp, Timeouts: cfg.ToTimeouts(), ArtifactsDir: artifactsDir, Prefix: "input",
			Env: env, FigmaCreds: creds, MockDir: cfg.MockDir,
		},
		Selector: selector,
	}

	result, err := runner.Quality(cmd.Context(), opts)
	if err != nil {
		return emitResultAndExit(cmd, runner.ToErrorEnvelope(err), runner.ExitCode(err, false))
	}
	return emitResultAndExit(cmd, result, runner.ExitCode(nil, false))
}

package runner

import (
	"context"

	"github.com/MeKo-Tech/dpc/internal/artifact"
	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/filter"
	"github.com/MeKo-Tech/dpc/internal/ingest"
	"github.com/MeKo-Tech/dpc/internal/metrics"
	"github.com/MeKo-Tech/dpc/internal/quality"
	"github.com/MeKo-Tech/dpc/internal/summary"
	"github.com/MeKo-Tech/dpc/internal/view"
)

// CompareOptions bundles everything one compare run needs. RefOpts/ImplOpts
// carry the per-side ingestion options (viewport, backend, mock dir, env,
// progress callback); both must share the same Viewport for the envelope's
// viewport field to be meaningful.
type CompareOptions struct {
	Ref, Impl         ingest.Resource
	RefOpts, ImplOpts ingest.Options
	Selection         []metrics.Metric
	Weights           view.ScoreWeights
	Threshold         float64
	Selectors         []filter.Selector
	IgnoreRegions     []view.IgnoreRegion
	EmitArtifacts     bool
	ArtifactsDir      string
}

// Compare runs the full A->H pipeline for one compare job: concurrent
// ingestion of both sides, DOM filtering and ignore-region masking, metric
// selection and scoring, weighted combination, summary rendering, and
// (optionally) diff-artifact emission.
func Compare(ctx context.Context, opts CompareOptions) (*CompareEnvelope, error) {
	refView, implView, err := ingest.NormalizeBoth(ctx, opts.Ref, opts.Impl, opts.RefOpts, opts.ImplOpts)
	if err != nil {
		return nil, err
	}

	refView, err = applyFiltering(refView, opts, "ref")
	if err != nil {
		return nil, err
	}
	implView, err = applyFiltering(implView, opts, "impl")
	if err != nil {
		return nil, err
	}

	refImg, err := ingest.LoadScreenshot(refView.ScreenshotPath)
	if err != nil {
		return nil, err
	}
	implImg, err := ingest.LoadScreenshot(implView.ScreenshotPath)
	if err != nil {
		return nil, err
	}

	scores, err := metrics.Run(refImg, implImg, refView, implView, opts.Selection)
	if err != nil {
		return nil, err
	}

	similarity := metrics.Combine(scores, opts.Weights)
	passed := metrics.Passed(similarity, opts.Threshold)

	topIssues := summary.Truncate(summary.BuildCompare(scores, similarity, opts.Threshold, passed), 5)

	env := &CompareEnvelope{
		Version:      EnvelopeVersion,
		Mode:         "compare",
		RefResource:  ResourceDescriptor{Kind: string(opts.Ref.Kind), Value: opts.Ref.Value},
		ImplResource: ResourceDescriptor{Kind: string(opts.Impl.Kind), Value: opts.Impl.Value},
		Viewport:     ViewportDescriptor{Width: opts.RefOpts.Viewport.Width, Height: opts.RefOpts.Viewport.Height},
		Similarity:   similarity,
		Threshold:    opts.Threshold,
		Passed:       passed,
		Metrics:      scores,
		Summary:      SummaryEnvelope{TopIssues: topIssues},
	}

	if opts.EmitArtifacts {
		manifest, err := artifact.Emit(refImg, implImg, refView, implView, topIssues, opts.ArtifactsDir)
		if err != nil {
			return nil, err
		}
		env.Artifacts = &manifest
	}

	return env, nil
}

func applyFiltering(v *view.NormalizedView, opts CompareOptions, prefix string) (*view.NormalizedView, error) {
	if len(opts.Selectors) > 0 {
		v = filter.ApplyDomFilter(v, opts.Selectors)
	}
	if len(opts.IgnoreRegions) > 0 {
		masked, err := filter.ApplyIgnoreRegions(v, opts.IgnoreRegions, opts.ArtifactsDir, prefix)
		if err != nil {
			return nil, err
		}
		v = masked
	}
	return v, nil
}

// QualityOptions bundles everything one standalone quality run needs.
type QualityOptions struct {
	Input    ingest.Resource
	Opts     ingest.Options
	Selector []filter.Selector
}

// Quality runs ingestion followed by the quality heuristics (component F)
// on a single input, with no reference side and no pass/fail threshold.
func Quality(ctx context.Context, opts QualityOptions) (*QualityEnvelope, error) {
	v, err := ingest.Normalize(ctx, opts.Input, opts.Opts)
	if err != nil {
		return nil, err
	}
	if len(opts.Selector) > 0 {
		v = filter.ApplyDomFilter(v, opts.Selector)
	}

	result := quality.Evaluate(v)

	findings := make([]FindingEnvelope, 0, len(result.Findings))
	for _, f := range result.Findings {
		findings = append(findings, FindingEnvelope{
			Severity:    string(f.Severity),
			FindingType: f.Kind,
			Message:     f.Message,
		})
	}

	return &QualityEnvelope{
		Mode:     "quality",
		Input:    ResourceDescriptor{Kind: string(opts.Input.Kind), Value: opts.Input.Value},
		Viewport: ViewportDescriptor{Width: opts.Opts.Viewport.Width, Height: opts.Opts.Viewport.Height},
		Score:    result.Score,
		Findings: findings,
	}, nil
}

// ToErrorEnvelope converts any error into the error-mode output envelope
// (§6). Non-dpcerr errors are classified Unknown with no remediation.
func ToErrorEnvelope(err error) ErrorEnvelope {
	var dpcErr *dpcerr.Error
	if e, ok := err.(*dpcerr.Error); ok {
		dpcErr = e
	}
	if dpcErr == nil {
		return ErrorEnvelope{Mode: "error", Error: ErrorDetail{Category: string(dpcerr.Unknown), Message: err.Error()}}
	}
	return ErrorEnvelope{
		Mode: "error",
		Error: ErrorDetail{
			Category:    string(dpcErr.Category),
			Message:     dpcErr.Message,
			Remediation: dpcErr.Remediation,
		},
	}
}

// ExitCode maps an error to the caller's process exit code per §6: 2 is any
// fatal error, 1 is a threshold failure, and 0 is a successful run.
func ExitCode(err error, thresholdFailure bool) int {
	if err != nil {
		return 2
	}
	if thresholdFailure {
		return 1
	}
	return 0
}

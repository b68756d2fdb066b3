// Package runner is the shared orchestration core both cmd/dpc and
// internal/server wrap: it wires ingestion, filtering, the metric engine,
// quality heuristics, the summary builder, and the optional artifact
// generator into the two top-level operations (compare, quality) and their
// JSON output envelopes, so the CLI and the HTTP server call into one
// orchestration layer instead of duplicating it.
package runner

import (
	"github.com/MeKo-Tech/dpc/internal/artifact"
	"github.com/MeKo-Tech/dpc/internal/view"
)

// EnvelopeVersion is the schema version stamped on every compare/quality
// envelope (§6).
const EnvelopeVersion = "1"

// ResourceDescriptor echoes one side's resource kind/value in the output
// envelope, without exposing internal render details.
type ResourceDescriptor struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// ViewportDescriptor echoes the viewport used for a run.
type ViewportDescriptor struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SummaryEnvelope carries the bounded top-issues list (§4.H).
type SummaryEnvelope struct {
	TopIssues []string `json:"topIssues"`
}

// CompareEnvelope is the compare-mode output envelope (§6).
type CompareEnvelope struct {
	Version      string              `json:"version"`
	Mode         string              `json:"mode"`
	RefResource  ResourceDescriptor  `json:"refResource"`
	ImplResource ResourceDescriptor  `json:"implResource"`
	Viewport     ViewportDescriptor  `json:"viewport"`
	Similarity   float64             `json:"similarity"`
	Threshold    float64             `json:"threshold"`
	Passed       bool                `json:"passed"`
	Metrics      view.MetricScores   `json:"metrics"`
	Summary      SummaryEnvelope     `json:"summary"`
	Artifacts    *artifact.Manifest  `json:"artifacts,omitempty"`
}

// FindingEnvelope is one quality finding rendered for the output envelope.
type FindingEnvelope struct {
	Severity    string `json:"severity"`
	FindingType string `json:"findingType"`
	Message     string `json:"message"`
}

// QualityEnvelope is the quality-mode output envelope (§6).
type QualityEnvelope struct {
	Mode     string              `json:"mode"`
	Input    ResourceDescriptor  `json:"input"`
	Viewport ViewportDescriptor  `json:"viewport"`
	Score    float64             `json:"score"`
	Findings []FindingEnvelope   `json:"findings"`
}

// ErrorDetail is the typed body of an error envelope.
type ErrorDetail struct {
	Category    string `json:"category"`
	Message     string `json:"message"`
	Remediation string `json:"remediation,omitempty"`
}

// ErrorEnvelope is the error-mode output envelope (§6).
type ErrorEnvelope struct {
	Mode  string      `json:"mode"`
	Error ErrorDetail `json:"error"`
}

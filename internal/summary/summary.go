// Package summary renders MetricScores/quality findings into the bounded,
// human-readable string lists surfaced in the output envelope (§4.H).
package summary

import (
	"fmt"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// maxLines is the builder's own internal budget; callers additionally
// truncate to 5 for display (§4.H), via Truncate.
const maxLines = 20

// BuildCompare renders a compare-mode summary: the head line is always
// present and reports overall pass/fail; each metric that scored below 0.9
// adds follow-up lines derived from its typed diffs. Pixel, typography and
// color add one count line each; layout and content add lines only for
// nonzero missing/extra counts, so they can add none.
func BuildCompare(scores view.MetricScores, similarity, threshold float64, passed bool) []string {
	lines := []string{headLine(passed, similarity, threshold)}
	lines = append(lines, metricLines(scores)...)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

func headLine(passed bool, similarity, threshold float64) string {
	status := "failed"
	if passed {
		status = "passed"
	}
	return fmt.Sprintf("Design parity check %s (%.1f%% similarity, threshold: %.1f%%)", status, similarity*100, threshold*100)
}

func metricLines(scores view.MetricScores) []string {
	var lines []string

	if scores.Pixel != nil && scores.Pixel.Score < 0.9 {
		lines = append(lines, fmt.Sprintf("%d pixel diff region(s) detected", len(scores.Pixel.Issues)))
	}

	if scores.Layout != nil && scores.Layout.Score < 0.9 {
		var missing, extra int
		for _, iss := range scores.Layout.Issues {
			switch iss.Kind {
			case view.LayoutMissingElement:
				missing++
			case view.LayoutExtraElement:
				extra++
			}
		}
		if missing > 0 {
			lines = append(lines, fmt.Sprintf("%d element(s) missing from implementation", missing))
		}
		if extra > 0 {
			lines = append(lines, fmt.Sprintf("%d extra element(s) in implementation", extra))
		}
	}

	if scores.Typography != nil && scores.Typography.Score < 0.9 {
		lines = append(lines, fmt.Sprintf("%d typography issue(s) found", len(scores.Typography.Issues)))
	}

	if scores.Color != nil && scores.Color.Score < 0.9 {
		lines = append(lines, fmt.Sprintf("%d color palette shift(s) found", len(scores.Color.Issues)))
	}

	if scores.Content != nil && scores.Content.Score < 0.9 {
		if n := len(scores.Content.MissingText); n > 0 {
			lines = append(lines, fmt.Sprintf("%d text string(s) missing from implementation", n))
		}
		if n := len(scores.Content.ExtraText); n > 0 {
			lines = append(lines, fmt.Sprintf("%d extra text string(s) in implementation", n))
		}
	}

	return lines
}

// BuildQuality renders the quality-mode head line; quality has a score but
// no pass/fail threshold.
func BuildQuality(score float64) string {
	return fmt.Sprintf("Design quality score: %.1f%%", score*100)
}

// Truncate bounds lines to n entries, the caller's display budget.
func Truncate(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}

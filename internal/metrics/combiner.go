package metrics

import "github.com/MeKo-Tech/dpc/internal/view"

// Combine implements §4.E's combiner: a weighted mean over the metric slots
// that actually ran, renormalized by the weights of present slots. An
// all-absent MetricScores combines to 0.0.
func Combine(scores view.MetricScores, weights view.ScoreWeights) float64 {
	var num, den float64
	if scores.Pixel != nil {
		num += weights.Pixel * scores.Pixel.Score
		den += weights.Pixel
	}
	if scores.Layout != nil {
		num += weights.Layout * scores.Layout.Score
		den += weights.Layout
	}
	if scores.Typography != nil {
		num += weights.Typography * scores.Typography.Score
		den += weights.Typography
	}
	if scores.Color != nil {
		num += weights.Color * scores.Color.Score
		den += weights.Color
	}
	if scores.Content != nil {
		num += weights.Content * scores.Content.Score
		den += weights.Content
	}
	if den == 0 {
		return 0
	}
	return clamp01(num / den)
}

// Passed reports whether combined meets or exceeds threshold.
func Passed(combined, threshold float64) bool {
	return combined >= threshold
}

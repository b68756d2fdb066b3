package summary

import (
	"testing"

	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCompareHeadLineFormat(t *testing.T) {
	lines := BuildCompare(view.MetricScores{}, 0.873, 0.95, false)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Design parity check failed (87.3% similarity, threshold: 95.0%)", lines[0])
}

func TestBuildComparePassedHeadLine(t *testing.T) {
	lines := BuildCompare(view.MetricScores{}, 0.995, 0.95, true)
	assert.Equal(t, "Design parity check passed (99.5% similarity, threshold: 95.0%)", lines[0])
}

func TestBuildCompareSkipsMetricsScoringAbove09(t *testing.T) {
	scores := view.MetricScores{Pixel: &view.PixelResult{Score: 0.99}}
	lines := BuildCompare(scores, 0.99, 0.95, true)
	assert.Len(t, lines, 1, "a metric scoring >=0.9 contributes no follow-up line")
}

func TestBuildCompareLayoutMissingAndExtraCounts(t *testing.T) {
	scores := view.MetricScores{Layout: &view.LayoutResult{
		Score: 0.5,
		Issues: []view.LayoutIssue{
			{Kind: view.LayoutMissingElement, RefID: "a"},
			{Kind: view.LayoutMissingElement, RefID: "b"},
			{Kind: view.LayoutExtraElement, ImplID: "c"},
		},
	}}
	lines := BuildCompare(scores, 0.5, 0.95, false)
	assert.Contains(t, lines, "2 element(s) missing from implementation")
	assert.Contains(t, lines, "1 extra element(s) in implementation")
}

func TestTruncateBoundsToN(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f"}
	assert.Len(t, Truncate(lines, 5), 5)
	assert.Equal(t, lines, Truncate(lines, 10))
}

func TestBuildQualityFormat(t *testing.T) {
	assert.Equal(t, "Design quality score: 62.0%", BuildQuality(0.62))
}

package metrics

import (
	"testing"

	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styledNode(id string, box view.BoundingBox, style view.ComputedStyle) view.DomNode {
	s := style
	return view.DomNode{ID: id, Tag: "p", Box: box, Style: &s}
}

func TestTypographyMetricNoStyledPairsReturnsNil(t *testing.T) {
	ref := domView(100, 100, view.DomNode{ID: "a", Tag: "p", Box: view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}})
	impl := domView(100, 100, view.DomNode{ID: "a2", Tag: "p", Box: view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}})
	assert.Nil(t, TypographyMetric(ref, impl))
}

func TestTypographyMetricIdenticalStyleNoIssues(t *testing.T) {
	style := view.ComputedStyle{FontFamily: "Arial", FontSize: 16, FontWeight: 400, LineHeight: 20}
	ref := domView(100, 100, styledNode("a", view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}, style))
	impl := domView(100, 100, styledNode("a2", view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}, style))

	res := TypographyMetric(ref, impl)
	require.NotNil(t, res)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 1.0, res.Score)
}

func TestTypographyMetricDetectsAllFourIssueKinds(t *testing.T) {
	refStyle := view.ComputedStyle{FontFamily: "\"Arial\"", FontSize: 16, FontWeight: 400, LineHeight: 20}
	implStyle := view.ComputedStyle{FontFamily: "Georgia", FontSize: 20, FontWeight: 700, LineHeight: 30}
	ref := domView(100, 100, styledNode("a", view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}, refStyle))
	impl := domView(100, 100, styledNode("a2", view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}, implStyle))

	res := TypographyMetric(ref, impl)
	require.NotNil(t, res)
	require.Len(t, res.Issues, 4)
	assert.Less(t, res.Score, 1.0)
}

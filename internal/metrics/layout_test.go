package metrics

import (
	"testing"

	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domView(w, h int, nodes ...view.DomNode) *view.NormalizedView {
	return &view.NormalizedView{Kind: view.KindURL, Width: w, Height: h, Dom: &view.DomSnapshot{Nodes: nodes}}
}

func TestLayoutMetricRequiresStructuralMetadataBothSides(t *testing.T) {
	ref := domView(100, 100, view.DomNode{ID: "a", Tag: "div", Box: view.BoundingBox{X: 0, Y: 0, W: 10, H: 10}})
	implNoDom := &view.NormalizedView{Kind: view.KindImage, Width: 100, Height: 100}
	assert.Nil(t, LayoutMetric(ref, implNoDom))
}

func TestLayoutMetricMatchedPairNoIssues(t *testing.T) {
	ref := domView(100, 100, view.DomNode{ID: "a", Tag: "div", Box: view.BoundingBox{X: 10, Y: 10, W: 20, H: 20}})
	impl := domView(100, 100, view.DomNode{ID: "a2", Tag: "div", Box: view.BoundingBox{X: 10, Y: 10, W: 20, H: 20}})

	res := LayoutMetric(ref, impl)
	require.NotNil(t, res)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 1.0, res.Score)
}

func TestLayoutMetricMissingAndExtraElements(t *testing.T) {
	ref := domView(100, 100,
		view.DomNode{ID: "a", Tag: "div", Box: view.BoundingBox{X: 0, Y: 0, W: 20, H: 20}},
		view.DomNode{ID: "b", Tag: "span", Box: view.BoundingBox{X: 50, Y: 50, W: 10, H: 10}},
	)
	impl := domView(100, 100,
		view.DomNode{ID: "a2", Tag: "div", Box: view.BoundingBox{X: 0, Y: 0, W: 20, H: 20}},
		view.DomNode{ID: "c", Tag: "button", Box: view.BoundingBox{X: 70, Y: 70, W: 5, H: 5}},
	)

	res := LayoutMetric(ref, impl)
	require.NotNil(t, res)
	var kinds []view.LayoutIssueKind
	for _, iss := range res.Issues {
		kinds = append(kinds, iss.Kind)
	}
	assert.Contains(t, kinds, view.LayoutMissingElement)
	assert.Contains(t, kinds, view.LayoutExtraElement)
}

func TestLayoutMetricPositionShiftAndSizeChange(t *testing.T) {
	ref := domView(100, 100, view.DomNode{ID: "a", Tag: "div", Box: view.BoundingBox{X: 0, Y: 0, W: 40, H: 40}})
	impl := domView(100, 100, view.DomNode{ID: "a2", Tag: "div", Box: view.BoundingBox{X: 1, Y: 1, W: 48, H: 48}})

	res := LayoutMetric(ref, impl)
	require.NotNil(t, res)
	var kinds []view.LayoutIssueKind
	for _, iss := range res.Issues {
		kinds = append(kinds, iss.Kind)
	}
	assert.Contains(t, kinds, view.LayoutPositionShift)
	assert.Contains(t, kinds, view.LayoutSizeChange)
}

package metrics

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// LayoutMetric requires DOM or Figma structural metadata on both sides
// (§4.E). Elements are matched by tag/node_type equality and IoU>=0.5;
// unmatched reference elements are MissingElement, unmatched implementation
// elements are ExtraElement, matched pairs whose centroid shifted more than
// 1% of the viewport are PositionShift, and pairs whose width or height
// changed by more than 10% are SizeChange.
func LayoutMetric(ref, impl *view.NormalizedView) *view.LayoutResult {
	if !ref.HasStructuralMetadata() || !impl.HasStructuralMetadata() {
		return nil
	}
	refEls := elementsFromView(ref)
	implEls := elementsFromView(impl)
	pairs, missingRef, extraImpl := matchElements(refEls, implEls)

	var issues []view.LayoutIssue
	for _, r := range missingRef {
		issues = append(issues, view.LayoutIssue{
			Kind:   view.LayoutMissingElement,
			RefID:  r.ID,
			Detail: "present in reference, absent from implementation",
		})
	}
	for _, m := range extraImpl {
		issues = append(issues, view.LayoutIssue{
			Kind:   view.LayoutExtraElement,
			ImplID: m.ID,
			Detail: "present in implementation, absent from reference",
		})
	}
	for _, p := range pairs {
		rcx, rcy := p.Ref.Box.Centroid()
		icx, icy := p.Impl.Box.Centroid()
		shift := math.Hypot(rcx-icx, rcy-icy)
		if shift > 0.01 {
			issues = append(issues, view.LayoutIssue{
				Kind:   view.LayoutPositionShift,
				RefID:  p.Ref.ID,
				ImplID: p.Impl.ID,
				Detail: fmt.Sprintf("centroid shifted %.4f of viewport", shift),
			})
		}
		wDelta := relDelta(p.Ref.Box.W, p.Impl.Box.W)
		hDelta := relDelta(p.Ref.Box.H, p.Impl.Box.H)
		if wDelta > 0.10 || hDelta > 0.10 {
			issues = append(issues, view.LayoutIssue{
				Kind:   view.LayoutSizeChange,
				RefID:  p.Ref.ID,
				ImplID: p.Impl.ID,
				Detail: fmt.Sprintf("size delta w=%.1f%% h=%.1f%%", wDelta*100, hDelta*100),
			})
		}
	}

	total := len(refEls)
	if len(implEls) > total {
		total = len(implEls)
	}
	score := 1.0
	if total > 0 {
		score = 1 - float64(len(issues))/float64(total)
	}
	return &view.LayoutResult{Score: clamp01(score), Issues: issues}
}

// relDelta is the relative delta of b from a; a==b==0 is treated as no
// change, a==0 and b!=0 as a full-scale (100%) change.
func relDelta(a, b float64) float64 {
	if a == 0 {
		if b == 0 {
			return 0
		}
		return 1
	}
	return math.Abs(a-b) / a
}

// Package quality implements the standalone design-quality heuristics: a
// pure function of a single NormalizedView that returns a bounded score plus
// typed findings, independent of any reference comparison.
package quality

import "github.com/MeKo-Tech/dpc/internal/view"

// Finding kinds, named by what they report rather than by an internal tag.
const (
	KindMissingHierarchy      = "MissingHierarchy"
	KindAlignmentInconsistent = "AlignmentInconsistent"
	KindSpacingInconsistent   = "SpacingInconsistent"
	KindLowContrast           = "LowContrast"
)

// Finding is one typed quality observation.
type Finding struct {
	Severity view.Severity
	Kind     string
	Message  string
}

// Result is the quality engine's output: baseline 0.4, additive bonuses and
// penalties, clamped to [0,1] (§4.F).
type Result struct {
	Score    float64
	Findings []Finding
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// collectBoxes gathers every bounding box the view can supply, regardless of
// which structural slot carries it: alignment/spacing operate on whatever
// geometry is available (DOM nodes, Figma nodes, or OCR blocks).
func collectBoxes(v *view.NormalizedView) []view.BoundingBox {
	var boxes []view.BoundingBox
	if v.Dom != nil {
		for _, n := range v.Dom.Nodes {
			boxes = append(boxes, n.Box)
		}
	}
	if v.FigmaTree != nil {
		for _, n := range v.FigmaTree.Nodes {
			boxes = append(boxes, n.Box)
		}
	}
	for _, o := range v.OcrBlocks {
		boxes = append(boxes, o.Box)
	}
	return boxes
}

package metrics

import (
	"strings"

	"github.com/MeKo-Tech/dpc/internal/geometry"
	"github.com/MeKo-Tech/dpc/internal/view"
)

// element is the metric engine's unified view of a DOM node or Figma node:
// layout/typography/content operate against this shape instead of branching
// on Dom vs. FigmaTree at every call site.
type element struct {
	ID         string
	Tag        string
	Box        view.BoundingBox // normalized [0,1], relative to the owning view's raster
	Text       string
	FontFamily string
	FontSize   float64
	FontWeight float64
	LineHeight float64
	HasStyle   bool
}

// elementsFromView extracts the comparable element list from whichever
// structural slot v carries. Returns nil when neither slot is populated.
func elementsFromView(v *view.NormalizedView) []element {
	if v == nil {
		return nil
	}
	w, h := float64(v.Width), float64(v.Height)

	switch {
	case v.Dom != nil:
		out := make([]element, 0, len(v.Dom.Nodes))
		for _, n := range v.Dom.Nodes {
			e := element{
				ID:  n.ID,
				Tag: strings.ToLower(n.Tag),
				Box: geometry.ToNormalized(n.Box, w, h),
				Text: n.Text,
			}
			if n.Style != nil {
				e.FontFamily = n.Style.FontFamily
				e.FontSize = n.Style.FontSize
				e.FontWeight = n.Style.FontWeight
				e.LineHeight = n.Style.LineHeight
				e.HasStyle = true
			}
			out = append(out, e)
		}
		return out
	case v.FigmaTree != nil:
		out := make([]element, 0, len(v.FigmaTree.Nodes))
		for _, n := range v.FigmaTree.Nodes {
			e := element{
				ID:  n.ID,
				Tag: strings.ToLower(n.NodeType),
				Box: geometry.ToNormalized(n.Box, w, h),
				Text: n.Text,
			}
			if n.Typography != nil {
				e.FontFamily = n.Typography.FontFamily
				e.FontSize = n.Typography.FontSize
				e.FontWeight = n.Typography.FontWeight
				e.LineHeight = n.Typography.LineHeight
				e.HasStyle = true
			}
			out = append(out, e)
		}
		return out
	default:
		return nil
	}
}

// collectText gathers the text-bearing strings a view can contribute to the
// content metric: any DOM node's text field, or Figma TEXT nodes only.
func collectText(v *view.NormalizedView) []string {
	if v == nil {
		return nil
	}
	var out []string
	switch {
	case v.Dom != nil:
		for _, n := range v.Dom.Nodes {
			if s := strings.TrimSpace(n.Text); s != "" {
				out = append(out, s)
			}
		}
	case v.FigmaTree != nil:
		for _, n := range v.FigmaTree.Nodes {
			if !strings.EqualFold(n.NodeType, "TEXT") {
				continue
			}
			if s := strings.TrimSpace(n.Text); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

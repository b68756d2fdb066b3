package quality

import (
	"math"
	"strings"

	"github.com/MeKo-Tech/dpc/internal/domgraph"
	"github.com/MeKo-Tech/dpc/internal/view"
)

// hierarchyScore implements §4.F's structural bonus/penalty branch: DOM
// present, Figma present (no DOM), or neither. A malformed DOM forest
// degrades to the "neither" branch rather than scoring off a broken tree.
func hierarchyScore(v *view.NormalizedView) (float64, []Finding) {
	switch {
	case v.Dom != nil && domgraph.ValidateForest(v.Dom) == nil:
		return domHierarchyScore(v.Dom)
	case v.Dom == nil && v.FigmaTree != nil:
		return figmaHierarchyScore(v.FigmaTree)
	default:
		return -0.1, []Finding{{
			Severity: view.SeverityWarning,
			Kind:     KindMissingHierarchy,
			Message:  "no structural metadata (dom or figma) available",
		}}
	}
}

func domHierarchyScore(dom *view.DomSnapshot) (float64, []Finding) {
	bonus := 0.15
	var findings []Finding

	textCount := 0
	for _, n := range dom.Nodes {
		if strings.TrimSpace(n.Text) != "" {
			textCount++
		}
	}
	if textCount == 0 {
		bonus -= 0.1
		findings = append(findings, Finding{Severity: view.SeverityWarning, Kind: KindMissingHierarchy, Message: "no text-bearing dom nodes found"})
	} else {
		ratio := float64(textCount) / float64(len(dom.Nodes))
		bonus += math.Min(0.25, 0.25*ratio)
	}

	headings := 0
	for _, n := range dom.Nodes {
		switch strings.ToLower(n.Tag) {
		case "h1", "h2", "h3":
			headings++
		}
	}
	if headings == 0 {
		bonus -= 0.05
		findings = append(findings, Finding{Severity: view.SeverityWarning, Kind: KindMissingHierarchy, Message: "no heading elements (h1/h2/h3) found"})
	} else {
		bonus += 0.05
	}

	return bonus, findings
}

func figmaHierarchyScore(tree *view.FigmaSnapshot) (float64, []Finding) {
	bonus := 0.15
	var findings []Finding

	textCount := 0
	for _, n := range tree.Nodes {
		if strings.EqualFold(n.NodeType, "TEXT") && strings.TrimSpace(n.Text) != "" {
			textCount++
		}
	}
	if textCount == 0 {
		bonus -= 0.05
		findings = append(findings, Finding{Severity: view.SeverityWarning, Kind: KindMissingHierarchy, Message: "no text nodes found in figma tree"})
	} else {
		ratio := float64(textCount) / float64(len(tree.Nodes))
		bonus += math.Min(0.2, 0.2*ratio)
	}
	return bonus, findings
}

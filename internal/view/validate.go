package view

import (
	"os"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
)

// Validate enforces the NormalizedView invariants from the data model:
// exactly one of {Dom, FigmaTree} may be populated, dimensions are
// positive, and the screenshot file exists. It does not re-decode the
// raster to confirm its pixel dimensions match Width/Height — that check
// belongs to the ingestion step that produced the file, since Validate runs
// on every downstream consumer and must stay cheap.
func (v *NormalizedView) Validate() error {
	if v == nil {
		return dpcerr.New(dpcerr.Metric, "nil normalized view")
	}
	if v.Dom != nil && v.FigmaTree != nil {
		return dpcerr.New(dpcerr.Metric, "normalized view carries both dom and figma_tree")
	}
	if v.Width <= 0 || v.Height <= 0 {
		return dpcerr.Newf(dpcerr.Metric, "normalized view has non-positive dimensions %dx%d", v.Width, v.Height)
	}
	if v.ScreenshotPath == "" {
		return dpcerr.New(dpcerr.Metric, "normalized view has no screenshot path")
	}
	if _, err := os.Stat(v.ScreenshotPath); err != nil {
		return dpcerr.Wrap(dpcerr.Image, "screenshot file missing", err)
	}
	return nil
}

// ValidateFreshDomSnapshot confirms every child reference in a
// just-ingested DOM snapshot resolves to a node in the same snapshot. It is
// only meaningful before filtering: the DOM selector filter intentionally
// leaves dangling child references behind (§4.D), so this check must not
// run on a post-filter view.
func ValidateFreshDomSnapshot(dom *DomSnapshot) error {
	if dom == nil {
		return nil
	}
	ids := make(map[string]struct{}, len(dom.Nodes))
	for _, n := range dom.Nodes {
		ids[n.ID] = struct{}{}
	}
	for _, n := range dom.Nodes {
		for _, c := range n.Children {
			if _, ok := ids[c]; !ok {
				return dpcerr.Newf(dpcerr.Metric, "dom node %q references unknown child %q", n.ID, c)
			}
		}
	}
	return nil
}

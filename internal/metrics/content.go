package metrics

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/MeKo-Tech/dpc/internal/view"
)

var foldCaser = cases.Fold()

// normalizeText trims, collapses internal whitespace, and case-folds s
// (§4.E content metric: "trim + collapse whitespace + case fold").
func normalizeText(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	return foldCaser.String(collapsed)
}

func normalizeTextSet(list []string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, s := range list {
		if n := normalizeText(s); n != "" {
			out[n] = true
		}
	}
	return out
}

func setDiff(a, b map[string]bool) []string {
	var out []string
	for s := range a {
		if !b[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// ContentMetric requires structural metadata on both sides capable of
// carrying text (DOM text fields or Figma TEXT nodes). Score is the Jaccard
// index of the normalized text sets; an empty union scores 1.0 (§4.E).
func ContentMetric(ref, impl *view.NormalizedView) *view.ContentResult {
	if !ref.HasStructuralMetadata() || !impl.HasStructuralMetadata() {
		return nil
	}
	refSet := normalizeTextSet(collectText(ref))
	implSet := normalizeTextSet(collectText(impl))

	unionSize := 0
	seen := make(map[string]bool, len(refSet)+len(implSet))
	for s := range refSet {
		seen[s] = true
	}
	for s := range implSet {
		seen[s] = true
	}
	unionSize = len(seen)
	if unionSize == 0 {
		return &view.ContentResult{Score: 1.0}
	}

	interSize := 0
	for s := range refSet {
		if implSet[s] {
			interSize++
		}
	}

	return &view.ContentResult{
		Score:       float64(interSize) / float64(unionSize),
		MissingText: setDiff(refSet, implSet),
		ExtraText:   setDiff(implSet, refSet),
	}
}

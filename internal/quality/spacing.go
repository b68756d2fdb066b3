package quality

import (
	"fmt"
	"math"
	"sort"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// spacingScore implements §4.F's vertical-gap consistency heuristic: gaps
// between vertically adjacent boxes are bucketed at 1%-of-height resolution;
// a concentrated bucket distribution scores a small coherence bonus, a
// scattered one emits a SpacingInconsistent warning.
func spacingScore(v *view.NormalizedView) (float64, []Finding) {
	boxes := collectBoxes(v)
	var withHeight []view.BoundingBox
	for _, b := range boxes {
		if b.H > 0 {
			withHeight = append(withHeight, b)
		}
	}
	sort.Slice(withHeight, func(i, j int) bool {
		if withHeight[i].Y != withHeight[j].Y {
			return withHeight[i].Y < withHeight[j].Y
		}
		return withHeight[i].X < withHeight[j].X
	})

	var gaps []float64
	for i := 1; i < len(withHeight); i++ {
		prev := withHeight[i-1]
		gap := withHeight[i].Y - (prev.Y + prev.H)
		if gap > 0.001 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) < 5 {
		return 0, nil
	}

	buckets := make(map[int]int)
	for _, g := range gaps {
		buckets[int(math.Round(g*100))]++
	}
	if len(buckets) < 5 {
		if len(gaps) >= 2 {
			return 0.02, nil
		}
		return 0, nil
	}

	maxCount := 0
	for _, c := range buckets {
		if c > maxCount {
			maxCount = c
		}
	}
	outlierRatio := 1 - float64(maxCount)/float64(len(gaps))
	penalty := math.Min(0.15, 0.05+outlierRatio*0.10)
	msg := fmt.Sprintf("%d distinct gap size(s) across %d gap(s)", len(buckets), len(gaps))
	return -penalty, []Finding{{Severity: view.SeverityWarning, Kind: KindSpacingInconsistent, Message: msg}}
}

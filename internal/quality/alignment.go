package quality

import (
	"fmt"
	"math"
	"sort"

	"github.com/MeKo-Tech/dpc/internal/view"
)

type xCluster struct {
	mean  float64
	count int
}

// alignmentScore implements §4.F's alignment heuristic: x-coordinates of
// sufficiently wide boxes are online-clustered with a viewport-scaled
// tolerance, then classified aligned/outlier against their nearest cluster.
func alignmentScore(v *view.NormalizedView) (float64, []Finding) {
	minWidth := clampF(float64(v.Width)*0.01, 4, 20)
	var xs []float64
	for _, b := range collectBoxes(v) {
		if b.W >= minWidth {
			xs = append(xs, b.X)
		}
	}
	if len(xs) < 3 {
		return 0, []Finding{{Severity: view.SeverityInfo, Kind: KindAlignmentInconsistent, Message: "not enough elements for alignment analysis"}}
	}
	sort.Float64s(xs)

	tolerance := clampF(float64(v.Width)*0.01, 4, 24)
	var clusters []xCluster
	for _, x := range xs {
		if n := len(clusters); n > 0 && math.Abs(x-clusters[n-1].mean) <= tolerance {
			clusters[n-1].count++
			clusters[n-1].mean += (x - clusters[n-1].mean) / float64(clusters[n-1].count)
			continue
		}
		clusters = append(clusters, xCluster{mean: x, count: 1})
	}

	aligned, outliers := 0, 0
	for _, x := range xs {
		nearest := math.MaxFloat64
		for _, c := range clusters {
			if d := math.Abs(x - c.mean); d < nearest {
				nearest = d
			}
		}
		if nearest <= 1.5*tolerance {
			aligned++
		} else {
			outliers++
		}
	}

	ratio := float64(aligned) / float64(len(xs))
	severity := view.SeverityInfo
	if ratio < 0.75 && outliers >= 2 {
		severity = view.SeverityWarning
	}
	msg := fmt.Sprintf("%d outlier(s) of %d position(s) across %d cluster(s), tolerance %.1fpx", outliers, len(xs), len(clusters), tolerance)
	return 0.15 * ratio, []Finding{{Severity: severity, Kind: KindAlignmentInconsistent, Message: msg}}
}

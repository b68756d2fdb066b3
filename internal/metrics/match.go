package metrics

import (
	"sort"

	"github.com/MeKo-Tech/dpc/internal/geometry"
)

// elementPair is one ref/impl element matched by the layout metric's
// matching pass; reused by the typography metric so both operate over the
// same correspondence.
type elementPair struct {
	Ref, Impl element
}

// matchElements greedily pairs ref/impl elements by tag equality and spatial
// overlap (IoU >= 0.5 on normalized boxes), highest-IoU candidates assigned
// first, each element used at most once (§4.E layout metric).
func matchElements(ref, impl []element) (pairs []elementPair, unmatchedRef, unmatchedImpl []element) {
	type candidate struct {
		i, j int
		iou  float64
	}
	var candidates []candidate
	for i, r := range ref {
		for j, m := range impl {
			if r.Tag != m.Tag {
				continue
			}
			iou := geometry.IoU(r.Box, m.Box)
			if iou >= 0.5 {
				candidates = append(candidates, candidate{i, j, iou})
			}
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].iou > candidates[b].iou })

	usedRef := make(map[int]bool, len(ref))
	usedImpl := make(map[int]bool, len(impl))
	for _, c := range candidates {
		if usedRef[c.i] || usedImpl[c.j] {
			continue
		}
		usedRef[c.i] = true
		usedImpl[c.j] = true
		pairs = append(pairs, elementPair{Ref: ref[c.i], Impl: impl[c.j]})
	}
	for i, r := range ref {
		if !usedRef[i] {
			unmatchedRef = append(unmatchedRef, r)
		}
	}
	for j, m := range impl {
		if !usedImpl[j] {
			unmatchedImpl = append(unmatchedImpl, m)
		}
	}
	return pairs, unmatchedRef, unmatchedImpl
}

package metrics

import (
	"image"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/MeKo-Tech/dpc/internal/view"
)

const paletteSize = 5

type paletteEntry struct {
	Color colorful.Color
	Count int
}

// extractPalette buckets pixels into the top 4 bits of each RGB channel,
// ranks buckets by frequency, and returns the k most frequent as
// go-colorful colors. Fully transparent pixels (masked regions) are
// excluded so ignore-region masking does not skew the dominant palette.
func extractPalette(img image.Image, k int) []paletteEntry {
	b := img.Bounds()
	buckets := make(map[[3]int]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			key := [3]int{int(r>>8) >> 4, int(g>>8) >> 4, int(bl>>8) >> 4}
			buckets[key]++
		}
	}

	type kv struct {
		key   [3]int
		count int
	}
	list := make([]kv, 0, len(buckets))
	for key, count := range buckets {
		list = append(list, kv{key, count})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].count > list[j].count })
	if len(list) > k {
		list = list[:k]
	}

	out := make([]paletteEntry, 0, len(list))
	for _, e := range list {
		r := float64(e.key[0]<<4+8) / 255.0
		g := float64(e.key[1]<<4+8) / 255.0
		bl := float64(e.key[2]<<4+8) / 255.0
		out = append(out, paletteEntry{Color: colorful.Color{R: r, G: g, B: bl}, Count: e.count})
	}
	return out
}

// ColorMetric extracts a dominant palette from each raster and greedily
// matches reference entries to implementation entries by CIEDE2000 ΔE
// (§4.E). Unmatched reference entries exceeding ΔE=5 emit an issue whose
// kind is ranked by palette position: top-1 is Primary, a near-white or
// near-black entry is Background, everything else is Accent.
func ColorMetric(refImg, implImg image.Image) *view.ColorResult {
	if refImg == nil || implImg == nil {
		return nil
	}
	refPalette := extractPalette(refImg, paletteSize)
	implPalette := extractPalette(implImg, paletteSize)
	if len(refPalette) == 0 {
		return &view.ColorResult{Score: 1.0}
	}

	used := make([]bool, len(implPalette))
	var issues []view.ColorIssue
	var deltas []float64

	for i, rc := range refPalette {
		bestJ, bestDE := -1, math.MaxFloat64
		for j, ic := range implPalette {
			if used[j] {
				continue
			}
			de := rc.Color.DistanceCIEDE2000(ic.Color)
			if de < bestDE {
				bestDE, bestJ = de, j
			}
		}
		if bestJ == -1 {
			continue
		}
		used[bestJ] = true
		deltas = append(deltas, bestDE)
		if bestDE > 5 {
			lum := 0.299*rc.Color.R + 0.587*rc.Color.G + 0.114*rc.Color.B
			kind := view.ColorAccentShift
			switch {
			case i == 0:
				kind = view.ColorPrimaryShift
			case lum > 0.9 || lum < 0.1:
				kind = view.ColorBackgroundShift
			}
			issues = append(issues, view.ColorIssue{Kind: kind, RefColor: rc.Color.Hex(), DeltaE: bestDE})
		}
	}

	if len(deltas) == 0 {
		return &view.ColorResult{Score: 1.0}
	}
	var sum float64
	for _, d := range deltas {
		sum += math.Min(d/50.0, 1.0)
	}
	score := 1 - sum/float64(len(deltas))
	return &view.ColorResult{Score: clamp01(score), Issues: issues}
}

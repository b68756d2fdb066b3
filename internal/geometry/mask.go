package geometry

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// MaskRegions overwrites the pixels covered by regions with transparent
// black (RGBA 0,0,0,0), returning a new image. mask_region(img, []) must be
// byte-identical to img (§8); an empty regions slice takes the fast path of
// returning an unmodified copy.
func MaskRegions(img image.Image, regions []view.IgnoreRegion) (image.Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	w, h := float64(b.Dx()), float64(b.Dy())
	transparent := color.NRGBA{0, 0, 0, 0}

	for _, r := range regions {
		if r.W <= 0 || r.H <= 0 {
			continue // zero-or-negative regions are skipped
		}
		px := r
		if r.IsNormalized() {
			pxBox := ToPixels(view.BoundingBox{X: r.X, Y: r.Y, W: r.W, H: r.H}, w, h)
			px = view.IgnoreRegion{X: pxBox.X, Y: pxBox.Y, W: pxBox.W, H: pxBox.H}
		}
		x0 := int(math.Floor(px.X))
		y0 := int(math.Floor(px.Y))
		x1 := int(math.Ceil(px.X + px.W))
		y1 := int(math.Ceil(px.Y + px.H))

		x0 = clampInt(x0, b.Min.X, b.Max.X)
		y0 = clampInt(y0, b.Min.Y, b.Max.Y)
		x1 = clampInt(x1, b.Min.X, b.Max.X)
		y1 = clampInt(y1, b.Min.Y, b.Max.Y)

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				out.SetNRGBA(x, y, transparent)
			}
		}
	}
	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

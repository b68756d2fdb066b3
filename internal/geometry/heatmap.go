package geometry

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DiffHeatmap produces a new raster the size of ref, color-banding each
// pixel by the severity of its divergence from impl. If impl's dimensions
// differ from ref's, impl is resized to ref's size first (Lanczos).
// diff_heatmap(x, x) must be all-transparent (§8).
func DiffHeatmap(ref, impl image.Image) (image.Image, error) {
	if ref == nil || impl == nil {
		return nil, ErrNilImage
	}
	rb := ref.Bounds()
	ib := impl.Bounds()
	if rb.Dx() != ib.Dx() || rb.Dy() != ib.Dy() {
		impl = imaging.Resize(impl, rb.Dx(), rb.Dy(), imaging.Lanczos)
		ib = impl.Bounds()
	}

	out := image.NewNRGBA(image.Rect(0, 0, rb.Dx(), rb.Dy()))
	for y := 0; y < rb.Dy(); y++ {
		for x := 0; x < rb.Dx(); x++ {
			rr, rg, rbv, _ := ref.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			ir, ig, ib2, _ := impl.At(ib.Min.X+x, ib.Min.Y+y).RGBA()

			dr := absInt(int(rr>>8) - int(ir>>8))
			dg := absInt(int(rg>>8) - int(ig>>8))
			db := absInt(int(rbv>>8) - int(ib2>>8))
			d := dr + dg + db

			ratio := clamp01(float64(d) / 765.0)
			alpha := clamp(ratio*200, 0, 200)

			col := bandColor(ratio)
			col.A = uint8(alpha)
			out.SetNRGBA(x, y, col)
		}
	}
	return out, nil
}

// bandColor implements the three-tier severity banding from §4.A.
func bandColor(r float64) color.NRGBA {
	switch {
	case r < 0.33:
		g := clamp(100+r/0.33*100, 0, 200)
		return color.NRGBA{R: 0, G: uint8(g), B: 0, A: 255}
	case r < 0.66:
		red := clamp(150+(r-0.33)/0.33*80, 150, 230)
		return color.NRGBA{R: uint8(red), G: 180, B: 0, A: 255}
	default:
		red := clamp(200+(r-0.66)/0.34*55, 200, 255)
		return color.NRGBA{R: uint8(red), G: 0, B: 0, A: 255}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

package metrics

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/dpc/internal/geometry"
	"github.com/MeKo-Tech/dpc/internal/view"
)

const (
	ssimWindow  = 8
	ssimK1L     = 0.01 * 255
	ssimK2L     = 0.03 * 255
	ssimC1      = ssimK1L * ssimK1L
	ssimC2      = ssimK2L * ssimK2L
	diffThreshold = 76 // ~10% of the 765 max channel-sum delta
)

// PixelMetric operates on rasters from screenshot_path (§4.E). If sizes
// differ, impl is resized to ref via Lanczos. Score is a blockwise SSIM
// computed over 8x8 windows of luma (the resolved Open Question's default);
// diff regions are connected components of above-threshold pixel deltas.
func PixelMetric(ref, impl image.Image) (*view.PixelResult, error) {
	if ref == nil || impl == nil {
		return nil, nil
	}
	rb := ref.Bounds()
	ib := impl.Bounds()
	if rb.Dx() != ib.Dx() || rb.Dy() != ib.Dy() {
		impl = imaging.Resize(impl, rb.Dx(), rb.Dy(), imaging.Lanczos)
	}
	score := ssimScore(ref, impl)
	regions := clusterDiffRegions(ref, impl)
	return &view.PixelResult{Score: clamp01(score), Issues: regions}, nil
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func ssimScore(ref, impl image.Image) float64 {
	b := ref.Bounds()
	w, h := b.Dx(), b.Dy()
	var totalSSIM, totalWeight float64

	for by := 0; by < h; by += ssimWindow {
		for bx := 0; bx < w; bx += ssimWindow {
			ww := minInt(ssimWindow, w-bx)
			hh := minInt(ssimWindow, h-by)
			n := ww * hh
			if n == 0 {
				continue
			}
			var sumX, sumY, sumXX, sumYY, sumXY float64
			for y := 0; y < hh; y++ {
				for x := 0; x < ww; x++ {
					rr, rg, rbv := rgb8(ref.At(b.Min.X+bx+x, b.Min.Y+by+y))
					ir, ig, ib2 := rgb8(impl.At(b.Min.X+bx+x, b.Min.Y+by+y))
					lx := luma(rr, rg, rbv)
					ly := luma(ir, ig, ib2)
					sumX += lx
					sumY += ly
					sumXX += lx * lx
					sumYY += ly * ly
					sumXY += lx * ly
				}
			}
			fn := float64(n)
			muX := sumX / fn
			muY := sumY / fn
			varX := sumXX/fn - muX*muX
			varY := sumYY/fn - muY*muY
			covXY := sumXY/fn - muX*muY

			numerator := (2*muX*muY + ssimC1) * (2*covXY + ssimC2)
			denominator := (muX*muX + muY*muY + ssimC1) * (varX + varY + ssimC2)
			ssim := 1.0
			if denominator != 0 {
				ssim = numerator / denominator
			}
			totalSSIM += ssim * fn
			totalWeight += fn
		}
	}
	if totalWeight == 0 {
		return 1
	}
	return totalSSIM / totalWeight
}

var pixelNeighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func clusterDiffRegions(ref, impl image.Image) []view.PixelDiffRegion {
	b := ref.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	delta := make([][]int, h)
	for y := 0; y < h; y++ {
		delta[y] = make([]int, w)
		for x := 0; x < w; x++ {
			rr, rg, rbv := rgb8(ref.At(b.Min.X+x, b.Min.Y+y))
			ir, ig, ib2 := rgb8(impl.At(b.Min.X+x, b.Min.Y+y))
			delta[y][x] = absInt(int(rr)-int(ir)) + absInt(int(rg)-int(ig)) + absInt(int(rbv)-int(ib2))
		}
	}

	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var regions []view.PixelDiffRegion
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y][x] || delta[y][x] <= diffThreshold {
				continue
			}
			minX, minY, maxX, maxY := x, y, x, y
			sum, count := 0, 0
			stack := [][2]int{{x, y}}
			visited[y][x] = true
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := cur[0], cur[1]
				sum += delta[cy][cx]
				count++
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}
				for _, d := range pixelNeighbors {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h || visited[ny][nx] {
						continue
					}
					if delta[ny][nx] <= diffThreshold {
						continue
					}
					visited[ny][nx] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}

			meanDelta := float64(sum) / float64(count)
			ratio := meanDelta / 765.0
			var severity view.Severity
			switch {
			case ratio < 0.33:
				severity = view.SeverityMinor
			case ratio < 0.66:
				severity = view.SeverityModerate
			default:
				severity = view.SeverityMajor
			}

			pw, ph := maxX-minX+1, maxY-minY+1
			var reason view.PixelReasonTag
			switch {
			case pw <= 2 && ph <= 2:
				reason = view.ReasonAntiAliasing
			case ratio < 0.15:
				reason = view.ReasonRenderingNoise
			default:
				reason = view.ReasonPixelChange
			}

			box := geometry.ToNormalized(
				view.BoundingBox{X: float64(minX), Y: float64(minY), W: float64(pw), H: float64(ph)},
				float64(w), float64(h),
			)
			regions = append(regions, view.PixelDiffRegion{Box: box, Severity: severity, Reason: reason})
		}
	}
	return regions
}

// Package geometry provides the bounding-box, letterbox-resize, masking,
// and diff-heatmap primitives the rest of DPC builds on. Image operations
// are built on disintegration/imaging.
package geometry

import "github.com/MeKo-Tech/dpc/internal/view"

// IoU computes the intersection-over-union of two boxes. Both boxes must be
// in the same coordinate space (both pixel, or both normalized); callers in
// the layout metric normalize to the raster before calling this.
func IoU(a, b view.BoundingBox) float64 {
	ix0 := max(a.X, b.X)
	iy0 := max(a.Y, b.Y)
	ix1 := min(a.Right(), b.Right())
	iy1 := min(a.Bottom(), b.Bottom())

	iw := ix1 - ix0
	ih := iy1 - iy0
	if iw <= 0 || ih <= 0 {
		return 0
	}
	inter := iw * ih
	union := a.W*a.H + b.W*b.H - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Box centroids come from view.BoundingBox.Centroid; this package has no
// centroid helper of its own.

// ToNormalized converts a pixel-space box into [0,1] space given the raster
// dimensions it was measured against.
func ToNormalized(b view.BoundingBox, width, height float64) view.BoundingBox {
	if width <= 0 || height <= 0 {
		return b
	}
	return view.BoundingBox{X: b.X / width, Y: b.Y / height, W: b.W / width, H: b.H / height}
}

// ToPixels converts a normalized [0,1] box into pixel space.
func ToPixels(b view.BoundingBox, width, height float64) view.BoundingBox {
	return view.BoundingBox{X: b.X * width, Y: b.Y * height, W: b.W * width, H: b.H * height}
}


package geometry

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ErrNilImage is returned when a nil image.Image is passed to a geometry
// operation that requires a decoded raster.
var ErrNilImage = errors.New("geometry: input image is nil")

// LetterboxResize fits img into a WxH canvas without cropping or distorting
// it: scale is the largest factor that keeps both dimensions within bounds,
// the scaled image is centered on a transparent canvas, and any leftover
// space becomes transparent margin. Mirrors a resize+pad
// pair, generalized to an exact target size instead of a multiple-of-32
// ONNX constraint.
func LetterboxResize(img image.Image, w, h int) (image.Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if w <= 0 || h <= 0 {
		return nil, errors.New("geometry: target dimensions must be positive")
	}

	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return nil, errors.New("geometry: source image has zero area")
	}

	scale := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
	newW := int(math.Round(float64(sw) * scale))
	newH := int(math.Round(float64(sh) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)

	canvas := imaging.New(w, h, image.Transparent)
	offX := (w - newW) / 2
	offY := (h - newH) / 2
	canvas = imaging.Paste(canvas, resized, image.Pt(offX, offY))
	return canvas, nil
}

package metrics

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// Scenario 1 (spec §8): two 4x4 solid [10,20,30,255] images -> similarity ~1.
func TestPixelMetricIdenticalSolidImagesScoreNearOne(t *testing.T) {
	ref := solidImage(4, 4, color.RGBA{10, 20, 30, 255})
	impl := solidImage(4, 4, color.RGBA{10, 20, 30, 255})

	res, err := PixelMetric(ref, impl)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 0.01)
	assert.Empty(t, res.Issues)
}

// Scenario 2 (spec §8): solid black vs solid white, 4x4 -> similarity well below threshold.
func TestPixelMetricBlackVsWhiteScoresLow(t *testing.T) {
	ref := solidImage(4, 4, color.RGBA{0, 0, 0, 255})
	impl := solidImage(4, 4, color.RGBA{255, 255, 255, 255})

	res, err := PixelMetric(ref, impl)
	require.NoError(t, err)
	assert.Less(t, res.Score, 0.5)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "major", string(res.Issues[0].Severity))
}

func TestPixelMetricResizesMismatchedSizes(t *testing.T) {
	ref := solidImage(8, 8, color.RGBA{50, 60, 70, 255})
	impl := solidImage(4, 4, color.RGBA{50, 60, 70, 255})

	res, err := PixelMetric(ref, impl)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 0.01)
}

func TestPixelMetricNilInputsReturnNil(t *testing.T) {
	res, err := PixelMetric(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, res)
}

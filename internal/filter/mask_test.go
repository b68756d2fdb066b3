package filter

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSolidPNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestApplyIgnoreRegionsMasksAndWritesNewPath(t *testing.T) {
	dir := t.TempDir()
	src := writeSolidPNG(t, dir, "src.png", 8, 8, color.RGBA{200, 10, 10, 255})
	v := &view.NormalizedView{Kind: view.KindImage, ScreenshotPath: src, Width: 8, Height: 8}

	out, err := ApplyIgnoreRegions(v, []view.IgnoreRegion{{X: 0, Y: 0, W: 4, H: 4}}, dir, "ref")
	require.NoError(t, err)
	assert.NotEqual(t, src, out.ScreenshotPath)
	assert.FileExists(t, out.ScreenshotPath)

	f, err := os.Open(out.ScreenshotPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	_, _, _, a := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(0), a, "masked pixel must be fully transparent")
	_, _, _, a2 := decoded.At(6, 6).RGBA()
	assert.NotEqual(t, uint32(0), a2, "unmasked pixel must be untouched")
}

func TestApplyIgnoreRegionsEmptyListIsNoopContentWise(t *testing.T) {
	dir := t.TempDir()
	src := writeSolidPNG(t, dir, "src.png", 4, 4, color.RGBA{1, 2, 3, 255})
	v := &view.NormalizedView{Kind: view.KindImage, ScreenshotPath: src, Width: 4, Height: 4}

	out, err := ApplyIgnoreRegions(v, nil, dir, "ref")
	require.NoError(t, err)
	assert.FileExists(t, out.ScreenshotPath)

	f, err := os.Open(out.ScreenshotPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	wr, wg, wb, wa := color.RGBA{1, 2, 3, 255}.RGBA()
	r, g, b, a := decoded.At(2, 2).RGBA()
	assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{r, g, b, a}, "pixel must be unchanged")
}

func TestApplyIgnoreRegionsNilView(t *testing.T) {
	_, err := ApplyIgnoreRegions(nil, nil, t.TempDir(), "ref")
	require.Error(t, err)
}

func TestApplyIgnoreRegionsMissingFile(t *testing.T) {
	v := &view.NormalizedView{Kind: view.KindImage, ScreenshotPath: "does-not-exist.png"}
	_, err := ApplyIgnoreRegions(v, nil, t.TempDir(), "ref")
	require.Error(t, err)
}

func TestApplyDomFilterLeavesRasterUntouched(t *testing.T) {
	v := &view.NormalizedView{
		Kind:           view.KindURL,
		ScreenshotPath: "unchanged.png",
		Dom: &view.DomSnapshot{Nodes: []view.DomNode{
			{ID: "a", Tag: "script"},
			{ID: "b", Tag: "div"},
		}},
	}
	out := ApplyDomFilter(v, ParseSelectors("script"))
	assert.Equal(t, "unchanged.png", out.ScreenshotPath)
	require.Len(t, out.Dom.Nodes, 1)
	assert.Equal(t, "b", out.Dom.Nodes[0].ID)
}

func TestApplyDomFilterNoopWhenNoSelectorsOrNoDom(t *testing.T) {
	v := &view.NormalizedView{Kind: view.KindImage, ScreenshotPath: "x.png"}
	assert.Same(t, v, ApplyDomFilter(v, ParseSelectors("script")))
	assert.Same(t, v, ApplyDomFilter(v, nil))
}

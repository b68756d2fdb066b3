package ingest

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
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

func TestNormalizeImageLetterboxesAndSaves(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, "src.png", 4, 4, color.RGBA{10, 20, 30, 255})

	v, err := Normalize(context.Background(), Resource{Kind: KindImage, Value: src}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: dir,
		Prefix:       "ref",
	})
	require.NoError(t, err)
	assert.Equal(t, view.KindImage, v.Kind)
	assert.Equal(t, 8, v.Width)
	assert.Equal(t, 8, v.Height)
	assert.FileExists(t, v.ScreenshotPath)
	assert.Nil(t, v.Dom)
	assert.Nil(t, v.FigmaTree)
}

func TestNormalizeImageMissingFileIsConfigError(t *testing.T) {
	dir := t.TempDir()
	_, err := Normalize(context.Background(), Resource{Kind: KindImage, Value: "missing.png"}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: dir,
		Prefix:       "ref",
	})
	require.Error(t, err)
	var de *dpcerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dpcerr.Config, de.Category)
	assert.Contains(t, de.Message, "missing")
}

func TestNormalizeURLUsesBackend(t *testing.T) {
	dir := t.TempDir()
	raster := writeTestPNG(t, dir, "rendered.png", 8, 8, color.RGBA{1, 2, 3, 255})
	backend := &mockBackend{urlResult: RenderedURL{
		RasterPath: raster,
		Dom:        &view.DomSnapshot{Nodes: []view.DomNode{{ID: "n1", Tag: "div"}}},
	}}

	v, err := Normalize(context.Background(), Resource{Kind: KindURL, Value: "https://example.com"}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: dir,
		Prefix:       "impl",
		Backend:      backend,
	})
	require.NoError(t, err)
	assert.Equal(t, view.KindURL, v.Kind)
	require.NotNil(t, v.Dom)
	assert.Len(t, v.Dom.Nodes, 1)
	assert.Contains(t, backend.calls, "url:https://example.com")
}

func TestNormalizeFigmaMissingNodeID(t *testing.T) {
	_, err := Normalize(context.Background(), Resource{Kind: KindFigma, Figma: FigmaInfo{FileKey: "FILE123"}}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: t.TempDir(),
		Prefix:       "ref",
		FigmaCreds:   FigmaCredentials{Token: "x"},
	})
	require.Error(t, err)
	var de *dpcerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dpcerr.Config, de.Category)
	assert.Contains(t, de.Message, "node-id")
}

func TestNormalizeFigmaMissingCredentials(t *testing.T) {
	_, err := Normalize(context.Background(), Resource{
		Kind:  KindFigma,
		Figma: FigmaInfo{FileKey: "FILE123", NodeID: "1-2"},
	}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: t.TempDir(),
		Prefix:       "ref",
	})
	require.Error(t, err)
	var de *dpcerr.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Remediation, "FIGMA_TOKEN")
}

func TestNormalizeMockOverrideEnvVar(t *testing.T) {
	dir := t.TempDir()
	mock := writeTestPNG(t, dir, "mock.png", 4, 4, color.RGBA{9, 9, 9, 255})
	backend := &mockBackend{}

	v, err := Normalize(context.Background(), Resource{Kind: KindURL, Value: "https://example.com"}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: dir,
		Prefix:       "ref",
		Backend:      backend,
		Env:          mapEnv(map[string]string{"MOCK_RENDER_REF": mock}),
	})
	require.NoError(t, err)
	assert.Equal(t, view.KindImage, v.Kind)
	assert.Empty(t, backend.calls, "mock override must short-circuit the backend entirely")
}

func TestNormalizeMockOverrideDirFallback(t *testing.T) {
	dir := t.TempDir()
	mockDir := t.TempDir()
	writeTestPNG(t, mockDir, "ref.png", 4, 4, color.RGBA{5, 5, 5, 255})
	backend := &mockBackend{}

	v, err := Normalize(context.Background(), Resource{Kind: KindURL, Value: "https://example.com"}, Options{
		Viewport:     Viewport{Width: 8, Height: 8},
		ArtifactsDir: dir,
		Prefix:       "ref",
		Backend:      backend,
		MockDir:      mockDir,
	})
	require.NoError(t, err)
	assert.Equal(t, view.KindImage, v.Kind)
	assert.Empty(t, backend.calls)
}

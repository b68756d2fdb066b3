package ingest

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
)

// LoadScreenshot opens and decodes a NormalizedView.ScreenshotPath raster,
// for callers (the metric engine, the artifact generator) that need pixel
// data rather than just the file path.
func LoadScreenshot(path string) (image.Image, error) {
	return loadImage(path)
}

// loadImage opens and decodes a raster file. Mirrors a
// internal/utils.LoadImage, trimmed to what ingestion needs (no metadata
// side-channel — NormalizedView carries the dimensions that matter).
func loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, dpcerr.New(dpcerr.Config, "empty image path")
	}
	f, err := os.Open(path) //nolint:gosec // G304: reading a caller-provided resource path is expected
	if err != nil {
		return nil, dpcerr.Wrap(dpcerr.Config, fmt.Sprintf("missing input file %q", path), err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, dpcerr.Wrap(dpcerr.Image, fmt.Sprintf("failed to decode image %q", path), err)
	}
	return img, nil
}

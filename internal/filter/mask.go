package filter

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/geometry"
	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/disintegration/imaging"
)

// ApplyIgnoreRegions masks the given regions out of v's screenshot, saving
// the result as <prefix>_masked.png in artifactsDir and returning a new
// NormalizedView pointing at it. Dom/FigmaTree are carried through
// unchanged (§4.D): masking only ever touches pixels.
//
// An empty regions list is not an error, but a zero-length ignore-regions
// *file* is (§7) — that distinction is enforced by the caller that parses
// the file, not here.
func ApplyIgnoreRegions(v *view.NormalizedView, regions []view.IgnoreRegion, artifactsDir, prefix string) (*view.NormalizedView, error) {
	if v == nil {
		return nil, dpcerr.New(dpcerr.Metric, "nil normalized view")
	}

	img, err := loadRaster(v.ScreenshotPath)
	if err != nil {
		return nil, err
	}

	masked, err := geometry.MaskRegions(img, regions)
	if err != nil {
		return nil, dpcerr.Wrap(dpcerr.Image, "failed to mask ignore regions", err)
	}

	outPath := filepath.Join(artifactsDir, prefix+"_masked.png")
	if err := imaging.Save(masked, outPath); err != nil {
		return nil, dpcerr.Wrap(dpcerr.Config, "failed to write masked raster", err)
	}

	out := *v
	out.ScreenshotPath = outPath
	return &out, nil
}

// ApplyDomFilter runs FilterDom against v.Dom and returns a new view with
// the filtered snapshot, leaving everything else (including the raster)
// untouched — DOM filtering never rewrites pixels.
func ApplyDomFilter(v *view.NormalizedView, selectors []Selector) *view.NormalizedView {
	if v == nil || v.Dom == nil || len(selectors) == 0 {
		return v
	}
	out := *v
	filtered := FilterDom(v.Dom, selectors)
	out.Dom = filtered
	return &out
}

func loadRaster(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from a prior ingestion step, not raw user input
	if err != nil {
		return nil, dpcerr.Wrap(dpcerr.Image, "failed to open raster for masking", err)
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, dpcerr.Wrap(dpcerr.Image, "failed to decode raster for masking", err)
	}
	return img, nil
}

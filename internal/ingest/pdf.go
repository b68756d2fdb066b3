package ingest

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
)

// extractPDFPageOne extracts the first embedded image of a PDF's first page
// and saves it as a standalone raster under artifactsDir, returning its
// path. This repurposes pdfcpu's extraction path (a richer extractor uses
// it to pull scanned-document pages for OCR) to accept a design reference
// exported as a PDF mockup page.
func extractPDFPageOne(pdfPath, artifactsDir, prefix string) (string, error) {
	tempDir, err := os.MkdirTemp(artifactsDir, prefix+"-pdf-*")
	if err != nil {
		return "", dpcerr.Wrap(dpcerr.Config, "failed to create temp extraction directory", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	if err := api.ExtractImagesFile(pdfPath, tempDir, []string{"1"}, nil); err != nil {
		return "", dpcerr.Wrap(dpcerr.Image, fmt.Sprintf("failed to extract images from pdf %q", pdfPath), err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil || len(entries) == 0 {
		return "", dpcerr.Newf(dpcerr.Image, "pdf %q has no extractable images on page 1", pdfPath)
	}

	src := filepath.Join(tempDir, entries[0].Name())
	img, err := loadImage(src)
	if err != nil {
		return "", err
	}

	out := filepath.Join(artifactsDir, prefix+"_pdf_page1.png")
	f, err := os.Create(out) //nolint:gosec // G304: artifactsDir is caller-owned
	if err != nil {
		return "", dpcerr.Wrap(dpcerr.Config, "failed to write extracted pdf page", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return "", dpcerr.Wrap(dpcerr.Image, "failed to encode extracted pdf page", err)
	}
	return out, nil
}

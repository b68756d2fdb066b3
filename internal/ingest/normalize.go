package ingest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/geometry"
	"github.com/MeKo-Tech/dpc/internal/view"
	"github.com/disintegration/imaging"
)

// Options bundles everything Normalize needs beyond the resource itself.
type Options struct {
	Viewport     Viewport
	Timeouts     Timeouts
	ArtifactsDir string
	Prefix       string
	Backend      RenderBackend
	Ocr          OcrBackend
	WantOcr      bool
	Env          EnvSnapshot
	Progress     ProgressCallback
	FigmaCreds   FigmaCredentials
	MockDir      string // MOCK_RENDERERS_DIR
}

// Normalize reduces resource to a NormalizedView, honoring the mock-render
// override policy (§4.C) for Url and Figma kinds before any backend call.
func Normalize(ctx context.Context, resource Resource, opts Options) (*view.NormalizedView, error) {
	if resource.Kind == KindURL || resource.Kind == KindFigma {
		if mockPath, ok := resolveMockOverride(opts); ok {
			return normalizeImage(mockPath, opts)
		}
	}

	switch resource.Kind {
	case KindImage:
		return normalizeImage(resource.Value, opts)
	case KindURL:
		return normalizeURL(ctx, resource.Value, opts)
	case KindFigma:
		return normalizeFigma(ctx, resource, opts)
	default:
		return nil, dpcerr.Newf(dpcerr.Config, "unknown resource kind %q", resource.Kind)
	}
}

// resolveMockOverride implements §4.C's mock-render override policy: first
// MOCK_RENDER_<PREFIX_UPPER>, then MOCK_RENDERERS_DIR/<prefix>.png.
func resolveMockOverride(opts Options) (string, bool) {
	if p := opts.Env.Get(mockRenderKey(opts.Prefix)); p != "" {
		return p, true
	}
	if opts.MockDir == "" {
		if dir := opts.Env.Get("MOCK_RENDERERS_DIR"); dir != "" {
			opts.MockDir = dir
		}
	}
	if opts.MockDir != "" {
		candidate := filepath.Join(opts.MockDir, opts.Prefix+".png")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func normalizeImage(path string, opts Options) (*view.NormalizedView, error) {
	srcPath := path
	if isPDF(path) {
		extracted, err := extractPDFPageOne(path, opts.ArtifactsDir, opts.Prefix)
		if err != nil {
			return nil, err
		}
		srcPath = extracted
	}

	img, err := loadImage(srcPath)
	if err != nil {
		return nil, err
	}

	resized, err := geometry.LetterboxResize(img, opts.Viewport.Width, opts.Viewport.Height)
	if err != nil {
		return nil, dpcerr.Wrap(dpcerr.Image, "letterbox resize failed", err)
	}

	outPath := filepath.Join(opts.ArtifactsDir, opts.Prefix+"_screenshot.png")
	if err := imaging.Save(resized, outPath); err != nil {
		return nil, dpcerr.Wrap(dpcerr.Config, "failed to write screenshot artifact", err)
	}

	v := &view.NormalizedView{
		Kind:           view.KindImage,
		ScreenshotPath: outPath,
		Width:          opts.Viewport.Width,
		Height:         opts.Viewport.Height,
	}

	if opts.WantOcr && opts.Ocr != nil {
		blocks, err := opts.Ocr.Extract(context.Background(), outPath)
		if err != nil {
			if err == ErrUnavailable {
				v.OcrBlocks = nil
			} else {
				return nil, dpcerr.Wrap(dpcerr.Unknown, "ocr extraction failed", err)
			}
		} else {
			v.OcrBlocks = blocks
		}
	}

	return v, nil
}

func normalizeURL(ctx context.Context, url string, opts Options) (*view.NormalizedView, error) {
	if opts.Backend == nil {
		return nil, dpcerr.New(dpcerr.Config, "no render backend configured for url resources")
	}
	rendered, err := opts.Backend.RenderURL(ctx, url, opts.Viewport, opts.Timeouts, opts.Progress)
	if err != nil {
		return nil, classifyBackendError(err)
	}
	if err := view.ValidateFreshDomSnapshot(rendered.Dom); err != nil {
		return nil, err
	}
	return &view.NormalizedView{
		Kind:           view.KindURL,
		ScreenshotPath: rendered.RasterPath,
		Width:          opts.Viewport.Width,
		Height:         opts.Viewport.Height,
		Dom:            rendered.Dom,
	}, nil
}

func normalizeFigma(ctx context.Context, resource Resource, opts Options) (*view.NormalizedView, error) {
	if resource.Figma.NodeID == "" {
		return nil, dpcerr.New(dpcerr.Config, "Figma node-id is required")
	}
	if resource.Figma.FileKey == "" {
		return nil, dpcerr.New(dpcerr.Config, "Figma file-key is required")
	}
	if !opts.FigmaCreds.Available() {
		return nil, dpcerr.New(dpcerr.Config, "Figma credentials are required").
			WithRemediation("Check FIGMA_TOKEN/FIGMA_OAUTH_TOKEN and rate limits; retry after waiting")
	}
	if opts.Backend == nil {
		return nil, dpcerr.New(dpcerr.Config, "no render backend configured for figma resources")
	}

	rendered, err := opts.Backend.RenderFigma(ctx, resource.Figma.FileKey, resource.Figma.NodeID, opts.Viewport, 1.0)
	if err != nil {
		return nil, classifyBackendError(err)
	}
	return &view.NormalizedView{
		Kind:           view.KindFigma,
		ScreenshotPath: rendered.RasterPath,
		Width:          opts.Viewport.Width,
		Height:         opts.Viewport.Height,
		FigmaTree:      rendered.Figma,
	}, nil
}

func isPDF(path string) bool {
	ext := filepath.Ext(path)
	return len(ext) == 4 && (ext == ".pdf" || ext == ".PDF")
}

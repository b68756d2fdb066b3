// Package ingest dispatches a resource descriptor to the right loader and
// assembles a NormalizedView, honoring the mock-render override policy used
// for deterministic end-to-end tests.
package ingest

import (
	"context"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// Kind mirrors view.Kind but belongs to the resource descriptor rather than
// the assembled view, since a Url/Figma resource only becomes a Dom/Figma
// view after a successful render.
type Kind string

const (
	KindURL   Kind = "url"
	KindImage Kind = "image"
	KindFigma Kind = "figma"
)

// Viewport is the target raster size every view is normalized to.
type Viewport struct {
	Width  int
	Height int
}

// Timeouts bound a single render_url call. They are passed through to
// RenderBackend.RenderURL only; Image and Figma ingestion never consult them.
type Timeouts struct {
	Navigation   int // milliseconds
	NetworkIdle  int
	Process      int
}

// ProgressCallback receives coarse-grained progress updates during a render;
// the optional HTTP server relays these over a WebSocket.
type ProgressCallback func(stage string, percent float64)

// FigmaInfo names the Figma file/node to render.
type FigmaInfo struct {
	FileKey string
	NodeID  string
}

// FigmaCredentials is a caller-supplied lookup for the two token env keys
// spec §6 names; ingestion never reads os.Getenv directly (see EnvSnapshot).
type FigmaCredentials struct {
	Token      string
	OAuthToken string
}

func (c FigmaCredentials) Available() bool {
	return c.Token != "" || c.OAuthToken != ""
}

// Resource describes one side (ref or impl) of a compare run, or the single
// input of a quality run.
type Resource struct {
	Kind  Kind
	Value string // file path (Image), URL (Url), or Figma URL/file-key (Figma)
	Figma FigmaInfo
}

// RenderedURL is what RenderBackend.RenderURL returns on success.
type RenderedURL struct {
	RasterPath string
	Dom        *view.DomSnapshot
}

// RenderedFigma is what RenderBackend.RenderFigma returns on success.
type RenderedFigma struct {
	RasterPath string
	Figma      *view.FigmaSnapshot
}

// RenderBackend is the sole non-deterministic, I/O-bound collaborator.
// Implementations live outside the core (headless-browser control, Figma
// HTTP client); the core only depends on this interface, per §6.
type RenderBackend interface {
	RenderURL(ctx context.Context, url string, vp Viewport, timeouts Timeouts, progress ProgressCallback) (RenderedURL, error)
	RenderFigma(ctx context.Context, fileKey, nodeID string, vp Viewport, scale float64) (RenderedFigma, error)
}

// OcrBackend is the optional text-extraction collaborator. Unavailable is
// non-fatal and recovered locally by ingestion; any other error propagates.
type OcrBackend interface {
	Extract(ctx context.Context, rasterPath string) ([]view.OcrBlock, error)
}

// ErrUnavailable is returned by an OcrBackend that has no model/engine
// loaded. Ingestion treats it as "ocr_blocks absent", not an error.
var ErrUnavailable = errUnavailable{}

type errUnavailable struct{}

func (errUnavailable) Error() string { return "capability unavailable" }

package ingest

import (
	"context"

	"github.com/MeKo-Tech/dpc/internal/view"
)

// mockBackend is a deterministic RenderBackend used throughout the test
// suite, mirroring a canned-output mock-backend
// stand-in for a real, non-deterministic collaborator.
type mockBackend struct {
	urlResult   RenderedURL
	urlErr      error
	figmaResult RenderedFigma
	figmaErr    error
	calls       []string
}

func (m *mockBackend) RenderURL(_ context.Context, url string, _ Viewport, _ Timeouts, progress ProgressCallback) (RenderedURL, error) {
	m.calls = append(m.calls, "url:"+url)
	if progress != nil {
		progress("render", 1.0)
	}
	return m.urlResult, m.urlErr
}

func (m *mockBackend) RenderFigma(_ context.Context, fileKey, nodeID string, _ Viewport, _ float64) (RenderedFigma, error) {
	m.calls = append(m.calls, "figma:"+fileKey+"/"+nodeID)
	return m.figmaResult, m.figmaErr
}

type mockOcr struct {
	blocks []view.OcrBlock
	err    error
}

func (m *mockOcr) Extract(_ context.Context, _ string) ([]view.OcrBlock, error) {
	return m.blocks, m.err
}

func mapEnv(values map[string]string) EnvSnapshot {
	return EnvSnapshot{Lookup: func(k string) (string, bool) {
		v, ok := values[k]
		return v, ok
	}}
}

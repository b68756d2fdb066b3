package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/dpc/internal/cliconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := cliconfig.DefaultConfig()
	cfg.ArtifactsDir = dir
	return NewServer(cfg, nil, nil), dir
}

func TestHealthHandlerReturnsHealthy(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHealthHandlerRejectsNonGet(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCompareHandlerComparesTwoIdenticalImages(t *testing.T) {
	s, dir := newTestServer(t)
	refPath := filepath.Join(dir, "ref.png")
	implPath := filepath.Join(dir, "impl.png")
	writeTestPNG(t, refPath, 8, 8, color.RGBA{10, 20, 30, 255})
	writeTestPNG(t, implPath, 8, 8, color.RGBA{10, 20, 30, 255})

	body := CompareRequest{
		Ref:            ResourceRequest{Kind: "image", Value: refPath},
		Impl:           ResourceRequest{Kind: "image", Value: implPath},
		ViewportWidth:  8,
		ViewportHeight: 8,
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	s.compareHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "compare", env["mode"])
	assert.Equal(t, true, env["passed"])
}

func TestCompareHandlerRejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	s.compareHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "error", env["mode"])
}

func TestCompareHandlerRejectsMissingRefFile(t *testing.T) {
	s, dir := newTestServer(t)
	implPath := filepath.Join(dir, "impl.png")
	writeTestPNG(t, implPath, 4, 4, color.RGBA{1, 1, 1, 255})

	body := CompareRequest{
		Ref:  ResourceRequest{Kind: "image", Value: filepath.Join(dir, "missing.png")},
		Impl: ResourceRequest{Kind: "image", Value: implPath},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	s.compareHandler(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestCompareHandlerRejectsNonPost(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/compare", nil)
	rec := httptest.NewRecorder()

	s.compareHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

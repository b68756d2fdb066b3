// Package server implements the optional HTTP+WebSocket ambient surface
// (§6): POST /compare, GET /compare/ws, GET /metrics, GET /health, all
// wired atop internal/runner the way a thin HTTP layer wires its handlers
// atop a single shared pipeline entry point.
package server

import (
	"net/http"

	"github.com/MeKo-Tech/dpc/internal/cliconfig"
	"github.com/MeKo-Tech/dpc/internal/ingest"
)

// Server holds the HTTP server state and its collaborators.
type Server struct {
	cfg        cliconfig.Config
	backend    ingest.RenderBackend
	ocr        ingest.OcrBackend
	corsOrigin string
}

// NewServer constructs a Server. backend/ocr may be nil; Image-kind compare
// requests work without either, matching ingestion's own nil-tolerant
// design.
func NewServer(cfg cliconfig.Config, backend ingest.RenderBackend, ocr ingest.OcrBackend) *Server {
	return &Server{cfg: cfg, backend: backend, ocr: ocr, corsOrigin: cfg.Server.CORSOrigin}
}

// HealthResponse is GET /health's body.
type HealthResponse struct {
	Status string `json:"status"`
}

// ResourceRequest is one side of a CompareRequest/QualityRequest body.
type ResourceRequest struct {
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	FileKey string `json:"fileKey,omitempty"`
	NodeID  string `json:"nodeId,omitempty"`
}

// CompareRequest is POST /compare's body.
type CompareRequest struct {
	Ref           ResourceRequest `json:"ref"`
	Impl          ResourceRequest `json:"impl"`
	ViewportWidth int             `json:"viewportWidth,omitempty"`
	ViewportHeight int            `json:"viewportHeight,omitempty"`
	Threshold     float64         `json:"threshold,omitempty"`
	Metrics       []string        `json:"metrics,omitempty"`
	Selectors     string          `json:"selectors,omitempty"`
}

// QualityRequest is the quality-mode request body shape. No route or
// decoder in this package uses it.
type QualityRequest struct {
	Input          ResourceRequest `json:"input"`
	ViewportWidth  int             `json:"viewportWidth,omitempty"`
	ViewportHeight int             `json:"viewportHeight,omitempty"`
}

// SetupRoutes registers every handler on mux.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/compare", s.corsMiddleware(s.compareHandler))
	mux.HandleFunc("/compare/ws", s.corsMiddleware(s.compareWebSocketHandler))
	mux.HandleFunc("/metrics", s.corsMiddleware(promHandler().ServeHTTP))
}

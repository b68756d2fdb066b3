package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MeKo-Tech/dpc/internal/dpcerr"
	"github.com/MeKo-Tech/dpc/internal/filter"
	"github.com/MeKo-Tech/dpc/internal/ingest"
	"github.com/MeKo-Tech/dpc/internal/runner"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"}); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}

// compareHandler processes POST /compare requests.
func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorEnvelope(w, dpcerr.Wrap(dpcerr.Config, "invalid request body", err), http.StatusBadRequest)
		return
	}

	opts, err := s.buildCompareOptions(req)
	if err != nil {
		s.writeErrorEnvelope(w, err, errStatus(err))
		return
	}

	start := time.Now()
	env, err := runner.Compare(r.Context(), opts)
	compareDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		compareRunsTotal.WithLabelValues("error").Inc()
		s.writeErrorEnvelope(w, err, errStatus(err))
		return
	}

	outcome := "failed"
	if env.Passed {
		outcome = "passed"
	}
	compareRunsTotal.WithLabelValues(outcome).Inc()
	similarityScore.Observe(env.Similarity)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode compare response", "error", err)
	}
}

// buildCompareOptions translates a decoded CompareRequest into the options
// the runner needs, applying server-configured defaults for anything the
// caller left unset.
func (s *Server) buildCompareOptions(req CompareRequest) (runner.CompareOptions, error) {
	vp := s.cfg.ToViewport()
	if req.ViewportWidth > 0 {
		vp.Width = req.ViewportWidth
	}
	if req.ViewportHeight > 0 {
		vp.Height = req.ViewportHeight
	}

	threshold := s.cfg.Threshold
	if req.Threshold > 0 {
		threshold = req.Threshold
	}

	selectors := s.cfg.ToSelectors()
	if strings.TrimSpace(req.Selectors) != "" {
		selectors = filter.ParseSelectors(req.Selectors)
	}

	metricsCfg := s.cfg
	if len(req.Metrics) > 0 {
		metricsCfg.Metrics = req.Metrics
	}

	timeouts := s.cfg.ToTimeouts()
	env := ingest.EnvSnapshot{Lookup: os.LookupEnv}
	creds := ingest.FigmaCredentials{
		Token:      env.Get(s.cfg.Figma.TokenEnv),
		OAuthToken: env.Get(s.cfg.Figma.OAuthTokenEnv),
	}
	refOpts := ingest.Options{
		Viewport: vp, Timeouts: timeouts, Backend: s.backend, Ocr: s.ocr,
		ArtifactsDir: s.cfg.ArtifactsDir, Prefix: "ref", Env: env, FigmaCreds: creds, MockDir: s.cfg.MockDir,
	}
	implOpts := ingest.Options{
		Viewport: vp, Timeouts: timeouts, Backend: s.backend, Ocr: s.ocr,
		ArtifactsDir: s.cfg.ArtifactsDir, Prefix: "impl", Env: env, FigmaCreds: creds, MockDir: s.cfg.MockDir,
	}

	return runner.CompareOptions{
		Ref:       toResource(req.Ref),
		Impl:      toResource(req.Impl),
		RefOpts:   refOpts,
		ImplOpts:  implOpts,
		Selection: metricsCfg.ToMetricSelection(),
		Weights:   s.cfg.ToWeights(),
		Threshold: threshold,
		Selectors: selectors,
	}, nil
}

func toResource(r ResourceRequest) ingest.Resource {
	return ingest.Resource{
		Kind:  ingest.Kind(r.Kind),
		Value: r.Value,
		Figma: ingest.FigmaInfo{FileKey: r.FileKey, NodeID: r.NodeID},
	}
}

// writeErrorEnvelope writes the error-mode output envelope (§6) with an HTTP
// status derived from the error's category.
func (s *Server) writeErrorEnvelope(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(runner.ToErrorEnvelope(err)); encErr != nil {
		slog.Error("failed to encode error response", "error", encErr)
	}
}

// errStatus maps a dpcerr category to the HTTP status reported back to the
// caller; anything not recognized as a *dpcerr.Error is an internal error.
func errStatus(err error) int {
	e, ok := err.(*dpcerr.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Category {
	case dpcerr.Config:
		return http.StatusBadRequest
	case dpcerr.Network, dpcerr.Figma:
		return http.StatusBadGateway
	case dpcerr.Image, dpcerr.Metric:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/dpc/internal/runner"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// progressFrame is a compare-in-progress message pushed to the client while
// a render is underway.
type progressFrame struct {
	Type    string  `json:"type"`
	Stage   string  `json:"stage,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

// compareWebSocketHandler streams compare progress over a WebSocket
// connection, ending with the same envelope POST /compare returns.
func (s *Server) compareWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to websocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	var req CompareRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.sendWebSocketError(conn, "invalid_request", err.Error())
		return
	}

	opts, err := s.buildCompareOptions(req)
	if err != nil {
		s.sendWebSocketError(conn, "invalid_request", err.Error())
		return
	}

	progress := func(stage string, percent float64) {
		s.sendWebSocketJSON(conn, progressFrame{Type: "progress", Stage: stage, Percent: percent})
	}
	opts.RefOpts.Progress = progress
	opts.ImplOpts.Progress = progress

	start := time.Now()
	env, err := runner.Compare(r.Context(), opts)
	compareDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		compareRunsTotal.WithLabelValues("error").Inc()
		s.sendWebSocketError(conn, "processing_error", err.Error())
		return
	}

	outcome := "failed"
	if env.Passed {
		outcome = "passed"
	}
	compareRunsTotal.WithLabelValues(outcome).Inc()
	similarityScore.Observe(env.Similarity)

	s.sendWebSocketJSON(conn, env)
}

func (s *Server) sendWebSocketJSON(conn *websocket.Conn, v interface{}) {
	if err := conn.WriteJSON(v); err != nil {
		slog.Error("failed to send websocket message", "error", err)
	}
}

func (s *Server) sendWebSocketError(conn *websocket.Conn, errorType, message string) {
	env := runner.ErrorEnvelope{Mode: "error", Error: runner.ErrorDetail{Category: errorType, Message: message}}
	if err := conn.WriteJSON(env); err != nil {
		slog.Error("failed to send websocket error", "error", err)
	}
}

package server

import (
	"image/color"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestCompareWebSocketHandlerStreamsFinalEnvelope(t *testing.T) {
	s, dir := newTestServer(t)
	refPath := filepath.Join(dir, "ref.png")
	implPath := filepath.Join(dir, "impl.png")
	writeTestPNG(t, refPath, 8, 8, color.RGBA{5, 5, 5, 255})
	writeTestPNG(t, implPath, 8, 8, color.RGBA{5, 5, 5, 255})

	mux := http.NewServeMux()
	mux.HandleFunc("/compare/ws", s.compareWebSocketHandler)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/compare/ws"
	u, err := url.Parse(wsURL)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn.Close()

	req := CompareRequest{
		Ref:            ResourceRequest{Kind: "image", Value: refPath},
		Impl:           ResourceRequest{Kind: "image", Value: implPath},
		ViewportWidth:  8,
		ViewportHeight: 8,
	}
	require.NoError(t, conn.WriteJSON(req))

	var final map[string]interface{}
	for {
		var frame map[string]interface{}
		require.NoError(t, conn.ReadJSON(&frame))
		if frame["type"] == "progress" {
			continue
		}
		final = frame
		break
	}

	require.NotNil(t, final)
	require.Equal(t, "compare", final["mode"])
	require.Equal(t, true, final["passed"])
}

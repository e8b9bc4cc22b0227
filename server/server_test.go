package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowrezlab/termpix/render"
	"github.com/lowrezlab/termpix/terminal"
)

func newTestServer(t *testing.T, w, h int, mode render.Mode) (*Server, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, err := render.New(render.Config{Width: w, Height: h, Mode: mode})
	require.NoError(t, err)
	r.SetColorMode(terminal.ColorModeTrueColor)

	var out bytes.Buffer
	return New(r, &out, nil), &out
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestSizeEndpoint(t *testing.T) {
	s, _ := newTestServer(t, 40, 12, render.ModeSextant)

	rec := do(t, s, http.MethodGet, "/size", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"width":40,"height":12}`, rec.Body.String())
}

func TestPixelEndpointRendersFrame(t *testing.T) {
	s, out := newTestServer(t, 2, 1, render.ModeSextant)

	rec := do(t, s, http.MethodPost, "/pixel", `{"x":0,"y":0,"rgb":[255,255,255]}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, out.String(), "\x1b[38;2;255;255;255m")
	assert.Contains(t, out.String(), "\x1b[H")
}

func TestPixelOutOfRangeIsTolerated(t *testing.T) {
	s, _ := newTestServer(t, 2, 1, render.ModeSextant)

	rec := do(t, s, http.MethodPost, "/pixel", `{"x":9999,"y":-5,"rgb":[1,2,3]}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDrawCellsEndpoint(t *testing.T) {
	s, out := newTestServer(t, 4, 2, render.ModeQuadrant)

	body := `{"cells":[{"x":1,"y":0,"ch":"▀","fg":[255,0,0],"bg":[0,0,255]}]}`
	rec := do(t, s, http.MethodPost, "/drawcells", body)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, out.String(), "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀")
}

func TestFrameEndpointExpandsRuns(t *testing.T) {
	s, out := newTestServer(t, 6, 2, render.ModeSextant)

	body := `{"rows":[
		{"runs":[{"count":3,"ch":"■","fg":[10,20,30],"bg":[0,0,0]},{"count":3,"ch":"■","fg":[40,50,60],"bg":[0,0,0]}]},
		{"runs":[{"count":6,"ch":"■","fg":[10,20,30],"bg":[0,0,0]}]}
	]}`
	rec := do(t, s, http.MethodPost, "/frame", body)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rendered := out.String()
	assert.Equal(t, 12, strings.Count(rendered, "■"))
	// Change tracking: each color appears once per contiguous span per row
	assert.Equal(t, 2, strings.Count(rendered, "\x1b[38;2;10;20;30m"))
	assert.Equal(t, 1, strings.Count(rendered, "\x1b[38;2;40;50;60m"))
}

func TestFrameEndpointRejectsMalformedJSON(t *testing.T) {
	s, out := newTestServer(t, 4, 2, render.ModeSextant)

	rec := do(t, s, http.MethodPost, "/frame", `{"rows": "nope"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Display untouched: nothing was rendered
	assert.Zero(t, out.Len())
}

func TestFrameEndpointOverflowTolerated(t *testing.T) {
	s, _ := newTestServer(t, 2, 1, render.ModeSextant)

	// More rows and longer runs than the grid holds
	body := `{"rows":[
		{"runs":[{"count":50,"ch":"x","fg":[1,1,1],"bg":[0,0,0]}]},
		{"runs":[{"count":50,"ch":"x","fg":[1,1,1],"bg":[0,0,0]}]},
		{"runs":[{"count":50,"ch":"x","fg":[1,1,1],"bg":[0,0,0]}]}
	]}`
	rec := do(t, s, http.MethodPost, "/frame", body)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClearEndpointDropsCells(t *testing.T) {
	s, out := newTestServer(t, 4, 2, render.ModeSextant)

	do(t, s, http.MethodPost, "/drawcells", `{"cells":[{"x":0,"y":0,"ch":"#","fg":[200,200,200],"bg":[0,0,0]}]}`)
	require.Contains(t, out.String(), "#")

	out.Reset()
	rec := do(t, s, http.MethodPost, "/clear", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, out.String(), "#")
}

func TestBackgroundEndpoint(t *testing.T) {
	s, out := newTestServer(t, 2, 1, render.ModeSextant)

	rec := do(t, s, http.MethodPost, "/bg", `{"rgb":[0,0,90]}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, out.String(), "\x1b[48;2;0;0;90m")
}

func TestWebSocketCommands(t *testing.T) {
	s, out := newTestServer(t, 2, 1, render.ModeSextant)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":  "pixel",
		"pixel": map[string]any{"x": 0, "y": 0, "rgb": []int{255, 255, 255}},
	}))
	// ping round-trip confirms the pixel command was applied first
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping"}))
	var reply map[string]string
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "pong", reply["type"])
	assert.Contains(t, out.String(), "\x1b[38;2;255;255;255m")

	// Unknown commands get an error frame, not a dropped connection
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "bogus"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply["type"])
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, 2, 1, render.ModeSextant)

	do(t, s, http.MethodPost, "/pixel", `{"x":0,"y":0,"rgb":[255,255,255]}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "termpix_frames_rendered_total 1")
	assert.Contains(t, rec.Body.String(), "termpix_pixels_written_total 1")
}

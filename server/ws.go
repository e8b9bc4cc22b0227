package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // command surface is trusted-network only
	},
}

// wsMessage is one streamed command: the same payloads as the HTTP
// endpoints, tagged with a type.
type wsMessage struct {
	Type  string        `json:"type"`
	Pixel *pixelRequest `json:"pixel,omitempty"`
	Frame *frameRequest `json:"frame,omitempty"`
	Cells []cellSpec    `json:"cells,omitempty"`
	RGB   *[3]uint8     `json:"rgb,omitempty"`
}

// handleWS upgrades the connection and applies streamed commands until the
// peer goes away. Bad messages are answered with an error frame and dropped.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.metrics.WSConnections.Inc()
	defer s.metrics.WSConnections.Dec()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		s.applyWS(conn, &msg)
	}
}

func (s *Server) applyWS(conn *websocket.Conn, msg *wsMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case "pixel":
		if msg.Pixel == nil {
			s.wsError(conn, "pixel command missing payload")
			return
		}
		s.renderer.Buffer().SetPixel(msg.Pixel.X, msg.Pixel.Y, rgbFromTriple(msg.Pixel.RGB))
		s.metrics.PixelsWritten.Inc()
		s.rerender()

	case "frame":
		if msg.Frame == nil {
			s.wsError(conn, "frame command missing payload")
			return
		}
		s.applyFrame(msg.Frame)
		s.rerender()

	case "drawcells":
		for _, cell := range msg.Cells {
			s.renderer.SetCell(cell.X, cell.Y, firstRune(cell.Ch), rgbFromTriple(cell.Fg), rgbFromTriple(cell.Bg))
			s.metrics.CellsDrawn.Inc()
		}
		s.rerender()

	case "clear":
		var rgb [3]uint8
		if msg.RGB != nil {
			rgb = *msg.RGB
		}
		s.renderer.Clear(rgbFromTriple(rgb))
		s.rerender()

	case "bg":
		if msg.RGB == nil {
			s.wsError(conn, "bg command missing rgb")
			return
		}
		s.renderer.SetAmbient(rgbFromTriple(*msg.RGB))
		s.rerender()

	case "ping":
		_ = conn.WriteJSON(gin.H{"type": "pong"})

	default:
		s.wsError(conn, "unknown command type: "+msg.Type)
	}
}

func (s *Server) wsError(conn *websocket.Conn, reason string) {
	s.metrics.BadRequests.Inc()
	_ = conn.WriteJSON(gin.H{"type": "error", "error": reason})
}

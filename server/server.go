// Package server exposes the renderer over HTTP and WebSocket. It is the
// thin command surface around the core: every endpoint translates a remote
// edit into pixel buffer or cell override calls, then rerenders. The
// renderer is never shared concurrently; one mutex serializes all access.
package server

import (
	"io"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lowrezlab/termpix/render"
	"github.com/lowrezlab/termpix/terminal"
)

// Server wraps the gin router and the rendering state.
type Server struct {
	router   *gin.Engine
	renderer *render.Renderer
	out      io.Writer
	log      *zap.Logger
	metrics  *Metrics

	mu sync.Mutex // guards renderer and out
}

// New creates a server rendering to out (normally the terminal's stdout).
func New(renderer *render.Renderer, out io.Writer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		router:   gin.New(),
		renderer: renderer,
		out:      out,
		log:      log,
		metrics:  NewMetrics(),
	}
	s.router.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/size", s.handleSize)
	s.router.POST("/pixel", s.handlePixel)
	s.router.POST("/frame", s.handleFrame)
	s.router.POST("/drawcells", s.handleDrawCells)
	s.router.POST("/clear", s.handleClear)
	s.router.POST("/bg", s.handleBackground)
	s.router.GET("/ws", s.handleWS)
	s.router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}),
	))
}

// Router exposes the handler for tests and custom listeners.
func (s *Server) Router() *gin.Engine { return s.router }

// Run starts the HTTP listener. Blocks until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("termpix server listening",
		zap.String("addr", addr),
		zap.Int("width", s.renderer.Width()),
		zap.Int("height", s.renderer.Height()),
		zap.String("mode", s.renderer.Mode().String()),
	)
	return s.router.Run(addr)
}

// rerender flushes one frame under the lock. Render failures are logged and
// swallowed: a dead terminal must not take the command surface down with it.
func (s *Server) rerender() {
	n, err := s.renderer.Frame(s.out)
	if err != nil {
		s.log.Warn("frame write failed", zap.Error(err))
		return
	}
	s.metrics.FramesRendered.Inc()
	s.metrics.BytesEmitted.Add(float64(n))
}

func rgbFromTriple(t [3]uint8) terminal.RGB {
	return terminal.RGB{R: t[0], G: t[1], B: t[2]}
}

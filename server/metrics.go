package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for one server instance. Each
// server owns its registry so parallel instances (tests) do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	FramesRendered prometheus.Counter
	BytesEmitted   prometheus.Counter
	CellsDrawn     prometheus.Counter
	PixelsWritten  prometheus.Counter
	WSConnections  prometheus.Gauge
	BadRequests    prometheus.Counter
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		FramesRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "termpix_frames_rendered_total",
			Help: "Frames rendered to the terminal.",
		}),
		BytesEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "termpix_bytes_emitted_total",
			Help: "Escape-stream bytes written to the terminal.",
		}),
		CellsDrawn: factory.NewCounter(prometheus.CounterOpts{
			Name: "termpix_cells_drawn_total",
			Help: "Cell overrides drawn via /drawcells and /frame.",
		}),
		PixelsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "termpix_pixels_written_total",
			Help: "Single pixels written via /pixel.",
		}),
		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "termpix_ws_connections",
			Help: "Open WebSocket command connections.",
		}),
		BadRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "termpix_bad_requests_total",
			Help: "Malformed command payloads dropped.",
		}),
	}
}

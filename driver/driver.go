// Package driver paces frame production. It owns timing and source I/O so
// the render core stays synchronous and frame-at-a-time: a frame is fully
// produced into the pixel buffer, rendered whole, then the driver waits for
// the next tick. An aborted frame is discarded, never partially flushed.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/lowrezlab/termpix/raster"
	"github.com/lowrezlab/termpix/render"
)

// Source produces frames into the pixel buffer. NextFrame returns io.EOF
// when the stream ends; any other error drops the frame but keeps the loop
// alive (degraded-but-alive display).
type Source interface {
	NextFrame(buf *raster.Buffer) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(buf *raster.Buffer) error

func (f SourceFunc) NextFrame(buf *raster.Buffer) error { return f(buf) }

// Driver runs a ticker-paced render loop.
type Driver struct {
	renderer *render.Renderer
	source   Source
	out      io.Writer
	interval time.Duration
	log      *zap.Logger

	frames int64
	bytes  int64
}

// New creates a driver targeting one frame per interval.
func New(renderer *render.Renderer, source Source, out io.Writer, interval time.Duration, log *zap.Logger) (*Driver, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("driver: interval must be positive, got %v", interval)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		renderer: renderer,
		source:   source,
		out:      out,
		interval: interval,
		log:      log,
	}, nil
}

// Frames returns the number of frames rendered so far.
func (d *Driver) Frames() int64 { return d.frames }

// Bytes returns the total escape-stream bytes emitted so far.
func (d *Driver) Bytes() int64 { return d.bytes }

// Run renders frames until the source ends, the context is canceled, or the
// output writer fails. Cancellation is only observed between frames; a frame
// that started rendering always flushes whole.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		start := time.Now()
		if err := d.source.NextFrame(d.renderer.Buffer()); err != nil {
			if errors.Is(err, io.EOF) {
				d.log.Info("frame source ended", zap.Int64("frames", d.frames))
				return nil
			}
			// Malformed frame data degrades, never crashes the loop
			d.log.Warn("dropping frame", zap.Error(err))
			continue
		}

		n, err := d.renderer.Frame(d.out)
		if err != nil {
			return fmt.Errorf("driver: writing frame %d: %w", d.frames, err)
		}
		d.frames++
		d.bytes += int64(n)

		if elapsed := time.Since(start); elapsed > d.interval {
			d.log.Debug("slow frame",
				zap.Duration("elapsed", elapsed),
				zap.Duration("budget", d.interval),
				zap.Int64("frame", d.frames),
			)
		}
	}
}

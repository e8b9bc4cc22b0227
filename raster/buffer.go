// Package raster holds the source pixel grid that cell quantization reads
// from. The buffer is pure data: producers (frame drivers, remote edits)
// mutate it, the render path only reads it.
package raster

import (
	"errors"
	"fmt"

	"github.com/lowrezlab/termpix/terminal"
)

var (
	// ErrInvalidDimension is returned when constructing a buffer with
	// non-positive width or height.
	ErrInvalidDimension = errors.New("raster: width and height must be positive")

	// ErrSizeMismatch is returned by Load when the payload length does not
	// match the buffer geometry. The buffer is left unmodified.
	ErrSizeMismatch = errors.New("raster: payload size does not match buffer dimensions")
)

// Buffer is a width×height RGB pixel grid in row-major order.
type Buffer struct {
	width  int
	height int
	pixels []terminal.RGB
}

// New creates a black-initialized buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]terminal.RGB, width*height),
	}, nil
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels
func (b *Buffer) Height() int {
	return b.height
}

// SetPixel writes one pixel. Out-of-range coordinates are silently ignored:
// producers legitimately compute coordinates that round just outside bounds
// (float scaling, remote input), and a dropped write beats a dead render loop.
func (b *Buffer) SetPixel(x, y int, c terminal.RGB) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pixels[y*b.width+x] = c
}

// At returns the pixel at (x, y). Callers must stay in range.
func (b *Buffer) At(x, y int) terminal.RGB {
	return b.pixels[y*b.width+x]
}

// AtClamped returns the pixel at (x, y), or black outside the buffer. Edge
// cells whose glyph block extends past the raster read through this; black
// contributes to neither quantizer accumulator, so the overflow is invisible.
func (b *Buffer) AtClamped(x, y int) terminal.RGB {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return terminal.RGBBlack
	}
	return b.pixels[y*b.width+x]
}

// Clear fills the entire buffer with one color.
func (b *Buffer) Clear(c terminal.RGB) {
	for i := range b.pixels {
		b.pixels[i] = c
	}
}

// Load replaces the whole buffer from tightly packed bytes. bytesPerPixel is
// 3 (RGB) or 4 (RGBA, alpha ignored). On size mismatch the buffer is left
// untouched and ErrSizeMismatch is returned.
func (b *Buffer) Load(data []byte, bytesPerPixel int) error {
	if bytesPerPixel != 3 && bytesPerPixel != 4 {
		return fmt.Errorf("%w: unsupported %d bytes per pixel", ErrSizeMismatch, bytesPerPixel)
	}
	if len(data) != b.width*b.height*bytesPerPixel {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), b.width*b.height*bytesPerPixel)
	}
	for i := range b.pixels {
		off := i * bytesPerPixel
		b.pixels[i] = terminal.RGB{R: data[off], G: data[off+1], B: data[off+2]}
	}
	return nil
}

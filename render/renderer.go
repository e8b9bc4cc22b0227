// Package render walks the cell grid, quantizes each glyph-sized pixel block
// and assembles one escape-sequence frame. Emitted color state is tracked per
// renderer instance so frames stay minimal without process-wide globals.
package render

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/lowrezlab/termpix/glyph"
	"github.com/lowrezlab/termpix/quant"
	"github.com/lowrezlab/termpix/raster"
	"github.com/lowrezlab/termpix/terminal"
)

// Mode selects the glyph family and with it the pixel block geometry.
type Mode uint8

const (
	// ModeSextant renders 2×3 pixel blocks with six-subpixel glyphs.
	ModeSextant Mode = iota
	// ModeQuadrant renders 2×2 pixel blocks with four-subpixel glyphs.
	ModeQuadrant
)

// BlockHeight returns the pixel rows per cell (block width is always 2).
func (m Mode) BlockHeight() int {
	if m == ModeSextant {
		return 3
	}
	return 2
}

// BlockWidth returns the pixel columns per cell.
func (m Mode) BlockWidth() int { return 2 }

func (m Mode) String() string {
	if m == ModeSextant {
		return "sextant"
	}
	return "quadrant"
}

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sextant":
		return ModeSextant, nil
	case "quadrant":
		return ModeQuadrant, nil
	}
	return 0, fmt.Errorf("render: unknown glyph mode %q", s)
}

// Config is fixed at construction; Width and Height are in terminal cells.
type Config struct {
	Width  int
	Height int
	Mode   Mode
}

// Override is a cell drawn verbatim instead of quantized from pixels, used
// for remote drawcells edits.
type Override struct {
	Ch rune
	Fg terminal.RGB
	Bg terminal.RGB
}

// Renderer owns the pixel buffer and the per-frame escape emission state.
// Not safe for concurrent use; the frame driver or server serializes access.
type Renderer struct {
	cfg       Config
	colorMode terminal.ColorMode
	buf       *raster.Buffer
	overrides []*Override // cell-indexed, nil = quantize from pixels

	ambient    terminal.RGB
	hasAmbient bool

	// Last emitted colors, reset to unknown at frame start and at row ends
	// so every frame and row is self-consistent.
	lastFg  terminal.RGB
	lastBg  terminal.RGB
	fgValid bool
	bgValid bool

	out []byte // reused frame assembly buffer
}

// New creates a renderer with a black pixel buffer sized to the cell grid.
func New(cfg Config) (*Renderer, error) {
	buf, err := raster.New(cfg.Width*cfg.Mode.BlockWidth(), cfg.Height*cfg.Mode.BlockHeight())
	if err != nil {
		return nil, err
	}
	return &Renderer{
		cfg:       cfg,
		colorMode: terminal.DetectColorMode(),
		buf:       buf,
		overrides: make([]*Override, cfg.Width*cfg.Height),
	}, nil
}

// Buffer exposes the pixel buffer for producers (bulk loads, pixel edits).
func (r *Renderer) Buffer() *raster.Buffer { return r.buf }

// Width returns the grid width in cells.
func (r *Renderer) Width() int { return r.cfg.Width }

// Height returns the grid height in cells.
func (r *Renderer) Height() int { return r.cfg.Height }

// Mode returns the glyph family.
func (r *Renderer) Mode() Mode { return r.cfg.Mode }

// SetColorMode overrides the detected color capability.
func (r *Renderer) SetColorMode(m terminal.ColorMode) { r.colorMode = m }

// SetAmbient sets the fallback background used by cells that compute none.
// Takes effect on subsequent frames.
func (r *Renderer) SetAmbient(c terminal.RGB) {
	r.ambient = c
	r.hasAmbient = true
}

// SetCell places a verbatim cell override. Out-of-range coordinates are
// ignored, matching the pixel buffer's tolerant-write policy.
func (r *Renderer) SetCell(x, y int, ch rune, fg, bg terminal.RGB) {
	if x < 0 || x >= r.cfg.Width || y < 0 || y >= r.cfg.Height {
		return
	}
	r.overrides[y*r.cfg.Width+x] = &Override{Ch: ch, Fg: fg, Bg: bg}
}

// ClearCell removes a cell override so the cell quantizes from pixels again.
func (r *Renderer) ClearCell(x, y int) {
	if x < 0 || x >= r.cfg.Width || y < 0 || y >= r.cfg.Height {
		return
	}
	r.overrides[y*r.cfg.Width+x] = nil
}

// Clear fills the pixel buffer and drops all cell overrides.
func (r *Renderer) Clear(c terminal.RGB) {
	r.buf.Clear(c)
	for i := range r.overrides {
		r.overrides[i] = nil
	}
}

// Frame renders the whole grid as one escape-sequence buffer and writes it to
// w in a single call. Returns the number of bytes written. The only failure
// is the writer's; it propagates unmodified, retry policy belongs upstream.
func (r *Renderer) Frame(w io.Writer) (int, error) {
	out := r.out[:0]
	out = append(out, terminal.CSIHome...)
	r.fgValid = false
	r.bgValid = false

	for cy := 0; cy < r.cfg.Height; cy++ {
		for cx := 0; cx < r.cfg.Width; cx++ {
			if ov := r.overrides[cy*r.cfg.Width+cx]; ov != nil {
				out = r.emitOverride(out, ov)
				continue
			}
			switch r.cfg.Mode {
			case ModeSextant:
				out = r.emitSextant(out, cx, cy)
			case ModeQuadrant:
				out = r.emitQuadrant(out, cx, cy)
			}
		}
		// Reset at every row boundary; terminals do not guarantee color
		// state survives the newline, and stale tracking would bleed.
		out = append(out, terminal.CSIReset...)
		out = append(out, '\n')
		r.fgValid = false
		r.bgValid = false
	}

	r.out = out
	return w.Write(out)
}

func (r *Renderer) emitSextant(out []byte, cx, cy int) []byte {
	var block [6]terminal.RGB
	sx, sy := cx*2, cy*3
	for py := 0; py < 3; py++ {
		for px := 0; px < 2; px++ {
			block[py*2+px] = r.buf.AtClamped(sx+px, sy+py)
		}
	}
	mask, fg, bg, hasBG := quant.SplitThreshold(block[:])
	if !hasBG && r.hasAmbient {
		bg = r.ambient
		hasBG = true
	}
	return r.emitCell(out, glyph.Sextant[mask], mask, mask == glyph.SextantFull, fg, bg, hasBG)
}

func (r *Renderer) emitQuadrant(out []byte, cx, cy int) []byte {
	sx, sy := cx*2, cy*2
	px := [4]terminal.RGB{
		r.buf.AtClamped(sx, sy),
		r.buf.AtClamped(sx+1, sy),
		r.buf.AtClamped(sx, sy+1),
		r.buf.AtClamped(sx+1, sy+1),
	}
	mask, fg, bg := quant.SplitCluster(px)
	return r.emitCell(out, glyph.Quadrant[mask], mask, mask == glyph.QuadrantFull, fg, bg, true)
}

// emitCell appends the minimal escape sequence for one quantized cell given
// the colors already in effect.
func (r *Renderer) emitCell(out []byte, ch rune, mask uint8, fullLit bool, fg, bg terminal.RGB, hasBG bool) []byte {
	if mask == 0 {
		if hasBG {
			out = r.emitBg(out, bg)
			return append(out, ' ')
		}
		// Fully blank region with nothing to paint: drop back to the
		// terminal default so runs of empty cells cost one reset at most.
		if r.fgValid || r.bgValid {
			out = append(out, terminal.CSIReset...)
			r.fgValid = false
			r.bgValid = false
		}
		return append(out, ' ')
	}

	if !r.fgValid || fg != r.lastFg {
		out = terminal.AppendFg(out, fg, r.colorMode)
		r.lastFg = fg
		r.fgValid = true
	}
	if fullLit {
		// A fully lit glyph shows no background; clear any set one so it
		// cannot leak out from under a later partial glyph.
		if r.bgValid {
			out = append(out, terminal.CSIDefaultBg...)
			r.bgValid = false
		}
	} else if hasBG {
		out = r.emitBg(out, bg)
	}
	return utf8.AppendRune(out, ch)
}

func (r *Renderer) emitBg(out []byte, bg terminal.RGB) []byte {
	if !r.bgValid || bg != r.lastBg {
		out = terminal.AppendBg(out, bg, r.colorMode)
		r.lastBg = bg
		r.bgValid = true
	}
	return out
}

func (r *Renderer) emitOverride(out []byte, ov *Override) []byte {
	if !r.fgValid || ov.Fg != r.lastFg {
		out = terminal.AppendFg(out, ov.Fg, r.colorMode)
		r.lastFg = ov.Fg
		r.fgValid = true
	}
	out = r.emitBg(out, ov.Bg)
	return utf8.AppendRune(out, ov.Ch)
}

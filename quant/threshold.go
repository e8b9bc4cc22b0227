// Package quant turns one glyph-sized block of source pixels into a sub-cell
// bitmask plus representative foreground/background colors. Two strategies:
// a brightness threshold for sextant blocks and a two-means perceptual split
// for quadrant blocks.
package quant

import (
	"github.com/lowrezlab/termpix/terminal"
)

// brightnessFloor is the channel-sum cutoff between foreground and
// background contribution. Pixels at exactly zero count toward neither:
// literal black stays invisible instead of muddying the background average.
const brightnessFloor = 30

// SplitThreshold classifies each pixel of a sextant block by brightness.
// Bit i of the mask corresponds to block[i] (row-major, bit = py*2+px).
// hasBG reports whether any pixel contributed to the background average;
// when false the caller falls back to the ambient background.
func SplitThreshold(block []terminal.RGB) (mask uint8, fg, bg terminal.RGB, hasBG bool) {
	var fgR, fgG, fgB, fgN int
	var bgR, bgG, bgB, bgN int

	for i, px := range block {
		b := px.Brightness()
		switch {
		case b > brightnessFloor:
			mask |= 1 << i
			fgR += int(px.R)
			fgG += int(px.G)
			fgB += int(px.B)
			fgN++
		case b > 0:
			bgR += int(px.R)
			bgG += int(px.G)
			bgB += int(px.B)
			bgN++
		}
		// b == 0: true black, counted toward neither accumulator
	}

	if fgN > 0 {
		fg = terminal.RGB{
			R: uint8((fgR + fgN/2) / fgN),
			G: uint8((fgG + fgN/2) / fgN),
			B: uint8((fgB + fgN/2) / fgN),
		}
	}
	if bgN > 0 {
		bg = terminal.RGB{
			R: uint8((bgR + bgN/2) / bgN),
			G: uint8((bgG + bgN/2) / bgN),
			B: uint8((bgB + bgN/2) / bgN),
		}
		hasBG = true
	}
	return mask, fg, bg, hasBG
}

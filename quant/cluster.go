package quant

import (
	"github.com/lowrezlab/termpix/terminal"
)

// uniformCutoff is the max pairwise distance below which a quadrant block is
// treated as one flat color. Keeps near-uniform regions on the full-block
// glyph instead of flickering between split patterns frame to frame.
const uniformCutoff = 64.0

const clusterIterations = 3

// yuv is a BT.601-style luma/chroma triple used for perceptual distance.
type yuv struct {
	y, u, v float64
}

func toYUV(c terminal.RGB) yuv {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return yuv{
		y: 0.299*r + 0.587*g + 0.114*b,
		u: -0.168736*r - 0.331264*g + 0.5*b,
		v: 0.5*r - 0.418688*g - 0.081312*b,
	}
}

// dist2 is the squared perceptual distance. Luma is weighted double to bias
// splits toward brightness separation, matching the sextant threshold.
func dist2(a, b yuv) float64 {
	dy := a.y - b.y
	du := a.u - b.u
	dv := a.v - b.v
	return 2*dy*dy + du*du + dv*dv
}

// SplitCluster groups the four quadrant pixels (TL, TR, BL, BR) into a
// foreground and a background cluster. Mask bits follow the quadrant glyph
// order: TL=1, TR=2, BL=4, BR=8, set for foreground-cluster membership.
//
// The clustering is deliberately rigid for reproducibility: centers seed from
// the first and last input, ties assign to cluster 1, and exactly three
// reassign/recenter rounds run with no convergence early-exit. Changing the
// seeding changes visual output.
func SplitCluster(px [4]terminal.RGB) (mask uint8, fg, bg terminal.RGB) {
	var pts [4]yuv
	for i, c := range px {
		pts[i] = toYUV(c)
	}

	// Near-uniform block: one averaged color on the full-block glyph.
	maxD := 0.0
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 4; j++ {
			if d := dist2(pts[i], pts[j]); d > maxD {
				maxD = d
			}
		}
	}
	if maxD < uniformCutoff {
		avg := meanRGB(px[:], 0b1111)
		return 0b1111, avg, avg
	}

	c1, c2 := pts[0], pts[3]
	all := meanYUV(pts, 0b1111)

	for iter := 0; iter < clusterIterations; iter++ {
		mask = 0
		for i := 0; i < 4; i++ {
			if dist2(pts[i], c1) <= dist2(pts[i], c2) {
				mask |= 1 << i
			}
		}

		c1 = meanYUV(pts, mask)
		c2 = meanYUV(pts, ^mask&0b1111)
		if mask == 0 {
			c1 = all
		}
		if mask == 0b1111 {
			c2 = all
		}
	}

	fg = meanRGB(px[:], mask)
	bg = meanRGB(px[:], ^mask&0b1111)
	if mask == 0 {
		fg = meanRGB(px[:], 0b1111)
	}
	if mask == 0b1111 {
		bg = meanRGB(px[:], 0b1111)
	}
	return mask, fg, bg
}

// meanYUV averages the points selected by the member mask.
func meanYUV(pts [4]yuv, members uint8) yuv {
	var sum yuv
	n := 0
	for i := 0; i < 4; i++ {
		if members&(1<<i) != 0 {
			sum.y += pts[i].y
			sum.u += pts[i].u
			sum.v += pts[i].v
			n++
		}
	}
	if n == 0 {
		return yuv{}
	}
	f := float64(n)
	return yuv{y: sum.y / f, u: sum.u / f, v: sum.v / f}
}

// meanRGB averages the colors selected by the member mask, rounding half up.
func meanRGB(px []terminal.RGB, members uint8) terminal.RGB {
	var r, g, b, n int
	for i, c := range px {
		if members&(1<<i) != 0 {
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			n++
		}
	}
	if n == 0 {
		return terminal.RGBBlack
	}
	return terminal.RGB{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
	}
}

package quant

import (
	"math/bits"
	"testing"

	"github.com/lowrezlab/termpix/terminal"
)

func TestSplitThresholdTrueBlackInvisible(t *testing.T) {
	// All-black block contributes to neither accumulator
	block := make([]terminal.RGB, 6)
	mask, _, _, hasBG := SplitThreshold(block)
	if mask != 0 {
		t.Errorf("All-black mask = %06b, want 0", mask)
	}
	if hasBG {
		t.Error("All-black block must not produce a background color")
	}
}

func TestSplitThresholdForegroundCutoff(t *testing.T) {
	tests := []struct {
		name   string
		px     terminal.RGB
		wantFG bool
		wantBG bool
	}{
		{"True black", terminal.RGB{R: 0, G: 0, B: 0}, false, false},
		{"Dim, at floor", terminal.RGB{R: 10, G: 10, B: 10}, false, true},
		{"Just above floor", terminal.RGB{R: 11, G: 10, B: 10}, true, false},
		{"Bright", terminal.RGB{R: 200, G: 200, B: 200}, true, false},
		{"Single dark channel", terminal.RGB{R: 0, G: 0, B: 5}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := make([]terminal.RGB, 6)
			block[2] = tt.px
			mask, fg, bg, hasBG := SplitThreshold(block)

			if gotFG := mask&(1<<2) != 0; gotFG != tt.wantFG {
				t.Errorf("mask bit 2 = %v, want %v", gotFG, tt.wantFG)
			}
			if hasBG != tt.wantBG {
				t.Errorf("hasBG = %v, want %v", hasBG, tt.wantBG)
			}
			if tt.wantFG && fg != tt.px {
				t.Errorf("fg = %v, want %v", fg, tt.px)
			}
			if tt.wantBG && bg != tt.px {
				t.Errorf("bg = %v, want %v", bg, tt.px)
			}
		})
	}
}

func TestSplitThresholdAverages(t *testing.T) {
	block := []terminal.RGB{
		{R: 255, G: 0, B: 0},  // fg
		{R: 0, G: 255, B: 0},  // fg
		{R: 10, G: 0, B: 0},   // bg
		{R: 0, G: 0, B: 10},   // bg
		{R: 0, G: 0, B: 0},    // neither
		{R: 40, G: 40, B: 40}, // fg
	}
	mask, fg, bg, hasBG := SplitThreshold(block)

	if mask != 0b100011 {
		t.Errorf("mask = %06b, want 100011", mask)
	}
	if !hasBG {
		t.Fatal("expected a background color")
	}
	want := terminal.RGB{R: 98, G: 98, B: 13} // means of the three fg pixels
	if fg != want {
		t.Errorf("fg = %v, want %v", fg, want)
	}
	if bg != (terminal.RGB{R: 5, G: 0, B: 5}) {
		t.Errorf("bg = %v, want {5 0 5}", bg)
	}
}

func TestSplitClusterUniform(t *testing.T) {
	c := terminal.RGB{R: 120, G: 33, B: 7}
	mask, fg, bg := SplitCluster([4]terminal.RGB{c, c, c, c})

	if mask != 0b1111 {
		t.Errorf("Uniform mask = %04b, want 1111", mask)
	}
	if fg != c || bg != c {
		t.Errorf("Uniform fg/bg = %v/%v, want %v", fg, bg, c)
	}
}

func TestSplitClusterNearUniform(t *testing.T) {
	// Small perturbations stay under the uniform cutoff
	mask, fg, bg := SplitCluster([4]terminal.RGB{
		{R: 100, G: 100, B: 100},
		{R: 102, G: 100, B: 100},
		{R: 100, G: 101, B: 100},
		{R: 100, G: 100, B: 103},
	})
	if mask != 0b1111 {
		t.Errorf("Near-uniform mask = %04b, want 1111", mask)
	}
	if fg != bg {
		t.Errorf("Near-uniform fg %v != bg %v", fg, bg)
	}
}

func TestSplitClusterRedBlue(t *testing.T) {
	red := terminal.RGB{R: 255}
	blue := terminal.RGB{B: 255}

	mask, fg, bg := SplitCluster([4]terminal.RGB{red, red, blue, blue})

	// TL/TR in one group, BL/BR in the other; labels may land either way
	// but this exact input seeds cluster 1 on red.
	if mask != 0b0011 {
		t.Errorf("mask = %04b, want 0011", mask)
	}
	if fg != red || bg != blue {
		t.Errorf("fg/bg = %v/%v, want red/blue", fg, bg)
	}
}

// partition returns a canonical representation of a 4-bit mask split,
// ignoring which side is labeled foreground.
func partition(mask uint8) uint8 {
	if mask&1 != 0 {
		return mask
	}
	return ^mask & 0b1111
}

func TestSplitClusterPermutationConsistent(t *testing.T) {
	red := terminal.RGB{R: 255}
	blue := terminal.RGB{B: 255}

	// Every arrangement of two reds and two blues must group the reds
	// together and the blues together, whatever the labels.
	for bitsSet := uint8(1); bitsSet < 0b1111; bitsSet++ {
		if bits.OnesCount8(bitsSet) != 2 {
			continue
		}
		var px [4]terminal.RGB
		for i := 0; i < 4; i++ {
			if bitsSet&(1<<i) != 0 {
				px[i] = red
			} else {
				px[i] = blue
			}
		}

		mask, fg, bg := SplitCluster(px)

		if px[0] == px[3] {
			// Identical first/last pixels seed both centers on the same
			// point; the split collapses to a single averaged cluster.
			// Preserved as-is for output compatibility with the seeding rule.
			if mask != 0b1111 || fg != bg {
				t.Errorf("px=%v: degenerate seeds gave mask %04b fg %v bg %v", px, mask, fg, bg)
			}
			continue
		}

		if partition(mask) != partition(bitsSet) {
			t.Errorf("px=%v: mask %04b does not split reds %04b from blues", px, mask, bitsSet)
		}
		if !(fg == red && bg == blue) && !(fg == blue && bg == red) {
			t.Errorf("px=%v: fg/bg = %v/%v, want red and blue in either order", px, fg, bg)
		}
		// Foreground label must agree with the mask bits
		for i := 0; i < 4; i++ {
			want := bg
			if mask&(1<<i) != 0 {
				want = fg
			}
			if px[i] != want {
				t.Errorf("px=%v: quadrant %d labeled %v, pixel is %v", px, i, want, px[i])
			}
		}
	}
}

func TestSplitClusterDeterministic(t *testing.T) {
	px := [4]terminal.RGB{
		{R: 200, G: 30, B: 10},
		{R: 190, G: 40, B: 20},
		{R: 15, G: 20, B: 180},
		{R: 170, G: 35, B: 25},
	}
	m0, f0, b0 := SplitCluster(px)
	for i := 0; i < 10; i++ {
		m, f, b := SplitCluster(px)
		if m != m0 || f != f0 || b != b0 {
			t.Fatalf("Run %d diverged: %04b/%v/%v vs %04b/%v/%v", i, m, f, b, m0, f0, b0)
		}
	}
	// The lone blue quadrant must sit apart from the three reds
	if partition(m0) != partition(0b1011) {
		t.Errorf("mask = %04b, want blue quadrant isolated", m0)
	}
}

func TestSplitClusterSeeding(t *testing.T) {
	// Seeds are the literal first and last inputs, so swapping ends swaps
	// the foreground label.
	red := terminal.RGB{R: 255}
	blue := terminal.RGB{B: 255}

	mask, fg, bg := SplitCluster([4]terminal.RGB{blue, blue, red, red})
	if mask != 0b0011 {
		t.Errorf("mask = %04b, want 0011", mask)
	}
	if fg != blue || bg != red {
		t.Errorf("fg/bg = %v/%v, want blue/red", fg, bg)
	}
}

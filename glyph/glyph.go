// Package glyph provides the fixed bitmask → block character tables. Tables
// are flat array literals so lookup stays O(1) and totality is testable.
package glyph

// Sextant maps a 6-bit sub-cell mask to the matching block character.
// Bit order is row-major over a 2×3 grid: bit = py*2+px, bit 0 = top-left.
// Unicode's legacy computing sextant range omits four patterns that already
// exist as block elements: empty, left half, right half, full block.
var Sextant = [64]rune{
	' ', // 0b000000 - empty
	'🬀', // 0b000001
	'🬁', // 0b000010
	'🬂', // 0b000011
	'🬃', // 0b000100
	'🬄', // 0b000101
	'🬅', // 0b000110
	'🬆', // 0b000111
	'🬇', // 0b001000
	'🬈', // 0b001001
	'🬉', // 0b001010
	'🬊', // 0b001011
	'🬋', // 0b001100
	'🬌', // 0b001101
	'🬍', // 0b001110
	'🬎', // 0b001111
	'🬏', // 0b010000
	'🬐', // 0b010001
	'🬑', // 0b010010
	'🬒', // 0b010011
	'🬓', // 0b010100
	'▌', // 0b010101 - left half
	'🬔', // 0b010110
	'🬕', // 0b010111
	'🬖', // 0b011000
	'🬗', // 0b011001
	'🬘', // 0b011010
	'🬙', // 0b011011
	'🬚', // 0b011100
	'🬛', // 0b011101
	'🬜', // 0b011110
	'🬝', // 0b011111
	'🬞', // 0b100000
	'🬟', // 0b100001
	'🬠', // 0b100010
	'🬡', // 0b100011
	'🬢', // 0b100100
	'🬣', // 0b100101
	'🬤', // 0b100110
	'🬥', // 0b100111
	'🬦', // 0b101000
	'🬧', // 0b101001
	'▐', // 0b101010 - right half
	'🬨', // 0b101011
	'🬩', // 0b101100
	'🬪', // 0b101101
	'🬫', // 0b101110
	'🬬', // 0b101111
	'🬭', // 0b110000
	'🬮', // 0b110001
	'🬯', // 0b110010
	'🬰', // 0b110011
	'🬱', // 0b110100
	'🬲', // 0b110101
	'🬳', // 0b110110
	'🬴', // 0b110111
	'🬵', // 0b111000
	'🬶', // 0b111001
	'🬷', // 0b111010
	'🬸', // 0b111011
	'🬹', // 0b111100
	'🬺', // 0b111101
	'🬻', // 0b111110
	'█', // 0b111111 - full block
}

// Quadrant maps a 4-bit sub-cell mask to the matching block character.
// Bit order: TL=1, TR=2, BL=4, BR=8 (1 = foreground).
var Quadrant = [16]rune{
	' ', // 0b0000 - empty
	'▘', // 0b0001 - upper-left
	'▝', // 0b0010 - upper-right
	'▀', // 0b0011 - upper half
	'▖', // 0b0100 - lower-left
	'▌', // 0b0101 - left half
	'▞', // 0b0110 - anti-diagonal
	'▛', // 0b0111 - UL + UR + LL
	'▗', // 0b1000 - lower-right
	'▚', // 0b1001 - diagonal
	'▐', // 0b1010 - right half
	'▜', // 0b1011 - UL + UR + LR
	'▄', // 0b1100 - lower half
	'▙', // 0b1101 - UL + LL + LR
	'▟', // 0b1110 - UR + LL + LR
	'█', // 0b1111 - full block
}

const (
	// SextantFull is the all-lit sextant mask.
	SextantFull = 0b111111

	// QuadrantFull is the all-lit quadrant mask.
	QuadrantFull = 0b1111
)

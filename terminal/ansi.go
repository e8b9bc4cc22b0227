package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	CSIHome  = []byte("\x1b[H")
	CSIReset = []byte("\x1b[0m")
	CSIClear = []byte("\x1b[2J\x1b[H")

	// Cursor control
	CSICursorHide = []byte("\x1b[?25l")
	CSICursorShow = []byte("\x1b[?25h")

	// Screen modes
	CSIAltScreenEnter = []byte("\x1b[?1049h")
	CSIAltScreenExit  = []byte("\x1b[?1049l")

	// Color prefixes and resets
	csiFg256     = []byte("\x1b[38;5;")
	csiBg256     = []byte("\x1b[48;5;")
	csiFgRGB     = []byte("\x1b[38;2;")
	csiBgRGB     = []byte("\x1b[48;2;")
	CSIDefaultFg = []byte("\x1b[39m")
	CSIDefaultBg = []byte("\x1b[49m")
)

// appendInt appends a decimal integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [5]byte
	i := 4
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	return append(dst, buf[i+1:]...)
}

// AppendFg appends a foreground color sequence for the given color mode.
func AppendFg(dst []byte, c RGB, mode ColorMode) []byte {
	if mode == ColorModeTrueColor {
		dst = append(dst, csiFgRGB...)
		dst = appendInt(dst, int(c.R))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.G))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.B))
		return append(dst, 'm')
	}
	dst = append(dst, csiFg256...)
	dst = appendInt(dst, int(RGBTo256(c)))
	return append(dst, 'm')
}

// AppendBg appends a background color sequence for the given color mode.
func AppendBg(dst []byte, c RGB, mode ColorMode) []byte {
	if mode == ColorModeTrueColor {
		dst = append(dst, csiBgRGB...)
		dst = appendInt(dst, int(c.R))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.G))
		dst = append(dst, ';')
		dst = appendInt(dst, int(c.B))
		return append(dst, 'm')
	}
	dst = append(dst, csiBg256...)
	dst = appendInt(dst, int(RGBTo256(c)))
	return append(dst, 'm')
}

// AppendCursorPos appends a cursor positioning sequence (0-indexed input).
func AppendCursorPos(dst []byte, x, y int) []byte {
	dst = append(dst, "\x1b["...)
	dst = appendInt(dst, y+1)
	dst = append(dst, ';')
	dst = appendInt(dst, x+1)
	return append(dst, 'H')
}

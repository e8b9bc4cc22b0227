package terminal

import (
	"os"
	"testing"
)

func TestRGBTo256Primaries(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"Black", RGB{0, 0, 0}, 16},
		{"White", RGB{255, 255, 255}, 231},
		{"Red", RGB{255, 0, 0}, 196},
		{"Green", RGB{0, 255, 0}, 46},
		{"Blue", RGB{0, 0, 255}, 21},
		{"Yellow", RGB{255, 255, 0}, 226},
		{"Cyan", RGB{0, 255, 255}, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.c); got != tt.want {
				t.Errorf("RGBTo256(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestRGBTo256GrayRamp(t *testing.T) {
	// Mid grays should land on the grayscale ramp, not the color cube
	for _, level := range []uint8{18, 88, 128, 208} {
		idx := RGBTo256(RGB{level, level, level})
		if idx < grayscaleStart {
			t.Errorf("RGBTo256 gray level %d = %d, expected grayscale ramp index (>= %d)", level, idx, grayscaleStart)
		}
	}
}

func TestAppendFgTrueColor(t *testing.T) {
	got := string(AppendFg(nil, RGB{1, 22, 233}, ColorModeTrueColor))
	want := "\x1b[38;2;1;22;233m"
	if got != want {
		t.Errorf("AppendFg = %q, want %q", got, want)
	}
}

func TestAppendBg256(t *testing.T) {
	got := string(AppendBg(nil, RGB{255, 0, 0}, ColorMode256))
	want := "\x1b[48;5;196m"
	if got != want {
		t.Errorf("AppendBg = %q, want %q", got, want)
	}
}

func TestAppendCursorPos(t *testing.T) {
	got := string(AppendCursorPos(nil, 0, 0))
	if got != "\x1b[1;1H" {
		t.Errorf("AppendCursorPos(0,0) = %q, want %q", got, "\x1b[1;1H")
	}
	got = string(AppendCursorPos(nil, 9, 119))
	if got != "\x1b[120;10H" {
		t.Errorf("AppendCursorPos(9,119) = %q, want %q", got, "\x1b[120;10H")
	}
}

func TestDetectColorModeColorterm(t *testing.T) {
	os.Setenv("COLORTERM", "truecolor")
	defer os.Unsetenv("COLORTERM")

	if DetectColorMode() != ColorModeTrueColor {
		t.Error("Expected truecolor with COLORTERM=truecolor")
	}
}

// imgterm renders a still image to the terminal once and exits.
// Usage: imgterm [-width N] [-mode sextant|quadrant] image.{png,jpg,gif}
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/lowrezlab/termpix/render"
	"github.com/lowrezlab/termpix/terminal"
)

func main() {
	width := flag.Int("width", 0, "output width in terminal columns (0 = terminal width)")
	modeName := flag.String("mode", "sextant", "glyph mode: sextant or quadrant")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: imgterm [-width N] [-mode sextant|quadrant] <image>")
		os.Exit(2)
	}

	mode, err := render.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cols := *width
	if cols <= 0 {
		cols = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols = w
		}
	}

	if err := run(flag.Arg(0), cols, mode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, cols int, mode render.Mode) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return fmt.Errorf("%s: empty image", path)
	}

	// Terminal cells are roughly twice as tall as wide, so the cell grid
	// keeps the image aspect at half the row count.
	aspect := float64(bounds.Dy()) / float64(bounds.Dx())
	rows := int(float64(cols) * aspect * 0.5)
	if rows < 1 {
		rows = 1
	}

	renderer, err := render.New(render.Config{Width: cols, Height: rows, Mode: mode})
	if err != nil {
		return err
	}

	// Scale onto the sub-pixel grid and bulk-load the packed RGBA bytes.
	grid := image.NewRGBA(image.Rect(0, 0,
		cols*mode.BlockWidth(), rows*mode.BlockHeight()))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, bounds, draw.Src, nil)

	if err := renderer.Buffer().Load(grid.Pix, 4); err != nil {
		return err
	}

	os.Stdout.Write(terminal.CSIClear)
	_, err = renderer.Frame(os.Stdout)
	return err
}

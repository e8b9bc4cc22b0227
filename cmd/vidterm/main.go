// vidterm plays a video file in the terminal. Decoding stays in an external
// ffmpeg process emitting packed rgb24 frames over a pipe; vidterm paces
// frames with the driver and optionally plays a WAV audio sidecar.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lowrezlab/termpix/driver"
	"github.com/lowrezlab/termpix/raster"
	"github.com/lowrezlab/termpix/render"
	"github.com/lowrezlab/termpix/terminal"
)

func main() {
	width := flag.Int("width", 0, "output width in terminal columns (0 = terminal width)")
	height := flag.Int("height", 0, "output height in terminal rows (0 = terminal height)")
	modeName := flag.String("mode", "quadrant", "glyph mode: sextant or quadrant")
	fps := flag.Float64("fps", 24, "playback frame rate")
	audioPath := flag.String("audio", "", "optional WAV file played alongside")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vidterm [flags] <video>")
		os.Exit(2)
	}

	mode, err := render.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *fps <= 0 {
		fmt.Fprintln(os.Stderr, "fps must be positive")
		os.Exit(2)
	}

	cols, rows := *width, *height
	if cols <= 0 || rows <= 0 {
		tw, th, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			tw, th = 80, 24
		}
		if cols <= 0 {
			cols = tw
		}
		if rows <= 0 {
			rows = th - 1
		}
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := play(flag.Arg(0), cols, rows, mode, *fps, *audioPath, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func play(path string, cols, rows int, mode render.Mode, fps float64, audioPath string, log *zap.Logger) error {
	renderer, err := render.New(render.Config{Width: cols, Height: rows, Mode: mode})
	if err != nil {
		return err
	}

	pw := renderer.Buffer().Width()
	ph := renderer.Buffer().Height()

	// ffmpeg handles demux/decode/scale; we consume raw packed RGB frames.
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", pw, ph),
		"-loglevel", "quiet",
		"-",
	)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}
	defer cmd.Wait()
	defer pipe.Close()

	src := &rawSource{r: pipe, frame: make([]byte, pw*ph*3)}

	interval := time.Duration(float64(time.Second) / fps)
	d, err := driver.New(renderer, src, os.Stdout, interval, log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if audioPath != "" {
		stop, err := playAudio(audioPath)
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer stop()
		}
	}

	os.Stdout.Write(terminal.CSIAltScreenEnter)
	os.Stdout.Write(terminal.CSICursorHide)
	os.Stdout.Write(terminal.CSIClear)
	defer func() {
		os.Stdout.Write(terminal.CSIReset)
		os.Stdout.Write(terminal.CSICursorShow)
		os.Stdout.Write(terminal.CSIAltScreenExit)
	}()

	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// rawSource reads fixed-size packed rgb24 frames from the decoder pipe.
type rawSource struct {
	r     io.Reader
	frame []byte
}

func (s *rawSource) NextFrame(buf *raster.Buffer) error {
	if _, err := io.ReadFull(s.r, s.frame); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF // trailing partial frame: stream is over
		}
		return err
	}
	return buf.Load(s.frame, 3)
}

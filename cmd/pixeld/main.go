// pixeld is the terminal pixel server: it owns the local terminal display
// and accepts remote pixel/cell edits over HTTP and WebSocket.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lowrezlab/termpix/config"
	"github.com/lowrezlab/termpix/render"
	"github.com/lowrezlab/termpix/server"
	"github.com/lowrezlab/termpix/terminal"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	autosize := flag.Bool("autosize", false, "size the grid from the attached terminal")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *autosize {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			// Leave the last row free so the frame's final newline does
			// not scroll the display.
			cfg.Grid.Width = w
			cfg.Grid.Height = h - 1
			log.Info("grid sized from terminal", zap.Int("width", w), zap.Int("height", h-1))
		} else {
			log.Warn("terminal size detection failed, keeping configured grid", zap.Error(err))
		}
	}

	renderer, err := render.New(cfg.RenderConfig())
	if err != nil {
		log.Fatal("renderer construction failed", zap.Error(err))
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		os.Stdout.Write(terminal.CSICursorHide)
		os.Stdout.Write(terminal.CSIClear)
	}
	restore := func() {
		if interactive {
			os.Stdout.Write(terminal.CSIReset)
			os.Stdout.Write(terminal.CSICursorShow)
		}
	}
	defer restore()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		restore()
		os.Exit(0)
	}()

	// gin's debug logger writes to stdout, which the display owns.
	gin.SetMode(gin.ReleaseMode)

	srv := server.New(renderer, os.Stdout, log)
	if err := srv.Run(cfg.Addr()); err != nil {
		restore()
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	// The display owns stdout; logs must not corrupt the frame stream.
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

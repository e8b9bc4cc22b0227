// tetra is a falling-block game that renders on a remote pixeld instance
// through /drawcells while reading keyboard input from the local terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	tickStart = 500 * time.Millisecond
	tickMin   = 80 * time.Millisecond
	tickDecay = 0.995
)

func main() {
	server := flag.String("server", "http://127.0.0.1:3000", "pixeld base URL")
	flag.Parse()

	if err := run(*server); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(server string) error {
	c := newClient(server)
	termW, termH, err := c.gridSize()
	if err != nil {
		return fmt.Errorf("reaching %s: %w", server, err)
	}
	c.clear()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	g := newGame()
	tick := tickStart
	gravity := time.NewTimer(tick)
	defer gravity.Stop()
	redraw := time.NewTicker(50 * time.Millisecond)
	defer redraw.Stop()

	drawStatus(screen, g, server)
	c.sendCells(frame(g, termW, termH))

	for {
		select {
		case <-gravity.C:
			cleared, alive := g.step()
			if cleared > 0 {
				for i := 0; i < cleared; i++ {
					tick = time.Duration(float64(tick) * tickDecay)
				}
				if tick < tickMin {
					tick = tickMin
				}
			}
			if !alive {
				c.sendCells(frame(g, termW, termH))
				return nil
			}
			gravity.Reset(tick)

		case ev := <-events:
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			if quit := handleKey(g, key); quit {
				return nil
			}

		case <-redraw.C:
			drawStatus(screen, g, server)
			c.sendCells(frame(g, termW, termH))
		}
	}
}

func handleKey(g *game, ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		g.moveLeft()
	case tcell.KeyRight:
		g.moveRight()
	case tcell.KeyDown:
		g.softDrop()
	case tcell.KeyUp:
		g.rotatePiece()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'a', 'A':
			g.moveLeft()
		case 'd', 'D':
			g.moveRight()
		case 's', 'S':
			g.softDrop()
		case 'w', 'W', ' ':
			g.rotatePiece()
		case 'f', 'F':
			g.hardDrop()
		}
	}
	return false
}

// drawStatus puts a one-line status on the local terminal so the player
// knows the client is alive even though the game shows up remotely.
func drawStatus(screen tcell.Screen, g *game, server string) {
	line := fmt.Sprintf("tetra -> %s  score %d  level %d  (q quits)", server, g.score, g.level)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	w, _ := screen.Size()
	for i, r := range []rune(line) {
		if i >= w {
			break
		}
		screen.SetContent(i, 0, r, nil, style)
	}
	screen.Show()
}

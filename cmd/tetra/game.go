package main

import "math/rand"

const (
	boardWidth  = 12
	boardHeight = 22
	blockW      = 2
	blockH      = 2
)

var (
	bgColor     = [3]uint8{0, 0, 0}
	borderColor = [3]uint8{90, 90, 90}
	textColor   = [3]uint8{220, 220, 220}
	ghostColor  = [3]uint8{120, 120, 120}
)

type piece struct {
	shape [][]int
	color [3]uint8
}

var tetrominoes = []piece{
	{[][]int{{1, 1, 1, 1}}, [3]uint8{0, 255, 255}},                 // I
	{[][]int{{1, 1}, {1, 1}}, [3]uint8{255, 255, 0}},               // O
	{[][]int{{0, 1, 0}, {1, 1, 1}}, [3]uint8{160, 0, 240}},         // T
	{[][]int{{1, 0, 0}, {1, 1, 1}}, [3]uint8{0, 0, 255}},           // J
	{[][]int{{0, 0, 1}, {1, 1, 1}}, [3]uint8{255, 165, 0}},         // L
	{[][]int{{0, 1, 1}, {1, 1, 0}}, [3]uint8{0, 255, 0}},           // S
	{[][]int{{1, 1, 0}, {0, 1, 1}}, [3]uint8{255, 0, 0}},           // Z
}

func randomPiece() piece {
	return tetrominoes[rand.Intn(len(tetrominoes))]
}

// board holds the color of each locked block, nil where empty.
type board [boardHeight][boardWidth]*[3]uint8

func rotate(shape [][]int) [][]int {
	h := len(shape)
	w := len(shape[0])
	out := make([][]int, w)
	for y := range out {
		out[y] = make([]int, h)
		for x := range out[y] {
			out[y][x] = shape[h-1-x][y]
		}
	}
	return out
}

func (b *board) collides(shape [][]int, ox, oy int) bool {
	for y, row := range shape {
		for x, cell := range row {
			if cell == 0 {
				continue
			}
			nx, ny := ox+x, oy+y
			if nx < 0 || nx >= boardWidth || ny >= boardHeight {
				return true
			}
			if ny >= 0 && b[ny][nx] != nil {
				return true
			}
		}
	}
	return false
}

func (b *board) lock(shape [][]int, color [3]uint8, ox, oy int) {
	for y, row := range shape {
		for x, cell := range row {
			if cell == 0 {
				continue
			}
			ny := oy + y
			if ny >= 0 && ny < boardHeight {
				c := color
				b[ny][ox+x] = &c
			}
		}
	}
}

// clearLines removes full rows and shifts everything down, returning the
// number of rows cleared.
func (b *board) clearLines() int {
	cleared := 0
	dst := boardHeight - 1
	for src := boardHeight - 1; src >= 0; src-- {
		full := true
		for x := 0; x < boardWidth; x++ {
			if b[src][x] == nil {
				full = false
				break
			}
		}
		if full {
			cleared++
			continue
		}
		if dst != src {
			b[dst] = b[src]
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		b[dst] = [boardWidth]*[3]uint8{}
	}
	return cleared
}

// game holds the state of a single run.
type game struct {
	board board
	next  []piece

	cur   piece
	curX  int
	curY  int
	score int
	level int
}

func newGame() *game {
	g := &game{level: 1}
	g.next = []piece{randomPiece(), randomPiece(), randomPiece()}
	g.spawn()
	return g
}

// spawn pulls the next piece from the queue. Returns false when the new
// piece immediately collides, which ends the game.
func (g *game) spawn() bool {
	g.cur = g.next[0]
	copy(g.next, g.next[1:])
	g.next[len(g.next)-1] = randomPiece()
	g.curX = boardWidth/2 - len(g.cur.shape[0])/2
	g.curY = 0
	return !g.board.collides(g.cur.shape, g.curX, g.curY)
}

func (g *game) moveLeft() {
	if !g.board.collides(g.cur.shape, g.curX-1, g.curY) {
		g.curX--
	}
}

func (g *game) moveRight() {
	if !g.board.collides(g.cur.shape, g.curX+1, g.curY) {
		g.curX++
	}
}

func (g *game) softDrop() {
	if !g.board.collides(g.cur.shape, g.curX, g.curY+1) {
		g.curY++
	}
}

func (g *game) hardDrop() {
	for !g.board.collides(g.cur.shape, g.curX, g.curY+1) {
		g.curY++
	}
}

func (g *game) rotatePiece() {
	rotated := rotate(g.cur.shape)
	if !g.board.collides(rotated, g.curX, g.curY) {
		g.cur.shape = rotated
	}
}

// ghostY returns the row the current piece would land on.
func (g *game) ghostY() int {
	y := g.curY
	for !g.board.collides(g.cur.shape, g.curX, y+1) {
		y++
	}
	return y
}

// step advances gravity by one tick. It reports the rows cleared and
// whether the game is still live.
func (g *game) step() (cleared int, alive bool) {
	if !g.board.collides(g.cur.shape, g.curX, g.curY+1) {
		g.curY++
		return 0, true
	}
	g.board.lock(g.cur.shape, g.cur.color, g.curX, g.curY)
	if cleared = g.board.clearLines(); cleared > 0 {
		g.score += cleared * cleared * 100
		g.level = 1 + g.score/1000
	}
	return cleared, g.spawn()
}

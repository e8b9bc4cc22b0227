package main

import "strconv"

// frame builds the full /drawcells cell list for one game state: border,
// settled board, ghost outline, active piece, HUD text, and the next-piece
// preview column.
func frame(g *game, termW, termH int) []cell {
	fieldW := boardWidth*blockW + 2
	fieldH := boardHeight*blockH + 2
	offX := max(0, (termW-fieldW)/2)
	offY := max(0, (termH-fieldH)/2)

	cells := make([]cell, 0, fieldW*fieldH)

	for x := 0; x < fieldW; x++ {
		cells = append(cells,
			cell{offX + x, offY, "■", borderColor, bgColor},
			cell{offX + x, offY + fieldH - 1, "■", borderColor, bgColor})
	}
	for y := 1; y < fieldH-1; y++ {
		cells = append(cells,
			cell{offX, offY + y, "■", borderColor, bgColor},
			cell{offX + fieldW - 1, offY + y, "■", borderColor, bgColor})
	}

	ghostY := g.ghostY()
	for y := 0; y < boardHeight; y++ {
		for x := 0; x < boardWidth; x++ {
			color := g.board[y][x]

			// The active piece overlays the board; the ghost only
			// shows through empty cells.
			px, py := x-g.curX, y-g.curY
			if py >= 0 && py < len(g.cur.shape) && px >= 0 && px < len(g.cur.shape[0]) && g.cur.shape[py][px] != 0 {
				color = &g.cur.color
			} else if color == nil {
				gy := y - ghostY
				if gy >= 0 && gy < len(g.cur.shape) && px >= 0 && px < len(g.cur.shape[0]) && g.cur.shape[gy][px] != 0 {
					color = &ghostColor
				}
			}

			bx := offX + 1 + x*blockW
			by := offY + 1 + y*blockH
			if color != nil {
				cells = drawBlock(cells, bx, by, *color)
			} else {
				cells = clearBlock(cells, bx, by)
			}
		}
	}

	cells = drawHUD(cells, g, offX+fieldW+2, offY, termW)
	return cells
}

func drawBlock(cells []cell, x, y int, color [3]uint8) []cell {
	for dy := 0; dy < blockH; dy++ {
		for dx := 0; dx < blockW; dx++ {
			cells = append(cells, cell{x + dx, y + dy, "■", color, bgColor})
		}
	}
	return cells
}

func clearBlock(cells []cell, x, y int) []cell {
	for dy := 0; dy < blockH; dy++ {
		for dx := 0; dx < blockW; dx++ {
			cells = append(cells, cell{x + dx, y + dy, " ", textColor, bgColor})
		}
	}
	return cells
}

func drawHUD(cells []cell, g *game, hudX, hudY, termW int) []cell {
	lines := []string{
		"Score: " + strconv.Itoa(g.score),
		"Level: " + strconv.Itoa(g.level),
		"Q: Quit",
		"Arrows/WASD",
		"Space: Rotate",
		"F: Drop",
	}
	for i, line := range lines {
		cells = drawText(cells, hudX, hudY+i, line, termW)
	}

	previewY := hudY + len(lines) + 1
	cells = drawText(cells, hudX, previewY-1, "Next:", termW)
	for _, p := range g.next {
		for sy, row := range p.shape {
			for sx, v := range row {
				bx := hudX + sx*blockW
				by := previewY + sy*blockH
				if v != 0 {
					cells = drawBlock(cells, bx, by, p.color)
				} else {
					cells = clearBlock(cells, bx, by)
				}
			}
		}
		previewY += len(p.shape)*blockH + 2
	}
	return cells
}

func drawText(cells []cell, x, y int, s string, termW int) []cell {
	for i, r := range []rune(s) {
		if x+i >= termW-1 {
			break
		}
		cells = append(cells, cell{x + i, y, string(r), textColor, bgColor})
	}
	return cells
}

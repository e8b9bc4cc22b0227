package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pixelRequest writes one raw pixel into the raster.
type pixelRequest struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	RGB [3]uint8 `json:"rgb"`
}

// cellSpec is one remote cell override: glyph plus explicit colors.
type cellSpec struct {
	X  int      `json:"x"`
	Y  int      `json:"y"`
	Ch string   `json:"ch"`
	Fg [3]uint8 `json:"fg"`
	Bg [3]uint8 `json:"bg"`
}

// run is a run-length encoded span of identical cells within one row.
type run struct {
	Count int      `json:"count"`
	Ch    string   `json:"ch"`
	Fg    [3]uint8 `json:"fg"`
	Bg    [3]uint8 `json:"bg"`
}

type frameRequest struct {
	Rows []struct {
		Runs []run `json:"runs"`
	} `json:"rows"`
}

type drawCellsRequest struct {
	Cells []cellSpec `json:"cells"`
}

type clearRequest struct {
	RGB [3]uint8 `json:"rgb"`
}

type backgroundRequest struct {
	RGB [3]uint8 `json:"rgb"`
}

func (s *Server) handleSize(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"width":  s.renderer.Width(),
		"height": s.renderer.Height(),
	})
}

func (s *Server) handlePixel(c *gin.Context) {
	var req pixelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, "pixel", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.Buffer().SetPixel(req.X, req.Y, rgbFromTriple(req.RGB))
	s.metrics.PixelsWritten.Inc()
	s.rerender()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleFrame(c *gin.Context) {
	var req frameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, "frame", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyFrame(&req)
	s.rerender()
	c.Status(http.StatusNoContent)
}

// applyFrame expands run-length rows into cell overrides. Rows and runs past
// the grid fall off the tolerant-write edge; a malformed frame never crashes
// a running display.
func (s *Server) applyFrame(req *frameRequest) {
	for y, row := range req.Rows {
		x := 0
		for _, rn := range row.Runs {
			ch := firstRune(rn.Ch)
			fg := rgbFromTriple(rn.Fg)
			bg := rgbFromTriple(rn.Bg)
			for i := 0; i < rn.Count; i++ {
				s.renderer.SetCell(x, y, ch, fg, bg)
				s.metrics.CellsDrawn.Inc()
				x++
			}
		}
	}
}

func (s *Server) handleDrawCells(c *gin.Context) {
	var req drawCellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, "drawcells", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cell := range req.Cells {
		s.renderer.SetCell(cell.X, cell.Y, firstRune(cell.Ch), rgbFromTriple(cell.Fg), rgbFromTriple(cell.Bg))
		s.metrics.CellsDrawn.Inc()
	}
	s.rerender()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClear(c *gin.Context) {
	// Body is optional; absent or unparsable means clear to black.
	var req clearRequest
	_ = c.ShouldBindJSON(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.Clear(rgbFromTriple(req.RGB))
	s.rerender()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBackground(c *gin.Context) {
	var req backgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, "bg", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.SetAmbient(rgbFromTriple(req.RGB))
	s.rerender()
	c.Status(http.StatusNoContent)
}

// reject drops a malformed payload: logged, counted, 400, display untouched.
func (s *Server) reject(c *gin.Context, endpoint string, err error) {
	s.metrics.BadRequests.Inc()
	s.log.Warn("dropping malformed payload",
		zap.String("endpoint", endpoint),
		zap.Error(err),
	)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// firstRune extracts the glyph from a client-supplied string, defaulting to
// a space for empty input.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

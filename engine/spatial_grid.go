package engine

import "github.com/lixenwraith/warehouse/core"

// SpatialGrid is a dense 2D grid holding at most one entity per cell
// Zero means empty, entity ids start at 1
type SpatialGrid struct {
	Width  int
	Height int
	Cells  []core.Entity // 1D array: index = y*Width + x
}

// NewSpatialGrid creates a new grid with the specified dimensions
func NewSpatialGrid(width, height int) *SpatialGrid {
	return &SpatialGrid{
		Width:  width,
		Height: height,
		Cells:  make([]core.Entity, width*height),
	}
}

// InBounds reports whether (x, y) is a stage cell
func (g *SpatialGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Get returns the occupant at (x, y), 0 if empty or out of bounds
func (g *SpatialGrid) Get(x, y int) core.Entity {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Cells[y*g.Width+x]
}

// Put stores e at (x, y)
// Returns false if bounds invalid or the cell already holds another entity
func (g *SpatialGrid) Put(e core.Entity, x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	idx := y*g.Width + x
	if g.Cells[idx] != 0 && g.Cells[idx] != e {
		return false
	}
	g.Cells[idx] = e
	return true
}

// Remove clears (x, y) if it holds e
func (g *SpatialGrid) Remove(e core.Entity, x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	idx := y*g.Width + x
	if g.Cells[idx] == e {
		g.Cells[idx] = 0
	}
}

// Clear empties every cell
func (g *SpatialGrid) Clear() {
	clear(g.Cells)
}

// Occupied returns the number of non-empty cells
func (g *SpatialGrid) Occupied() int {
	n := 0
	for _, e := range g.Cells {
		if e != 0 {
			n++
		}
	}
	return n
}

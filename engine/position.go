package engine

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/warehouse/core"
)

// Position owns entity coordinates and keeps the occupancy grid in sync
// It is the only writer of the grid, every mutation checks bounds and the single-occupant rule
type Position struct {
	mu       sync.RWMutex
	points   map[core.Entity]core.Point
	entities []core.Entity // Dense array for iteration
	grid     *SpatialGrid
}

// NewPosition creates a position store over a width x height stage
func NewPosition(width, height int) *Position {
	return &Position{
		points:   make(map[core.Entity]core.Point),
		entities: make([]core.Entity, 0, 256),
		grid:     NewSpatialGrid(width, height),
	}
}

// Place puts an entity without a position onto an empty in-bounds cell
func (p *Position) Place(e core.Entity, pt core.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.points[e]; exists {
		return fmt.Errorf("place entity %d: already at %v", e, p.points[e])
	}
	if !p.grid.InBounds(pt.X, pt.Y) {
		return fmt.Errorf("place entity %d at %v: %w", e, pt, ErrOutOfBounds)
	}
	if !p.grid.Put(e, pt.X, pt.Y) {
		return fmt.Errorf("place entity %d at %v: %w", e, pt, ErrCellOccupied)
	}
	p.points[e] = pt
	p.entities = append(p.entities, e)
	return nil
}

// Move relocates e to an empty in-bounds cell
func (p *Position) Move(e core.Entity, to core.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	from, exists := p.points[e]
	if !exists {
		return fmt.Errorf("move entity %d: %w", e, ErrNoPosition)
	}
	if !p.grid.InBounds(to.X, to.Y) {
		return fmt.Errorf("move entity %d to %v: %w", e, to, ErrOutOfBounds)
	}
	if occ := p.grid.Get(to.X, to.Y); occ != 0 && occ != e {
		return fmt.Errorf("move entity %d to %v held by %d: %w", e, to, occ, ErrCellOccupied)
	}

	p.grid.Remove(e, from.X, from.Y)
	p.grid.Put(e, to.X, to.Y)
	p.points[e] = to
	return nil
}

// Shift advances a contiguous line of entities one step in direction d
// chain[0] is the mover, each following entity sits one step further along d
// The cell beyond the last entity must be empty and in bounds
// Validates everything before touching the grid, applies furthest first; on error nothing moved
func (p *Position) Shift(chain []core.Entity, d core.Direction) error {
	if len(chain) == 0 || d == core.DirNone {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// 1. Validation phase
	targets := make([]core.Point, len(chain))
	for i, e := range chain {
		pt, exists := p.points[e]
		if !exists {
			return fmt.Errorf("shift entity %d: %w", e, ErrNoPosition)
		}
		if i > 0 && pt != targets[i-1] {
			return fmt.Errorf("shift entity %d at %v: chain broken", e, pt)
		}
		targets[i] = pt.Add(d)
	}
	end := targets[len(targets)-1]
	if !p.grid.InBounds(end.X, end.Y) {
		return fmt.Errorf("shift to %v: %w", end, ErrOutOfBounds)
	}
	if occ := p.grid.Get(end.X, end.Y); occ != 0 {
		return fmt.Errorf("shift to %v held by %d: %w", end, occ, ErrCellOccupied)
	}

	// 2. Application phase
	for i := len(chain) - 1; i >= 0; i-- {
		e := chain[i]
		from := p.points[e]
		p.grid.Remove(e, from.X, from.Y)
		p.grid.Put(e, targets[i].X, targets[i].Y)
		p.points[e] = targets[i]
	}
	return nil
}

// Remove deletes e from the store and grid, returning its last cell
func (p *Position) Remove(e core.Entity) (core.Point, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pt, exists := p.points[e]
	if !exists {
		return core.Point{}, false
	}
	p.grid.Remove(e, pt.X, pt.Y)
	delete(p.points, e)
	for i, entity := range p.entities {
		if entity == e {
			p.entities[i] = p.entities[len(p.entities)-1]
			p.entities = p.entities[:len(p.entities)-1]
			break
		}
	}
	return pt, true
}

// Get returns the cell of e
func (p *Position) Get(e core.Entity) (core.Point, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pt, ok := p.points[e]
	return pt, ok
}

// OccupantAt returns the entity at pt, 0 if the cell is empty or out of bounds
func (p *Position) OccupantAt(pt core.Point) core.Entity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.grid.Get(pt.X, pt.Y)
}

// InBounds reports whether pt is a stage cell
func (p *Position) InBounds(pt core.Point) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.grid.InBounds(pt.X, pt.Y)
}

// Dimensions returns the stage width and height
func (p *Position) Dimensions() (width, height int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.grid.Width, p.grid.Height
}

// All returns a copy of every positioned entity
func (p *Position) All() []core.Entity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]core.Entity, len(p.entities))
	copy(result, p.entities)
	return result
}

// Count returns the number of positioned entities
func (p *Position) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entities)
}

// Clear removes every entity
func (p *Position) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = make(map[core.Entity]core.Point)
	p.entities = p.entities[:0]
	p.grid.Clear()
}

// Consistent verifies that map and grid agree, used by tests and debug checks
func (p *Position) Consistent() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if n := p.grid.Occupied(); n != len(p.points) {
		return fmt.Errorf("grid holds %d entities, store holds %d", n, len(p.points))
	}
	for e, pt := range p.points {
		if !p.grid.InBounds(pt.X, pt.Y) {
			return fmt.Errorf("entity %d at %v: %w", e, pt, ErrOutOfBounds)
		}
		if occ := p.grid.Get(pt.X, pt.Y); occ != e {
			return fmt.Errorf("entity %d at %v but grid holds %d", e, pt, occ)
		}
	}
	return nil
}

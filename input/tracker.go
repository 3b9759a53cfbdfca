package input

import (
	"sync"

	"github.com/lixenwraith/warehouse/core"
)

// Tracker folds the key presses seen during one tick into a single direction
// A terminal reports presses, not releases, so a key state lives until Take
// Up to two orthogonal states combine into a diagonal; opposing keys cancel
// A diagonal key overrides orthogonal states
type Tracker struct {
	mu       sync.Mutex
	ortho    [2]core.Direction // Most recent distinct orthogonal presses, newest last
	diagonal core.Direction
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Press records a direction key; safe to call from the input goroutine
func (t *Tracker) Press(d core.Direction) {
	if d == core.DirNone {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if d.IsDiagonal() {
		t.diagonal = d
		return
	}
	if t.ortho[1] == d {
		return
	}
	t.ortho[0], t.ortho[1] = t.ortho[1], d
}

// Take returns the combined direction and clears every key state
func (t *Tracker) Take() core.Direction {
	t.mu.Lock()
	defer t.mu.Unlock()

	d := t.diagonal
	if d == core.DirNone {
		d = core.Combine(t.ortho[0], t.ortho[1])
	}
	t.diagonal = core.DirNone
	t.ortho = [2]core.Direction{}
	return d
}

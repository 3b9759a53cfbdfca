package core

// Direction is one of the eight compass directions or DirNone
// North is toward row 0
type Direction uint8

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// Compass8 lists every movement direction clockwise from north
var Compass8 = [8]Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// Compass4 lists the orthogonal directions clockwise from north
var Compass4 = [4]Direction{DirN, DirE, DirS, DirW}

var directionDelta = [...][2]int{
	DirNone: {0, 0},
	DirN:    {0, -1},
	DirNE:   {1, -1},
	DirE:    {1, 0},
	DirSE:   {1, 1},
	DirS:    {0, 1},
	DirSW:   {-1, 1},
	DirW:    {-1, 0},
	DirNW:   {-1, -1},
}

var directionNames = [...]string{
	DirNone: "none",
	DirN:    "n",
	DirNE:   "ne",
	DirE:    "e",
	DirSE:   "se",
	DirS:    "s",
	DirSW:   "sw",
	DirW:    "w",
	DirNW:   "nw",
}

// Delta returns the unit vector (dx, dy), (0, 0) for DirNone or invalid values
func (d Direction) Delta() (int, int) {
	if int(d) >= len(directionDelta) {
		return 0, 0
	}
	v := directionDelta[d]
	return v[0], v[1]
}

// Opposite returns the exact reverse vector
func (d Direction) Opposite() Direction {
	if d == DirNone || int(d) >= len(directionDelta) {
		return DirNone
	}
	dx, dy := d.Delta()
	return FromDelta(-dx, -dy)
}

// IsDiagonal reports whether both components are non-zero
func (d Direction) IsDiagonal() bool {
	dx, dy := d.Delta()
	return dx != 0 && dy != 0
}

// Horizontal returns the east/west component, DirNone if purely vertical
func (d Direction) Horizontal() Direction {
	dx, _ := d.Delta()
	return FromDelta(dx, 0)
}

// Vertical returns the north/south component, DirNone if purely horizontal
func (d Direction) Vertical() Direction {
	_, dy := d.Delta()
	return FromDelta(0, dy)
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return "invalid"
	}
	return directionNames[d]
}

// FromDelta maps a vector with components in [-1, 1] to a direction
func FromDelta(dx, dy int) Direction {
	dx, dy = sign(dx), sign(dy)
	for d := DirN; d <= DirNW; d++ {
		v := directionDelta[d]
		if v[0] == dx && v[1] == dy {
			return d
		}
	}
	return DirNone
}

// Combine folds two key states into one direction
// Components add and are clamped, so opposing keys cancel and same-axis keys collapse
func Combine(a, b Direction) Direction {
	ax, ay := a.Delta()
	bx, by := b.Delta()
	return FromDelta(ax+bx, ay+by)
}

// ParseDirection accepts the String() names, "" maps to DirNone
func ParseDirection(s string) (Direction, bool) {
	if s == "" {
		return DirNone, true
	}
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return DirNone, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

package core

// Entity is an opaque entity identifier, 0 is reserved for "no entity"
type Entity uint64

// Point is a grid cell coordinate: X is the column, Y is the row, (0,0) is top-left
type Point struct {
	X, Y int
}

// Add returns the cell one step away in direction d
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Neighbors8 returns the eight surrounding cells in compass order starting north
func (p Point) Neighbors8() [8]Point {
	var out [8]Point
	for i, d := range Compass8 {
		out[i] = p.Add(d)
	}
	return out
}

// Neighbors4 returns the four orthogonal neighbors (N, E, S, W)
func (p Point) Neighbors4() [4]Point {
	var out [4]Point
	for i, d := range Compass4 {
		out[i] = p.Add(d)
	}
	return out
}

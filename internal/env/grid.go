package env

import "math"

// Cell is a coordinate on the grid
type Cell struct {
	X, Y int
}

// Step returns the neighbouring cell n steps along dir
func (c Cell) Step(dir Direction, n int) Cell {
	dx, dy := dir.Delta()
	return Cell{X: c.X + dx*n, Y: c.Y + dy*n}
}

// Grid is the occupancy map of the arena
type Grid struct {
	Columns  int
	Rows     int
	Diagonal float64

	cells    []bool
	occupied int
}

// NewGrid creates an empty grid of the given size
func NewGrid(columns, rows int) *Grid {
	return &Grid{
		Columns:  columns,
		Rows:     rows,
		Diagonal: math.Hypot(float64(columns), float64(rows)),
		cells:    make([]bool, columns*rows),
	}
}

// IsInside reports whether (x, y) lies on the grid
func (g *Grid) IsInside(x, y int) bool {
	return x >= 0 && x < g.Columns && y >= 0 && y < g.Rows
}

// Contains is IsInside for a Cell
func (g *Grid) Contains(c Cell) bool {
	return g.IsInside(c.X, c.Y)
}

// Occupied reports whether c is covered by the snake. Callers check Contains first.
func (g *Grid) Occupied(c Cell) bool {
	return g.cells[c.Y*g.Columns+c.X]
}

// Mark sets the occupancy of c. Callers check Contains first.
func (g *Grid) Mark(c Cell, value bool) {
	i := c.Y*g.Columns + c.X
	if g.cells[i] == value {
		return
	}
	g.cells[i] = value
	if value {
		g.occupied++
	} else {
		g.occupied--
	}
}

// OccupiedCount returns the number of marked cells
func (g *Grid) OccupiedCount() int {
	return g.occupied
}

// Free returns the number of unmarked cells
func (g *Grid) Free() int {
	return len(g.cells) - g.occupied
}

// Reset clears all occupancy
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = false
	}
	g.occupied = 0
}

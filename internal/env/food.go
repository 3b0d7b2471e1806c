package env

import (
	"errors"
	"math/rand"
)

// ErrGridFull is returned when no free cell is left for food.
var ErrGridFull = errors.New("env: no free cell for food")

// Food is the single food cell of an arena
type Food struct {
	cell Cell
	rng  *rand.Rand
}

// NewFood creates food drawing positions from rng
func NewFood(rng *rand.Rand) *Food {
	return &Food{rng: rng}
}

// Current returns the food cell
func (f *Food) Current() Cell {
	return f.cell
}

// Relocate moves the food to a uniformly random unoccupied cell
func (f *Food) Relocate(g *Grid) (Cell, error) {
	if g.Free() == 0 {
		return f.cell, ErrGridFull
	}
	for {
		c := Cell{X: f.rng.Intn(g.Columns), Y: f.rng.Intn(g.Rows)}
		if !g.Occupied(c) {
			f.cell = c
			return c, nil
		}
	}
}

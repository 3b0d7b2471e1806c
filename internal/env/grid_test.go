package env

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridMarkAndReset(t *testing.T) {
	g := NewGrid(4, 3)
	assert.InDelta(t, 5.0, g.Diagonal, 1e-12)
	assert.True(t, g.IsInside(0, 0))
	assert.True(t, g.IsInside(3, 2))
	assert.False(t, g.IsInside(4, 0))
	assert.False(t, g.IsInside(0, -1))

	c := Cell{X: 2, Y: 1}
	g.Mark(c, true)
	g.Mark(c, true)
	assert.True(t, g.Occupied(c))
	assert.Equal(t, 1, g.OccupiedCount())
	assert.Equal(t, 11, g.Free())

	g.Mark(c, false)
	assert.False(t, g.Occupied(c))
	assert.Equal(t, 0, g.OccupiedCount())

	g.Mark(c, true)
	g.Reset()
	assert.Equal(t, 0, g.OccupiedCount())
	assert.False(t, g.Occupied(c))
}

func TestFoodRelocatesToFreeCell(t *testing.T) {
	g := NewGrid(3, 3)
	free := Cell{X: 1, Y: 2}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if (Cell{X: x, Y: y}) != free {
				g.Mark(Cell{X: x, Y: y}, true)
			}
		}
	}

	f := NewFood(rand.New(rand.NewSource(1)))
	c, err := f.Relocate(g)
	require.NoError(t, err)
	assert.Equal(t, free, c)
	assert.Equal(t, free, f.Current())

	g.Mark(free, true)
	_, err = f.Relocate(g)
	assert.ErrorIs(t, err, ErrGridFull)
}

func TestSegmentCells(t *testing.T) {
	seg := Segment{Origin: Cell{X: 5, Y: 5}, Direction: DirLeft, Length: 3}
	assert.Equal(t, Cell{X: 3, Y: 5}, seg.End())
	assert.Equal(t, []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}, seg.Cells())
	assert.Equal(t, Rect{Left: 15, Top: 25, Width: 15, Height: 5}, SpanRect(seg.Origin, seg.End(), 5))
}

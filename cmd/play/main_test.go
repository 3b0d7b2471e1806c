package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeevo/internal/env"
)

func seededSnake(t *testing.T, columns, rows int) *env.Snake {
	t.Helper()
	params := env.DefaultParams()
	params.Columns, params.Rows = columns, rows
	s := env.NewSeededSnake(params, 3)
	require.False(t, s.GameOver)
	return s
}

func TestFrameSizedFromSnakeGrid(t *testing.T) {
	s := seededSnake(t, 100, 80)
	d := NewDisplay(s.Grid().Columns, s.Grid().Rows)

	lines := strings.Split(strings.TrimRight(d.Frame(s, env.TurnNone), "\n"), "\n")
	require.Len(t, lines, 80+2+1)
	assert.Equal(t, 100+2, len([]rune(lines[0])))

	frame := d.Frame(s, env.TurnNone)
	assert.Contains(t, frame, "▲")
	assert.Contains(t, frame, "●")
}

func TestFrameSkipsCellsOutsideDisplay(t *testing.T) {
	// the whole snake starts outside a 64x48 display
	s := seededSnake(t, 200, 160)
	d := NewDisplay(64, 48)

	var frame string
	require.NotPanics(t, func() { frame = d.Frame(s, env.TurnNone) })
	assert.NotContains(t, frame, "▲")
}

func TestHandleInputWithoutCommands(t *testing.T) {
	s := seededSnake(t, 64, 48)
	d := NewDisplay(64, 48)
	assert.True(t, d.HandleInput(s))
}

func TestHandleInputAppliesCommands(t *testing.T) {
	s := seededSnake(t, 64, 48)
	d := NewDisplay(64, 48)
	ch := make(chan byte, 4)
	ch <- 'a'
	ch <- 'r'
	ch <- 'p'
	d.Listen(ch)

	assert.False(t, d.HandleInput(s))
	assert.True(t, d.Paused)
	assert.False(t, d.Enabled)
	assert.Equal(t, env.DirLeft, s.Heading())

	ch <- 'p'
	assert.True(t, d.HandleInput(s))
}

func TestHandleInputUnpausesOnClosedInput(t *testing.T) {
	s := seededSnake(t, 64, 48)
	d := NewDisplay(64, 48)
	ch := make(chan byte, 1)
	ch <- 'p'
	close(ch)
	d.Listen(ch)

	assert.True(t, d.HandleInput(s))
	assert.False(t, d.Paused)
	assert.Nil(t, d.commands)
	assert.True(t, d.HandleInput(s))
}

package env

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnake(t *testing.T, params Params, seed int64) *Snake {
	t.Helper()
	s := NewSeededSnake(params, seed)
	require.False(t, s.GameOver)
	return s
}

// placeFood moves the food without touching the rng.
func placeFood(s *Snake, c Cell) {
	s.food.cell = c
	s.distance = s.distanceToFood()
}

func TestNewSnakeStartsCentered(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 1)

	require.Len(t, s.Body, 1)
	assert.Equal(t, Cell{X: 32, Y: 24}, s.Body[0].Origin)
	assert.Equal(t, DirUp, s.Heading())
	assert.Equal(t, Cell{X: 32, Y: 20}, s.Head())
	assert.Equal(t, 5, s.Length())
	assert.Equal(t, 5, s.Grid().OccupiedCount())
	assert.False(t, s.Grid().Occupied(s.Food().Current()))
	assert.Len(t, s.Features(), FeatureSize)
}

func TestMoveIgnoresSameAndOppositeHeading(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 1)
	before := append([]Segment(nil), s.Body...)

	s.Move(DirUp)
	assert.Equal(t, before, s.Body)
	s.Move(DirDown)
	assert.Equal(t, before, s.Body)
	s.Move(DirLeftUp)
	assert.Equal(t, before, s.Body)
	s.Steer(TurnStraight)
	assert.Equal(t, before, s.Body)
}

func TestMoveLeftThenUpdateFiveTimes(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 7)
	food := Cell{X: 0, Y: 0}
	placeFood(s, food)

	s.Move(DirLeft)
	require.Len(t, s.Body, 2)
	assert.Equal(t, Segment{Origin: Cell{X: 32, Y: 20}, Direction: DirLeft, Length: 1}, s.Body[0])
	assert.Equal(t, Segment{Origin: Cell{X: 32, Y: 24}, Direction: DirUp, Length: 4}, s.Body[1])

	for i := 1; i <= 4; i++ {
		s.Update()
		require.False(t, s.GameOver, "tick %d", i)
		assert.Equal(t, 1+i, s.Body[0].Length)
		assert.Equal(t, DirLeft, s.Body[0].Direction)
		if i < 4 {
			require.Len(t, s.Body, 2)
			assert.Equal(t, 4-i, s.Body[1].Length)
		}
		assert.Equal(t, 5, s.Length())
		assert.Equal(t, s.Length(), s.Grid().OccupiedCount())
	}

	require.Len(t, s.Body, 1, "up segment should have vanished")

	s.Update()
	require.False(t, s.GameOver)
	require.Len(t, s.Body, 1)
	assert.Equal(t, Segment{Origin: Cell{X: 31, Y: 20}, Direction: DirLeft, Length: 5}, s.Body[0])
	assert.Equal(t, Cell{X: 27, Y: 20}, s.Head())
	assert.Equal(t, food, s.Food().Current())
	assert.Equal(t, 0, s.Eaten)
}

func TestUpdateKeepsLengthWithoutFood(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 3)
	placeFood(s, Cell{X: 0, Y: 47})

	s.Update()
	require.False(t, s.GameOver)
	assert.Equal(t, 5, s.Length())
	assert.Equal(t, Cell{X: 32, Y: 19}, s.Head())
}

func TestUpdateEatsFood(t *testing.T) {
	params := DefaultParams()
	params.CloserReward = 0
	params.FartherPenalty = 0
	s := newTestSnake(t, params, 3)
	placeFood(s, s.Head().Step(DirUp, 1))

	s.Update()
	require.False(t, s.GameOver)
	assert.Equal(t, 5+params.FoodGrowth, s.Length())
	assert.Equal(t, params.FoodValue, s.Score)
	assert.Equal(t, 1, s.Eaten)
	assert.Equal(t, s.Length(), s.Grid().OccupiedCount())
	assert.False(t, s.Grid().Occupied(s.Food().Current()))
}

func TestDistanceReward(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 3)
	placeFood(s, Cell{X: 32, Y: 2})
	s.Update()
	assert.Equal(t, 1.0, s.Score)

	placeFood(s, Cell{X: 32, Y: 40})
	s.Update()
	assert.Equal(t, -0.5, s.Score)
}

func TestHeadLeavingGridEndsEpisode(t *testing.T) {
	params := DefaultParams()
	params.Columns, params.Rows, params.StartLength = 10, 10, 3
	s := newTestSnake(t, params, 5)
	placeFood(s, Cell{X: 9, Y: 9})

	s.Move(DirLeft)
	for i := 0; i < 5; i++ {
		s.Update()
		require.False(t, s.GameOver, "tick %d", i)
	}
	assert.Equal(t, Cell{X: 0, Y: 3}, s.Head())

	s.Update()
	require.True(t, s.GameOver)
	assert.Equal(t, DeathWall, s.Death)
	assert.Equal(t, Cell{X: -1, Y: 3}, s.Head())
	// the out-of-range head is never marked
	assert.Equal(t, s.Length()-1, s.Grid().OccupiedCount())

	ticks := s.Ticks
	s.Update()
	assert.Equal(t, ticks, s.Ticks, "terminal snake must not advance")
}

func TestHeadLeavingRightEdgeEndsEpisode(t *testing.T) {
	params := DefaultParams()
	params.Columns, params.Rows, params.StartLength = 10, 10, 3
	s := newTestSnake(t, params, 5)
	placeFood(s, Cell{X: 0, Y: 9})

	s.Move(DirRight)
	for i := 0; i < 4; i++ {
		s.Update()
		require.False(t, s.GameOver, "tick %d", i)
	}
	assert.Equal(t, Cell{X: 9, Y: 3}, s.Head())
	occupied := s.Grid().OccupiedCount()

	s.Update()
	require.True(t, s.GameOver)
	assert.Equal(t, DeathWall, s.Death)
	assert.Equal(t, Cell{X: params.Columns, Y: 3}, s.Head())
	// the tail cell is released and the out-of-range head never marked
	assert.Equal(t, occupied-1, s.Grid().OccupiedCount())
	assert.Equal(t, s.Length()-1, s.Grid().OccupiedCount())
}

func TestSelfCollisionEndsEpisode(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 9)
	placeFood(s, Cell{X: 0, Y: 0})

	s.Move(DirLeft)
	s.Update()
	s.Move(DirDown)
	s.Update()
	require.False(t, s.GameOver)
	s.Move(DirRight)
	s.Update()

	require.True(t, s.GameOver)
	assert.Equal(t, DeathSelf, s.Death)
	assert.Equal(t, Cell{X: 32, Y: 21}, s.Head())
}

func TestScoreFloorEndsEpisode(t *testing.T) {
	params := DefaultParams()
	params.MinScore = -2
	s := newTestSnake(t, params, 3)
	placeFood(s, Cell{X: 32, Y: 47})

	s.Update() // -1.5
	require.False(t, s.GameOver)
	s.Update() // -3
	require.False(t, s.GameOver)
	s.Update()
	require.True(t, s.GameOver)
	assert.Equal(t, DeathScore, s.Death)
}

func TestTickCapEndsEpisode(t *testing.T) {
	params := DefaultParams()
	params.TickCap = 3
	s := newTestSnake(t, params, 3)
	placeFood(s, Cell{X: 0, Y: 47})

	for i := 0; i < 3; i++ {
		s.Update()
	}
	require.True(t, s.GameOver)
	assert.Equal(t, DeathTimeout, s.Death)
}

func TestOccupancyMatchesSegmentLengths(t *testing.T) {
	params := DefaultParams()
	params.Columns, params.Rows = 20, 16
	rng := rand.New(rand.NewSource(11))
	dirs := []Direction{DirLeft, DirRight, DirUp, DirDown}

	for episode := 0; episode < 20; episode++ {
		s := newTestSnake(t, params, int64(episode))
		for !s.GameOver {
			if rng.Intn(3) == 0 {
				s.Move(dirs[rng.Intn(len(dirs))])
			}
			s.Update()
			if s.GameOver {
				break
			}
			require.Equal(t, s.Length(), s.Grid().OccupiedCount(), "episode %d tick %d", episode, s.Ticks)
			for i := 0; i+1 < len(s.Body); i++ {
				next := s.Body[i+1].End().Step(s.Body[i+1].Direction, 1)
				require.Equal(t, s.Body[i].Origin, next, "segments %d and %d not contiguous", i, i+1)
				require.Positive(t, s.Body[i].Length)
			}
		}
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 2)
	s.Move(DirLeft)
	for !s.GameOver {
		s.Update()
	}

	s.Reset()
	assert.False(t, s.GameOver)
	assert.Equal(t, DeathNone, s.Death)
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Ticks)
	assert.Equal(t, 5, s.Grid().OccupiedCount())
	assert.Len(t, s.Body, 1)
}

func TestScene(t *testing.T) {
	s := newTestSnake(t, DefaultParams(), 4)
	placeFood(s, Cell{X: 1, Y: 2})
	s.Move(DirLeft)
	s.Update()

	scene := s.Scene(10)
	assert.Equal(t, Rect{Left: 10, Top: 20, Width: 10, Height: 10}, scene.Food)
	require.Len(t, scene.Body, 2)
	assert.Equal(t, Rect{Left: 310, Top: 200, Width: 20, Height: 10}, scene.Body[0])
	assert.Equal(t, Rect{Left: 320, Top: 210, Width: 10, Height: 30}, scene.Body[1])
}

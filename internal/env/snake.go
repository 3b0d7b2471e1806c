package env

import "math"

// Params holds the arena size and reward rules of an episode
type Params struct {
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	StartLength    int     `json:"start_length"`
	FoodValue      float64 `json:"food_value"`      // score added per food
	FoodGrowth     int     `json:"food_growth"`     // cells added to the head per food
	CloserReward   float64 `json:"closer_reward"`   // score added when the head gets closer to food
	FartherPenalty float64 `json:"farther_penalty"` // score subtracted otherwise
	MinScore       float64 `json:"min_score"`       // episode ends when the score drops below this
	TickCap        int     `json:"tick_cap"`        // 0 disables
}

// DefaultParams returns the canonical 64x48 arena rules
func DefaultParams() Params {
	return Params{
		Columns:        64,
		Rows:           48,
		StartLength:    5,
		FoodValue:      10,
		FoodGrowth:     2,
		CloserReward:   1,
		FartherPenalty: 1.5,
		MinScore:       -1000,
	}
}

// Snake is the per-episode state machine. Body is head-first.
type Snake struct {
	Body     []Segment
	Score    float64
	GameOver bool
	Death    DeathReason
	Ticks    int
	Eaten    int

	params   Params
	grid     *Grid
	food     *Food
	distance float64
	features []float64
}

// NewSnake creates a snake on grid, placing food. The grid is cleared first.
func NewSnake(grid *Grid, food *Food, params Params) *Snake {
	s := &Snake{
		params:   params,
		grid:     grid,
		food:     food,
		features: make([]float64, FeatureSize),
	}
	s.Reset()
	return s
}

// Reset restarts the episode in place.
func (s *Snake) Reset() {
	s.grid.Reset()
	s.Score = 0
	s.GameOver = false
	s.Death = DeathNone
	s.Ticks = 0
	s.Eaten = 0

	center := Cell{X: s.grid.Columns / 2, Y: s.grid.Rows / 2}
	s.Body = []Segment{{Origin: center, Direction: DirUp, Length: s.params.StartLength}}
	for _, c := range s.Body[0].Cells() {
		if s.grid.Contains(c) {
			s.grid.Mark(c, true)
		}
	}

	if _, err := s.food.Relocate(s.grid); err != nil {
		s.end(DeathBoardFull)
		return
	}
	s.distance = s.distanceToFood()
	s.extractFeatures()
}

// Grid returns the arena the snake moves on
func (s *Snake) Grid() *Grid { return s.grid }

// Food returns the arena food
func (s *Snake) Food() *Food { return s.food }

// Params returns the episode rules
func (s *Snake) Params() Params { return s.params }

// Head returns the head cell
func (s *Snake) Head() Cell {
	return s.Body[0].End()
}

// Heading returns the direction of the head segment
func (s *Snake) Heading() Direction {
	return s.Body[0].Direction
}

// Length returns the total number of cells in the body
func (s *Snake) Length() int {
	n := 0
	for _, seg := range s.Body {
		n += seg.Length
	}
	return n
}

// Features returns the feature vector computed by the last update.
// The slice is owned by the snake and overwritten on the next update.
func (s *Snake) Features() []float64 {
	return s.features
}

// Update advances the snake one tick
func (s *Snake) Update() {
	if s.GameOver {
		return
	}
	s.Ticks++

	tail := s.Body[len(s.Body)-1]
	if s.grid.Contains(tail.Origin) {
		s.grid.Mark(tail.Origin, false)
	}

	if len(s.Body) == 1 {
		s.Body[0] = s.Body[0].shifted(1)
	} else {
		s.Body[0].Length++
		last := len(s.Body) - 1
		s.Body[last].Length--
		s.Body[last] = s.Body[last].shifted(1)
		if s.Body[last].Length <= 0 {
			s.Body = s.Body[:last]
		}
	}

	if !s.occupyHead() {
		return
	}

	if s.Head() == s.food.Current() {
		s.Score += s.params.FoodValue
		s.Eaten++
		for i := 0; i < s.params.FoodGrowth; i++ {
			s.Body[0].Length++
			if !s.occupyHead() {
				return
			}
		}
		if _, err := s.food.Relocate(s.grid); err != nil {
			s.end(DeathBoardFull)
			return
		}
	}

	if s.Score < s.params.MinScore {
		s.end(DeathScore)
		return
	}
	if s.params.TickCap > 0 && s.Ticks >= s.params.TickCap {
		s.end(DeathTimeout)
		return
	}

	d := s.distanceToFood()
	if d < s.distance {
		s.Score += s.params.CloserReward
	} else {
		s.Score -= s.params.FartherPenalty
	}
	s.distance = d

	s.extractFeatures()
}

// occupyHead marks the head cell, ending the episode on a wall or body hit.
func (s *Snake) occupyHead() bool {
	head := s.Head()
	if !s.grid.Contains(head) {
		s.end(DeathWall)
		return false
	}
	if s.grid.Occupied(head) {
		s.end(DeathSelf)
		return false
	}
	s.grid.Mark(head, true)
	return true
}

// Move turns the head towards dir. The current heading, its opposite and
// diagonals are ignored.
func (s *Snake) Move(dir Direction) {
	if s.GameOver || dir > DirDown {
		return
	}
	head := s.Body[0]
	if dir == head.Direction || dir == head.Direction.Opposite() {
		return
	}

	next := Segment{Origin: head.End(), Direction: dir, Length: 1}
	if head.Length <= 1 {
		s.Body[0] = next
		return
	}
	s.Body[0].Length--
	s.Body = append([]Segment{next}, s.Body...)
}

// Steer applies a heading-relative turn.
func (s *Snake) Steer(t Turn) {
	s.Move(t.Apply(s.Heading()))
}

// Abort ends the episode early on operator request.
func (s *Snake) Abort() {
	if !s.GameOver {
		s.end(DeathAborted)
	}
}

func (s *Snake) end(reason DeathReason) {
	s.GameOver = true
	s.Death = reason
}

// Stats returns the episode statistics
func (s *Snake) Stats() EpisodeStats {
	return EpisodeStats{
		Score:  s.Score,
		Length: s.Length(),
		Ticks:  s.Ticks,
		Food:   s.Eaten,
		Death:  s.Death,
	}
}

// Scene returns the drawable state for a display with the given cell size.
func (s *Snake) Scene(cellSize int) Scene {
	food := s.food.Current()
	scene := Scene{
		Food:     SpanRect(food, food, cellSize),
		Body:     make([]Rect, 0, len(s.Body)),
		Score:    s.Score,
		GameOver: s.GameOver,
	}
	for _, seg := range s.Body {
		scene.Body = append(scene.Body, SpanRect(seg.Origin, seg.End(), cellSize))
	}
	return scene
}

func (s *Snake) distanceToFood() float64 {
	head := s.Head()
	food := s.food.Current()
	return math.Hypot(float64(head.X-food.X), float64(head.Y-food.Y))
}

package env

import "math"

// Feature layout: RayCount wall distances, RayCount body distances, then the
// food one-hot (ahead, left, right, behind). Changing it invalidates trained weights.
const (
	wallOffset  = 0
	bodyOffset  = RayCount
	foodOffset  = 2 * RayCount
	FeatureSize = 2*RayCount + 4
)

// NoBody is the body distance reported when a ray leaves the grid without
// meeting the snake.
const NoBody = -1.0

func (s *Snake) extractFeatures() {
	head := s.Head()
	for i, dir := range RelativeDirections(s.Heading()) {
		s.features[wallOffset+i] = s.wallDistance(head, dir) / s.grid.Diagonal
		s.features[bodyOffset+i] = s.bodyDistance(head, dir)
	}

	for i := foodOffset; i < FeatureSize; i++ {
		s.features[i] = 0
	}
	switch {
	case s.foodAhead():
		s.features[foodOffset] = 1
	case s.foodLeft():
		s.features[foodOffset+1] = 1
	case s.foodRight():
		s.features[foodOffset+2] = 1
	default:
		s.features[foodOffset+3] = 1
	}
}

func stepLength(dir Direction) float64 {
	dx, dy := dir.Delta()
	if dx != 0 && dy != 0 {
		return math.Sqrt2
	}
	return 1
}

// wallDistance walks from the head until the next cell leaves the grid.
func (s *Snake) wallDistance(head Cell, dir Direction) float64 {
	step := stepLength(dir)
	distance := 0.0
	for c := head.Step(dir, 1); s.grid.Contains(c); c = c.Step(dir, 1) {
		distance += step
	}
	return distance
}

// bodyDistance returns the normalized distance to the first occupied cell, or NoBody.
func (s *Snake) bodyDistance(head Cell, dir Direction) float64 {
	step := stepLength(dir)
	distance := 0.0
	for c := head.Step(dir, 1); s.grid.Contains(c); c = c.Step(dir, 1) {
		if s.grid.Occupied(c) {
			return distance / s.grid.Diagonal
		}
		distance += step
	}
	return NoBody
}

func (s *Snake) foodAhead() bool {
	food := s.food.Current()
	heading := s.Heading()
	for c := s.Head().Step(heading, 1); s.grid.Contains(c); c = c.Step(heading, 1) {
		if c == food {
			return true
		}
	}
	return false
}

func (s *Snake) foodLeft() bool {
	food, head := s.food.Current(), s.Head()
	switch s.Heading() {
	case DirLeft:
		return food.Y > head.Y
	case DirRight:
		return food.Y < head.Y
	case DirUp:
		return food.X < head.X
	case DirDown:
		return food.X > head.X
	}
	return false
}

func (s *Snake) foodRight() bool {
	food, head := s.food.Current(), s.Head()
	switch s.Heading() {
	case DirLeft:
		return food.Y < head.Y
	case DirRight:
		return food.Y > head.Y
	case DirUp:
		return food.X > head.X
	case DirDown:
		return food.X < head.X
	}
	return false
}

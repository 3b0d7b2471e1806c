package env

// Direction is a compass heading on the grid. Segments only use the four
// cardinal values; the diagonals exist for feature rays.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirLeftUp
	DirLeftDown
	DirRightUp
	DirRightDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeftUp:
		return "left-up"
	case DirLeftDown:
		return "left-down"
	case DirRightUp:
		return "right-up"
	case DirRightDown:
		return "right-down"
	default:
		return "unknown"
	}
}

// Delta returns the unit cell offset for the direction. Y grows downwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeftUp:
		return -1, -1
	case DirLeftDown:
		return -1, 1
	case DirRightUp:
		return 1, -1
	case DirRightDown:
		return 1, 1
	}
	return 0, 0
}

// Opposite returns the reverse cardinal direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

// Left returns the cardinal direction to the left of d.
func (d Direction) Left() Direction {
	switch d {
	case DirUp:
		return DirLeft
	case DirDown:
		return DirRight
	case DirLeft:
		return DirDown
	case DirRight:
		return DirUp
	}
	return d
}

// Right returns the cardinal direction to the right of d.
func (d Direction) Right() Direction {
	return d.Left().Opposite()
}

// combine merges a horizontal and a vertical cardinal into a diagonal.
func combine(a, b Direction) Direction {
	horizontal, vertical := a, b
	if a == DirUp || a == DirDown {
		horizontal, vertical = b, a
	}
	switch {
	case horizontal == DirLeft && vertical == DirUp:
		return DirLeftUp
	case horizontal == DirLeft && vertical == DirDown:
		return DirLeftDown
	case horizontal == DirRight && vertical == DirUp:
		return DirRightUp
	default:
		return DirRightDown
	}
}

// RayCount is the number of heading-relative directions sampled by features.
const RayCount = 7

// RelativeDirections returns the ray directions for a heading in feature
// order: ahead, left, right, ahead-left, back-left, ahead-right, back-right.
func RelativeDirections(heading Direction) [RayCount]Direction {
	back := heading.Opposite()
	left := heading.Left()
	right := left.Opposite()
	return [RayCount]Direction{
		heading,
		left,
		right,
		combine(left, heading),
		combine(left, back),
		combine(right, heading),
		combine(right, back),
	}
}

// Turn is a heading-relative steering decision.
type Turn int

const (
	TurnLeft Turn = iota
	TurnStraight
	TurnRight
)

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnStraight:
		return "straight"
	case TurnRight:
		return "right"
	default:
		return "none"
	}
}

// Apply returns the absolute direction reached by turning from heading.
func (t Turn) Apply(heading Direction) Direction {
	switch t {
	case TurnLeft:
		return heading.Left()
	case TurnRight:
		return heading.Right()
	default:
		return heading
	}
}

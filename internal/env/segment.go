package env

// Segment is a straight run of the body. Origin is the cell nearest the tail,
// the run extends Length-1 cells from it along Direction.
type Segment struct {
	Origin    Cell
	Direction Direction
	Length    int
}

// End returns the cell at the head side of the segment.
func (s Segment) End() Cell {
	return s.Origin.Step(s.Direction, s.Length-1)
}

// Cells lists every cell covered by the segment, origin first.
func (s Segment) Cells() []Cell {
	cells := make([]Cell, 0, s.Length)
	for i := 0; i < s.Length; i++ {
		cells = append(cells, s.Origin.Step(s.Direction, i))
	}
	return cells
}

// shifted returns the segment with its origin moved delta cells forward.
func (s Segment) shifted(delta int) Segment {
	s.Origin = s.Origin.Step(s.Direction, delta)
	return s
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	Left, Top, Width, Height int
}

// SpanRect returns the pixel rectangle covering the straight run between a and b.
func SpanRect(a, b Cell, cellSize int) Rect {
	left, right := a.X, b.X
	if left > right {
		left, right = right, left
	}
	top, bottom := a.Y, b.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	return Rect{
		Left:   left * cellSize,
		Top:    top * cellSize,
		Width:  (right - left + 1) * cellSize,
		Height: (bottom - top + 1) * cellSize,
	}
}

// Scene is what the display collaborator draws for one tick.
type Scene struct {
	Food     Rect
	Body     []Rect
	Score    float64
	GameOver bool
}

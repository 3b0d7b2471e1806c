package ga

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"snakeevo/internal/nn"
)

// UniformCrossover builds a child weight set where every scalar is taken
// from a or b with equal probability. Both sets must have identical shapes.
func UniformCrossover(a, b []*mat.Dense, rng *rand.Rand) ([]*mat.Dense, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d layers", nn.ErrShapeMismatch, len(a), len(b))
	}

	child := make([]*mat.Dense, len(a))
	for l := range a {
		ra, ca := a[l].Dims()
		rb, cb := b[l].Dims()
		if ra != rb || ca != cb {
			return nil, fmt.Errorf("%w: layer %d is %dx%d vs %dx%d", nn.ErrShapeMismatch, l, ra, ca, rb, cb)
		}

		w := mat.DenseCopyOf(a[l])
		for i := 0; i < ra; i++ {
			for j := 0; j < ca; j++ {
				if rng.Float64() < 0.5 {
					w.Set(i, j, b[l].At(i, j))
				}
			}
		}
		child[l] = w
	}
	return child, nil
}

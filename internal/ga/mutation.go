package ga

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"snakeevo/internal/nn"
)

// Mutate replaces each weight in-place with a fresh random value with
// probability prob. It returns the number of replaced weights.
func Mutate(weights []*mat.Dense, prob float64, rng *rand.Rand) int {
	replaced := 0
	for _, w := range weights {
		rows, cols := w.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if rng.Float64() < prob {
					w.Set(i, j, nn.RandomWeight(rng))
					replaced++
				}
			}
		}
	}
	return replaced
}

package ga

import (
	"fmt"
	"math/rand"
	"sort"
)

// SortByFitness sorts individuals by fitness (descending). Ties keep their order.
func SortByFitness(individuals []*Individual) {
	sort.SliceStable(individuals, func(i, j int) bool {
		return individuals[i].Fitness() > individuals[j].Fitness()
	})
}

// SelectParents takes the first elites of a sorted slice and keeps each
// remaining individual with probability retainProb.
func SelectParents(sorted []*Individual, elites int, retainProb float64, rng *rand.Rand) []*Individual {
	if elites > len(sorted) {
		elites = len(sorted)
	}
	parents := make([]*Individual, 0, len(sorted))
	parents = append(parents, sorted[:elites]...)
	for _, ind := range sorted[elites:] {
		if rng.Float64() < retainProb {
			parents = append(parents, ind)
		}
	}
	return parents
}

// PickPair draws two distinct parents uniformly at random
func PickPair(parents []*Individual, rng *rand.Rand) (*Individual, *Individual, error) {
	n := len(parents)
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: have %d", ErrParentPoolTooSmall, n)
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return parents[i], parents[j], nil
}

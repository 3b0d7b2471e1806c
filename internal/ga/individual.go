package ga

import (
	"math/rand"

	"snakeevo/internal/env"
	"snakeevo/internal/nn"
)

// Individual pairs one snake with the network that steers it
type Individual struct {
	Snake *env.Snake
	Net   *nn.Network
}

// NewIndividual creates an individual with a fresh arena. Food positions are
// drawn from rng.
func NewIndividual(params env.Params, net *nn.Network, rng *rand.Rand) *Individual {
	grid := env.NewGrid(params.Columns, params.Rows)
	return &Individual{
		Snake: env.NewSnake(grid, env.NewFood(rng), params),
		Net:   net,
	}
}

// Fitness is the snake's current score
func (i *Individual) Fitness() float64 {
	return i.Snake.Score
}

// Reset restarts the individual's episode, keeping its network
func (i *Individual) Reset() {
	i.Snake.Reset()
}

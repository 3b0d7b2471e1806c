package ga

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"snakeevo/internal/env"
	"snakeevo/internal/nn"
)

var (
	// ErrInvalidConfig is returned for hyperparameters that cannot drive evolution.
	ErrInvalidConfig = errors.New("ga: invalid population config")
	// ErrParentPoolTooSmall is returned when breeding needs children but fewer
	// than two parents were selected.
	ErrParentPoolTooSmall = errors.New("ga: fewer than two parents to breed from")
)

// Config holds the population hyperparameters
type Config struct {
	Size            int
	MutateProb      float64
	RetainUnfitProb float64
	SelectFraction  float64
	Layers          []int
}

// EliteCount returns the number of guaranteed parents per generation
func (c Config) EliteCount() int {
	return int(math.Floor(c.SelectFraction*float64(c.Size) + 1e-9))
}

// Validate checks the config for contract violations
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: population size %d", ErrInvalidConfig, c.Size)
	}
	probs := []struct {
		name  string
		value float64
	}{
		{"select fraction", c.SelectFraction},
		{"mutate prob", c.MutateProb},
		{"retain unfit prob", c.RetainUnfitProb},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 || math.IsNaN(p.value) {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidConfig, p.name, p.value)
		}
	}
	if len(c.Layers) < 2 {
		return fmt.Errorf("%w: %v", nn.ErrLayers, c.Layers)
	}
	if elites := c.EliteCount(); elites < c.Size && elites < 2 {
		return fmt.Errorf("%w: select fraction %v of %d gives %d guaranteed parents, need 2",
			ErrInvalidConfig, c.SelectFraction, c.Size, elites)
	}
	return nil
}

// Population manages the individuals across generations
type Population struct {
	Individuals []*Individual
	Parents     []*Individual
	Generation  int

	// History holds the best fitness of each graded generation, Mean the
	// average. Per-generation best fluctuates because parents are re-evaluated
	// on fresh food positions.
	History  []float64
	Mean     []float64
	BestEver float64
	Champion *nn.Network

	cfg    Config
	params env.Params
	rng    *rand.Rand
}

// NewPopulation creates a new random population
func NewPopulation(cfg Config, params env.Params, rng *rand.Rand) (*Population, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Population{
		Individuals: make([]*Individual, 0, cfg.Size),
		Generation:  1,
		BestEver:    math.Inf(-1),
		cfg:         cfg,
		params:      params,
		rng:         rng,
	}
	for i := 0; i < cfg.Size; i++ {
		net, err := nn.New(cfg.Layers, rng)
		if err != nil {
			return nil, err
		}
		p.Individuals = append(p.Individuals, NewIndividual(params, net, rng))
	}
	return p, nil
}

// Config returns the population hyperparameters
func (p *Population) Config() Config {
	return p.cfg
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.Individuals)
}

// Best returns the individual with highest fitness
func (p *Population) Best() *Individual {
	if len(p.Individuals) == 0 {
		return nil
	}
	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if ind.Fitness() > best.Fitness() {
			best = ind
		}
	}
	return best
}

// Stats aggregates the episode outcomes of the current individuals
func (p *Population) Stats() env.AggregatedStats {
	episodes := make([]env.EpisodeStats, len(p.Individuals))
	for i, ind := range p.Individuals {
		episodes[i] = ind.Snake.Stats()
	}
	return env.Aggregate(episodes)
}

// Grade records the generation's best and mean fitness and tracks the
// best-ever network. It returns the generation's best fitness.
func (p *Population) Grade() float64 {
	best := p.Best()
	sum := 0.0
	for _, ind := range p.Individuals {
		sum += ind.Fitness()
	}

	p.History = append(p.History, best.Fitness())
	p.Mean = append(p.Mean, sum/float64(len(p.Individuals)))
	if best.Fitness() > p.BestEver {
		p.BestEver = best.Fitness()
		p.Champion = best.Net.Clone()
	}
	return best.Fitness()
}

// SelectParents sorts the individuals and picks the breeding stock. Each
// parent's snake is reset for the next generation.
func (p *Population) SelectParents() {
	SortByFitness(p.Individuals)
	p.Parents = SelectParents(p.Individuals, p.cfg.EliteCount(), p.cfg.RetainUnfitProb, p.rng)
	for _, parent := range p.Parents {
		parent.Reset()
	}
}

// Breed refills the population from the selected parents
func (p *Population) Breed() error {
	need := p.cfg.Size - len(p.Parents)
	if need > 0 && len(p.Parents) < 2 {
		return fmt.Errorf("breed generation %d: %w: have %d", p.Generation, ErrParentPoolTooSmall, len(p.Parents))
	}

	children := make([]*Individual, 0, need)
	for len(children) < need {
		a, b, err := PickPair(p.Parents, p.rng)
		if err != nil {
			return err
		}
		weights, err := UniformCrossover(a.Net.Weights, b.Net.Weights, p.rng)
		if err != nil {
			return fmt.Errorf("breed generation %d: %w", p.Generation, err)
		}
		Mutate(weights, p.cfg.MutateProb, p.rng)
		net, err := nn.FromWeights(weights)
		if err != nil {
			return fmt.Errorf("breed generation %d: %w", p.Generation, err)
		}
		children = append(children, NewIndividual(p.params, net, p.rng))
	}

	next := make([]*Individual, 0, p.cfg.Size)
	next = append(next, p.Parents...)
	next = append(next, children...)
	p.Individuals = next
	return nil
}

// Reproduce selects parents from a graded generation and breeds the next one
func (p *Population) Reproduce() error {
	p.SelectParents()
	if err := p.Breed(); err != nil {
		return err
	}
	p.Generation++
	return nil
}

// Evolve grades the evaluated generation, selects parents and breeds the next one
func (p *Population) Evolve() error {
	p.Grade()
	return p.Reproduce()
}

package eval

import (
	"context"
	"fmt"

	"snakeevo/internal/env"
	"snakeevo/internal/ga"
	"snakeevo/internal/nn"
)

// DecisionThreshold is the output a winning unit must exceed to commit a turn
const DecisionThreshold = 0.5

// Decide maps network outputs (left, straight, right) to a turn using
// one-vs-all arg-max. It reports false when no output is confident enough,
// which callers treat as continuing straight.
func Decide(output []float64) (env.Turn, bool) {
	if len(output) == 0 {
		return env.TurnNone, false
	}
	i := nn.ArgMax(output)
	if output[i] <= DecisionThreshold || i > int(env.TurnRight) {
		return env.TurnNone, false
	}
	return env.Turn(i), true
}

// Observer receives every individual after each tick. It is the hook for a
// display collaborator and must not mutate the snake.
type Observer interface {
	Observe(index int, ind *ga.Individual)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(index int, ind *ga.Individual)

// Observe calls f
func (f ObserverFunc) Observe(index int, ind *ga.Individual) { f(index, ind) }

// Evaluator runs episodes one individual at a time
type Evaluator struct {
	observer Observer
}

// NewEvaluator creates an evaluator. observer may be nil.
func NewEvaluator(observer Observer) *Evaluator {
	return &Evaluator{observer: observer}
}

// Step plays one tick: features, inference, decision, update. It returns
// the committed turn or env.TurnNone.
func Step(s *env.Snake, net *nn.Network) (env.Turn, error) {
	out, err := net.FeedForward(s.Features())
	if err != nil {
		return env.TurnNone, err
	}
	turn, ok := Decide(out)
	if ok {
		s.Steer(turn)
	}
	s.Update()
	return turn, nil
}

// RunEpisode plays the individual's snake until game over. When ctx is
// cancelled the episode is aborted and ctx.Err() returned.
func (e *Evaluator) RunEpisode(ctx context.Context, index int, ind *ga.Individual) (env.EpisodeStats, error) {
	for !ind.Snake.GameOver {
		if err := ctx.Err(); err != nil {
			ind.Snake.Abort()
			return ind.Snake.Stats(), err
		}
		if _, err := Step(ind.Snake, ind.Net); err != nil {
			return ind.Snake.Stats(), fmt.Errorf("individual %d tick %d: %w", index, ind.Snake.Ticks, err)
		}
		if e.observer != nil {
			e.observer.Observe(index, ind)
		}
	}
	return ind.Snake.Stats(), nil
}

// EvaluatePopulation runs every individual's episode in order. On error the
// generation is incomplete and must not be bred.
func (e *Evaluator) EvaluatePopulation(ctx context.Context, pop *ga.Population) error {
	for i, ind := range pop.Individuals {
		if _, err := e.RunEpisode(ctx, i, ind); err != nil {
			return fmt.Errorf("generation %d: %w", pop.Generation, err)
		}
	}
	return nil
}

// EvaluateWithReplay plays net on a freshly seeded arena and records the trace
func (e *Evaluator) EvaluateWithReplay(net *nn.Network, params env.Params, seed int64) (*env.Replay, env.EpisodeStats, error) {
	snake := env.NewSeededSnake(params, seed)
	replay := env.NewReplay(seed, params)

	for !snake.GameOver {
		turn, err := Step(snake, net)
		if err != nil {
			return nil, snake.Stats(), err
		}
		replay.Record(turn)
	}

	stats := snake.Stats()
	replay.SetFinalStats(stats)
	return replay, stats, nil
}

package env

import (
	"encoding/json"
	"math/rand"
	"os"
)

// TurnNone records a tick where no turn was committed
const TurnNone Turn = -1

// Replay stores a deterministic turn trace for playback. The episode must
// have drawn food positions from a source seeded with Seed.
type Replay struct {
	Seed       int64        `json:"seed"`
	Turns      []Turn       `json:"turns"`
	FinalStats EpisodeStats `json:"final_stats"`
	Params     Params       `json:"params"`
}

// NewReplay creates a new replay recorder
func NewReplay(seed int64, params Params) *Replay {
	return &Replay{
		Seed:   seed,
		Turns:  make([]Turn, 0, 256),
		Params: params,
	}
}

// Record adds the turn applied before one update
func (r *Replay) Record(t Turn) {
	r.Turns = append(r.Turns, t)
}

// SetFinalStats sets the final episode statistics
func (r *Replay) SetFinalStats(stats EpisodeStats) {
	r.FinalStats = stats
}

// Save writes the replay to a file
func (r *Replay) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadReplay loads a replay from a file
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Replay
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// NewSeededSnake builds a fresh arena whose food draws from its own seeded source.
func NewSeededSnake(params Params, seed int64) *Snake {
	rng := rand.New(rand.NewSource(seed))
	return NewSnake(NewGrid(params.Columns, params.Rows), NewFood(rng), params)
}

// Playback recreates the starting snake of the replay
func (r *Replay) Playback() *Snake {
	return NewSeededSnake(r.Params, r.Seed)
}

// PlaybackStep applies recorded tick i to s. It reports false once the
// trace is exhausted or the episode is over.
func (r *Replay) PlaybackStep(s *Snake, i int) bool {
	if i >= len(r.Turns) || s.GameOver {
		return false
	}
	if t := r.Turns[i]; t != TurnNone {
		s.Steer(t)
	}
	s.Update()
	return true
}

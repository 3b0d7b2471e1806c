package env

import "math"

// DeathReason indicates how an episode ended
type DeathReason int

const (
	DeathNone      DeathReason = iota
	DeathWall                  // head left the grid
	DeathSelf                  // head entered an occupied cell
	DeathScore                 // score fell below the floor
	DeathTimeout               // tick cap reached
	DeathBoardFull             // no free cell left for food
	DeathAborted               // stop requested mid-episode
)

func (d DeathReason) String() string {
	switch d {
	case DeathNone:
		return "none"
	case DeathWall:
		return "wall"
	case DeathSelf:
		return "self"
	case DeathScore:
		return "score"
	case DeathTimeout:
		return "timeout"
	case DeathBoardFull:
		return "board_full"
	case DeathAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// EpisodeStats captures the outcome of a single episode
type EpisodeStats struct {
	Score  float64     // final snake score, used as fitness
	Length int         // total body length at the end
	Ticks  int         // number of updates survived
	Food   int         // food eaten
	Death  DeathReason // how the episode ended
}

// AggregatedStats holds statistics across multiple episodes
type AggregatedStats struct {
	ScoreMean   float64
	ScoreStd    float64
	ScoreMax    float64
	LengthMean  float64
	TicksMean   float64
	FoodMean    float64
	DeathCounts map[DeathReason]int
	NumEpisodes int
}

// Aggregate computes statistics from multiple episode stats
func Aggregate(episodes []EpisodeStats) AggregatedStats {
	n := len(episodes)
	agg := AggregatedStats{
		DeathCounts: make(map[DeathReason]int),
		NumEpisodes: n,
	}
	if n == 0 {
		return agg
	}

	var scoreSum, lengthSum, ticksSum, foodSum float64
	agg.ScoreMax = math.Inf(-1)
	for _, ep := range episodes {
		scoreSum += ep.Score
		lengthSum += float64(ep.Length)
		ticksSum += float64(ep.Ticks)
		foodSum += float64(ep.Food)
		if ep.Score > agg.ScoreMax {
			agg.ScoreMax = ep.Score
		}
		agg.DeathCounts[ep.Death]++
	}

	nf := float64(n)
	agg.ScoreMean = scoreSum / nf
	agg.LengthMean = lengthSum / nf
	agg.TicksMean = ticksSum / nf
	agg.FoodMean = foodSum / nf

	var variance float64
	for _, ep := range episodes {
		diff := ep.Score - agg.ScoreMean
		variance += diff * diff
	}
	agg.ScoreStd = math.Sqrt(variance / nf)

	return agg
}

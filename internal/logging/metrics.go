package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"snakeevo/internal/env"
	"snakeevo/internal/ga"
)

// Logger handles all training output and artifact saving
type Logger struct {
	RunID string

	csvPath     string
	jsonPath    string
	console     io.Writer
	every       int
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// NewLogger creates a new logger. Console lines go to console every `every` generations.
func NewLogger(csvPath, jsonPath string, console io.Writer, every int) (*Logger, error) {
	if every <= 0 {
		every = 1
	}
	l := &Logger{
		RunID:    uuid.NewString(),
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  console,
		every:    every,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{
		"run_id", "generation", "best_fitness", "mean_fitness", "best_ever",
		"best_length", "mean_length", "mean_ticks", "mean_food",
		"deaths_wall", "deaths_self", "deaths_score", "deaths_timeout",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close closes all log files
func (l *Logger) Close() error {
	var firstErr error
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		firstErr = l.csvWriter.Error()
	}
	for _, f := range []*os.File{l.csvFile, l.jsonFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID       string         `json:"run_id"`
	Generation  int            `json:"generation"`
	BestFitness float64        `json:"best_fitness"`
	MeanFitness float64        `json:"mean_fitness"`
	BestEver    float64        `json:"best_ever"`
	BestLength  int            `json:"best_length"`
	MeanLength  float64        `json:"mean_length"`
	MeanTicks   float64        `json:"mean_ticks"`
	MeanFood    float64        `json:"mean_food"`
	DeathCounts map[string]int `json:"death_counts"`
}

// Summarize computes the summary of an evaluated, graded generation
func Summarize(runID string, pop *ga.Population) GenerationSummary {
	agg := pop.Stats()
	best := pop.Best()
	summary := GenerationSummary{
		RunID:       runID,
		Generation:  pop.Generation,
		BestFitness: best.Fitness(),
		MeanFitness: agg.ScoreMean,
		BestEver:    pop.BestEver,
		BestLength:  best.Snake.Length(),
		MeanLength:  agg.LengthMean,
		MeanTicks:   agg.TicksMean,
		MeanFood:    agg.FoodMean,
		DeathCounts: make(map[string]int),
	}
	for reason, count := range agg.DeathCounts {
		summary.DeathCounts[reason.String()] = count
	}
	return summary
}

// LogGeneration logs a generation summary to CSV, JSON lines and the console
func (l *Logger) LogGeneration(pop *ga.Population) error {
	if !l.initialized {
		return nil
	}
	summary := Summarize(l.RunID, pop)
	deaths := summary.DeathCounts

	row := []string{
		l.RunID,
		strconv.Itoa(summary.Generation),
		fmt.Sprintf("%.2f", summary.BestFitness),
		fmt.Sprintf("%.2f", summary.MeanFitness),
		fmt.Sprintf("%.2f", summary.BestEver),
		strconv.Itoa(summary.BestLength),
		fmt.Sprintf("%.2f", summary.MeanLength),
		fmt.Sprintf("%.2f", summary.MeanTicks),
		fmt.Sprintf("%.2f", summary.MeanFood),
		strconv.Itoa(deaths[env.DeathWall.String()]),
		strconv.Itoa(deaths[env.DeathSelf.String()]),
		strconv.Itoa(deaths[env.DeathScore.String()]),
		strconv.Itoa(deaths[env.DeathTimeout.String()]),
	}
	if err := l.csvWriter.Write(row); err != nil {
		return err
	}
	l.csvWriter.Flush()
	if err := l.csvWriter.Error(); err != nil {
		return err
	}

	jsonLine, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	if _, err := l.jsonFile.Write(append(jsonLine, '\n')); err != nil {
		return err
	}

	if l.console != nil && (summary.Generation == 1 || summary.Generation%l.every == 0) {
		fmt.Fprintf(l.console, "Gen %4d | Best: %8.1f | Mean: %8.1f | Ever: %8.1f | Len: %3d | Deaths: W=%d S=%d F=%d T=%d\n",
			summary.Generation, summary.BestFitness, summary.MeanFitness, summary.BestEver, summary.BestLength,
			deaths[env.DeathWall.String()], deaths[env.DeathSelf.String()],
			deaths[env.DeathScore.String()], deaths[env.DeathTimeout.String()])
	}
	return nil
}

// LogTopK prints debug info for the top K individuals of a sorted population
func (l *Logger) LogTopK(individuals []*ga.Individual, k int) {
	if l.console == nil {
		return
	}
	if k > len(individuals) {
		k = len(individuals)
	}
	fmt.Fprintf(l.console, "  Top %d individuals:\n", k)
	for i := 0; i < k; i++ {
		st := individuals[i].Snake.Stats()
		fmt.Fprintf(l.console, "    #%d: Fitness=%.1f, Ticks=%d, Food=%d, Length=%d, Death=%s\n",
			i+1, st.Score, st.Ticks, st.Food, st.Length, st.Death)
	}
}

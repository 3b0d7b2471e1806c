package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"snakeevo/internal/env"
	"snakeevo/internal/nn"
)

// Champion is the saved form of a single trained network
type Champion struct {
	RunID      string        `json:"run_id"`
	Generation int           `json:"generation"`
	Fitness    float64       `json:"fitness"`
	Params     env.Params    `json:"params"` // arena the network was trained on
	Layers     []int         `json:"layers"`
	Weights    [][][]float64 `json:"weights"` // per layer, row-major rows
}

// SaveChampion writes net, its fitness and its training arena to path
func SaveChampion(path, runID string, net *nn.Network, params env.Params, fitness float64, gen int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data := Champion{
		RunID:      runID,
		Generation: gen,
		Fitness:    fitness,
		Params:     params,
		Layers:     net.Layers,
		Weights:    make([][][]float64, len(net.Weights)),
	}
	for l, w := range net.Weights {
		rows, _ := w.Dims()
		data.Weights[l] = make([][]float64, rows)
		for i := 0; i < rows; i++ {
			data.Weights[l][i] = mat.Row(nil, i, w)
		}
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, jsonData, 0644)
}

// LoadChampion reads a champion file and rebuilds its network
func LoadChampion(path string) (*Champion, *nn.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var saved Champion
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, nil, err
	}

	weights := make([]*mat.Dense, len(saved.Weights))
	for l, rows := range saved.Weights {
		if len(rows) == 0 || len(rows[0]) == 0 {
			return nil, nil, fmt.Errorf("champion %s: layer %d: %w", path, l, nn.ErrShapeMismatch)
		}
		cols := len(rows[0])
		flat := make([]float64, 0, len(rows)*cols)
		for _, row := range rows {
			if len(row) != cols {
				return nil, nil, fmt.Errorf("champion %s: layer %d: %w", path, l, nn.ErrShapeMismatch)
			}
			flat = append(flat, row...)
		}
		weights[l] = mat.NewDense(len(rows), cols, flat)
	}

	net, err := nn.FromWeights(weights)
	if err != nil {
		return nil, nil, fmt.Errorf("champion %s: %w", path, err)
	}
	return &saved, net, nil
}

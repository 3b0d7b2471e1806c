package nn

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Initial and mutated weights are drawn uniformly from [WeightMin, WeightMax).
const (
	WeightMin = -1.0
	WeightMax = 1.0
)

var (
	// ErrLayers is returned for a layer list that cannot form a network.
	ErrLayers = errors.New("nn: need at least two positive layer widths")
	// ErrShapeMismatch is returned when weight matrices do not chain.
	ErrShapeMismatch = errors.New("nn: weight matrices do not chain")
	// ErrInputWidth is returned when the input does not match the first layer.
	ErrInputWidth = errors.New("nn: input width does not match first layer")
)

// Network is a fully connected feed-forward network with sigmoid units and
// no biases. Weights[i] has shape Layers[i] x Layers[i+1].
type Network struct {
	Layers  []int
	Weights []*mat.Dense

	output []float64
}

// RandomWeight draws one weight from the initialization range
func RandomWeight(rng *rand.Rand) float64 {
	return WeightMin + rng.Float64()*(WeightMax-WeightMin)
}

// New creates a network with random weights for the given layer widths
func New(layers []int, rng *rand.Rand) (*Network, error) {
	if len(layers) < 2 {
		return nil, ErrLayers
	}
	weights := make([]*mat.Dense, 0, len(layers)-1)
	for i := 0; i < len(layers)-1; i++ {
		rows, cols := layers[i], layers[i+1]
		if rows <= 0 || cols <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrLayers, layers)
		}
		data := make([]float64, rows*cols)
		for j := range data {
			data[j] = RandomWeight(rng)
		}
		weights = append(weights, mat.NewDense(rows, cols, data))
	}
	return &Network{Layers: append([]int(nil), layers...), Weights: weights}, nil
}

// FromWeights wraps explicit weight matrices. Matrices are used as-is.
func FromWeights(weights []*mat.Dense) (*Network, error) {
	if len(weights) == 0 {
		return nil, ErrLayers
	}
	layers := make([]int, 0, len(weights)+1)
	r, _ := weights[0].Dims()
	layers = append(layers, r)
	for i, w := range weights {
		rows, cols := w.Dims()
		if rows != layers[i] {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrShapeMismatch, i, rows, layers[i])
		}
		layers = append(layers, cols)
	}
	return &Network{Layers: layers, Weights: weights}, nil
}

// InputSize returns the width of the first layer
func (n *Network) InputSize() int {
	return n.Layers[0]
}

// OutputSize returns the width of the last layer
func (n *Network) OutputSize() int {
	return n.Layers[len(n.Layers)-1]
}

// FeedForward computes sigmoid(Wᵀ·x) layer by layer and returns the last layer
func (n *Network) FeedForward(input []float64) ([]float64, error) {
	if len(input) != n.InputSize() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputWidth, len(input), n.InputSize())
	}

	x := mat.NewVecDense(len(input), append([]float64(nil), input...))
	for _, w := range n.Weights {
		_, cols := w.Dims()
		y := mat.NewVecDense(cols, nil)
		y.MulVec(w.T(), x)
		raw := y.RawVector().Data
		for i := range raw {
			raw[i] = Sigmoid(raw[i])
		}
		x = y
	}

	n.output = append(n.output[:0], x.RawVector().Data...)
	return append([]float64(nil), n.output...), nil
}

// Output returns the result of the last FeedForward call
func (n *Network) Output() []float64 {
	return n.output
}

// Clone makes a deep copy of the network
func (n *Network) Clone() *Network {
	weights := make([]*mat.Dense, len(n.Weights))
	for i, w := range n.Weights {
		weights[i] = mat.DenseCopyOf(w)
	}
	return &Network{Layers: append([]int(nil), n.Layers...), Weights: weights}
}

// Sigmoid is the logistic function
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ArgMax returns the index of the largest value
func ArgMax(vals []float64) int {
	maxIdx := 0
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewShapesAndRange(t *testing.T) {
	net, err := New([]int{18, 18, 18, 3}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, net.Weights, 3)

	for i, w := range net.Weights {
		rows, cols := w.Dims()
		assert.Equal(t, net.Layers[i], rows)
		assert.Equal(t, net.Layers[i+1], cols)
		for _, v := range w.RawMatrix().Data {
			assert.GreaterOrEqual(t, v, WeightMin)
			assert.Less(t, v, WeightMax)
		}
	}
	assert.Equal(t, 18, net.InputSize())
	assert.Equal(t, 3, net.OutputSize())
}

func TestNewRejectsBadLayers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := New([]int{4}, rng)
	assert.ErrorIs(t, err, ErrLayers)
	_, err = New([]int{4, 0, 2}, rng)
	assert.ErrorIs(t, err, ErrLayers)
}

func TestFeedForward(t *testing.T) {
	// 2 inputs -> 2 hidden -> 1 output
	w1 := mat.NewDense(2, 2, []float64{
		1, -1,
		2, 0,
	})
	w2 := mat.NewDense(2, 1, []float64{1, 1})
	net, err := FromWeights([]*mat.Dense{w1, w2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, net.Layers)

	out, err := net.FeedForward([]float64{1, 0.5})
	require.NoError(t, err)
	require.Len(t, out, 1)

	h0 := Sigmoid(1*1 + 0.5*2)
	h1 := Sigmoid(1*-1 + 0.5*0)
	assert.InDelta(t, Sigmoid(h0+h1), out[0], 1e-12)
	assert.Equal(t, out, net.Output())
}

func TestFeedForwardRejectsInputWidth(t *testing.T) {
	net, err := New([]int{3, 2}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, err = net.FeedForward([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInputWidth)
}

func TestFromWeightsRejectsBrokenChain(t *testing.T) {
	_, err := FromWeights([]*mat.Dense{mat.NewDense(3, 4, nil), mat.NewDense(5, 2, nil)})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = FromWeights(nil)
	assert.ErrorIs(t, err, ErrLayers)
}

func TestCloneIsDeep(t *testing.T) {
	net, err := New([]int{2, 2}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	clone := net.Clone()
	clone.Weights[0].Set(0, 0, 42)
	assert.NotEqual(t, 42.0, net.Weights[0].At(0, 0))
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 0, ArgMax([]float64{1}))
	assert.Equal(t, 2, ArgMax([]float64{0.1, 0.3, 0.7}))
	assert.Equal(t, 0, ArgMax([]float64{0.5, 0.5}))
}

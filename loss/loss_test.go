package loss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrossentropy(t *testing.T) {
	probs := []float32{0.1, 0.7, 0.2}
	grad := make([]float32, 3)
	l := SparseCategoricalCrossentropy(probs, 1, grad)
	require.InDelta(t, -math.Log(0.7), l, 1e-6)
	require.InDeltaSlice(t, []float32{0.1, -0.3, 0.2}, grad, 1e-6)
}

func TestCrossentropyClipsZero(t *testing.T) {
	l := SparseCategoricalCrossentropy([]float32{1, 0}, 1, nil)
	require.InDelta(t, -math.Log(Epsilon), l, 1e-3)
	require.False(t, math.IsInf(float64(l), 0))
}

func TestArgmax(t *testing.T) {
	require.Equal(t, 2, Argmax([]float32{0.1, 0.2, 0.5, 0.2}))
	require.Equal(t, 0, Argmax([]float32{0.5, 0.5}))
	require.Equal(t, 0, Argmax([]float32{3}))
}

package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/fashion/layer"
)

func TestSGDStep(t *testing.T) {
	p := layer.NewParam("w", 2)
	copy(p.Value, []float32{1, 1})
	NewSGD(0.5).Step([]*layer.Param{p}, [][]float32{{2, -2}})
	require.Equal(t, []float32{0, 2}, p.Value)
}

// the first Adam step moves every weight by the learning rate against the gradient sign
func TestAdamFirstStep(t *testing.T) {
	p := layer.NewParam("w", 3)
	copy(p.Value, []float32{1, 1, 1})
	o := NewAdam(0.001)
	o.Step([]*layer.Param{p}, [][]float32{{4, -0.01, 0}})
	require.InDelta(t, 0.999, p.Value[0], 1e-6)
	require.InDelta(t, 1.001, p.Value[1], 1e-5)
	require.Equal(t, float32(1), p.Value[2])
	require.Equal(t, 1, o.Iterations())
}

// minimizes (w-3)^2
func TestAdamConverges(t *testing.T) {
	p := layer.NewParam("w", 1)
	o := NewAdam(0.1)
	for i := 0; i < 500; i++ {
		g := 2 * (p.Value[0] - 3)
		o.Step([]*layer.Param{p}, [][]float32{{g}})
	}
	require.InDelta(t, 3, p.Value[0], 0.05)
}

package conv2d

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/fashion/layer"
	"github.com/neurlang/fashion/layer/layertest"
)

func TestOutputShape(t *testing.T) {
	c, err := MustNew(32, 3, layer.ReLU).Lay(layer.Shape{H: 28, W: 28, C: 1})
	require.NoError(t, err)
	require.Equal(t, layer.Shape{H: 26, W: 26, C: 32}, c.Out())
	require.Equal(t, 32*3*3*1, c.Params()[0].Len())
	require.Equal(t, 32, c.Params()[1].Len())
}

func TestLayRejectsSmallInput(t *testing.T) {
	_, err := MustNew(4, 5, layer.ReLU).Lay(layer.Shape{H: 4, W: 8, C: 1})
	require.Error(t, err)
	_, err = New(4, 3, layer.Softmax)
	require.Error(t, err)
	_, err = New(0, 3, layer.ReLU)
	require.Error(t, err)
}

// a hand computed 2x2 kernel over a 3x3 single channel image
func TestForwardKnownValues(t *testing.T) {
	c, err := MustNew(1, 2, layer.Linear).Lay(layer.Shape{H: 3, W: 3, C: 1})
	require.NoError(t, err)
	copy(c.Params()[0].Value, []float32{1, 0, 0, -1})
	c.Params()[1].Value[0] = 0.5

	in := []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	out := make([]float32, 4)
	c.Forward(in, out)
	// each output is top-left minus bottom-right plus bias
	require.Equal(t, []float32{-3.5, -3.5, -3.5, -3.5}, out)
}

func TestForwardReLU(t *testing.T) {
	c, err := MustNew(2, 1, layer.ReLU).Lay(layer.Shape{H: 1, W: 2, C: 1})
	require.NoError(t, err)
	copy(c.Params()[0].Value, []float32{1, -1})
	out := make([]float32, 4)
	c.Forward([]float32{2, 3}, out)
	require.Equal(t, []float32{2, 0, 3, 0}, out)
}

func TestGradients(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c, err := MustNew(3, 2, layer.Linear).Lay(layer.Shape{H: 4, W: 5, C: 2})
	require.NoError(t, err)
	c.Init(rng)
	for i := range c.Params()[1].Value {
		c.Params()[1].Value[i] = rng.Float32()
	}
	layertest.GradCheck(t, c, layertest.Random(rng, c.In().Size(), -1, 1), 6)
}

package maxpool2d

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/fashion/layer"
	"github.com/neurlang/fashion/layer/layertest"
)

func TestOutputShapeFloors(t *testing.T) {
	c, err := MustNew(2).Lay(layer.Shape{H: 11, W: 11, C: 64})
	require.NoError(t, err)
	require.Equal(t, layer.Shape{H: 5, W: 5, C: 64}, c.Out())
	require.Nil(t, c.Params())

	_, err = New(0)
	require.Error(t, err)
	_, err = MustNew(3).Lay(layer.Shape{H: 2, W: 2, C: 1})
	require.Error(t, err)
}

func TestForwardPicksMaxPerChannel(t *testing.T) {
	c, err := MustNew(2).Lay(layer.Shape{H: 2, W: 2, C: 2})
	require.NoError(t, err)
	// channels interleaved: (value c0, value c1) per pixel
	in := []float32{
		1, 8, 4, 2,
		3, 5, 0, 7,
	}
	out := make([]float32, 2)
	c.Forward(in, out)
	require.Equal(t, []float32{4, 8}, out)

	gradIn := make([]float32, len(in))
	c.Backward(in, out, []float32{10, 20}, gradIn, nil)
	require.Equal(t, []float32{0, 20, 10, 0, 0, 0, 0, 0}, gradIn)
}

// inputs are spaced wider than the finite difference step so the winners never change
func TestGradients(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	c, err := MustNew(2).Lay(layer.Shape{H: 4, W: 6, C: 3})
	require.NoError(t, err)
	in := make([]float32, c.In().Size())
	for i, p := range rng.Perm(len(in)) {
		in[i] = float32(p) * 0.1
	}
	layertest.GradCheck(t, c, in, 10)
}

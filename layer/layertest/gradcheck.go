// Package layertest checks combiner gradients against finite differences
package layertest

import "math"
import "math/rand"
import "testing"

import "github.com/neurlang/fashion/layer"

// objective is sum(out * weights), so its gradient with respect to out is weights
func objective(c layer.Combiner, in, weights []float32) float64 {
	out := make([]float32, c.Out().Size())
	c.Forward(in, out)
	var s float64
	for i := range out {
		s += float64(out[i]) * float64(weights[i])
	}
	return s
}

// GradCheck compares Backward against central differences of a random linear
// objective, for the input and for every parameter. The combiner must be
// initialized. Activations with kinks (relu) should be avoided near zero.
func GradCheck(t *testing.T, c layer.Combiner, in []float32, seed int64) {
	t.Helper()
	const eps = 1e-2
	const tolerance = 2e-2

	rng := rand.New(rand.NewSource(seed))
	weights := make([]float32, c.Out().Size())
	for i := range weights {
		weights[i] = rng.Float32()*2 - 1
	}

	out := make([]float32, c.Out().Size())
	c.Forward(in, out)
	gradOut := append([]float32(nil), weights...)
	gradIn := make([]float32, len(in))
	params := c.Params()
	grads := make([][]float32, len(params))
	for i, p := range params {
		grads[i] = make([]float32, p.Len())
	}
	c.Backward(in, out, gradOut, gradIn, grads)

	check := func(what string, i int, x []float32, analytic float32) {
		orig := x[i]
		x[i] = orig + eps
		plus := objective(c, in, weights)
		x[i] = orig - eps
		minus := objective(c, in, weights)
		x[i] = orig
		numeric := (plus - minus) / (2 * eps)
		if math.Abs(numeric-float64(analytic)) > tolerance*math.Max(1, math.Abs(numeric)) {
			t.Errorf("%s[%d]: analytic %v numeric %v", what, i, analytic, numeric)
		}
	}

	for i := range in {
		check("input", i, in, gradIn[i])
	}
	for j, p := range params {
		for i := range p.Value {
			check(p.Name, i, p.Value, grads[j][i])
		}
	}
}

// Random returns n values from U(lo, hi)
func Random(rng *rand.Rand, n int, lo, hi float32) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = lo + rng.Float32()*(hi-lo)
	}
	return v
}

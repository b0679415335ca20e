package full

import "math/rand"

import "github.com/neurlang/fashion/kernel"
import "github.com/neurlang/fashion/layer"

func (f *Full) In() layer.Shape  { return f.in }
func (f *Full) Out() layer.Shape { return f.out }

// Params returns the weights, one row of inputs per unit, and the bias
func (f *Full) Params() []*layer.Param {
	return []*layer.Param{f.weights, f.bias}
}

// Init draws the weights from the Glorot uniform distribution and zeroes the bias
func (f *Full) Init(rng *rand.Rand) {
	layer.GlorotUniform(rng, f.weights.Value, f.in.Size(), f.out.C)
	clear(f.bias.Value)
}

// Forward computes weights·in + bias followed by the activation
func (f *Full) Forward(in, out []float32) {
	n := f.in.Size()
	for u := range out[:f.out.C] {
		out[u] = kernel.Dot(in[:n], f.weights.Value[u*n:]) + f.bias.Value[u]
	}
	f.activation.Apply(out[:f.out.C])
}

// Backward propagates gradOut back through the activation and the product
func (f *Full) Backward(in, out, gradOut, gradIn []float32, grads [][]float32) {
	f.activation.Derive(out, gradOut)
	if gradIn != nil {
		clear(gradIn)
	}
	n := f.in.Size()
	gw, gb := grads[0], grads[1]
	for u, d := range gradOut[:f.out.C] {
		if d == 0 {
			continue
		}
		gb[u] += d
		kernel.Axpy(d, in[:n], gw[u*n:])
		if gradIn != nil {
			kernel.Axpy(d, f.weights.Value[u*n:][:n], gradIn)
		}
	}
}

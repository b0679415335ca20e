package conv2d

import "math/rand"

import "github.com/neurlang/fashion/kernel"
import "github.com/neurlang/fashion/layer"

// In returns the input shape
func (f *Conv2D) In() layer.Shape { return f.in }

// Out returns the output shape
func (f *Conv2D) Out() layer.Shape { return f.out }

// Params returns the kernel, laid out as filters × size × size × channels, and the bias
func (f *Conv2D) Params() []*layer.Param {
	return []*layer.Param{f.kernel, f.bias}
}

// Init draws the kernel from the Glorot uniform distribution and zeroes the bias
func (f *Conv2D) Init(rng *rand.Rand) {
	area := f.size * f.size
	layer.GlorotUniform(rng, f.kernel.Value, area*f.in.C, area*f.out.C)
	clear(f.bias.Value)
}

// row returns the offset of the input row segment feeding output (y, x) through kernel row i.
// The segment is size*C floats long and contiguous in HWC layout.
func (f *Conv2D) row(y, x, i int) int {
	return ((y+i)*f.in.W + x) * f.in.C
}

// Forward computes the convolution of in followed by the activation
func (f *Conv2D) Forward(in, out []float32) {
	seg := f.size * f.in.C
	filter := f.size * seg
	w := f.kernel.Value
	for y := 0; y < f.out.H; y++ {
		for x := 0; x < f.out.W; x++ {
			o := out[(y*f.out.W+x)*f.out.C:][:f.out.C]
			for n := range o {
				s := f.bias.Value[n]
				for i := 0; i < f.size; i++ {
					s += kernel.Dot(in[f.row(y, x, i):][:seg], w[n*filter+i*seg:])
				}
				o[n] = s
			}
		}
	}
	f.activation.Apply(out)
}

// Backward propagates gradOut back through the activation and the convolution
func (f *Conv2D) Backward(in, out, gradOut, gradIn []float32, grads [][]float32) {
	f.activation.Derive(out, gradOut)
	if gradIn != nil {
		clear(gradIn)
	}
	seg := f.size * f.in.C
	filter := f.size * seg
	w := f.kernel.Value
	gw, gb := grads[0], grads[1]
	for y := 0; y < f.out.H; y++ {
		for x := 0; x < f.out.W; x++ {
			g := gradOut[(y*f.out.W+x)*f.out.C:][:f.out.C]
			for n, d := range g {
				if d == 0 {
					continue
				}
				gb[n] += d
				for i := 0; i < f.size; i++ {
					r := f.row(y, x, i)
					kernel.Axpy(d, in[r:r+seg], gw[n*filter+i*seg:])
					if gradIn != nil {
						kernel.Axpy(d, w[n*filter+i*seg:][:seg], gradIn[r:])
					}
				}
			}
		}
	}
}

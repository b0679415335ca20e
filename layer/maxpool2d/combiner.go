package maxpool2d

import "math/rand"
import "github.com/neurlang/fashion/layer"

// In returns the input shape
func (f *MaxPool2D) In() layer.Shape { return f.in }

// Out returns the output shape
func (f *MaxPool2D) Out() layer.Shape { return f.out }

// Params returns nil, pooling has no weights
func (f *MaxPool2D) Params() []*layer.Param { return nil }

// Init does nothing
func (f *MaxPool2D) Init(*rand.Rand) {}

// argmax returns the input index of the maximum of window (y, x) in channel c.
// Ties go to the first element in row-major order.
func (f *MaxPool2D) argmax(in []float32, y, x, c int) int {
	best := ((y*f.size)*f.in.W+x*f.size)*f.in.C + c
	for i := 0; i < f.size; i++ {
		for j := 0; j < f.size; j++ {
			n := ((y*f.size+i)*f.in.W+x*f.size+j)*f.in.C + c
			if in[n] > in[best] {
				best = n
			}
		}
	}
	return best
}

// Forward writes the maximum of every window to out
func (f *MaxPool2D) Forward(in, out []float32) {
	for y := 0; y < f.out.H; y++ {
		for x := 0; x < f.out.W; x++ {
			for c := 0; c < f.out.C; c++ {
				out[(y*f.out.W+x)*f.out.C+c] = in[f.argmax(in, y, x, c)]
			}
		}
	}
}

// Backward routes every output gradient to the input which won its window
func (f *MaxPool2D) Backward(in, out, gradOut, gradIn []float32, grads [][]float32) {
	if gradIn == nil {
		return
	}
	clear(gradIn)
	for y := 0; y < f.out.H; y++ {
		for x := 0; x < f.out.W; x++ {
			for c := 0; c < f.out.C; c++ {
				gradIn[f.argmax(in, y, x, c)] += gradOut[(y*f.out.W+x)*f.out.C+c]
			}
		}
	}
}

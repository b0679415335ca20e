// Package flatten implements the layer turning an image into a vector
package flatten

import "math/rand"
import "github.com/neurlang/fashion/layer"

// Kind is the name of the layer in the model file
const Kind = "flatten"

// FlattenLayer reshapes (H, W, C) into (1, 1, H*W*C). HWC samples are
// already stored flat, so the data passes through unchanged.
type FlattenLayer struct{}

// Flatten is the laid out reshape
type Flatten struct {
	in, out layer.Shape
}

// New creates a new flatten layer
func New() *FlattenLayer {
	return &FlattenLayer{}
}

// Kind returns "flatten"
func (i *FlattenLayer) Kind() string {
	return Kind
}

// Lay turns flatten layer into a combiner
func (i *FlattenLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if err := in.Valid(); err != nil {
		return nil, err
	}
	return &Flatten{in: in, out: layer.Shape{H: 1, W: 1, C: in.Size()}}, nil
}

func (f *Flatten) In() layer.Shape { return f.in }

func (f *Flatten) Out() layer.Shape { return f.out }

func (f *Flatten) Params() []*layer.Param { return nil }

func (f *Flatten) Init(*rand.Rand) {}

func (f *Flatten) Forward(in, out []float32) { copy(out, in) }

func (f *Flatten) Backward(in, out, gradOut, gradIn []float32, grads [][]float32) {
	if gradIn != nil {
		copy(gradIn, gradOut)
	}
}

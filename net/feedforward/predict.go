package feedforward

import "github.com/pkg/errors"
import "gorgonia.org/tensor"

import "github.com/neurlang/fashion/loss"

// ErrShape is returned by Predict for a tensor not shaped (1, H, W, C)
var ErrShape = errors.New("tensor shape does not match the network input")

// Predict classifies a single sample batch of shape (1, H, W, C) and returns
// the winning class together with the probabilities of all classes.
func (f FeedforwardNetwork) Predict(t *tensor.Dense) (class int, probs []float32, err error) {
	if !f.Compiled() {
		return 0, nil, errors.New("network was not compiled")
	}
	want := tensor.Shape{1, f.input.H, f.input.W, f.input.C}
	if !t.Shape().Eq(want) {
		return 0, nil, errors.Wrapf(ErrShape, "got %v, want %v", t.Shape(), want)
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return 0, nil, errors.Wrapf(ErrShape, "dtype %v, want float32", t.Dtype())
	}
	probs = f.Infer(data)
	return loss.Argmax(probs), probs, nil
}

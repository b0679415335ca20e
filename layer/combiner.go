// Package layer defines a custom combiner and layer interface
package layer

import "math/rand"

// Combiner is a laid out layer. It owns the weights and transforms one sample
// at a time. Activations are not stored inside the combiner, the caller passes
// the buffers in, so one combiner can serve many goroutines at once.
type Combiner interface {

	// In reports the shape of one input sample.
	In() Shape

	// Out reports the shape of one output sample.
	Out() Shape

	// Init fills the weights with their initial values.
	Init(rng *rand.Rand)

	// Forward computes out from in. len(in) == In().Size(), len(out) == Out().Size().
	Forward(in, out []float32)

	// Backward receives in and out of the last Forward and the gradient of the
	// loss with respect to out. For a softmax activation gradOut is taken to be
	// the gradient with respect to the logits instead. gradOut may be overwritten.
	// The gradient with respect to in is written to gradIn unless it is nil,
	// the parameter gradients are added to grads, which is aligned with Params().
	Backward(in, out, gradOut, gradIn []float32, grads [][]float32)

	// Params returns the trainable parameters, nil for layers without any.
	Params() []*Param
}

// Param is a named trainable tensor stored flat in row-major order.
type Param struct {
	Name  string
	Shape []int
	Value []float32
}

// NewParam allocates a zero parameter of the given shape
func NewParam(name string, shape ...int) *Param {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Param{
		Name:  name,
		Shape: append([]int(nil), shape...),
		Value: make([]float32, n),
	}
}

// Len returns the number of scalars held by the parameter
func (p *Param) Len() int {
	return len(p.Value)
}

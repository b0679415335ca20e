package feedforward

import "github.com/neurlang/fashion/loss"

// Scratch holds the per goroutine buffers of one training worker: the
// activations of every layer, their gradients, and the accumulated
// parameter gradients aligned with Params().
type Scratch struct {
	acts   [][]float32
	deltas [][]float32
	grads  [][]float32
	owner  [][][]float32
}

// NewScratch allocates the buffers for a compiled network
func (f FeedforwardNetwork) NewScratch() *Scratch {
	s := &Scratch{
		acts:   make([][]float32, len(f.combiners)+1),
		deltas: make([][]float32, len(f.combiners)+1),
		owner:  make([][][]float32, len(f.combiners)),
	}
	s.acts[0] = make([]float32, f.input.Size())
	for i, c := range f.combiners {
		s.acts[i+1] = make([]float32, c.Out().Size())
		s.deltas[i+1] = make([]float32, c.Out().Size())
		first := len(s.grads)
		for _, p := range c.Params() {
			s.grads = append(s.grads, make([]float32, p.Len()))
		}
		s.owner[i] = s.grads[first:]
	}
	return s
}

// Input returns the buffer which the next sample must be written to
func (s *Scratch) Input() []float32 {
	return s.acts[0]
}

// Grads returns the accumulated parameter gradients aligned with Params()
func (s *Scratch) Grads() [][]float32 {
	return s.grads
}

// Zero clears the accumulated parameter gradients
func (s *Scratch) Zero() {
	for _, g := range s.grads {
		clear(g)
	}
}

// Forward runs the sample in Input() through the network and returns the output
func (f FeedforwardNetwork) Forward(s *Scratch) []float32 {
	for i, c := range f.combiners {
		c.Forward(s.acts[i], s.acts[i+1])
	}
	return s.acts[len(f.combiners)]
}

// Backprop runs the sample in Input() forward, then adds the gradient of the
// cross entropy against label to the scratch parameter gradients. It reports
// the loss and whether the prediction was correct.
func (f FeedforwardNetwork) Backprop(s *Scratch, label int) (l float32, correct bool) {
	probs := f.Forward(s)
	last := len(f.combiners)
	l = loss.SparseCategoricalCrossentropy(probs, label, s.deltas[last])
	correct = loss.Argmax(probs) == label
	for i := last - 1; i >= 0; i-- {
		var gradIn []float32
		if i > 0 {
			gradIn = s.deltas[i]
		}
		f.combiners[i].Backward(s.acts[i], s.acts[i+1], s.deltas[i+1], gradIn, s.owner[i])
	}
	return l, correct
}

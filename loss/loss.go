// Package loss implements the training objective of the classifier
package loss

import "math"

// Epsilon bounds the probabilities away from 0 and 1 before taking the logarithm
const Epsilon = 1e-7

// SparseCategoricalCrossentropy returns -log(probs[label]) for a softmax output.
// If grad is not nil, it receives the gradient with respect to the logits,
// which for softmax followed by cross entropy is probs - onehot(label).
func SparseCategoricalCrossentropy(probs []float32, label int, grad []float32) float32 {
	p := float64(probs[label])
	p = math.Min(math.Max(p, Epsilon), 1-Epsilon)
	if grad != nil {
		copy(grad, probs)
		grad[label] -= 1
	}
	return float32(-math.Log(p))
}

// Argmax returns the index of the largest value, the first one on ties
func Argmax(v []float32) (best int) {
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return
}

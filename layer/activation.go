package layer

import "fmt"
import "math"
import "math/rand"

// Activation is applied in place to the output of a combiner
type Activation string

const (
	Linear  Activation = "linear"
	ReLU    Activation = "relu"
	Softmax Activation = "softmax"
)

// Valid reports an error for an unknown activation
func (a Activation) Valid() error {
	switch a {
	case Linear, ReLU, Softmax:
		return nil
	}
	return fmt.Errorf("unknown activation %q", string(a))
}

// Apply applies the activation to x in place. Softmax normalizes the whole of x.
func (a Activation) Apply(x []float32) {
	switch a {
	case ReLU:
		for i, v := range x {
			if v < 0 {
				x[i] = 0
			}
		}
	case Softmax:
		softmax(x)
	}
}

// Derive multiplies grad in place by the derivative of the activation,
// evaluated from the activation output. Softmax is left alone: its gradient
// is produced directly with respect to the logits by the loss.
func (a Activation) Derive(out, grad []float32) {
	if a != ReLU {
		return
	}
	for i, v := range out {
		if v <= 0 {
			grad[i] = 0
		}
	}
}

func softmax(x []float32) {
	if len(x) == 0 {
		return
	}
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}
	var sum float64
	for i, v := range x {
		e := math.Exp(float64(v - max))
		x[i] = float32(e)
		sum += e
	}
	for i := range x {
		x[i] = float32(float64(x[i]) / sum)
	}
}

// GlorotUniform fills w from U(-l, l) with l = sqrt(6 / (fanIn + fanOut))
func GlorotUniform(rng *rand.Rand, w []float32, fanIn, fanOut int) {
	limit := math.Sqrt(6 / float64(fanIn+fanOut))
	for i := range w {
		w[i] = float32((rng.Float64()*2 - 1) * limit)
	}
}

// Package optimizer implements the weight update rules used by the trainer
package optimizer

import "math"
import "github.com/neurlang/fashion/layer"

// Optimizer updates every parameter in place from its gradient.
// grads is aligned with params and holds the batch mean gradient.
type Optimizer interface {
	Step(params []*layer.Param, grads [][]float32)
}

// SGD is plain stochastic gradient descent
type SGD struct {
	LearningRate float64
}

// NewSGD creates SGD with learning rate lr
func NewSGD(lr float64) *SGD {
	return &SGD{LearningRate: lr}
}

// Step applies w -= lr * g
func (o *SGD) Step(params []*layer.Param, grads [][]float32) {
	lr := float32(o.LearningRate)
	for i, p := range params {
		for j, g := range grads[i] {
			p.Value[j] -= lr * g
		}
	}
}

// Adam is the adaptive moment estimation optimizer, with the step size
// correction folded into the learning rate
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	t    int
	m, v [][]float32
}

// NewAdam creates Adam with learning rate lr and the usual decay rates
func NewAdam(lr float64) *Adam {
	return &Adam{
		LearningRate: lr,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-7,
	}
}

// Iterations returns the number of steps taken
func (o *Adam) Iterations() int {
	return o.t
}

// Step applies one Adam update
func (o *Adam) Step(params []*layer.Param, grads [][]float32) {
	if o.m == nil {
		o.m = make([][]float32, len(params))
		o.v = make([][]float32, len(params))
		for i, p := range params {
			o.m[i] = make([]float32, p.Len())
			o.v[i] = make([]float32, p.Len())
		}
	}
	o.t++
	t := float64(o.t)
	lr := o.LearningRate * math.Sqrt(1-math.Pow(o.Beta2, t)) / (1 - math.Pow(o.Beta1, t))
	b1, b2 := float32(o.Beta1), float32(o.Beta2)
	for i, p := range params {
		m, v := o.m[i], o.v[i]
		for j, g := range grads[i] {
			m[j] = b1*m[j] + (1-b1)*g
			v[j] = b2*v[j] + (1-b2)*g*g
			p.Value[j] -= float32(lr * float64(m[j]) / (math.Sqrt(float64(v[j])) + o.Epsilon))
		}
	}
}

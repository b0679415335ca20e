// Package conv2d implements a 2D convolution layer and combiner
package conv2d

import "fmt"
import "github.com/neurlang/fashion/layer"

// Kind is the name of the layer in the model file
const Kind = "conv2d"

// Conv2DLayer describes a stride 1 convolution without padding
type Conv2DLayer struct {
	Filters    int              `json:"filters"`
	Size       int              `json:"size"`
	Activation layer.Activation `json:"activation"`
}

// Conv2D is the laid out convolution
type Conv2D struct {
	in, out    layer.Shape
	size       int
	activation layer.Activation
	kernel     *layer.Param
	bias       *layer.Param
}

// MustNew creates a new Conv2D layer with filters, kernel size and activation
func MustNew(filters, size int, activation layer.Activation) *Conv2DLayer {
	o, err := New(filters, size, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with filters, kernel size and activation
func New(filters, size int, activation layer.Activation) (o *Conv2DLayer, err error) {
	o = &Conv2DLayer{Filters: filters, Size: size, Activation: activation}
	if err = o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (i *Conv2DLayer) validate() error {
	if i.Filters <= 0 {
		return fmt.Errorf("New Conv2D: Filters %d must be positive", i.Filters)
	}
	if i.Size <= 0 {
		return fmt.Errorf("New Conv2D: Size %d must be positive", i.Size)
	}
	if i.Activation == layer.Softmax {
		return fmt.Errorf("New Conv2D: softmax activation is not supported")
	}
	return i.Activation.Valid()
}

// Kind returns "conv2d"
func (i *Conv2DLayer) Kind() string {
	return Kind
}

// Lay turns Conv2D layer into a combiner
func (i *Conv2DLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if err := i.validate(); err != nil {
		return nil, err
	}
	if err := in.Valid(); err != nil {
		return nil, err
	}
	if in.W < i.Size {
		return nil, fmt.Errorf("Lay Conv2D: Width %d is lower than Size %d", in.W, i.Size)
	}
	if in.H < i.Size {
		return nil, fmt.Errorf("Lay Conv2D: Height %d is lower than Size %d", in.H, i.Size)
	}
	return &Conv2D{
		in:         in,
		out:        layer.Shape{H: in.H - i.Size + 1, W: in.W - i.Size + 1, C: i.Filters},
		size:       i.Size,
		activation: i.Activation,
		kernel:     layer.NewParam("kernel", i.Filters, i.Size, i.Size, in.C),
		bias:       layer.NewParam("bias", i.Filters),
	}, nil
}

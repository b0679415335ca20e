// Package maxpool2d implements a 2D max pooling layer and combiner
package maxpool2d

import "fmt"
import "github.com/neurlang/fashion/layer"

// Kind is the name of the layer in the model file
const Kind = "maxpool2d"

// MaxPool2DLayer describes non-overlapping size × size max pooling. Rows and
// columns which do not fill a whole window are dropped.
type MaxPool2DLayer struct {
	Size int `json:"size"`
}

// MaxPool2D is the laid out pooling
type MaxPool2D struct {
	in, out layer.Shape
	size    int
}

// New creates a new MaxPool2D layer with window size
func New(size int) (o *MaxPool2DLayer, err error) {
	if size <= 0 {
		return nil, fmt.Errorf("New MaxPool2D: Size %d must be positive", size)
	}
	return &MaxPool2DLayer{Size: size}, nil
}

// MustNew creates a new MaxPool2D layer with window size
func MustNew(size int) *MaxPool2DLayer {
	o, err := New(size)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Kind returns "maxpool2d"
func (i *MaxPool2DLayer) Kind() string {
	return Kind
}

// Lay turns MaxPool2D layer into a combiner
func (i *MaxPool2DLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if i.Size <= 0 {
		return nil, fmt.Errorf("Lay MaxPool2D: Size %d must be positive", i.Size)
	}
	if err := in.Valid(); err != nil {
		return nil, err
	}
	if in.H < i.Size || in.W < i.Size {
		return nil, fmt.Errorf("Lay MaxPool2D: input %v is smaller than the window %d", in, i.Size)
	}
	return &MaxPool2D{
		in:   in,
		out:  layer.Shape{H: in.H / i.Size, W: in.W / i.Size, C: in.C},
		size: i.Size,
	}, nil
}

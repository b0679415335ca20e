// Package full implements a fully connected layer and combiner
package full

import "fmt"
import "github.com/neurlang/fashion/layer"

// Kind is the name of the layer in the model file
const Kind = "full"

// FullLayer describes a dense layer with units outputs
type FullLayer struct {
	Units      int              `json:"units"`
	Activation layer.Activation `json:"activation"`
}

// Full is the laid out dense layer
type Full struct {
	in, out    layer.Shape
	activation layer.Activation
	weights    *layer.Param
	bias       *layer.Param
}

// MustNew creates a new full layer with units and activation
func MustNew(units int, activation layer.Activation) *FullLayer {
	o, err := New(units, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with units and activation
func New(units int, activation layer.Activation) (o *FullLayer, err error) {
	o = &FullLayer{Units: units, Activation: activation}
	if err = o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (i *FullLayer) validate() error {
	if i.Units <= 0 {
		return fmt.Errorf("New Full: Units %d must be positive", i.Units)
	}
	return i.Activation.Valid()
}

// Kind returns "full"
func (i *FullLayer) Kind() string {
	return Kind
}

// Lay turns full layer into a combiner. The input is read as a flat vector.
func (i *FullLayer) Lay(in layer.Shape) (layer.Combiner, error) {
	if err := i.validate(); err != nil {
		return nil, err
	}
	if err := in.Valid(); err != nil {
		return nil, err
	}
	return &Full{
		in:         in,
		out:        layer.Shape{H: 1, W: 1, C: i.Units},
		activation: i.Activation,
		weights:    layer.NewParam("weights", i.Units, in.Size()),
		bias:       layer.NewParam("bias", i.Units),
	}, nil
}

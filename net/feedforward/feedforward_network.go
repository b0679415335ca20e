// Package feedforward implements a feedforward network type
package feedforward

import "fmt"
import "math/rand"

import "github.com/neurlang/fashion/layer"

// FeedforwardNetwork is a sequential stack of layers. Once compiled and
// trained its weights are read-only, and Infer may be called concurrently.
type FeedforwardNetwork struct {
	input     layer.Shape
	layers    []layer.Layer
	combiners []layer.Combiner
	classes   []string
}

// NewLayer adds a layer to the end of network. Layers added after Compile
// are laid out by the next Compile.
func (f *FeedforwardNetwork) NewLayer(l layer.Layer) {
	f.layers = append(f.layers, l)
}

// SetClasses sets the names of the network outputs
func (f *FeedforwardNetwork) SetClasses(names []string) {
	f.classes = append([]string(nil), names...)
}

// Compile lays out every layer for samples of shape in. When rng is not nil
// the weights are initialized from it, otherwise they are left at zero to be
// read from a model file.
func (f *FeedforwardNetwork) Compile(in layer.Shape, rng *rand.Rand) error {
	if err := in.Valid(); err != nil {
		return err
	}
	if len(f.layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	combiners := make([]layer.Combiner, 0, len(f.layers))
	shape := in
	for i, l := range f.layers {
		c, err := l.Lay(shape)
		if err != nil {
			return fmt.Errorf("layer %d (%s): %w", i, l.Kind(), err)
		}
		if rng != nil {
			c.Init(rng)
		}
		combiners = append(combiners, c)
		shape = c.Out()
	}
	if f.classes != nil && len(f.classes) != shape.Size() {
		return fmt.Errorf("network has %d outputs but %d classes", shape.Size(), len(f.classes))
	}
	f.input = in
	f.combiners = combiners
	return nil
}

// Compiled reports whether the network was laid out
func (f FeedforwardNetwork) Compiled() bool {
	return f.combiners != nil
}

// Input returns the shape of one input sample
func (f FeedforwardNetwork) Input() layer.Shape {
	return f.input
}

// Outputs returns the number of network outputs (classes)
func (f FeedforwardNetwork) Outputs() int {
	if len(f.combiners) == 0 {
		return 0
	}
	return f.combiners[len(f.combiners)-1].Out().Size()
}

// Classes returns the names of the outputs
func (f FeedforwardNetwork) Classes() []string {
	return f.classes
}

// LenLayers returns the number of layers.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer returns the description of layer n
func (f FeedforwardNetwork) GetLayer(n int) layer.Layer {
	return f.layers[n]
}

// GetCombiner returns the laid out layer n
func (f FeedforwardNetwork) GetCombiner(n int) layer.Combiner {
	return f.combiners[n]
}

// Params returns all trainable parameters, layer by layer
func (f FeedforwardNetwork) Params() (o []*layer.Param) {
	for _, c := range f.combiners {
		o = append(o, c.Params()...)
	}
	return
}

// Len returns the number of scalars which need to be trained inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, p := range f.Params() {
		o += p.Len()
	}
	return
}

// Infer computes the network output (class probabilities) for one sample.
// len(in) must be Input().Size().
func (f FeedforwardNetwork) Infer(in []float32) []float32 {
	for _, c := range f.combiners {
		out := make([]float32, c.Out().Size())
		c.Forward(in, out)
		in = out
	}
	return in
}

// Summary describes the layers and their output shapes, one per line
func (f FeedforwardNetwork) Summary() (o string) {
	o = fmt.Sprintf("input %v\n", f.input)
	for i, c := range f.combiners {
		var n int
		for _, p := range c.Params() {
			n += p.Len()
		}
		o += fmt.Sprintf("%-10s %v params %d\n", f.GetLayer(i).Kind(), c.Out(), n)
	}
	o += fmt.Sprintf("total params %d", f.Len())
	return
}

package layer

import "fmt"

// Layer is the layer which can be used for instantiating a combiner.
// Layers are plain descriptions and are stored in the model file as JSON.
type Layer interface {

	// Kind names the layer type in the model file
	Kind() string

	// Lay creates a combiner accepting samples of shape in
	Lay(in Shape) (Combiner, error)
}

// Shape is the height, width and channel count of one sample (HWC layout)
type Shape struct {
	H int `json:"h"`
	W int `json:"w"`
	C int `json:"c"`
}

// Size returns the number of scalars in one sample
func (s Shape) Size() int {
	return s.H * s.W * s.C
}

// Valid reports an error if any dimension is not positive
func (s Shape) Valid() error {
	if s.H <= 0 || s.W <= 0 || s.C <= 0 {
		return fmt.Errorf("invalid shape %v", s)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.H, s.W, s.C)
}

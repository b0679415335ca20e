// Package fashionmnist loads the Fashion-MNIST dataset of 28x28 grayscale clothing images
package fashionmnist

import "fmt"

// ImgSize is the width and height of every image
const ImgSize = 28

// Classes is the number of labels
const Classes = 10

// ClassNames maps a label to its name. The table is stored in every model
// file and must not change between training and serving.
var ClassNames = []string{
	"T-shirt/top",
	"Trouser",
	"Pullover",
	"Dress",
	"Coat",
	"Sandal",
	"Shirt",
	"Sneaker",
	"Bag",
	"Ankle boot",
}

// ClassName returns the name of label n
func ClassName(n int) string {
	if n < 0 || n >= len(ClassNames) {
		return fmt.Sprintf("unknown(%d)", n)
	}
	return ClassNames[n]
}

// CheckClasses reports an error if names is not the class table of this package
func CheckClasses(names []string) error {
	if len(names) != len(ClassNames) {
		return fmt.Errorf("model has %d classes, expected %d", len(names), len(ClassNames))
	}
	for i := range names {
		if names[i] != ClassNames[i] {
			return fmt.Errorf("model class %d is %q, expected %q", i, names[i], ClassNames[i])
		}
	}
	return nil
}

// Input is one raw image, row by row
type Input [ImgSize * ImgSize]byte

// Sample is one labeled image
type Sample struct {
	Image Input
	Label byte
}

// Floats writes the image to dst scaled from [0,255] to [0,1]
func (s *Sample) Floats(dst []float32) {
	for i, v := range s.Image {
		dst[i] = float32(v) / 255
	}
}

// Samples is a slice of samples usable as a training set
type Samples []Sample

// Len returns the number of samples
func (s Samples) Len() int {
	return len(s)
}

// Get writes sample i normalized to dst and returns its label
func (s Samples) Get(i int, dst []float32) int {
	s[i].Floats(dst)
	return int(s[i].Label)
}

// Split keeps the leading samples for training and returns the trailing
// fraction as the validation set. The order is not shuffled first.
func Split(s Samples, fraction float64) (train, validation Samples) {
	if fraction <= 0 {
		return s, nil
	}
	if fraction >= 1 {
		return nil, s
	}
	n := int(float64(len(s)) * (1 - fraction))
	return s[:n], s[n:]
}

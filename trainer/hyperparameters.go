package trainer

import "github.com/neurlang/fashion/parallel"

// Dataset is a labeled set of samples which the trainer reads by index.
// Get must be safe to call from many goroutines.
type Dataset interface {
	Len() int

	// Get writes the normalized sample i to dst and returns its label
	Get(i int, dst []float32) int
}

type HyperParameters struct {
	Epochs    int // passes over the training set
	BatchSize int // samples per optimizer step

	Shuffle bool  // whether to shuffle the set before each epoch
	Seed    int64 // seed of the shuffling prng

	Threads int // number of goroutines computing a batch
}

// Defaults returns the training setup of the Fashion-MNIST classifier
func Defaults() HyperParameters {
	return HyperParameters{
		Epochs:    10,
		BatchSize: 32,
		Shuffle:   true,
		Seed:      1,
		Threads:   parallel.Threads(),
	}
}

func (h HyperParameters) threads() int {
	if h.Threads <= 0 {
		return parallel.Threads()
	}
	return h.Threads
}

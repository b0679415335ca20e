// Package kernel implements the float32 vector primitives the layers are built on
package kernel

// Dot returns the inner product of a and b. b must be at least as long as a.
var Dot func(a, b []float32) float32 = dotNotUnrolled

// Axpy computes y += alpha * x. y must be at least as long as x.
var Axpy func(alpha float32, x, y []float32) = axpyNotUnrolled

var unrolled bool

// Unrolled reports whether the multi-accumulator kernels were selected on this platform
func Unrolled() bool {
	return unrolled
}

func dotNotUnrolled(a, b []float32) (s float32) {
	b = b[:len(a)]
	for i, v := range a {
		s += v * b[i]
	}
	return
}

func axpyNotUnrolled(alpha float32, x, y []float32) {
	y = y[:len(x)]
	for i, v := range x {
		y[i] += alpha * v
	}
}

// dotUnrolled keeps four independent accumulators so that a core with fused
// multiply add can keep several multiplications in flight.
func dotUnrolled(a, b []float32) float32 {
	b = b[:len(a)]
	var s0, s1, s2, s3 float32
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for i := n; i < len(a); i++ {
		s0 += a[i] * b[i]
	}
	return (s0 + s1) + (s2 + s3)
}

func axpyUnrolled(alpha float32, x, y []float32) {
	y = y[:len(x)]
	n := len(x) &^ 3
	for i := 0; i < n; i += 4 {
		y[i] += alpha * x[i]
		y[i+1] += alpha * x[i+1]
		y[i+2] += alpha * x[i+2]
		y[i+3] += alpha * x[i+3]
	}
	for i := n; i < len(x); i++ {
		y[i] += alpha * x[i]
	}
}

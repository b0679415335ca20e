package kernel

import (
	"math"
	"math/rand"
	"testing"
)

func randomVector(rng *rand.Rand, n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}

// unrolled and plain kernels agree up to rounding
func TestDotVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 3, 4, 5, 17, 64, 577} {
		a, b := randomVector(rng, n), randomVector(rng, n)
		var want float64
		for i := range a {
			want += float64(a[i]) * float64(b[i])
		}
		for name, dot := range map[string]func(a, b []float32) float32{
			"plain":    dotNotUnrolled,
			"unrolled": dotUnrolled,
			"selected": Dot,
		} {
			got := dot(a, b)
			if math.Abs(float64(got)-want) > 1e-4*float64(n+1) {
				t.Errorf("%s dot n=%d: got %v want %v", name, n, got, want)
			}
		}
	}
}

func TestAxpyVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{0, 1, 6, 8, 33} {
		x := randomVector(rng, n)
		base := randomVector(rng, n)
		for name, axpy := range map[string]func(float32, []float32, []float32){
			"plain":    axpyNotUnrolled,
			"unrolled": axpyUnrolled,
			"selected": Axpy,
		} {
			y := append([]float32(nil), base...)
			axpy(0.5, x, y)
			for i := range y {
				if want := base[i] + 0.5*x[i]; y[i] != want {
					t.Fatalf("%s axpy n=%d at %d: got %v want %v", name, n, i, y[i], want)
				}
			}
		}
	}
}

// b may be longer than a
func TestDotLongerSecondOperand(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 1, 1, 100, 100}
	if got := Dot(a, b); got != 6 {
		t.Fatalf("got %v", got)
	}
}

func BenchmarkDot(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x, y := randomVector(rng, 1600), randomVector(rng, 1600)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Dot(x, y)
	}
}

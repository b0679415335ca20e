//go:build !noasm && amd64

package kernel

import "github.com/klauspost/cpuid/v2"

func init() {
	// Check if the CPU can fuse the multiply adds of the unrolled loops
	if cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) {
		Dot = dotUnrolled
		Axpy = axpyUnrolled
		unrolled = true
	} else {
		Dot = dotNotUnrolled
		Axpy = axpyNotUnrolled
		unrolled = false
	}
}

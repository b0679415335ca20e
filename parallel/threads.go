package parallel

import "runtime"
import "github.com/klauspost/cpuid/v2"

// Threads reports the recommended number of compute goroutines on this machine.
// Hyperthreads share the floating point units, so physical cores are preferred.
// Can't return 0.
func Threads() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// CPU describes the processor for logging.
func CPU() string {
	if cpuid.CPU.BrandName == "" {
		return runtime.GOARCH
	}
	return cpuid.CPU.BrandName
}

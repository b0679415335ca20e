// Package parallel contains parallel ForEach() and Chunks() plus the thread count heuristic.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine pulls the next integer, from 0 to length, until none are left.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}
	if limit > length {
		limit = length
	}

	next := make(chan int, limit)
	var wg sync.WaitGroup
	wg.Add(limit)

	for n := 0; n < limit; n++ {
		go func() {
			defer wg.Done()
			for i := range next {
				body(i)
			}
		}()
	}
	for i := 0; i < length; i++ {
		next <- i
	}
	close(next)

	wg.Wait()
}

// Chunks splits the range [0, length) into at most n contiguous chunks and
// runs body on every chunk concurrently. Chunk numbers are dense, starting at 0,
// so body may index per-goroutine state by chunk.
func Chunks(length, n int, body func(chunk, lo, hi int)) {
	if n <= 0 {
		n = 1
	}
	if length <= 0 {
		return
	}
	if n > length {
		n = length
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for chunk := 0; chunk < n; chunk++ {
		lo := chunk * length / n
		hi := (chunk + 1) * length / n
		go func(chunk, lo, hi int) {
			defer wg.Done()
			body(chunk, lo, hi)
		}(chunk, lo, hi)
	}
	wg.Wait()
}

package sph

import (
	"runtime"
	"sync"
)

// serialThreshold is the particle count below which a stage runs on the
// calling goroutine; fan-out overhead dominates for tiny pools.
const serialThreshold = 64

// parallelFor runs fn over contiguous chunks covering [0, n) on up to
// workers goroutines and returns when every chunk is done, giving each
// stage its barrier. workers <= 0 means GOMAXPROCS. Chunking is a
// scheduling detail only; fn must write exclusively to per-index output
// slots, so the split cannot affect results.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n < serialThreshold {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

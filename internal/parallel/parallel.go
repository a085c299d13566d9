// Package parallel fans index ranges out over a fixed pool of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Workers normalizes a requested worker count.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Split cuts [0, total) into at most parts contiguous, disjoint ranges whose
// sizes differ by at most one.
func Split(total uint64, parts int) [][2]uint64 {
	if total == 0 {
		return nil
	}
	p := uint64(Workers(parts))
	if p > total {
		p = total
	}
	size, rem := total/p, total%p

	out := make([][2]uint64, 0, p)
	var lo uint64
	for i := uint64(0); i < p; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		out = append(out, [2]uint64{lo, hi})
		lo = hi
	}
	return out
}

// Ranges runs fn once per sub-range of [0, total), each on its own
// goroutine, and waits for all of them. The first error returned by fn, or
// the context error if ctx is done before a sub-range starts, is returned.
func Ranges(ctx context.Context, workers int, total uint64, fn func(lo, hi uint64) error) error {
	ranges := Split(total, workers)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for _, r := range ranges {
		wg.Add(1)
		go func(lo, hi uint64) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			if err := fn(lo, hi); err != nil {
				fail(err)
			}
		}(r[0], r[1])
	}
	wg.Wait()

	return firstErr
}

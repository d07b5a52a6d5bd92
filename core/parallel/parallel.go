package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count: values <= 0 mean one worker per CPU.
func Workers(requested int) int {
	if requested <= 0 {
		return runtime.NumCPU()
	}
	return requested
}

// Parallelize divides items into contiguous ranges, one per worker, and runs
// fn(start, end) for each range concurrently. It returns the first error.
func Parallelize(items, workers int, fn func(start, end int) error) error {
	if items == 0 {
		return nil
	}

	numWorkers := Workers(workers)
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}
	if numWorkers == 1 {
		return fn(0, items)
	}

	// Ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var g errgroup.Group
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}

// ForEach runs fn(i) for every i in [0, items) with at most workers
// goroutines in flight. Results must be written to per-index slots by fn.
func ForEach(items, workers int, fn func(i int) error) error {
	if items == 0 {
		return nil
	}
	numWorkers := Workers(workers)
	if numWorkers == 1 || items == 1 {
		for i := 0; i < items; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i := 0; i < items; i++ {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}

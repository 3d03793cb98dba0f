package workers

import (
	"context"
	"sync"
)

// Map runs fn over every input through a fixed pool of size workers and
// returns one result per input. Contract: all submitted tasks run to
// completion regardless of individual failures — failures are values inside
// R, never raised — and results carry no ordering guarantee. There is no
// early cancellation beyond whatever fn itself does with ctx.
func Map[T, R any](ctx context.Context, workers int, inputs []T, fn func(context.Context, T) R) []R {
	if workers < 1 {
		workers = 1
	}
	if len(inputs) == 0 {
		return nil
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan T)
	results := make(chan R)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for input := range jobs {
				results <- fn(ctx, input)
			}
		}()
	}

	go func() {
		for _, input := range inputs {
			jobs <- input
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]R, 0, len(inputs))
	for result := range results {
		collected = append(collected, result)
	}
	return collected
}

package main

import (
	"sync"

	"go.uber.org/ratelimit"
)

// fanout runs tasks across a fixed number of workers, pacing task starts
// with the rate limiter so bulk reads do not hammer the broker. It returns
// the errors of the tasks that failed.
func fanout(tasks []func() error, workers int, limiter ratelimit.Limiter) []error {
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan func() error)
	errc := make(chan error, len(tasks))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for t := range jobs {
				limiter.Take()
				if err := t(); err != nil {
					errc <- err
				}
			}
		}()
	}

	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)

	wg.Wait()
	close(errc)

	errs := make([]error, 0, len(errc))
	for err := range errc {
		errs = append(errs, err)
	}

	return errs
}

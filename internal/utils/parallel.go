package utils

import (
	"sync"
)

// Task is a unit of work that can be executed in parallel.
type Task[T any] func() (T, error)

// RunParallel executes tasks concurrently. Results and errors are returned
// in task order.
func RunParallel[T any](tasks []Task[T]) ([]T, []error) {
	var wg sync.WaitGroup
	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t Task[T]) {
			defer wg.Done()
			results[index], errs[index] = t()
		}(i, task)
	}

	wg.Wait()
	return results, errs
}

// FirstError returns the first non-nil error in errs.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

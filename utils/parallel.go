package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// SimpleFunc is a unit of work for RunInParallel.
type SimpleFunc func(ctx context.Context) error

// FloatFunc is a unit of work for GetInParallel.
type FloatFunc func(ctx context.Context) (float64, error)

// errCollector merges worker errors. Cancellation errors are dropped once a real error is held,
// so callers see the failure that triggered the cancellation rather than its fallout.
type errCollector struct {
	mu  sync.Mutex
	err error
}

func (c *errCollector) add(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil || !errors.Is(err, context.Canceled) {
		c.err = multierr.Combine(c.err, err)
	}
}

// RunInParallel runs every function on its own goroutine and waits for all of them to finish.
// The first failure cancels the context the remaining functions observe. Panics are recovered
// into errors. Returns the elapsed time and the combined errors.
func RunInParallel(ctx context.Context, fs []SimpleFunc) (time.Duration, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collected := &errCollector{}
	var wg sync.WaitGroup
	wg.Add(len(fs))
	for _, f := range fs {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					collected.add(fmt.Errorf("got panic running something in parallel: %v", r))
					cancel()
				}
			}()
			if err := f(ctx); err != nil {
				collected.add(err)
				cancel()
			}
		}()
	}
	wg.Wait()
	return time.Since(start), collected.err
}

// GetInParallel runs every function on its own goroutine and waits for all of them to finish.
// Results are ordered the same as the given functions regardless of completion order, with the
// same cancellation and panic handling as RunInParallel.
func GetInParallel(ctx context.Context, fs []FloatFunc) (time.Duration, []float64, error) {
	results := make([]float64, len(fs))
	wrapped := make([]SimpleFunc, 0, len(fs))
	for i, f := range fs {
		wrapped = append(wrapped, func(ctx context.Context) error {
			value, err := f(ctx)
			results[i] = value
			return err
		})
	}
	elapsed, err := RunInParallel(ctx, wrapped)
	return elapsed, results, err
}

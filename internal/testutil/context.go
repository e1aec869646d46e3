package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds contexts returned by Context.
const DefaultTimeout = 30 * time.Second

// Context создаёт context с DefaultTimeout и отменяет его при завершении теста.
func Context(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	t.Cleanup(cancel)

	return ctx
}

// StartLoop runs a Run-style loop in the background. The returned stop
// cancels its context and returns the loop's error; the test cleanup calls
// stop too if the test did not.
func StartLoop(t testing.TB, run func(ctx context.Context) error) (stop func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	var (
		stopped bool
		err     error
	)
	stop = func() error {
		if stopped {
			return err
		}
		stopped = true
		cancel()
		select {
		case err = <-done:
		case <-time.After(DefaultTimeout):
			t.Errorf("loop did not stop within %v", DefaultTimeout)
		}
		return err
	}
	t.Cleanup(func() { _ = stop() })

	return stop
}

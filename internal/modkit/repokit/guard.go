package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder checks every backend a process depends on, store.Store is one
type Guarder interface {
	Guard(ctx context.Context) error
}

// WaitReady retries g until it passes, attempts run out or ctx ends
// the returned error wraps the last guard failure
func WaitReady(ctx context.Context, g Guarder, attempts int, every time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = g.Guard(ctx); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("backends not ready: %w", ctx.Err())
		case <-time.After(every):
		}
	}
	return fmt.Errorf("backends not ready after %d attempts: %w", attempts, err)
}

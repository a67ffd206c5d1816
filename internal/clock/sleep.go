// Package clock holds the context-aware waits used by polling loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or until ctx ends. A non-positive d only checks ctx.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return WaitForSignal(ctx, d, nil)
}

// WaitForSignal waits for d, a value on signal, or the end of ctx, whichever comes
// first. A nil signal never fires. It returns ctx.Err() only when ctx ended first.
func WaitForSignal(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}

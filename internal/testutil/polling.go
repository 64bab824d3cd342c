// Package testutil holds fixtures and helpers shared by the front-end and
// command tests.
package testutil

import (
	"context"
	"fmt"
	"time"
)

// Poll checks condition every interval until it holds, timeout elapses, or
// ctx is done.
func Poll(ctx context.Context, condition func() bool, timeout time.Duration, interval time.Duration) error {
	start := time.Now()
	for {
		if condition() {
			return nil
		}
		if time.Since(start) >= timeout {
			return fmt.Errorf("timeout waiting for condition (threshold: %v)", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

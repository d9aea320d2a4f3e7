package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout returns a context that times out after d and is canceled
// when the test ends.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)

	return ctx
}

// CanceledContext returns a context that is already canceled.
func CanceledContext(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

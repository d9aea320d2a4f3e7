package ai

import "sync/atomic"

// decisionLogging gates the per-decision debug logs of opponent policies.
var decisionLogging atomic.Bool

// EnableDebugLogging turns per-decision logging on or off.
// cmd mains call it once after reading the configured log level.
func EnableDebugLogging(enabled bool) {
	decisionLogging.Store(enabled)
}

// IsDebugEnabled reports whether per-decision logging is on.
func IsDebugEnabled() bool {
	return decisionLogging.Load()
}

package shift

import "time"

// maxResolveAttempts bounds the per-identity lookup. The station-wide check
// is advisory and never retried.
const maxResolveAttempts = 3

const backoffBase = 500 * time.Millisecond

// Backoff returns the delay before retry number attempt (1-based): base,
// 2x base, 3x base, ... Kept as a plain function so the policy is testable on
// its own.
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return time.Duration(attempt) * backoffBase
}

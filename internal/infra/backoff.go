package infra

import "time"

const (
	backoffBase = 1 * time.Second
	backoffMax  = 60 * time.Second
)

// CalculateBackoff returns the exponential backoff delay for a retry
// attempt, capped at backoffMax. Attempt 0 yields the base delay.
func CalculateBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := backoffBase << uint(attempt)
	if delay > backoffMax || delay <= 0 {
		return backoffMax
	}
	return delay
}

// Package resilience provides fetcher decorators for fault tolerance:
// retries with backoff, per-fetch timeouts, and circuit breaking.
//
// Each decorator implements query.Fetcher and wraps another fetcher, so
// they compose in any order:
//
//	fetcher := resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3},
//		resilience.NewTimeout(resilience.TimeoutConfig{Duration: 5 * time.Second},
//			transport))
//
//	client, err := query.NewClient(&query.Config{Fetcher: fetcher}, ops...)
//
// Failures produced by a decorator (ErrTimeout, ErrCircuitOpen, or the
// final retry error) are captured into the cache entry like any other
// fetch failure.
package resilience

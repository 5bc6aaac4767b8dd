package resilience

import (
	"context"
	"time"

	"github.com/jonwraymond/queryops/query"
)

// TimeoutConfig configures timeout behavior.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for a fetch.
	// Default: 30s
	Duration time.Duration
}

// Timeout decorates a fetcher with a per-fetch deadline.
//
// The inner fetch runs on its own goroutine; when the deadline expires
// the decorator returns ErrTimeout and cancels the inner context. A
// fetcher that ignores cancellation keeps running in the background,
// but its result is discarded.
type Timeout struct {
	config TimeoutConfig
	next   query.Fetcher
}

// NewTimeout creates a timeout decorator around next.
func NewTimeout(config TimeoutConfig, next query.Fetcher) *Timeout {
	if config.Duration <= 0 {
		config.Duration = 30 * time.Second
	}
	return &Timeout{config: config, next: next}
}

type fetchResult struct {
	data any
	err  error
}

// Fetch implements query.Fetcher with a deadline.
func (t *Timeout) Fetch(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, t.config.Duration)
	defer cancel()

	done := make(chan fetchResult, 1)

	go func() {
		data, err := t.next.Fetch(ctx, op, variables)
		done <- fetchResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// Ensure Timeout implements query.Fetcher
var _ query.Fetcher = (*Timeout)(nil)

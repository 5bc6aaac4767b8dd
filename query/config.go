package query

import (
	"context"

	"github.com/jonwraymond/queryops/cache"
	"github.com/jonwraymond/queryops/observe"
)

// Config is the shared configuration scope for a set of controllers.
//
// Contract:
//   - Ownership: the Cache is owned by the Config that defaulted it (or by
//     the caller who supplied one) and is shared by reference among every
//     controller built from this Config.
//   - Concurrency: safe for concurrent use once handed to a controller;
//     fields must not be reassigned afterwards.
type Config struct {
	// Fetcher performs the actual data retrieval. When nil, a stub that
	// always fails with ErrNoFetcher is installed.
	Fetcher Fetcher

	// Cache stores request state. When nil, a fresh in-memory cache is
	// created for this scope.
	Cache cache.Cache

	// Keyer derives request keys. When nil, the default canonical-JSON
	// keyer is used.
	Keyer cache.Keyer

	// Middleware, when set, wraps every fetch with tracing, metrics, and
	// logging.
	Middleware *observe.Middleware
}

// init fills nil fields with scope-local defaults. Idempotent; called by
// every controller constructor so a bare Config still behaves.
func (c *Config) init() {
	if c.Fetcher == nil {
		c.Fetcher = missingFetcher{}
	}
	if c.Cache == nil {
		c.Cache = cache.NewMemory()
	}
	if c.Keyer == nil {
		c.Keyer = cache.NewDefaultKeyer()
	}
}

// fetch invokes the fetcher, routed through the observability middleware
// when one is configured.
func (c *Config) fetch(ctx context.Context, op Operation, variables Variables) (any, error) {
	if c.Middleware == nil {
		return c.Fetcher.Fetch(ctx, op, variables)
	}

	fn := c.Middleware.Wrap(func(ctx context.Context, _ observe.OpMeta, v map[string]any) (any, error) {
		return c.Fetcher.Fetch(ctx, op, v)
	})
	return fn(ctx, op.Meta(), variables)
}

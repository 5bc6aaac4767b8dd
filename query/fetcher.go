package query

import (
	"context"

	"github.com/jonwraymond/queryops/observe"
)

// Variables are the inputs of one operation execution. Nested mappings,
// sequences, and scalars only; values must survive canonical JSON
// serialization for key derivation.
type Variables = map[string]any

// Operation identifies one fetchable operation.
type Operation struct {
	// Name is the operation identifier. Required; it seeds request keys
	// and telemetry.
	Name string

	// Document is the opaque descriptor handed to the fetcher (a GraphQL
	// document, an RPC method, a URL template). The orchestrator never
	// inspects it.
	Document any

	// Kind is "query" or "mutation". Informational.
	Kind string
}

// Meta returns the telemetry metadata for the operation.
func (op Operation) Meta() observe.OpMeta {
	return observe.OpMeta{Name: op.Name, Kind: op.Kind}
}

// Fetcher is the externally supplied data-retrieval capability.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Fetch must honor cancellation/deadlines.
// - Errors: any returned error is captured verbatim into the settled
//   entry; the orchestrator never retries or rewrites it.
type Fetcher interface {
	// Fetch retrieves the result of op with the given variables.
	Fetch(ctx context.Context, op Operation, variables Variables) (any, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, op Operation, variables Variables) (any, error)

// Fetch implements Fetcher.
func (f FetchFunc) Fetch(ctx context.Context, op Operation, variables Variables) (any, error) {
	return f(ctx, op, variables)
}

// missingFetcher is installed when a Config carries no real fetcher. It fails
// immediately and unconditionally so misconfiguration surfaces as an explicit
// captured failure instead of a silent no-op.
type missingFetcher struct{}

func (missingFetcher) Fetch(context.Context, Operation, Variables) (any, error) {
	return nil, ErrNoFetcher
}

// Ensure adapters implement Fetcher
var (
	_ Fetcher = (FetchFunc)(nil)
	_ Fetcher = missingFetcher{}
)

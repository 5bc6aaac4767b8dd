package query

import "errors"

// Sentinel errors for orchestration.
var (
	// ErrNoFetcher is returned by the stub fetcher installed when a
	// Config was built without a real fetcher capability.
	ErrNoFetcher = errors.New("query: no fetcher configured")

	// ErrUnknownOperation indicates a controller was requested for a name
	// not present in the client's operations table.
	ErrUnknownOperation = errors.New("query: unknown operation")

	// ErrMissingOperationName indicates an Operation with an empty Name.
	ErrMissingOperationName = errors.New("query: operation name is required")

	// ErrDuplicateOperation indicates two table operations share a name.
	ErrDuplicateOperation = errors.New("query: duplicate operation")
)

package resilience

import "errors"

var (
	// ErrCircuitOpen indicates the circuit breaker is open and rejecting requests.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrTimeout indicates a fetch exceeded its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")
)

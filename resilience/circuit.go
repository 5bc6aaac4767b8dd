package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/queryops/query"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed allows requests through (normal operation).
	StateClosed State = iota
	// StateOpen blocks all requests (failure mode).
	StateOpen
	// StateHalfOpen allows limited requests to test recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the failure threshold before opening.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long to wait before trying half-open.
	// Default: 30s
	ResetTimeout time.Duration

	// HalfOpenMaxRequests is max requests allowed in half-open state.
	// Default: 1
	HalfOpenMaxRequests int

	// OnStateChange is called when the state changes.
	OnStateChange func(from, to State)

	// IsFailure determines if an error counts as a failure.
	// Default: all non-nil errors count.
	IsFailure func(err error) bool
}

// CircuitBreaker decorates a fetcher with circuit breaking.
//
// While the circuit is open every Fetch fails fast with ErrCircuitOpen,
// which the orchestrator captures like any other fetch failure. After
// ResetTimeout the breaker admits probe fetches in half-open state and
// closes again on success.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu               sync.Mutex
	state            State
	failures         int
	lastFailureTime  time.Time
	halfOpenRequests int

	next query.Fetcher
}

// NewCircuitBreaker creates a circuit breaker around next.
func NewCircuitBreaker(config CircuitBreakerConfig, next query.Fetcher) *CircuitBreaker {
	// Apply defaults
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxRequests <= 0 {
		config.HalfOpenMaxRequests = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		next:   next,
	}
}

// Fetch implements query.Fetcher with circuit breaking.
func (cb *CircuitBreaker) Fetch(ctx context.Context, op query.Operation, variables query.Variables) (any, error) {
	if err := cb.beforeRequest(); err != nil {
		return nil, err
	}

	result, err := cb.next.Fetch(ctx, op, variables)
	cb.afterRequest(err)

	return result, err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case StateOpen:
		return ErrCircuitOpen

	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.config.HalfOpenMaxRequests {
			return ErrCircuitOpen
		}
		cb.halfOpenRequests++
	}

	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	isFailure := cb.config.IsFailure(err)

	switch cb.currentStateLocked() {
	case StateClosed:
		if isFailure {
			cb.failures++
			cb.lastFailureTime = time.Now()
			if cb.failures >= cb.config.MaxFailures {
				cb.transitionTo(StateOpen)
			}
		} else {
			cb.failures = 0
		}

	case StateHalfOpen:
		cb.halfOpenRequests--
		if isFailure {
			cb.lastFailureTime = time.Now()
			cb.transitionTo(StateOpen)
		} else if cb.halfOpenRequests == 0 {
			cb.transitionTo(StateClosed)
		}
	}
}

// currentStateLocked returns the effective state, handling open->half-open
// transition. Caller must hold mu.
func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == StateOpen && time.Since(cb.lastFailureTime) >= cb.config.ResetTimeout {
		cb.transitionTo(StateHalfOpen)
	}
	return cb.state
}

// transitionTo changes state. Caller must hold mu.
func (cb *CircuitBreaker) transitionTo(newState State) {
	if cb.state == newState {
		return
	}

	oldState := cb.state
	cb.state = newState

	switch newState {
	case StateClosed:
		cb.failures = 0
		cb.halfOpenRequests = 0
	case StateHalfOpen:
		cb.halfOpenRequests = 0
	}

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, newState)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// Metrics returns current circuit breaker metrics.
func (cb *CircuitBreaker) Metrics() CircuitBreakerMetrics {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return CircuitBreakerMetrics{
		State:    cb.currentStateLocked(),
		Failures: cb.failures,
	}
}

// CircuitBreakerMetrics holds circuit breaker statistics.
type CircuitBreakerMetrics struct {
	State    State
	Failures int
}

// Ensure CircuitBreaker implements query.Fetcher
var _ query.Fetcher = (*CircuitBreaker)(nil)

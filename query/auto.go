package query

import (
	"context"
	"sync"

	"github.com/jonwraymond/queryops/deep"
)

// Auto wraps an Orchestrator to fetch automatically: on the first eligible
// observation, and again whenever the effective variables change.
//
// The Called and Loading flags are controller-local, not read from the
// cache: they are set synchronously the instant a trigger starts, ahead of
// any cache write, and they take precedence over the entry's Loading in
// Status.
type Auto struct {
	orch *Orchestrator

	mu       sync.Mutex
	called   bool
	loading  bool
	eligible bool      // previous observation was not skipped
	seen     Variables // snapshot of the previous eligible observation's variables
	gen      uint64    // run fence: only the latest run may clear loading
}

// NewAuto creates an auto-fetching controller for op. Called and Loading
// start true unless the defaults carry Skip.
func NewAuto(cfg *Config, op Operation, defaults *Options) *Auto {
	if op.Kind == "" {
		op.Kind = "query"
	}

	a := &Auto{orch: NewOrchestrator(cfg, op, defaults)}
	skip := defaults != nil && defaults.Skip
	a.called = !skip
	a.loading = !skip
	return a
}

// Observe records the current options and starts a fetch when eligibility or
// the effective variables changed since the previous observation. Hosts call
// it once per render. A non-nil opts replaces the latest options wholesale.
//
// The fetch runs on its own goroutine; the returned Status already reflects
// the synchronous Called/Loading transition. Completion arrives through the
// cache and the OnCompleted hook.
func (a *Auto) Observe(ctx context.Context, opts *Options) Status {
	if opts != nil {
		a.orch.SetOptions(opts)
	}

	latest := a.orch.latestOptions()
	var vars Variables
	var skip bool
	if latest != nil {
		vars, skip = latest.Variables, latest.Skip
	}

	a.mu.Lock()
	if skip {
		// Skipped observations force both flags false and reset
		// eligibility, so unskipping counts as a change and fetches
		// exactly once.
		a.called = false
		a.loading = false
		a.eligible = false
		a.mu.Unlock()
		return a.Status()
	}

	trigger := !a.eligible || !deep.Equal(vars, a.seen)
	a.eligible = true
	// Snapshot, never alias: hosts may mutate their variables map in place
	// and re-observe with the same Options, and that must still read as a
	// change against the previous observation.
	a.seen = deep.Copy(vars)
	var gen uint64
	if trigger {
		a.called = true
		a.loading = true
		a.gen++
		gen = a.gen
	}
	a.mu.Unlock()

	if trigger {
		go a.run(ctx, gen)
	}
	return a.Status()
}

// run executes one delegated trigger, chaining the user's OnCompleted so the
// loading flag settles right as the completion hook observes the result.
func (a *Auto) run(ctx context.Context, gen uint64) {
	defer a.settle(gen)

	var userCompleted func(ctx context.Context, result Result) error
	if latest := a.orch.latestOptions(); latest != nil {
		userCompleted = latest.OnCompleted
	}

	call := &Options{
		OnCompleted: func(ctx context.Context, result Result) error {
			a.settle(gen)
			if userCompleted != nil {
				return userCompleted(ctx, result)
			}
			return nil
		},
	}

	// Hook failures have no caller to propagate to here; the flags still
	// settle via the deferred reset.
	_, _ = a.orch.Trigger(ctx, call)
}

// settle clears the loading flag unless a later run superseded this one: a
// stale run finishing must not report a still-fetching controller as settled.
func (a *Auto) settle(gen uint64) {
	a.mu.Lock()
	if gen == a.gen {
		a.loading = false
	}
	a.mu.Unlock()
}

// Status returns the orchestrator's current state with the controller-local
// Called/Loading flags overriding the delegated entry's Loading.
func (a *Auto) Status() Status {
	s := a.orch.Status()
	a.mu.Lock()
	s.Loading = a.loading
	s.Called = a.called
	a.mu.Unlock()
	return s
}

// Orchestrator exposes the wrapped orchestrator for manual refetching.
func (a *Auto) Orchestrator() *Orchestrator {
	return a.orch
}

package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/queryops/cache"
	"github.com/jonwraymond/queryops/deep"
)

// Result is the settled outcome of one trigger: at most one of Data/Err is
// set. Fetch failures land in Err; they are never returned as Trigger's
// error.
type Result struct {
	Data any
	Err  error
}

// Status is the state a call site renders: the live cache entry for the
// orchestrator's current key, with the last-known result substituted when
// that entry is absent. Called and the controller-local Loading are only
// meaningful on Auto controllers.
type Status struct {
	Loading bool
	Called  bool
	Data    any
	Err     error
}

// Orchestrator owns the fetch lifecycle of a single operation.
//
// Contract:
//   - Concurrency: safe for concurrent use; overlapping Trigger calls are
//     permitted and fenced by a per-instance sequence number.
//   - Errors: fetch failures are captured into the Result; only OnFetch,
//     OnCompleted, and key-derivation failures are returned as errors.
type Orchestrator struct {
	op  Operation
	cfg *Config

	mu       sync.Mutex
	defaults *Options  // latest default options, read fresh on every trigger
	tracked  Variables // effective variables of the most recent trigger
	last     *Result   // last-known result, fallback when the entry is absent
	seq      uint64    // trigger fence: only the latest invocation publishes
}

// NewOrchestrator creates a lazily triggered orchestrator for op.
// Nothing fetches until Trigger is called.
func NewOrchestrator(cfg *Config, op Operation, defaults *Options) *Orchestrator {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.init()

	o := &Orchestrator{op: op, cfg: cfg, defaults: defaults}
	if defaults != nil {
		// Snapshot: later mutation of the caller's map must not skew the
		// key Status and Key derive before the first trigger.
		o.tracked = deep.Copy(defaults.Variables)
	}
	return o
}

// Operation returns the operation this orchestrator is bound to.
func (o *Orchestrator) Operation() Operation {
	return o.op
}

// SetOptions replaces the latest default options. Trigger reads this
// reference fresh on every call, so re-renders with new options take effect
// without re-creating the orchestrator.
func (o *Orchestrator) SetOptions(opts *Options) {
	o.mu.Lock()
	o.defaults = opts
	o.mu.Unlock()
}

func (o *Orchestrator) latestOptions() *Options {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.defaults
}

// Trigger runs one fetch lifecycle and blocks until it settles.
//
// The merged variables derive the request key; a loading entry preserving
// previously settled values is written before the fetch, and the settled
// entry after. Fetch failures are captured in the returned Result. OnFetch
// and OnCompleted failures abort the remaining steps and are returned as
// the error.
func (o *Orchestrator) Trigger(ctx context.Context, call *Options) (Result, error) {
	o.mu.Lock()
	defaults := o.defaults
	o.mu.Unlock()
	merged := mergeOptions(defaults, call)

	// Pre-fetch hook: part of the caller's control flow, not sandboxed.
	if merged.OnFetch != nil {
		if err := merged.OnFetch(ctx); err != nil {
			return Result{}, err
		}
	}

	key, err := o.cfg.Keyer.Key(o.op.Name, merged.Variables)
	if err != nil {
		return Result{}, fmt.Errorf("query: derive request key: %w", err)
	}

	// Loading write: previously settled data/error stay visible so hosts
	// can render stale results while revalidating.
	prev, _ := o.cfg.Cache.Get(key)
	o.cfg.Cache.Set(key, cache.Entry{Loading: true, Data: prev.Data, Err: prev.Err})

	o.mu.Lock()
	if !deep.Equal(merged.Variables, o.tracked) {
		o.tracked = merged.Variables
	}
	o.seq++
	seq := o.seq
	o.mu.Unlock()

	data, fetchErr := o.cfg.fetch(ctx, o.op, merged.Variables)

	res := Result{Data: data}
	if fetchErr != nil {
		// Captured, not re-thrown; data is forced nil on failure.
		res = Result{Err: fetchErr}
	}

	// Post-fetch hook receives exactly the Result returned below.
	if merged.OnCompleted != nil {
		if cbErr := merged.OnCompleted(ctx, res); cbErr != nil {
			return Result{}, cbErr
		}
	}

	// Fence: an invocation that is no longer the latest still returns its
	// result to its caller, but must not clobber state a faster later
	// trigger already published.
	o.mu.Lock()
	latest := seq == o.seq
	if latest {
		snapshot := res
		o.last = &snapshot
	}
	o.mu.Unlock()

	if latest {
		o.cfg.Cache.Set(key, cache.Entry{Data: res.Data, Err: res.Err})
	}

	return res, nil
}

// Status returns the current renderable state: the live cache entry for the
// current key, or the last-known result when no entry exists for it yet.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	tracked := o.tracked
	last := o.last
	o.mu.Unlock()

	if key, err := o.cfg.Keyer.Key(o.op.Name, tracked); err == nil {
		if entry, ok := o.cfg.Cache.Get(key); ok {
			return Status{Loading: entry.Loading, Data: entry.Data, Err: entry.Err}
		}
	}

	if last != nil {
		return Status{Data: last.Data, Err: last.Err}
	}
	return Status{}
}

// Key returns the request key for the orchestrator's current variables.
func (o *Orchestrator) Key() (string, error) {
	o.mu.Lock()
	tracked := o.tracked
	o.mu.Unlock()
	return o.cfg.Keyer.Key(o.op.Name, tracked)
}

// Watch registers fn to run with the orchestrator's current status after
// every cache write. The host's UI-binding layer adapts this to its own
// update mechanism.
func (o *Orchestrator) Watch(fn func(Status)) cache.Subscription {
	return o.cfg.Cache.SubscribeAll(func(string, cache.Entry) {
		fn(o.Status())
	})
}

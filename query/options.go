package query

import (
	"context"

	"github.com/jonwraymond/queryops/deep"
)

// Options configure one controller or one trigger call.
type Options struct {
	// Variables are the operation inputs. On merge, nested mappings
	// combine key-by-key; scalars and sequences from the call side
	// replace the defaults wholly.
	Variables Variables

	// OnFetch runs and is awaited before the request key is derived or
	// any cache state is written. A failure propagates to the Trigger
	// caller; it is not captured into the entry.
	OnFetch func(ctx context.Context) error

	// OnCompleted runs and is awaited after the fetch settles, receiving
	// exactly the Result Trigger will return. A failure propagates to the
	// Trigger caller.
	OnCompleted func(ctx context.Context, result Result) error

	// Skip suppresses automatic triggering. Auto controllers only.
	Skip bool
}

// mergeOptions combines the latest default options with call-time options.
// Callbacks from the call side replace the defaults when set; variables are
// deep-merged. Either side may be nil.
func mergeOptions(defaults, call *Options) Options {
	var merged Options
	if defaults != nil {
		merged = *defaults
	}
	if call == nil {
		return merged
	}

	merged.Variables = deep.Merge(merged.Variables, call.Variables)
	if call.OnFetch != nil {
		merged.OnFetch = call.OnFetch
	}
	if call.OnCompleted != nil {
		merged.OnCompleted = call.OnCompleted
	}
	if call.Skip {
		merged.Skip = true
	}
	return merged
}

package query

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/queryops/cache"
)

// dedupFetcher shares concurrent identical fetches: callers whose operation
// and variables derive the same request key block on one in-flight call and
// receive the same result.
type dedupFetcher struct {
	next  Fetcher
	keyer cache.Keyer
	group singleflight.Group
}

// NewDedupFetcher wraps next so identical in-flight fetches are coalesced.
// A nil keyer uses the default canonical-JSON keyer. Results are not
// memoized; only overlapping calls share.
func NewDedupFetcher(next Fetcher, keyer cache.Keyer) Fetcher {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &dedupFetcher{next: next, keyer: keyer}
}

// Fetch implements Fetcher.
func (d *dedupFetcher) Fetch(ctx context.Context, op Operation, variables Variables) (any, error) {
	key, err := d.keyer.Key(op.Name, variables)
	if err != nil {
		// Undedupable variables fall through to a direct call.
		return d.next.Fetch(ctx, op, variables)
	}

	v, err, _ := d.group.Do(key, func() (any, error) {
		return d.next.Fetch(ctx, op, variables)
	})
	return v, err
}

// Ensure dedupFetcher implements Fetcher
var _ Fetcher = (*dedupFetcher)(nil)

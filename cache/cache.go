package cache

import (
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a request key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache   = errors.New("cache: cache is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Entry is the current known state of one request.
//
// While Loading is true, Data and Err may still hold the previous settled
// values so callers can keep displaying stale results during a refresh.
// A settled entry (Loading == false) carries at most one of Data/Err.
type Entry struct {
	Loading bool
	Data    any
	Err     error
}

// Settled reports whether the entry represents a finished request.
func (e Entry) Settled() bool {
	return !e.Loading
}

// NotifyFunc receives the new entry after a Set for a subscribed key.
type NotifyFunc func(key string, entry Entry)

// Subscription is the handle returned by Subscribe and SubscribeAll.
//
// Contract:
//   - Concurrency: Unsubscribe is safe to call from any goroutine, including
//     from inside a NotifyFunc that is currently being delivered.
//   - Idempotency: calling Unsubscribe more than once is a no-op.
type Subscription interface {
	// Unsubscribe removes the callback. The callback is not invoked for
	// any Set that starts after Unsubscribe returns.
	Unsubscribe()
}

// Cache is the keyed store of request entries.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ordering: notifications are delivered in Set call order, one
//   notification per Set, never coalesced or batched.
// - Errors: Get never errors; it returns (Entry{}, false) on miss.
type Cache interface {
	// Get retrieves the entry for key. Returns (Entry{}, false) on miss.
	Get(key string) (Entry, bool)

	// Set replaces the entry for key wholesale and notifies subscribers
	// for that key and all-keys subscribers, in registration order.
	// Callers merge with the previous entry before calling.
	Set(key string, entry Entry)

	// Subscribe registers fn for Set calls on key.
	Subscribe(key string, fn NotifyFunc) Subscription

	// SubscribeAll registers fn for Set calls on every key.
	SubscribeAll(fn NotifyFunc) Subscription

	// Len returns the number of stored entries.
	Len() int
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}

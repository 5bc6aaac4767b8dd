package cache

import (
	"sync"
	"sync/atomic"
)

// Memory is an in-memory cache implementation.
//
// Entries are created lazily on first Set and never evicted; the store lives
// for the lifetime of the configuration scope that owns it, so unbounded
// growth is bounded by the number of distinct request keys the host issues.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]Entry
	keySubs  map[string][]*subscription
	allSubs  []*subscription
	pending  []notification
	draining bool
}

// subscription is the concrete handle behind Subscribe/SubscribeAll.
type subscription struct {
	store  *Memory
	key    string
	all    bool
	fn     NotifyFunc
	active atomic.Bool
}

// notification is one queued delivery: the targets are snapshotted at Set
// time so delivery order matches Set order even when subscribers change
// mid-delivery.
type notification struct {
	key     string
	entry   Entry
	targets []*subscription
}

// NewMemory creates a new in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		keySubs: make(map[string][]*subscription),
	}
}

// Get retrieves the entry for key. Returns (Entry{}, false) on miss.
func (m *Memory) Get(key string) (Entry, bool) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	m.mu.Unlock()
	return entry, ok
}

// Set replaces the entry for key and notifies subscribers.
//
// Notifications are delivered synchronously on the calling goroutine, in Set
// call order. A Set issued from inside a callback is queued and delivered by
// the goroutine already draining, so reentrant writes cannot deadlock or
// reorder deliveries.
func (m *Memory) Set(key string, entry Entry) {
	m.mu.Lock()
	m.entries[key] = entry

	targets := make([]*subscription, 0, len(m.keySubs[key])+len(m.allSubs))
	targets = append(targets, m.keySubs[key]...)
	targets = append(targets, m.allSubs...)
	m.pending = append(m.pending, notification{key: key, entry: entry, targets: targets})

	if m.draining {
		// Another frame on this or a different goroutine is delivering;
		// it will pick up the queued notification in order.
		m.mu.Unlock()
		return
	}
	m.draining = true

	for len(m.pending) > 0 {
		n := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		for _, sub := range n.targets {
			// Skip targets unsubscribed after the snapshot was taken.
			if sub.active.Load() {
				sub.fn(n.key, n.entry)
			}
		}

		m.mu.Lock()
	}

	m.draining = false
	m.mu.Unlock()
}

// Subscribe registers fn for Set calls on key.
func (m *Memory) Subscribe(key string, fn NotifyFunc) Subscription {
	sub := &subscription{store: m, key: key, fn: fn}
	sub.active.Store(true)

	m.mu.Lock()
	m.keySubs[key] = append(m.keySubs[key], sub)
	m.mu.Unlock()

	return sub
}

// SubscribeAll registers fn for Set calls on every key.
func (m *Memory) SubscribeAll(fn NotifyFunc) Subscription {
	sub := &subscription{store: m, all: true, fn: fn}
	sub.active.Store(true)

	m.mu.Lock()
	m.allSubs = append(m.allSubs, sub)
	m.mu.Unlock()

	return sub
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	return n
}

// Unsubscribe removes the callback. Idempotent.
func (s *subscription) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.store.remove(s)
}

func (m *Memory) remove(s *subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.all {
		m.allSubs = dropSub(m.allSubs, s)
		return
	}
	subs := dropSub(m.keySubs[s.key], s)
	if len(subs) == 0 {
		delete(m.keySubs, s.key)
	} else {
		m.keySubs[s.key] = subs
	}
}

// dropSub removes s from subs preserving registration order.
func dropSub(subs []*subscription, s *subscription) []*subscription {
	for i, sub := range subs {
		if sub == s {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

// Ensure Memory implements Cache
var _ Cache = (*Memory)(nil)

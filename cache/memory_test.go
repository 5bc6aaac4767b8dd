package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// TestMemory_GetMiss verifies a miss returns the zero entry.
func TestMemory_GetMiss(t *testing.T) {
	m := NewMemory()

	entry, ok := m.Get("missing")
	if ok {
		t.Fatal("expected miss for unknown key")
	}
	if entry != (Entry{}) {
		t.Errorf("miss entry = %+v, want zero entry", entry)
	}
}

// TestMemory_SetGet verifies basic round-trip and wholesale replacement.
func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()

	m.Set("k", Entry{Loading: true, Data: "stale"})
	entry, ok := m.Get("k")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if !entry.Loading || entry.Data != "stale" {
		t.Errorf("entry = %+v, want loading with stale data", entry)
	}

	// Set replaces wholesale: the previous Data is gone unless the caller
	// carried it over.
	m.Set("k", Entry{Data: "fresh"})
	entry, _ = m.Get("k")
	if entry.Loading || entry.Data != "fresh" {
		t.Errorf("entry = %+v, want settled fresh data", entry)
	}

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

// TestMemory_NotifyOrder verifies back-to-back Sets produce one notification
// each, observed in call order and never coalesced.
func TestMemory_NotifyOrder(t *testing.T) {
	m := NewMemory()

	var seen []Entry
	sub := m.Subscribe("k", func(key string, entry Entry) {
		seen = append(seen, entry)
	})
	defer sub.Unsubscribe()

	m.Set("k", Entry{Loading: true})
	m.Set("k", Entry{Data: "done"})

	if len(seen) != 2 {
		t.Fatalf("got %d notifications, want 2", len(seen))
	}
	if !seen[0].Loading {
		t.Errorf("first notification = %+v, want loading", seen[0])
	}
	if seen[1].Loading || seen[1].Data != "done" {
		t.Errorf("second notification = %+v, want settled", seen[1])
	}
}

// TestMemory_RegistrationOrder verifies key subscribers are notified in
// registration order, followed by all-keys subscribers.
func TestMemory_RegistrationOrder(t *testing.T) {
	m := NewMemory()

	var order []string
	m.Subscribe("k", func(string, Entry) { order = append(order, "first") })
	m.Subscribe("k", func(string, Entry) { order = append(order, "second") })
	m.SubscribeAll(func(string, Entry) { order = append(order, "all") })

	m.Set("k", Entry{Data: 1})

	want := []string{"first", "second", "all"}
	if len(order) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

// TestMemory_SubscribeAll verifies all-keys subscribers see every key.
func TestMemory_SubscribeAll(t *testing.T) {
	m := NewMemory()

	var keys []string
	sub := m.SubscribeAll(func(key string, _ Entry) { keys = append(keys, key) })
	defer sub.Unsubscribe()

	m.Set("a", Entry{})
	m.Set("b", Entry{})

	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v, want [a b]", keys)
	}
}

// TestMemory_Unsubscribe verifies unsubscribed callbacks stop receiving
// notifications and double Unsubscribe is a no-op.
func TestMemory_Unsubscribe(t *testing.T) {
	m := NewMemory()

	calls := 0
	sub := m.Subscribe("k", func(string, Entry) { calls++ })

	m.Set("k", Entry{})
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	m.Set("k", Entry{})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// TestMemory_UnsubscribeDuringNotify verifies a callback can unsubscribe a
// later subscriber while a delivery is in flight.
func TestMemory_UnsubscribeDuringNotify(t *testing.T) {
	m := NewMemory()

	var laterCalls int
	var later Subscription
	m.Subscribe("k", func(string, Entry) { later.Unsubscribe() })
	later = m.Subscribe("k", func(string, Entry) { laterCalls++ })

	m.Set("k", Entry{})
	m.Set("k", Entry{})

	if laterCalls != 0 {
		t.Errorf("unsubscribed callback ran %d times, want 0", laterCalls)
	}
}

// TestMemory_ReentrantSet verifies a Set issued from inside a callback is
// queued and delivered after the current notification, without deadlocking.
func TestMemory_ReentrantSet(t *testing.T) {
	m := NewMemory()

	var order []string
	m.Subscribe("a", func(string, Entry) {
		order = append(order, "a")
		if len(order) == 1 {
			m.Set("b", Entry{Data: "chained"})
		}
	})
	m.Subscribe("b", func(string, Entry) { order = append(order, "b") })

	m.Set("a", Entry{})

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v, want [a b]", order)
	}

	entry, ok := m.Get("b")
	if !ok || entry.Data != "chained" {
		t.Errorf("entry for b = %+v, want chained data", entry)
	}
}

// TestMemory_SubscriberReadsBack verifies callbacks may read the store.
func TestMemory_SubscriberReadsBack(t *testing.T) {
	m := NewMemory()

	var got Entry
	m.Subscribe("k", func(key string, _ Entry) {
		got, _ = m.Get(key)
	})

	m.Set("k", Entry{Err: errors.New("boom")})

	if got.Err == nil || got.Err.Error() != "boom" {
		t.Errorf("callback read %+v, want the written error", got)
	}
}

// TestMemory_ConcurrentAccess exercises concurrent readers and writers.
func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			for j := 0; j < 100; j++ {
				m.Set(key, Entry{Data: j})
				m.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() != 4 {
		t.Errorf("Len() = %d, want 4", m.Len())
	}
}

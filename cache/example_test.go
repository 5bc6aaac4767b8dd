package cache_test

import (
	"fmt"

	"github.com/jonwraymond/queryops/cache"
)

func ExampleNewMemory() {
	c := cache.NewMemory()

	c.Set("query:getUser:abc", cache.Entry{Loading: true})
	c.Set("query:getUser:abc", cache.Entry{Data: "Ana"})

	entry, ok := c.Get("query:getUser:abc")
	fmt.Println("found:", ok)
	fmt.Println("data:", entry.Data)
	// Output:
	// found: true
	// data: Ana
}

func ExampleMemory_Subscribe() {
	c := cache.NewMemory()

	sub := c.Subscribe("k", func(key string, entry cache.Entry) {
		fmt.Printf("loading=%v data=%v\n", entry.Loading, entry.Data)
	})
	defer sub.Unsubscribe()

	c.Set("k", cache.Entry{Loading: true})
	c.Set("k", cache.Entry{Data: "done"})
	// Output:
	// loading=true data=<nil>
	// loading=false data=done
}

func ExampleDefaultKeyer() {
	k := cache.NewDefaultKeyer()

	// Deeply equal variables yield the same key, even for distinct maps.
	k1, _ := k.Key("getUser", map[string]any{"id": 1, "lang": "en"})
	k2, _ := k.Key("getUser", map[string]any{"lang": "en", "id": 1})
	fmt.Println("equal:", k1 == k2)
	// Output:
	// equal: true
}

// Package query provides request-caching and lifecycle orchestration between
// a declarative host and an externally supplied fetcher.
//
// Call sites declare "I need operation X with variables V"; the package
// dedups identical requests, tracks loading/error/data state in a shared
// cache, and notifies subscribers when results change.
//
// Build a Client from a Config (the configuration scope supplying the shared
// cache and the fetcher capability) and an operations table:
//
//	client, err := query.NewClient(&query.Config{Fetcher: fetcher}, []query.Operation{
//	    {Name: "getUser", Kind: "query"},
//	    {Name: "saveUser", Kind: "mutation"},
//	})
//
// Three controller shapes cover the call-site idioms:
//
//   - Lazy: an Orchestrator triggered explicitly via Trigger.
//   - Mutation: the same orchestrator under a mutation-shaped name; nothing
//     ever triggers it automatically.
//   - Auto: triggers on first observation and whenever the effective
//     variables change, with controller-local Called/Loading flags.
//
// All controllers from one Client share the scope's cache, so two call sites
// asking for the same operation and deeply equal variables observe the same
// entry. Entries transition loading → settled; a settled entry carries
// either data or the captured fetch failure, never both.
package query

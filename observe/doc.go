// Package observe provides observability primitives for operation fetches.
//
// It is a pure instrumentation library: no fetching, no transport, no I/O
// beyond exporter setup. Consumers wire a Middleware into query.Config so the
// orchestrator traces, measures, and logs every fetch it performs.
package observe

// Package deep provides structural equality and merge over canonical
// mapping/sequence/scalar values.
//
// The query orchestrator uses Equal to decide whether effective variables
// changed between triggers, and Merge to combine default options with
// call-time overrides.
package deep

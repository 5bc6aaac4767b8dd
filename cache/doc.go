// Package cache provides the keyed request-state store for queryops.
//
// It maps deterministic request keys to loading/settled entries, notifies
// subscribers of every write in call order, and derives keys from an
// operation and its variables via canonical serialization.
package cache

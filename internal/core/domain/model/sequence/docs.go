// Package sequence models human-facing document numbers.
//
// A number belongs to a document type (its prefix) and is issued from a
// counter keyed by that prefix, optionally scoped to a calendar year:
//
//	PED-000042        prefix scheme
//	PED-2026-000042   year-scoped scheme
//
// The package only formats, parses and bounds numbers. Advancing a counter is
// the job of a ports.SequenceAllocator, which must do it atomically.
package sequence

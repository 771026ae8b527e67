// Package track holds the in-memory time-tracking domain: records (single
// work intervals) and projects (named, ordered collections of records).
//
// The types here know nothing about persistence. They enforce the interval
// invariants:
//
//   - a record's end never precedes its start, and never equals it
//   - at most the last record of a project is open
//   - a closed record can only be corrected to shrink, never to grow
//
// Durable storage and replay live in internal/store and internal/db.
package track

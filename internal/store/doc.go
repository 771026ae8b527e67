// Package store provides the durable storage layer: a closed set of
// actions with a fixed binary wire encoding, and an append-only,
// newline-delimited log file guarded by a lock file.
//
// The log is the single source of truth. Every mutation is appended and
// flushed before it may touch in-memory state, and the whole file is
// replayed from offset zero on every open. There is no compaction and no
// partial-log recovery: an entry that fails to decode makes the log
// unusable.
//
// # Wire format
//
// One entry per line, terminated by '\n':
//
//	tag 127  ProjectAdd   name bytes
//	tag 126  ProjectDel   name bytes
//	tag 125  RecordStart  8-byte LE epoch seconds, 4-byte LE offset seconds, name bytes
//	tag 124  RecordStop   8-byte LE epoch seconds, 4-byte LE offset seconds
//
// Offsets are seconds east of UTC. Names are raw UTF-8 and must not
// contain '\n'; the format does not validate this.
//
// # On-disk layout
//
// A data directory holds ".lock" (zero-byte exclusive marker, created at
// open and removed at close) and "entries.wal" (the log). The lock is
// advisory: a second process fails fast at open rather than blocking.
package store

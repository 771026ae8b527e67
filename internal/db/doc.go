// Package db orchestrates the action log and the in-memory project map.
//
// Database is the only type callers interact with. Every mutation follows
// the write-ahead discipline: the action is appended to the log and
// flushed, and only the durability receipt from that append is allowed to
// touch the map. On open, the entire log is replayed from the beginning
// through the same apply path that live operations use, so a crash
// between append and apply loses nothing but the in-memory cache.
//
// Errors from live operations (project exists, nothing tracked, ...) are
// ordinary conflicts for the caller to report. Errors during replay mean
// the log itself is untrustworthy and abort the open; the process must
// not continue with a partial view.
package db

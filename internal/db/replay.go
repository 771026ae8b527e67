package db

import (
	"errors"
	"fmt"

	"github.com/worklabs/worklog/internal/store"
)

// ErrCorruptLog indicates the on-disk log could not be replayed end to
// end: a malformed entry, a stop with no running record, or a correction
// the record layer rejects. The log was presumably written by a correct
// prior run, so any of these means the durable state is untrustworthy
// and the database must not open.
var ErrCorruptLog = errors.New("db: corrupt action log")

// load rebuilds the project map and active pointer by replaying the log
// from the beginning. Entries flow through the same apply step as live
// mutations; replay is deterministic because the log is totally ordered
// and apply consults nothing but the map it is building.
//
// A RecordStop entry names no project. It resolves against the active
// pointer as of that point in the replay, exactly as it did when the
// entry was written. A stop that finds no active project cannot be
// attributed and fails the whole replay.
func (d *Database) load() error {
	r, err := d.log.Replay()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptLog, err)
	}

	entry := 0
	for r.Next() {
		entry++
		key, act := r.Entry()
		// Stops are recognized by type, never by an empty key: a
		// project named "" also decodes to key "".
		if _, ok := act.(store.RecordStop); ok {
			if d.active == "" {
				return fmt.Errorf("%w: entry %d: stop with no active project", ErrCorruptLog, entry)
			}
			key = d.active
		}
		if _, err := d.apply(key, act); err != nil {
			return fmt.Errorf("%w: entry %d: %w", ErrCorruptLog, entry, err)
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("%w: entry %d: %w", ErrCorruptLog, entry+1, err)
	}
	return nil
}

package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// ErrNotADirectory indicates the storage location does not exist or
	// is not a directory.
	ErrNotADirectory = errors.New("store: not a directory")

	// ErrAlreadyLocked indicates another process holds the data
	// directory; the caller should fail fast rather than wait.
	ErrAlreadyLocked = errors.New("store: data directory already locked")
)

const (
	lockFile = ".lock"
	walFile  = "entries.wal"
)

// Log is the append-only action log for one data directory. It owns the
// directory's lock file for its lifetime; a second Open against the same
// directory fails until Close runs.
type Log struct {
	dir  string
	file *os.File
}

// Open locks the directory and opens (creating if absent) its log file
// in read+append mode. The directory must already exist.
func Open(dir string) (*Log, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", dir, ErrNotADirectory)
	}

	lockPath := filepath.Join(dir, lockFile)
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%q: %w", dir, ErrAlreadyLocked)
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}
	// The file's existence is the lock; the handle itself is not needed.
	if err := lock.Close(); err != nil {
		slog.Warn("closing lock file handle", "path", lockPath, "error", err)
	}

	file, err := os.OpenFile(filepath.Join(dir, walFile), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Log{dir: dir, file: file}, nil
}

// Appended is the durability receipt handed out by Append. Holding one
// proves the action it carries has been flushed to stable storage, so
// in-memory state may only be mutated from a receipt, never from the
// intent that produced it.
type Appended struct {
	action Action
}

// Action returns the durably stored action.
func (a Appended) Action() Action { return a.action }

// Append serializes the action, writes it to the log and forces a flush
// before returning. On error nothing must be applied to memory; the
// in-memory view stays rebuildable from whatever actually hit the disk.
func (l *Log) Append(a Action) (Appended, error) {
	if _, err := l.file.Write(Encode(a)); err != nil {
		return Appended{}, fmt.Errorf("append action: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return Appended{}, fmt.Errorf("flush log: %w", err)
	}
	return Appended{action: a}, nil
}

// Replay rewinds the log and returns a cursor over every entry from the
// beginning, in append order. The log stays usable for Append afterwards
// (writes always go to the end).
func (l *Log) Replay() (*Reader, error) {
	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind log: %w", err)
	}
	return &Reader{r: bufio.NewReader(l.file)}, nil
}

// Close releases the directory lock and closes the log file. A lock file
// that cannot be removed is logged and otherwise ignored; nothing
// downstream can act on it.
func (l *Log) Close() error {
	err := l.file.Close()
	lockPath := filepath.Join(l.dir, lockFile)
	if rmErr := os.Remove(lockPath); rmErr != nil {
		slog.Warn("failed to remove lock file", "path", lockPath, "error", rmErr)
	}
	return err
}

// Reader is a single-pass cursor over decoded log entries.
//
//	r, err := log.Replay()
//	...
//	for r.Next() {
//	    key, action := r.Entry()
//	    ...
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	r   *bufio.Reader
	key string
	act Action
	err error
}

// Next advances to the next entry. It returns false at the end of the
// log or on the first error; the two are told apart via Err.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	line, err := r.r.ReadBytes('\n')
	switch {
	case err == io.EOF && len(line) == 0:
		return false
	case err == io.EOF:
		// Bytes after the last delimiter: a torn write. There is no
		// partial-log recovery policy, so this is fatal.
		r.err = fmt.Errorf("%d bytes past final delimiter: %w", len(line), ErrTruncatedEntry)
		return false
	case err != nil:
		r.err = fmt.Errorf("read log: %w", err)
		return false
	}
	r.key, r.act, r.err = Decode(line[:len(line)-1])
	return r.err == nil
}

// Entry returns the current entry: the project key it pertains to and
// the decoded action. The key is "" for RecordStop and for empty-named
// entries alike; dispatch on the action type. Only valid after Next
// reported true.
func (r *Reader) Entry() (key string, a Action) {
	return r.key, r.act
}

// Err returns the error that terminated iteration, if any.
func (r *Reader) Err() error {
	return r.err
}

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_FailsOnMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("err = %v, want ErrNotADirectory", err)
	}
}

func TestOpen_FailsOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a-file")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("err = %v, want ErrNotADirectory", err)
	}
}

func TestOpen_SecondOpenFailsWhileLocked(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := Open(dir); !errors.Is(err, ErrAlreadyLocked) {
		t.Fatalf("second Open() err = %v, want ErrAlreadyLocked", err)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// The lock is gone; opening works again.
	l2, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() after Close() failed: %v", err)
	}
	defer l2.Close()
}

func TestClose_RemovesLockFile(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	lockPath := filepath.Join(dir, lockFile)
	if _, err := os.Stat(lockPath); err != nil {
		t.Fatalf("lock file missing while open: %v", err)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Fatalf("lock file still present after Close(): %v", err)
	}
}

func TestAppendAndReplay(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	actions := []Action{
		ProjectAdd{Name: "Foo"},
		RecordStart{Name: "Foo", Unix: 1648417054, Offset: -14400},
		RecordStop{Unix: 1648420654, Offset: -14400},
		ProjectDel{Name: "Foo"},
	}
	for _, a := range actions {
		rcpt, err := l.Append(a)
		if err != nil {
			t.Fatalf("Append(%#v) failed: %v", a, err)
		}
		if rcpt.Action() != a {
			t.Fatalf("receipt carries %#v, want %#v", rcpt.Action(), a)
		}
	}

	wantKeys := []string{"foo", "foo", "", "foo"}
	r, err := l.Replay()
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	var i int
	for r.Next() {
		key, a := r.Entry()
		if key != wantKeys[i] {
			t.Errorf("entry %d key = %q, want %q", i, key, wantKeys[i])
		}
		if a != actions[i] {
			t.Errorf("entry %d = %#v, want %#v", i, a, actions[i])
		}
		i++
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if i != len(actions) {
		t.Fatalf("replayed %d entries, want %d", i, len(actions))
	}
}

func TestReplay_IsRestartableAndSeesLaterAppends(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	if _, err := l.Append(ProjectAdd{Name: "one"}); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, l); n != 1 {
		t.Fatalf("first replay saw %d entries, want 1", n)
	}

	// Appends go to the end even right after a replay rewound the file.
	if _, err := l.Append(ProjectAdd{Name: "two"}); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, l); n != 2 {
		t.Fatalf("second replay saw %d entries, want 2", n)
	}
}

func TestReplay_EmptyLog(t *testing.T) {
	l, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	if n := countEntries(t, l); n != 0 {
		t.Fatalf("empty log replayed %d entries", n)
	}
}

func TestReplay_TornFinalLineIsFatal(t *testing.T) {
	dir := t.TempDir()
	// A valid entry followed by a write that never reached its delimiter.
	data := append(Encode(ProjectAdd{Name: "ok"}), 125, 1, 2, 3)
	if err := os.WriteFile(filepath.Join(dir, walFile), data, 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	r, err := l.Replay()
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if !r.Next() {
		t.Fatal("expected the intact first entry")
	}
	if r.Next() {
		t.Fatal("torn line must not decode")
	}
	if err := r.Err(); !errors.Is(err, ErrTruncatedEntry) {
		t.Fatalf("Err() = %v, want ErrTruncatedEntry", err)
	}
}

func TestReplay_UnknownTagIsFatal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, walFile), []byte{42, 'x', '\n'}, 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	r, err := l.Replay()
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if r.Next() {
		t.Fatal("unknown tag must not decode")
	}
	if err := r.Err(); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("Err() = %v, want ErrUnknownTag", err)
	}
}

func countEntries(t *testing.T, l *Log) int {
	t.Helper()
	r, err := l.Replay()
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	n := 0
	for r.Next() {
		n++
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return n
}

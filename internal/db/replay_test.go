package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklabs/worklog/internal/db"
	"github.com/worklabs/worklog/internal/store"
	"github.com/worklabs/worklog/internal/testutil"
	"github.com/worklabs/worklog/internal/track"
)

// writeLog seeds a data directory with raw log bytes, bypassing the
// database, to simulate logs a prior run left behind.
func writeLog(t *testing.T, dir string, entries ...[]byte) {
	t.Helper()
	var data []byte
	for _, e := range entries {
		data = append(data, e...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entries.wal"), data, 0o600))
}

func TestOpen_ReplaysWellFormedLog(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir,
		store.Encode(store.ProjectAdd{Name: "Foo"}),
		store.Encode(store.RecordStart{Name: "Foo", Unix: anchor.Unix(), Offset: 7200}),
		store.Encode(store.RecordStop{Unix: anchor.Unix() + 3600, Offset: 7200}),
	)

	d := openAt(t, dir, testutil.NewClock(anchor))
	projects := d.ListProjects()
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Records(), 1)
	assert.False(t, projects[0].InFlight())
	assert.Nil(t, d.CurrentProject())
}

func TestOpen_EmptyNamedProjectIsNotAStop(t *testing.T) {
	// A tag-127 entry with no name bytes decodes to key "", same as a
	// stop. Replay must tell the two apart by the action type, or an
	// empty-named project bricks the log.
	dir := t.TempDir()
	writeLog(t, dir,
		[]byte{127, '\n'},
		store.Encode(store.ProjectAdd{Name: "Foo"}),
		store.Encode(store.RecordStart{Name: "Foo", Unix: anchor.Unix(), Offset: 7200}),
		store.Encode(store.RecordStop{Unix: anchor.Unix() + 60, Offset: 7200}),
	)

	d := openAt(t, dir, testutil.NewClock(anchor))
	projects := d.ListProjects()
	require.Len(t, projects, 2)
	assert.Equal(t, "", projects[0].Name())
	assert.Equal(t, "Foo", projects[1].Name())
	assert.False(t, projects[1].InFlight())
}

func TestOpen_StopWithNoActiveProjectIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir,
		store.Encode(store.ProjectAdd{Name: "Foo"}),
		store.Encode(store.RecordStop{Unix: anchor.Unix(), Offset: 0}),
	)

	_, err := db.Open(dir)
	assert.ErrorIs(t, err, db.ErrCorruptLog)
}

func TestOpen_StartOnUnknownProjectIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir,
		store.Encode(store.RecordStart{Name: "ghost", Unix: anchor.Unix(), Offset: 0}),
	)

	_, err := db.Open(dir)
	assert.ErrorIs(t, err, db.ErrCorruptLog)
}

func TestOpen_UnknownTagIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, []byte{42, 'b', 'a', 'd', '\n'})

	_, err := db.Open(dir)
	assert.ErrorIs(t, err, db.ErrCorruptLog)
	// The underlying failure stays in the chain.
	assert.ErrorIs(t, err, store.ErrUnknownTag)
}

func TestOpen_TornFinalWriteIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir,
		store.Encode(store.ProjectAdd{Name: "Foo"}),
		[]byte{125, 1, 2, 3}, // start entry that never reached its delimiter
	)

	_, err := db.Open(dir)
	assert.ErrorIs(t, err, db.ErrCorruptLog)
	assert.ErrorIs(t, err, store.ErrTruncatedEntry)
}

func TestOpen_RejectedCorrectionIsCorrupt(t *testing.T) {
	// A stop that precedes its start can only mean the log is damaged.
	dir := t.TempDir()
	writeLog(t, dir,
		store.Encode(store.ProjectAdd{Name: "Foo"}),
		store.Encode(store.RecordStart{Name: "Foo", Unix: anchor.Unix(), Offset: 0}),
		store.Encode(store.RecordStop{Unix: anchor.Unix() - 60, Offset: 0}),
	)

	_, err := db.Open(dir)
	assert.ErrorIs(t, err, db.ErrCorruptLog)
	assert.ErrorIs(t, err, track.ErrNegativeDuration)
}

func TestOpen_FailedReplayReleasesTheLock(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, []byte{42, '\n'})

	_, err := db.Open(dir)
	require.ErrorIs(t, err, db.ErrCorruptLog)

	// The lock must not leak when open fails after acquiring it.
	l, err := store.Open(dir)
	require.NoError(t, err, "lock file left behind by failed open")
	require.NoError(t, l.Close())
}

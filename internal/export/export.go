// Package export dumps the replayed ledger into a standalone SQLite
// file for ad-hoc querying. The export is one-way: nothing ever reads
// it back into the database, and re-running it overwrites prior rows'
// identities (fresh IDs each run).
package export

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/worklabs/worklog/internal/track"
)

//go:embed schema.sql
var schemaSQL string

// ToSQLite writes every project and record into a SQLite database at
// path, creating the file and schema as needed. All rows are written in
// one transaction; a failed export leaves no partial data behind.
func ToSQLite(path string, projects []*track.Project) (err error) {
	sdb, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open export database: %w", err)
	}
	defer sdb.Close()

	if _, err := sdb.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply export schema: %w", err)
	}

	tx, err := sdb.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	for _, p := range projects {
		key := track.KeyOf(p.Name())
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO projects (key, name) VALUES (?, ?)`,
			key, p.Name(),
		); err != nil {
			return fmt.Errorf("export project %q: %w", p.Name(), err)
		}
		for _, rec := range p.Records() {
			if err := insertRecord(tx, key, rec); err != nil {
				return fmt.Errorf("export project %q: %w", p.Name(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func insertRecord(tx *sql.Tx, key string, rec track.Record) error {
	var endedAt, seconds any
	if end, ok := rec.End(); ok {
		endedAt = end.Unix()
		seconds = int64(rec.Duration().Seconds())
	}
	_, offset := rec.Start().Zone()
	_, err := tx.Exec(
		`INSERT INTO records (id, project_key, started_at, utc_offset, ended_at, billable, seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		key,
		rec.Start().Unix(),
		offset,
		endedAt,
		rec.Billable(),
		seconds,
	)
	return err
}

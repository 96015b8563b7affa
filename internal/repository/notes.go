// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sakrist/ancrate/pkg/log"
	"github.com/sakrist/ancrate/pkg/schema"
)

// coreDataEpochOffset converts a Core Data timestamp (seconds since
// 2001-01-01T00:00:00Z) to the 1970 Unix epoch.
const coreDataEpochOffset = 978307200

const (
	noteTable   = "ZICCLOUDSYNCINGOBJECT"
	folderTable = "ZICCLOUDSYNCINGOBJECT"
	dataTable   = "ZICNOTEDATA"
)

// requiredNoteColumns are the noteTable columns both the primary and the
// fallback query depend on. Unlike the modification-date column, there is
// no known legacy name to fall back to for any of these; their absence
// means the store's schema is not one this reader understands at all.
var requiredNoteColumns = []string{"Z_PK", "ZTITLE1", "ZSNIPPET", "ZMARKEDFORDELETION"}

// noteRow mirrors one scanned result row before epoch conversion.
type noteRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Snippet     sql.NullString `db:"snippet"`
	CreatedRaw  sql.NullInt64  `db:"created_raw"`
	ModifiedRaw sql.NullInt64  `db:"modified_raw"`
	FolderName  sql.NullString `db:"folder_name"`
	BodyBlob    []byte         `db:"body_blob"`
	CryptoIV    []byte         `db:"crypto_iv"`
	CryptoTag   []byte         `db:"crypto_tag"`
}

// NotesReader executes the fixed read-only queries against one connection.
type NotesReader struct {
	conn *DBConnection
}

// NewNotesReader wraps an already-established connection.
func NewNotesReader(conn *DBConnection) *NotesReader {
	return &NotesReader{conn: conn}
}

// ListNotes runs the primary join query (notes ⋈ folder ⋈ body data),
// ordered by modification date descending, limited to limit rows (or the
// repository config's DefaultRowLimit if limit <= 0).
//
// Before either query runs, it checks that noteTable carries every column
// both queries depend on; if one is missing it returns SchemaMismatch
// immediately; neither query would succeed without it, so there is no
// fallback to attempt. Once the schema checks out, a primary query failure
// falls back to a simpler id/title/snippet-only query with empty bodies and
// wall-clock timestamps, returning QueryFailed only if that also errors.
func (r *NotesReader) ListNotes(limit int) ([]schema.RawNote, error) {
	if limit <= 0 {
		limit = GetConfig().DefaultRowLimit
	}

	cols, err := r.tableColumns(noteTable)
	if err != nil {
		return nil, fmt.Errorf("%w: probing %s: %v", SchemaMismatch, noteTable, err)
	}
	if missing := missingColumns(cols, requiredNoteColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s missing columns %v", SchemaMismatch, noteTable, missing)
	}

	rows, err := r.primaryQuery(limit)
	if err == nil {
		return rows, nil
	}
	log.Warnf("primary notes query failed, falling back: %v", err)

	rows, fallbackErr := r.fallbackQuery(limit)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: primary: %v, fallback: %v", QueryFailed, err, fallbackErr)
	}
	return rows, nil
}

func (r *NotesReader) primaryQuery(limit int) ([]schema.RawNote, error) {
	query, args, err := sq.Select(
		"n.Z_PK AS id",
		"n.ZTITLE1 AS title",
		"n.ZSNIPPET AS snippet",
		"n.ZCREATIONDATE1 AS created_raw",
		"n.ZMODIFICATIONDATE1 AS modified_raw",
		"f.ZTITLE2 AS folder_name",
		"d.ZDATA AS body_blob",
		"d.ZCRYPTOINITIALIZATIONVECTOR AS crypto_iv",
		"d.ZCRYPTOTAG AS crypto_tag",
	).
		From(noteTable + " n").
		LeftJoin(folderTable + " f ON f.Z_PK = n.ZFOLDER").
		LeftJoin(dataTable + " d ON d.Z_PK = n.ZNOTEDATA").
		Where(sq.NotEq{"n.ZTITLE1": nil}).
		Where(sq.NotEq{"n.ZTITLE1": ""}).
		Where(sq.Eq{"n.ZMARKEDFORDELETION": 0}).
		OrderBy("n.ZMODIFICATIONDATE1 DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	var scanned []noteRow
	if err := sqlx.Select(r.conn.DB, &scanned, query, args...); err != nil {
		return nil, err
	}

	return toRawNotes(scanned), nil
}

// tableColumns runs PRAGMA table_info(table) and returns the set of column
// names it reports. An empty, non-nil result (no error, no rows) means the
// table does not exist.
func (r *NotesReader) tableColumns(table string) (map[string]bool, error) {
	rows, err := r.conn.DB.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		have[name] = true
	}
	return have, rows.Err()
}

// missingColumns returns the entries of want not present in have.
func missingColumns(have map[string]bool, want []string) []string {
	var missing []string
	for _, name := range want {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// modificationColumn probes the store's schema for the actual name of the
// modification-timestamp column used by the fallback query: some store
// versions expose it as ZMODIFICATIONDATE1, others as the unsuffixed
// ZMODIFICATIONDATE. Detecting this avoids hard-coding one schema version.
func (r *NotesReader) modificationColumn() string {
	const preferred = "ZMODIFICATIONDATE1"
	const legacy = "ZMODIFICATIONDATE"

	have, err := r.tableColumns(noteTable)
	if err != nil {
		return preferred
	}

	if have[preferred] {
		return preferred
	}
	if have[legacy] {
		return legacy
	}
	return preferred
}

func (r *NotesReader) fallbackQuery(limit int) ([]schema.RawNote, error) {
	modCol := r.modificationColumn()

	query, args, err := sq.Select(
		"n.Z_PK",
		"n.ZTITLE1",
		"n.ZSNIPPET",
	).
		From(noteTable + " n").
		Where(sq.NotEq{"n.ZTITLE1": nil}).
		Where(sq.NotEq{"n.ZTITLE1": ""}).
		Where(sq.Eq{"n.ZMARKEDFORDELETION": 0}).
		OrderBy("n." + modCol + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	type simpleRow struct {
		ID      int64          `db:"Z_PK"`
		Title   string         `db:"ZTITLE1"`
		Snippet sql.NullString `db:"ZSNIPPET"`
	}

	var scanned []simpleRow
	if err := sqlx.Select(r.conn.DB, &scanned, query, args...); err != nil {
		return nil, err
	}

	now := time.Now()
	notes := make([]schema.RawNote, 0, len(scanned))
	for _, row := range scanned {
		notes = append(notes, schema.RawNote{
			ID:         row.ID,
			Title:      row.Title,
			Snippet:    row.Snippet.String,
			CreatedAt:  now,
			ModifiedAt: now,
		})
	}
	return notes, nil
}

func toRawNotes(rows []noteRow) []schema.RawNote {
	notes := make([]schema.RawNote, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, schema.RawNote{
			ID:         row.ID,
			Title:      row.Title,
			Snippet:    row.Snippet.String,
			CreatedAt:  coreDataToTime(row.CreatedRaw),
			ModifiedAt: coreDataToTime(row.ModifiedRaw),
			FolderName: row.FolderName.String,
			BodyBlob:   row.BodyBlob,
			CryptoIV:   row.CryptoIV,
			CryptoTag:  row.CryptoTag,
		})
	}
	return notes
}

func coreDataToTime(raw sql.NullInt64) time.Time {
	if !raw.Valid {
		return time.Time{}
	}
	return time.Unix(raw.Int64+coreDataEpochOffset, 0).UTC()
}

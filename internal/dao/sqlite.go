package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
	_ "github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/attribute"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sections (
	name TEXT PRIMARY KEY,
	ord  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rows (
	id      TEXT PRIMARY KEY,
	section TEXT NOT NULL,
	ord     INTEGER NOT NULL,
	fields  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS rows_section_ord ON rows(section, ord);
`

// SQLiteStore persists rows in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens a SQLite store at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	glog.V(2).Infof("[sqlite] opened %s\n", path)

	return &SQLiteStore{db: db, path: path}, nil
}

// Load returns the persisted sections in display order. Rows pointing at
// an unknown section are gathered in trailing sections.
func (s *SQLiteStore) Load(ctx context.Context) (ss model1.Sections, err error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	ctx, span := startSpan(ctx, "sqlite", "load")
	defer func() { endSpan(span, err) }()

	secRows, err := s.db.QueryContext(ctx, `SELECT name FROM sections ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	index := make(map[string]int)
	for secRows.Next() {
		var name string
		if err := secRows.Scan(&name); err != nil {
			secRows.Close()
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		index[name] = len(ss)
		ss = append(ss, model1.Section{Name: name, Rows: model1.Rows{}})
	}
	secRows.Close()
	if err := secRows.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, section, fields FROM rows ORDER BY section, ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, section, raw string
		if err := rows.Scan(&id, &section, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var ff model1.Fields
		if err := json.Unmarshal([]byte(raw), &ff); err != nil {
			return nil, fmt.Errorf("%w: row %q: %v", ErrBadSnapshot, id, err)
		}
		idx, ok := index[section]
		if !ok {
			idx = len(ss)
			index[section] = idx
			ss = append(ss, model1.Section{Name: section})
		}
		ss[idx].Rows = append(ss[idx].Rows, model1.Row{ID: id, Fields: ff})
	}
	span.SetAttributes(attribute.Int("gridbind.sections", len(ss)))

	return ss, rows.Err()
}

// Save replaces the persisted content in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, ss model1.Sections) (err error) {
	if s.db == nil {
		return ErrClosed
	}
	ctx, span := startSpan(ctx, "sqlite", "save", attribute.Int("gridbind.rows", ss.RowCount()))
	defer func() { endSpan(span, err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM rows`); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return fmt.Errorf("failed to clear sections: %w", err)
	}
	for i, sec := range ss {
		if _, err = tx.ExecContext(ctx, `INSERT INTO sections(name, ord) VALUES (?, ?)`, sec.Name, i); err != nil {
			return fmt.Errorf("failed to insert section %q: %w", sec.Name, err)
		}
		for j, r := range sec.Rows {
			var raw []byte
			if raw, err = json.Marshal(r.Fields); err != nil {
				return fmt.Errorf("failed to encode row %q: %w", r.ID, err)
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO rows(id, section, ord, fields) VALUES (?, ?, ?, ?)`,
				r.ID, sec.Name, j, string(raw),
			); err != nil {
				return fmt.Errorf("failed to insert row %q: %w", r.ID, err)
			}
		}
	}

	return tx.Commit()
}

// Delete removes rows by id.
func (s *SQLiteStore) Delete(ctx context.Context, ids ...string) (err error) {
	if s.db == nil {
		return ErrClosed
	}
	ctx, span := startSpan(ctx, "sqlite", "delete", attribute.Int("gridbind.rows", len(ids)))
	defer func() { endSpan(span, err) }()

	for _, id := range ids {
		if _, err = s.db.ExecContext(ctx, `DELETE FROM rows WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete row %q: %w", id, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

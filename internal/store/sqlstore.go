//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite - the vector table of old, but in a single local file
type SQLite struct {
	DB    *sql.DB
	Table string
}

// NewSQLite - open (or create) the database file and make sure the model table exists
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  fingerprint TEXT PRIMARY KEY,
			  vectorsize  INTEGER,
			  vectordata  BLOB
			)`
	)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), vv.DIRPERMS); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.NewSQLite(%s): %w", path, err)
	}
	// one writer; ":memory:" would otherwise hand every new connection its own empty database
	db.SetMaxOpenConns(1)

	s := &SQLite{DB: db, Table: vv.MODELTABLENAME}
	if _, err = db.ExecContext(ctx, fmt.Sprintf(CREATE, s.Table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store.NewSQLite(%s): %w", path, err)
	}
	Msg.TMI("store.NewSQLite(): " + path)
	return s, nil
}

func (s *SQLite) Check(ctx context.Context, fp string) (bool, error) {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = ? LIMIT 1`
	)
	var found string
	err := s.DB.QueryRowContext(ctx, fmt.Sprintf(Q, s.Table), fp).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLite) Add(ctx context.Context, fp string, v any) error {
	const (
		INS = `
			INSERT INTO %s
				(fingerprint, vectorsize, vectordata)
			VALUES (?, ?, ?)
			ON CONFLICT(fingerprint) DO UPDATE SET vectorsize = excluded.vectorsize, vectordata = excluded.vectordata`
	)
	b, err := compress(v)
	if err != nil {
		return fmt.Errorf("store.SQLite.Add(%s): %w", fp, err)
	}
	if _, err = s.DB.ExecContext(ctx, fmt.Sprintf(INS, s.Table), fp, len(b), b); err != nil {
		return fmt.Errorf("store.SQLite.Add(%s): %w", fp, err)
	}
	Msg.TMI("store.SQLite.Add(): " + fp)
	return nil
}

func (s *SQLite) Fetch(ctx context.Context, fp string, v any) error {
	const (
		Q = `SELECT vectordata FROM %s WHERE fingerprint = ? LIMIT 1`
	)
	var vect []byte
	err := s.DB.QueryRowContext(ctx, fmt.Sprintf(Q, s.Table), fp).Scan(&vect)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", fp, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return decompress(vect, v)
}

func (s *SQLite) List(ctx context.Context, prefix string) ([]string, error) {
	const (
		Q = `SELECT fingerprint FROM %s`
	)
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(Q, s.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var fp string
		if err = rows.Scan(&fp); err != nil {
			return nil, err
		}
		if strings.HasPrefix(fp, prefix) {
			found = append(found, fp)
		}
	}
	sort.Strings(found)
	return found, rows.Err()
}

func (s *SQLite) Reset(ctx context.Context) error {
	const (
		E = `DELETE FROM %s`
	)
	if _, err := s.DB.ExecContext(ctx, fmt.Sprintf(E, s.Table)); err != nil {
		return err
	}
	Msg.NOTE("store.SQLite.Reset() emptied " + s.Table)
	return nil
}

func (s *SQLite) Close() error {
	return s.DB.Close()
}

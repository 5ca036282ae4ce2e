//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/str"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"sort"
	"strings"
)

// PG - models kept in a PostgreSQL table; a pgxpool is shared by every demo branch
type PG struct {
	Pool  *pgxpool.Pool
	Table string
}

// NewPG - connect and make sure the model table exists
func NewPG(ctx context.Context, pl str.PostgresLogin) (*PG, error) {
	const (
		CREATE = `
			CREATE TABLE IF NOT EXISTS %s
			(
			  fingerprint text PRIMARY KEY,
			  vectorsize  int,
			  vectordata  bytea
			)`
		FAIL1   = "store.NewPG(): could not parse the connection url for %s@%s:%d: %w"
		FAIL2   = "store.NewPG(): could not connect to PostgreSQL: %w"
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on port %d`
	)

	config, err := pgxpool.ParseConfig(pl.URL())
	if err != nil {
		return nil, fmt.Errorf(FAIL1, pl.User, pl.Host, pl.Port, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		if strings.Contains(err.Error(), ERRRUN) {
			Msg.MAND(fmt.Sprintf(FAILRUN, pl.Port))
		}
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf(FAIL2, err)
	}

	s := &PG{Pool: pool, Table: vv.MODELTABLENAME}
	if _, err = pool.Exec(ctx, fmt.Sprintf(CREATE, s.Table)); err != nil {
		pool.Close()
		return nil, err
	}
	Msg.FYI("store.NewPG(): success")
	return s, nil
}

func (s *PG) Check(ctx context.Context, fp string) (bool, error) {
	const (
		Q = `SELECT fingerprint FROM %s WHERE fingerprint = $1 LIMIT 1`
	)
	var found string
	err := s.Pool.QueryRow(ctx, fmt.Sprintf(Q, s.Table), fp).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	Msg.TMI(fmt.Sprintf("store.PG.Check() found %s", found))
	return true, nil
}

func (s *PG) Add(ctx context.Context, fp string, v any) error {
	const (
		INS = `
			INSERT INTO %s
				(fingerprint, vectorsize, vectordata)
			VALUES ($1, $2, $3)
			ON CONFLICT (fingerprint) DO UPDATE SET vectorsize = EXCLUDED.vectorsize, vectordata = EXCLUDED.vectordata`
	)
	b, err := compress(v)
	if err != nil {
		return fmt.Errorf("store.PG.Add(%s): %w", fp, err)
	}
	if _, err = s.Pool.Exec(ctx, fmt.Sprintf(INS, s.Table), fp, len(b), b); err != nil {
		return fmt.Errorf("store.PG.Add(%s): %w", fp, err)
	}
	Msg.TMI("store.PG.Add(): " + fp)
	return nil
}

func (s *PG) Fetch(ctx context.Context, fp string, v any) error {
	const (
		Q = `SELECT vectordata FROM %s WHERE fingerprint = $1 LIMIT 1`
	)
	var vect []byte
	err := s.Pool.QueryRow(ctx, fmt.Sprintf(Q, s.Table), fp).Scan(&vect)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", fp, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return decompress(vect, v)
}

func (s *PG) List(ctx context.Context, prefix string) ([]string, error) {
	const (
		Q = `SELECT fingerprint FROM %s WHERE starts_with(fingerprint, $1)`
	)
	rows, err := s.Pool.Query(ctx, fmt.Sprintf(Q, s.Table), prefix)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

// Reset - empty the table
func (s *PG) Reset(ctx context.Context) error {
	const (
		MSG1 = "store.PG.Reset() emptied "
		E    = `DELETE FROM %s`
	)
	if _, err := s.Pool.Exec(ctx, fmt.Sprintf(E, s.Table)); err != nil {
		return err
	}
	Msg.NOTE(MSG1 + s.Table)
	return nil
}

func (s *PG) Close() error {
	s.Pool.Close()
	return nil
}

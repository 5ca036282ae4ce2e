//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/str"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"io"
	"path/filepath"
)

var Msg = lnch.Msg

var ErrNotFound = errors.New("no model stored under that fingerprint")

// Store - somewhere to keep fitted models and training checkpoints; every payload is gzipped JSON
type Store interface {
	Check(ctx context.Context, fp string) (bool, error)
	Add(ctx context.Context, fp string, v any) error
	Fetch(ctx context.Context, fp string, v any) error
	List(ctx context.Context, prefix string) ([]string, error)
	Reset(ctx context.Context) error
	Close() error
}

// New - pick a Store according to cfg.ModelStore
func New(ctx context.Context, cfg str.CurrentConfiguration) (Store, error) {
	const (
		FAIL = "unknown model store '%s'"
	)
	switch cfg.ModelStore {
	case vv.MODELSTOREFS, "":
		return NewFS(cfg.CheckpointDir)
	case vv.MODELSTORESQLITE:
		return NewSQLite(ctx, filepath.Join(cfg.CheckpointDir, cfg.SQLiteFile))
	case vv.MODELSTOREPG:
		return NewPG(ctx, cfg.PGLogin)
	default:
		return nil, fmt.Errorf(FAIL, cfg.ModelStore)
	}
}

// Fingerprint - derive a unique md5 for any given mix of settings and inputs
func Fingerprint(parts ...any) string {
	// encoding/json sorts map keys
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	for _, p := range parts {
		if err := enc.Encode(p); err != nil {
			_, _ = fmt.Fprintf(&b, "%#v", p)
		}
	}
	return fmt.Sprintf("%x", md5.Sum(b.Bytes()))
}

// compress - json then gzip
func compress(v any) ([]byte, error) {
	const (
		GZ = gzip.BestSpeed
	)
	eb, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	if err != nil {
		return nil, err
	}
	if _, err = zw.Write(eb); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompress - gunzip then json
func decompress(b []byte, v any) error {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("gzip.NewReader: %w", err)
	}
	defer zr.Close()
	decompr, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(decompr, v); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	return nil
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	FSSUFFIX = ".json.gz"
)

// FS - one "<fingerprint>.json.gz" per model in a directory
type FS struct {
	Dir string
}

// NewFS - make sure dir exists and return a Store that writes into it
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return nil, fmt.Errorf("store.NewFS(%s): %w", dir, err)
	}
	return &FS{Dir: dir}, nil
}

func (s *FS) path(fp string) string {
	return filepath.Join(s.Dir, fp+FSSUFFIX)
}

func (s *FS) Check(_ context.Context, fp string) (bool, error) {
	_, err := os.Stat(s.path(fp))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Add - write via a temp file and a rename so that a crash never leaves half a checkpoint behind
func (s *FS) Add(_ context.Context, fp string, v any) error {
	const (
		MSG1 = "store.FS wrote %s (%dk)"
	)
	b, err := compress(v)
	if err != nil {
		return fmt.Errorf("store.FS.Add(%s): %w", fp, err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".tmp-"+fp+"-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err = os.Rename(tmp.Name(), s.path(fp)); err != nil {
		return err
	}
	Msg.TMI(fmt.Sprintf(MSG1, fp, len(b)/1024))
	return nil
}

func (s *FS) Fetch(_ context.Context, fp string, v any) error {
	b, err := os.ReadFile(s.path(fp))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", fp, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err = decompress(b, v); err != nil {
		return fmt.Errorf("store.FS.Fetch(%s): %w", fp, err)
	}
	return nil
}

// List - stored fingerprints that begin with prefix, sorted
func (s *FS) List(_ context.Context, prefix string) ([]string, error) {
	ents, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, e := range ents {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, FSSUFFIX) || strings.HasPrefix(n, ".tmp-") {
			continue
		}
		n = strings.TrimSuffix(n, FSSUFFIX)
		if strings.HasPrefix(n, prefix) {
			found = append(found, n)
		}
	}
	sort.Strings(found)
	return found, nil
}

// Reset - remove every stored model from the directory
func (s *FS) Reset(ctx context.Context) error {
	all, err := s.List(ctx, "")
	if err != nil {
		return err
	}
	for _, fp := range all {
		if err = os.Remove(s.path(fp)); err != nil {
			return err
		}
	}
	Msg.NOTE(fmt.Sprintf("store.FS.Reset() removed %d models from %s", len(all), s.Dir))
	return nil
}

func (s *FS) Close() error { return nil }

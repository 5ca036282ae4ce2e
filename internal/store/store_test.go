//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blob struct {
	Name   string
	Values []float64
}

func exercise(t *testing.T, s Store) {
	ctx := context.Background()

	ok, err := s.Check(ctx, "charnn-01-2.3000")
	require.NoError(t, err)
	assert.False(t, ok)

	var out blob
	err = s.Fetch(ctx, "nope", &out)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Add(ctx, "charnn-01-2.3000", blob{Name: "a", Values: []float64{1, 2}}))
	require.NoError(t, s.Add(ctx, "charnn-02-1.9000", blob{Name: "b", Values: []float64{3}}))
	require.NoError(t, s.Add(ctx, "nb-abc", blob{Name: "c"}))

	ok, err = s.Check(ctx, "charnn-01-2.3000")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Fetch(ctx, "charnn-02-1.9000", &out))
	assert.Equal(t, blob{Name: "b", Values: []float64{3}}, out)

	// overwrite
	require.NoError(t, s.Add(ctx, "charnn-02-1.9000", blob{Name: "b2"}))
	require.NoError(t, s.Fetch(ctx, "charnn-02-1.9000", &out))
	assert.Equal(t, "b2", out.Name)

	l, err := s.List(ctx, "charnn-")
	require.NoError(t, err)
	assert.Equal(t, []string{"charnn-01-2.3000", "charnn-02-1.9000"}, l)

	require.NoError(t, s.Reset(ctx))
	l, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, l)

	assert.NoError(t, s.Close())
}

func TestFSStore(t *testing.T) {
	s, err := NewFS(filepath.Join(t.TempDir(), "ck"))
	require.NoError(t, err)
	exercise(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "models.sqlite"))
	require.NoError(t, err)
	exercise(t, s)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(map[string]int{"b": 2, "a": 1}, []string{"x"})
	b := Fingerprint(map[string]int{"a": 1, "b": 2}, []string{"x"})
	c := Fingerprint(map[string]int{"a": 1, "b": 3}, []string{"x"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

func TestCompressRoundTrip(t *testing.T) {
	b, err := compress(blob{Name: "z", Values: []float64{0.5}})
	require.NoError(t, err)
	var out blob
	require.NoError(t, decompress(b, &out))
	assert.Equal(t, "z", out.Name)
}

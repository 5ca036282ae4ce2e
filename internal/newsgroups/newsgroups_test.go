//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package newsgroups

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

const post = "From: someone@example.org\nSubject: orbits\n\nIn article <1@x> bob writes:\n> a quoted line\nThe moon is bright tonight.\nMercury is near the sun.\n\n--\nSig line\n"

func archive(t *testing.T, files map[string]string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func sample(t *testing.T) []byte {
	return archive(t, map[string]string{
		"20news-bydate-train/sci.space/1": post,
		"20news-bydate-train/sci.space/2": "H: x\n\nrockets\n",
		"20news-bydate-train/sci.med/9":   "H: x\n\ncaf\xe9 doctors\n",
		"20news-bydate-test/sci.med/10":   "H: y\n\nnurses\n",
		"20news-bydate-test/rec.autos/3":  "H: z\n\ncars\n",
		"20news-bydate-train/README":      "not a post",
		"20news-bydate-other/sci.space/7": "wrong split",
	})
}

func TestStripHeaders(t *testing.T) {
	assert.Equal(t, "body\n\nmore", StripHeaders("A: b\nC: d\n\nbody\n\nmore"))
	assert.Equal(t, "", StripHeaders("From: a@b\nSubject: no body"))
}

func TestStripQuotes(t *testing.T) {
	in := "In article <1@x> bob writes:\n> quoted\n| also quoted\nmine\nalice said: hi\nkept"
	assert.Equal(t, "mine\nkept", StripQuotes(in))
}

func TestStripFooter(t *testing.T) {
	assert.Equal(t, "body one\nbody two\n", StripFooter("body one\nbody two\n\n--\nsig"))
	assert.Equal(t, "body\nmore", StripFooter("body\nmore\n-----\nsig"))
	// nothing to cut at
	assert.Equal(t, "one\ntwo", StripFooter("one\ntwo"))
}

func TestStripAll(t *testing.T) {
	out := Strip(post, []string{"headers", "footers", "quotes"})
	assert.Equal(t, "The moon is bright tonight.\nMercury is near the sun.\n", out)
}

func TestParse(t *testing.T) {
	opts := FetchOptions{Categories: []string{"sci.space", "sci.med"}, Remove: []string{"headers"}}
	ds, err := Parse(bytes.NewReader(sample(t)), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"sci.med", "sci.space"}, ds.Categories)
	require.Len(t, ds.Train, 3)
	require.Len(t, ds.Test, 1)

	assert.Equal(t, "sci.med", ds.Train[0].Category)
	assert.Equal(t, 0, ds.Train[0].Label)
	assert.Equal(t, "café doctors\n", ds.Train[0].Text)
	assert.Equal(t, 1, ds.Train[1].Label)
	assert.Equal(t, "nurses\n", ds.Test[0].Text)
}

func TestParseAllCategories(t *testing.T) {
	ds, err := Parse(bytes.NewReader(sample(t)), FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"rec.autos", "sci.med", "sci.space"}, ds.Categories)
	assert.Len(t, ds.Test, 2)
}

func TestParseNoCategories(t *testing.T) {
	_, err := Parse(bytes.NewReader(sample(t)), FetchOptions{Categories: []string{"talk.politics.misc"}})
	assert.ErrorIs(t, err, ErrNoCategories)

	_, err = Parse(bytes.NewReader([]byte("plain text")), FetchOptions{})
	assert.Error(t, err)
}

func TestFetchCachesDownload(t *testing.T) {
	body := sample(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dh := filepath.Join(t.TempDir(), "data")
	opts := FetchOptions{URL: srv.URL, DataHome: dh, Categories: []string{"sci.space"}, Timeout: 5 * time.Second}

	ds, err := Fetch(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, ds.Train, 2)

	_, err = Fetch(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = os.Stat(filepath.Join(dh, "20news-bydate.tar.gz"))
	assert.NoError(t, err)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dh := t.TempDir()
	_, err := Fetch(context.Background(), FetchOptions{URL: srv.URL, DataHome: dh})
	assert.Error(t, err)

	left, _ := os.ReadDir(dh)
	assert.Empty(t, left)
}

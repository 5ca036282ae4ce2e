//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package newsgroups

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"golang.org/x/text/encoding/charmap"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var Msg = lnch.Msg

var ErrNoCategories = errors.New("none of the requested categories are in the archive")

const (
	TRAINDIR = "20news-bydate-train"
	TESTDIR  = "20news-bydate-test"
)

type Document struct {
	Text     string
	Category string
	Label    int
}

type Dataset struct {
	Train      []Document
	Test       []Document
	Categories []string
}

// FetchOptions - an empty Categories means "all twenty"
type FetchOptions struct {
	URL        string
	DataHome   string
	Categories []string
	Remove     []string
	Timeout    time.Duration
}

func DefaultFetchOptions(datahome string) FetchOptions {
	return FetchOptions{
		URL:        vv.NEWSGROUPURL,
		DataHome:   datahome,
		Categories: gen.SplitCSV(vv.NEWSGROUPCATS),
		Remove:     gen.SplitCSV(vv.NEWSGROUPSTRIP),
		Timeout:    vv.NEWSGROUPWAIT * time.Second,
	}
}

// Fetch - download the archive once into DataHome and then read it from there
func Fetch(ctx context.Context, opts FetchOptions) (Dataset, error) {
	const (
		FAIL = "Fetch(): %w"
		MSG1 = "Fetch(): reading cached archive %s"
		MSG2 = "Fetch(): %s training and %s test documents in %d categories"
	)

	fp, err := download(ctx, opts)
	if err != nil {
		return Dataset{}, fmt.Errorf(FAIL, err)
	}
	Msg.PEEK(fmt.Sprintf(MSG1, fp))

	f, err := os.Open(fp)
	if err != nil {
		return Dataset{}, fmt.Errorf(FAIL, err)
	}
	defer f.Close()

	ds, err := Parse(f, opts)
	if err != nil {
		return Dataset{}, err
	}
	Msg.FYI(fmt.Sprintf(MSG2, Msg.Num(len(ds.Train)), Msg.Num(len(ds.Test)), len(ds.Categories)))
	return ds, nil
}

// download - a no-op if the archive is already on disk; partial downloads never land under the final name
func download(ctx context.Context, opts FetchOptions) (string, error) {
	const (
		FAIL1 = "download(): %s returned %s"
		MSG1  = "Downloading the 20 newsgroups collection from %s"
	)

	fp := filepath.Join(opts.DataHome, vv.NEWSGROUPTGZ)
	if _, err := os.Stat(fp); err == nil {
		return fp, nil
	}
	if err := os.MkdirAll(opts.DataHome, vv.DIRPERMS); err != nil {
		return "", err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	Msg.NOTE(fmt.Sprintf(MSG1, opts.URL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(FAIL1, opts.URL, resp.Status)
	}

	tmp, err := os.CreateTemp(opts.DataHome, vv.NEWSGROUPTGZ+".*")
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err = os.Rename(tmp.Name(), fp); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return fp, nil
}

// Parse - read a gzipped tar laid out as <split>/<category>/<id>
func Parse(r io.Reader, opts FetchOptions) (Dataset, error) {
	const (
		FAIL1 = "Parse(): not a gzip stream: %w"
		FAIL2 = "Parse(): tar: %w"
	)

	zr, err := gzip.NewReader(r)
	if err != nil {
		return Dataset{}, fmt.Errorf(FAIL1, err)
	}
	defer zr.Close()

	wanted := gen.ToSet(opts.Categories)
	decoder := charmap.ISO8859_1.NewDecoder()

	type raw struct {
		split string
		cat   string
		name  string
		text  string
	}
	var found []raw
	seen := make(map[string]struct{})

	tr := tar.NewReader(zr)
	for {
		hdr, e := tr.Next()
		if e == io.EOF {
			break
		}
		if e != nil {
			return Dataset{}, fmt.Errorf(FAIL2, e)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		parts := strings.Split(strings.TrimPrefix(hdr.Name, "./"), "/")
		if len(parts) != 3 || (parts[0] != TRAINDIR && parts[0] != TESTDIR) {
			continue
		}
		if _, ok := wanted[parts[1]]; len(wanted) > 0 && !ok {
			continue
		}

		b, e := io.ReadAll(tr)
		if e != nil {
			return Dataset{}, fmt.Errorf(FAIL2, e)
		}
		txt, e := decoder.Bytes(b)
		if e != nil {
			txt = b
		}
		found = append(found, raw{split: parts[0], cat: parts[1], name: parts[2], text: string(txt)})
		seen[parts[1]] = struct{}{}
	}

	if len(seen) == 0 {
		return Dataset{}, ErrNoCategories
	}

	cats := gen.SortedKeys(seen)
	labels := make(map[string]int, len(cats))
	for i, c := range cats {
		labels[c] = i
	}

	// archive order is not guaranteed
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].cat != found[j].cat {
			return found[i].cat < found[j].cat
		}
		return found[i].name < found[j].name
	})

	ds := Dataset{Categories: cats}
	for _, f := range found {
		d := Document{Text: Strip(f.text, opts.Remove), Category: f.cat, Label: labels[f.cat]}
		if f.split == TRAINDIR {
			ds.Train = append(ds.Train, d)
		} else {
			ds.Test = append(ds.Test, d)
		}
	}
	return ds, nil
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data
var efs embed.FS

const (
	BUNDLED     = "data/sample.txt"
	BUNDLEDNAME = "westhaven"
)

var ErrEmpty = errors.New("corpus holds no text")

// Corpus - a named run of raw text
type Corpus struct {
	Name string
	Raw  string
}

// Bag - one "document": a handful of sentences and where they came from
type Bag struct {
	Loc  string
	Text string
}

// LoadBundled - the sample corpus that ships inside the binary
func LoadBundled() (Corpus, error) {
	b, err := efs.ReadFile(BUNDLED)
	if err != nil {
		return Corpus{}, fmt.Errorf("corpus.LoadBundled(): %w", err)
	}
	return fromBytes(BUNDLEDNAME, b)
}

// LoadFile - read a plaintext file from disk
func LoadFile(path string) (Corpus, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("corpus.LoadFile(%s): %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fromBytes(name, b)
}

// Load - LoadFile if a path was given, otherwise LoadBundled
func Load(path string) (Corpus, error) {
	if path == "" {
		return LoadBundled()
	}
	return LoadFile(path)
}

func fromBytes(name string, b []byte) (Corpus, error) {
	raw := strings.ReplaceAll(string(b), "\r\n", "\n")
	if strings.TrimSpace(raw) == "" {
		return Corpus{}, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	return Corpus{Name: name, Raw: raw}, nil
}

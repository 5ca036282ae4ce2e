//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundled(t *testing.T) {
	c, err := LoadBundled()
	require.NoError(t, err)
	assert.Equal(t, BUNDLEDNAME, c.Name)
	assert.Contains(t, c.Raw, "Westhaven")
	assert.Greater(t, len(Paragraphs(c)), 20)
}

func TestLoadFileEmpty(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(fn, []byte(" \n\t\n"), 0644))
	_, err := LoadFile(fn)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadFileName(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(fn, []byte("one. two."), 0644))
	c, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "notes", c.Name)
}

func TestClean(t *testing.T) {
	in := "<p>The  “harbour”&nbsp;was</p>\nbusy with fish-\n ing boats."
	assert.Equal(t, `The "harbour" was busy with fishing boats.`, Clean(in))
}

func TestDeabbreviateAndSplit(t *testing.T) {
	s := Deabbreviate("Mr. Reed saw Mars; Dr. Ellison did not! Why? Because: clouds.")
	got := SplitSentences(s)
	assert.Equal(t, []string{"Mister Reed saw Mars", "Doctor Ellison did not", "Why", "Because", "clouds"}, got)
}

func TestBagsKeepOrderAndAreNotEmpty(t *testing.T) {
	c := Corpus{Name: "t", Raw: "a one. b two. c three. d four. e five."}
	bags := Bags(c, 2)
	require.Len(t, bags, 3)
	assert.Equal(t, "t/0", bags[0].Loc)
	assert.Equal(t, "a one. b two.", bags[0].Text)
	assert.Equal(t, "t/4", bags[2].Loc)
	assert.Equal(t, "e five.", bags[2].Text)
	for _, b := range bags {
		assert.NotEmpty(t, strings.TrimSpace(b.Text))
	}
}

func TestParagraphs(t *testing.T) {
	c := Corpus{Name: "t", Raw: "first para\nstill first\n\n\n  second  \n"}
	ps := Paragraphs(c)
	require.Len(t, ps, 2)
	assert.Equal(t, "first para still first", ps[0].Text)
	assert.Equal(t, "t/p1", ps[1].Loc)
}

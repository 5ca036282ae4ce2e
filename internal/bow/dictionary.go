//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package bow

import (
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"math"
	"sort"
	"strings"
)

var Msg = lnch.Msg

// Dictionary - term <--> id with document frequencies
type Dictionary struct {
	Token2ID map[string]int
	ID2Token []string
	DocFreq  []int
	NumDocs  int
}

type TermCount struct {
	ID    int
	Count int
}

// BowDoc - a document as (id, count) pairs sorted by id
type BowDoc []TermCount

// NewDictionary - ids are handed out in order of first appearance; within a doc new terms are sorted first
func NewDictionary(docs [][]string) *Dictionary {
	d := &Dictionary{Token2ID: make(map[string]int)}
	for _, doc := range docs {
		d.AddDocument(doc)
	}
	return d
}

func (d *Dictionary) AddDocument(doc []string) {
	seen := make(map[string]struct{}, len(doc))
	var fresh []string
	for _, w := range doc {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := d.Token2ID[w]; !ok {
			fresh = append(fresh, w)
		}
	}
	sort.Strings(fresh)
	for _, w := range fresh {
		d.Token2ID[w] = len(d.ID2Token)
		d.ID2Token = append(d.ID2Token, w)
		d.DocFreq = append(d.DocFreq, 0)
	}
	for w := range seen {
		d.DocFreq[d.Token2ID[w]]++
	}
	d.NumDocs++
}

func (d *Dictionary) Len() int { return len(d.ID2Token) }

// FilterExtremes - drop terms in fewer than noBelow docs or in more than noAbove of them; then keep the keepN
// most frequent; ids are reassigned compactly in their old order
func (d *Dictionary) FilterExtremes(noBelow int, noAbove float64, keepN int) {
	const (
		MSG1 = "FilterExtremes() kept %s of %s terms (no_below=%d, no_above=%.2f, keep_n=%d)"
	)
	before := d.Len()
	maxdocs := int(math.Floor(noAbove * float64(d.NumDocs)))

	var good []int
	for id, df := range d.DocFreq {
		if df >= noBelow && df <= maxdocs {
			good = append(good, id)
		}
	}

	if keepN > 0 && len(good) > keepN {
		sort.SliceStable(good, func(i, j int) bool { return d.DocFreq[good[i]] > d.DocFreq[good[j]] })
		good = good[:keepN]
	}
	sort.Ints(good)

	t2i := make(map[string]int, len(good))
	i2t := make([]string, len(good))
	dfs := make([]int, len(good))
	for newid, oldid := range good {
		w := d.ID2Token[oldid]
		t2i[w] = newid
		i2t[newid] = w
		dfs[newid] = d.DocFreq[oldid]
	}
	d.Token2ID, d.ID2Token, d.DocFreq = t2i, i2t, dfs
	Msg.PEEK(fmt.Sprintf(MSG1, Msg.Num(d.Len()), Msg.Num(before), noBelow, noAbove, keepN))
}

// Doc2Bow - count the known terms of a doc; unknown terms are ignored
func (d *Dictionary) Doc2Bow(doc []string) BowDoc {
	counts := make(map[int]int)
	for _, w := range doc {
		if id, ok := d.Token2ID[w]; ok {
			counts[id]++
		}
	}
	bd := make(BowDoc, 0, len(counts))
	for id, n := range counts {
		bd = append(bd, TermCount{ID: id, Count: n})
	}
	sort.Slice(bd, func(i, j int) bool { return bd[i].ID < bd[j].ID })
	return bd
}

// Texts - each doc as a space-joined string of the terms the dictionary knows: food for a count vectoriser
func Texts(docs [][]string, d *Dictionary) []string {
	out := make([]string, len(docs))
	var sb strings.Builder
	for i, doc := range docs {
		sb.Reset()
		for _, w := range doc {
			if _, ok := d.Token2ID[w]; !ok {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(w)
		}
		out[i] = sb.String()
	}
	return out
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package annot

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// Local - prose for tokens, tags, entities, and sentences; golem for lemmata. There is no dependency parser.
type Local struct {
	lem   *golem.Lemmatizer
	stops map[string]struct{}
}

// NewLocal - loading the lemma dictionary takes a moment: build one Local and reuse it
func NewLocal(cfg Config, stops []string) (*Local, error) {
	l := &Local{stops: StopSet(stops, cfg)}
	if cfg.Lemmatise {
		lem, err := golem.New(en.New())
		if err != nil {
			return nil, fmt.Errorf("annot.NewLocal(): golem: %w", err)
		}
		l.lem = lem
	}
	return l, nil
}

type span struct {
	start int
	end   int
}

func (l *Local) Annotate(ctx context.Context, text string) (Doc, error) {
	if strings.TrimSpace(text) == "" {
		return Doc{Text: text}, nil
	}
	if err := ctx.Err(); err != nil {
		return Doc{}, err
	}

	pd, err := prose.NewDocument(text)
	if err != nil {
		return Doc{}, fmt.Errorf("annot.Local: %w", err)
	}

	doc := Doc{Text: text}
	for _, s := range pd.Sentences() {
		doc.Sentences = append(doc.Sentences, s.Text)
	}
	spans := locate(text, doc.Sentences)

	pt := pd.Tokens()
	doc.Tokens = make([]Token, 0, len(pt))
	offsets := locate(text, tokentexts(pt))
	sent := 0
	for i, p := range pt {
		off := offsets[i].start
		for sent < len(spans)-1 && off >= spans[sent].end {
			sent++
		}
		t := Token{
			Index:    i,
			Sentence: sent,
			Idx:      off,
			Text:     p.Text,
			Tag:      p.Tag,
			POS:      UniversalPOS(p.Tag),
			Head:     -1,
		}
		t.EntIOB, t.EntType = splitlabel(p.Label)
		setflags(&t, l.stops)
		t.Lemma = l.lemma(t)
		doc.Tokens = append(doc.Tokens, t)
	}
	doc.Entities = Entities(doc)
	return doc, nil
}

func (l *Local) lemma(t Token) string {
	low := strings.ToLower(t.Text)
	if l.lem == nil || !t.IsAlpha {
		return low
	}
	return l.lem.Lemma(low)
}

func tokentexts(pt []prose.Token) []string {
	tt := make([]string, len(pt))
	for i := range pt {
		tt[i] = pt[i].Text
	}
	return tt
}

// locate - find each piece in order in text; a piece that cannot be found sits at the current cursor
func locate(text string, pieces []string) []span {
	spans := make([]span, len(pieces))
	cursor := 0
	for i, p := range pieces {
		idx := strings.Index(text[cursor:], p)
		if idx < 0 || p == "" {
			spans[i] = span{cursor, cursor}
			continue
		}
		start := cursor + idx
		spans[i] = span{start, start + len(p)}
		cursor = start + len(p)
	}
	return spans
}

// splitlabel - "B-GPE" --> "B", "GPE"; "O" --> "O", ""
func splitlabel(label string) (string, string) {
	if label == "" || label == "O" {
		return "O", ""
	}
	iob, typ, ok := strings.Cut(label, "-")
	if !ok {
		return "B", label
	}
	return iob, typ
}

// Entities - runs of B/I tokens turned into spans over the token list
func Entities(doc Doc) []Entity {
	var ents []Entity
	open := -1
	closeat := func(end int) {
		if open < 0 {
			return
		}
		ents = append(ents, Entity{Text: spantext(doc, open, end), Label: doc.Tokens[open].EntType, Start: open, End: end})
		open = -1
	}

	for i, t := range doc.Tokens {
		switch {
		case t.EntIOB == "B":
			closeat(i)
			open = i
		case t.EntIOB == "I" && open >= 0 && t.EntType == doc.Tokens[open].EntType:
			// continue the run
		case t.EntIOB == "I":
			closeat(i)
			open = i
		default:
			closeat(i)
		}
	}
	closeat(len(doc.Tokens))
	return ents
}

// spantext - the original text under Tokens[start:end]; joined token texts if the offsets do not fit
func spantext(doc Doc, start, end int) string {
	first, last := doc.Tokens[start], doc.Tokens[end-1]
	a, b := first.Idx, last.Idx+len(last.Text)
	if a >= 0 && a <= b && b <= len(doc.Text) && strings.HasPrefix(doc.Text[a:], first.Text) {
		return doc.Text[a:b]
	}
	parts := make([]string, 0, end-start)
	for _, t := range doc.Tokens[start:end] {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

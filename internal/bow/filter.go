//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package bow

import (
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"strings"
	"unicode/utf8"
)

// Config - the contents of hnb-conf-bow.json
type Config struct {
	SentencesPerBag int
	MinLen          int
	KeepPOS         []string
	UseLemma        bool
	PhraseMinCount  int
	PhraseThreshold float64
	PhraseJoiner    string
	NoBelow         int
	NoAbove         float64
	KeepN           int
}

func DefaultConfig() Config {
	return Config{
		SentencesPerBag: vv.BOWSENTPERBAG,
		MinLen:          vv.BOWMINLEN,
		KeepPOS:         gen.SplitCSV(vv.BOWDEFAULTPOSSET),
		UseLemma:        true,
		PhraseMinCount:  vv.BOWPHRASEMIN,
		PhraseThreshold: vv.BOWPHRASETHRESH,
		PhraseJoiner:    vv.BOWPHRASEJOINER,
		NoBelow:         vv.BOWNOBELOW,
		NoAbove:         vv.BOWNOABOVE,
		KeepN:           vv.BOWKEEPN,
	}
}

type FilterOptions struct {
	MinLen   int
	KeepPOS  []string // empty means every part of speech
	UseLemma bool
}

func (c Config) FilterOptions() FilterOptions {
	return FilterOptions{MinLen: c.MinLen, KeepPOS: c.KeepPOS, UseLemma: c.UseLemma}
}

// Filter - one token list per sentence; stops, punctuation, space, non-alpha and short tokens are dropped
func Filter(doc annot.Doc, opts FilterOptions) [][]string {
	keep := gen.ToSet(opts.KeepPOS)

	nsent := len(doc.Sentences)
	if len(doc.Tokens) > 0 {
		nsent = max(nsent, doc.Tokens[len(doc.Tokens)-1].Sentence+1)
	}
	out := make([][]string, nsent)

	for _, t := range doc.Tokens {
		if t.IsStop || t.IsPunct || t.IsSpace || !t.IsAlpha {
			continue
		}
		if len(keep) > 0 {
			if _, ok := keep[t.POS]; !ok {
				continue
			}
		}
		w := t.Text
		if opts.UseLemma && t.Lemma != "" {
			w = t.Lemma
		}
		w = strings.ToLower(w)
		if utf8.RuneCountInString(w) < opts.MinLen {
			continue
		}
		s := min(max(t.Sentence, 0), nsent-1)
		out[s] = append(out[s], w)
	}

	// sentences that lost every token are not worth keeping
	res := out[:0]
	for _, s := range out {
		if len(s) > 0 {
			res = append(res, s)
		}
	}
	return res
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package bow

import (
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
)

// Phrases - bigrams that occur together often enough to be treated as one token
type Phrases struct {
	MinCount    int
	Threshold   float64
	Delimiter   string
	Counts      map[string]int     // unigrams and joined bigrams
	Phrasegrams map[string]float64 // joined bigram --> score
}

// LearnPhrases - count unigrams and adjacent bigrams within each sentence and score the bigrams:
// (count(ab) - minCount) / (count(a) * count(b)) * vocabulary size
func LearnPhrases(sentences [][]string, minCount int, threshold float64, delimiter string) *Phrases {
	p := &Phrases{
		MinCount:    minCount,
		Threshold:   threshold,
		Delimiter:   delimiter,
		Counts:      make(map[string]int),
		Phrasegrams: make(map[string]float64),
	}

	type pair struct{ a, b string }
	bigrams := make(map[pair]int)

	for _, s := range sentences {
		for i, w := range s {
			p.Counts[w]++
			if i+1 < len(s) {
				bigrams[pair{w, s[i+1]}]++
			}
		}
	}
	for bg, n := range bigrams {
		p.Counts[bg.a+delimiter+bg.b] = n
	}

	vocab := float64(len(p.Counts))
	for bg, n := range bigrams {
		ca, cb := p.Counts[bg.a], p.Counts[bg.b]
		if n < minCount || ca == 0 || cb == 0 {
			continue
		}
		score := float64(n-minCount) / float64(ca) / float64(cb) * vocab
		if score > threshold {
			p.Phrasegrams[bg.a+delimiter+bg.b] = score
		}
	}
	Msg.PEEK(Msg.Num(len(p.Phrasegrams)) + " phrases learned from " + Msg.Num(len(sentences)) + " sentences")
	return p
}

// Apply - merge known phrases greedily from left to right
func (p *Phrases) Apply(doc []string) []string {
	out := make([]string, 0, len(doc))
	for i := 0; i < len(doc); i++ {
		if i+1 < len(doc) {
			joined := doc[i] + p.Delimiter + doc[i+1]
			if _, ok := p.Phrasegrams[joined]; ok {
				out = append(out, joined)
				i++
				continue
			}
		}
		out = append(out, doc[i])
	}
	return out
}

// ApplyAll - Apply to every doc
func (p *Phrases) ApplyAll(docs [][]string) [][]string {
	out := make([][]string, len(docs))
	for i := range docs {
		out[i] = p.Apply(docs[i])
	}
	return out
}

// Known - the phrases in a stable order
func (p *Phrases) Known() []string {
	return gen.SortedKeys(p.Phrasegrams)
}

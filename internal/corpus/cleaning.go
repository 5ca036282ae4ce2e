//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	markup    = regexp.MustCompile(`<[^>]*>`)
	entities  = regexp.MustCompile(`&(nbsp|amp|lt|gt|quot);`)
	hyphenbrk = regexp.MustCompile(`(\p{L})-\s*\n\s*(\p{L})`)
	blanks    = regexp.MustCompile(`\s+`)
	paragraph = regexp.MustCompile(`\n\s*\n`)
)

// Clean - drop markup and entities, rejoin words hyphenated across line ends, straighten quotes, collapse whitespace
func Clean(s string) string {
	s = markup.ReplaceAllString(s, "")
	s = entities.ReplaceAllStringFunc(s, func(e string) string {
		switch e {
		case "&amp;":
			return "&"
		case "&lt;":
			return "<"
		case "&gt;":
			return ">"
		case "&quot;":
			return `"`
		default:
			return " "
		}
	})
	s = hyphenbrk.ReplaceAllString(s, "$1$2")
	s = straighten(s)
	s = blanks.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func straighten(s string) string {
	swap := strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'", "—", " - ", "–", "-", "…", "...", "­", "")
	return swap.Replace(s)
}

// Deabbreviate - expand the abbreviations whose dots would otherwise end a sentence early
func Deabbreviate(s string) string {
	swap := strings.NewReplacer("Mrs.", "Missus", "Mr.", "Mister", "Ms.", "Miz", "Dr.", "Doctor", "St.", "Saint",
		"Prof.", "Professor", "Rev.", "Reverend", "e.g.", "for example", "i.e.", "that is", "etc.", "et cetera",
		"vs.", "versus", "cf.", "compare", "No.", "Number")
	return swap.Replace(s)
}

// SplitSentences - swap all sentence punctuation for "." and split on it
func SplitSentences(s string) []string {
	swap := strings.NewReplacer("?", ".", "!", ".", ";", ".", ":", ".", "·", ".")
	split := strings.Split(swap.Replace(s), ".")

	sentences := make([]string, 0, len(split))
	for _, p := range split {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Sentences - Clean, Deabbreviate, SplitSentences
func Sentences(c Corpus) []string {
	return SplitSentences(Deabbreviate(Clean(c.Raw)))
}

// Bags - perbag sentences at a time; Loc is "name/index of the first sentence"
func Bags(c Corpus, perbag int) []Bag {
	const (
		LOC = "%s/%d"
	)
	if perbag < 1 {
		perbag = 1
	}
	ss := Sentences(c)
	bags := make([]Bag, 0, len(ss)/perbag+1)
	for i := 0; i < len(ss); i += perbag {
		end := min(i+perbag, len(ss))
		bags = append(bags, Bag{
			Loc:  fmt.Sprintf(LOC, c.Name, i),
			Text: strings.Join(ss[i:end], ". ") + ".",
		})
	}
	return bags
}

// Paragraphs - blank-line separated documents, cleaned
func Paragraphs(c Corpus) []Bag {
	const (
		LOC = "%s/p%d"
	)
	var bags []Bag
	for _, p := range paragraph.Split(c.Raw, -1) {
		p = Clean(p)
		if p == "" {
			continue
		}
		bags = append(bags, Bag{Loc: fmt.Sprintf(LOC, c.Name, len(bags)), Text: p})
	}
	return bags
}

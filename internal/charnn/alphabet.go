//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"errors"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"sort"
)

var ErrCorpusTooShort = errors.New("the text is not longer than one window")

// Alphabet - every distinct rune of a text, sorted; a rune's id is its position
type Alphabet struct {
	Chars []rune
	Index map[rune]int
}

type Example struct {
	Input  []int
	Target int
}

func NewAlphabet(text string) Alphabet {
	chars := gen.Unique([]rune(text))
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return FromRunes(chars)
}

// FromRunes - rebuild an alphabet from a stored rune list; the order is kept as given
func FromRunes(chars []rune) Alphabet {
	a := Alphabet{Chars: chars, Index: make(map[rune]int, len(chars))}
	for i, r := range chars {
		a.Index[r] = i
	}
	return a
}

func (a Alphabet) Len() int { return len(a.Chars) }

// Encode - runes the alphabet does not know are skipped
func (a Alphabet) Encode(text string) []int {
	ids := make([]int, 0, len(text))
	for _, r := range text {
		if id, ok := a.Index[r]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (a Alphabet) Decode(ids []int) string {
	rr := make([]rune, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(a.Chars) {
			rr = append(rr, a.Chars[id])
		}
	}
	return string(rr)
}

// Same - true if both alphabets map the same runes to the same ids
func (a Alphabet) Same(b Alphabet) bool {
	if len(a.Chars) != len(b.Chars) {
		return false
	}
	for i := range a.Chars {
		if a.Chars[i] != b.Chars[i] {
			return false
		}
	}
	return true
}

// Windows - cut the id stream into maxLen inputs each followed by the id to predict
func Windows(ids []int, maxLen, step int) ([]Example, error) {
	if maxLen < 1 || len(ids) <= maxLen {
		return nil, ErrCorpusTooShort
	}
	if step < 1 {
		step = 1
	}
	ex := make([]Example, 0, (len(ids)-maxLen)/step+1)
	for i := 0; i < len(ids)-maxLen; i += step {
		ex = append(ex, Example{Input: ids[i : i+maxLen], Target: ids[i+maxLen]})
	}
	return ex, nil
}

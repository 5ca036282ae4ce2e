//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package annot

import (
	"context"
	"errors"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"strings"
	"unicode"
)

var Msg = lnch.Msg

var ErrRemote = errors.New("remote annotator failed")

// Token - one word (or punctuation mark) of an annotated text
type Token struct {
	Index    int    `json:"index"`    // position in the whole Doc
	Sentence int    `json:"sentence"` // which sentence it belongs to
	Idx      int    `json:"idx"`      // byte offset of the token in Doc.Text
	Text     string `json:"text"`
	Lemma    string `json:"lemma"`
	POS      string `json:"pos"` // coarse universal tag: NOUN, VERB, ...
	Tag      string `json:"tag"` // fine Penn tag: NN, VBD, ...
	Dep      string `json:"dep"`
	Head     int    `json:"head"` // -1 when there is no parse
	EntIOB   string `json:"ent_iob"`
	EntType  string `json:"ent_type"`
	IsStop   bool   `json:"is_stop"`
	IsPunct  bool   `json:"is_punct"`
	IsSpace  bool   `json:"is_space"`
	IsAlpha  bool   `json:"is_alpha"`
}

// Entity - a named entity spanning Tokens[Start:End]
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type Doc struct {
	Text      string   `json:"text"`
	Tokens    []Token  `json:"tokens"`
	Entities  []Entity `json:"entities"`
	Sentences []string `json:"sentences"`
}

// Annotator - anything that can turn text into a Doc
type Annotator interface {
	Annotate(ctx context.Context, text string) (Doc, error)
}

// Config - the contents of hnb-conf-annot.json
type Config struct {
	Remote      string   // "" means use the local pipeline
	TimeoutSec  int      // remote only
	Lemmatise   bool     // local only
	KeepStops   []string // words in the stop list that should be kept anyway
	ExtraStops  []string
	ReportLimit int
}

func DefaultConfig() Config {
	return Config{
		Remote:      "",
		TimeoutSec:  vv.ANNOTTIMEOUT,
		Lemmatise:   true,
		KeepStops:   []string{},
		ExtraStops:  []string{},
		ReportLimit: vv.ANNOTREPORTLIMIT,
	}
}

// New - a Remote if cfg.Remote is set, otherwise a Local
func New(cfg Config, stops []string) (Annotator, error) {
	if cfg.Remote != "" {
		return NewRemote(cfg, stops), nil
	}
	return NewLocal(cfg, stops)
}

// StopSet - stops plus extras minus the keep-list
func StopSet(stops []string, cfg Config) map[string]struct{} {
	all := append(append([]string{}, stops...), cfg.ExtraStops...)
	return gen.ToSet(gen.SetSubtraction(all, cfg.KeepStops))
}

// setflags - stop/punct/space/alpha flags derived from the text alone
func setflags(t *Token, stops map[string]struct{}) {
	t.IsAlpha = t.Text != "" && allrunes(t.Text, unicode.IsLetter)
	t.IsSpace = t.Text != "" && allrunes(t.Text, unicode.IsSpace)
	t.IsPunct = t.Text != "" && allrunes(t.Text, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) })
	_, t.IsStop = stops[strings.ToLower(t.Text)]
}

func allrunes(s string, f func(rune) bool) bool {
	for _, r := range s {
		if !f(r) {
			return false
		}
	}
	return true
}

// pennuniversal - Penn Treebank tags mapped onto the universal POS set
var pennuniversal = map[string]string{
	"CC": "CCONJ", "CD": "NUM", "DT": "DET", "EX": "PRON", "FW": "X", "IN": "ADP", "JJ": "ADJ", "JJR": "ADJ",
	"JJS": "ADJ", "LS": "X", "MD": "AUX", "NN": "NOUN", "NNS": "NOUN", "NNP": "PROPN", "NNPS": "PROPN",
	"PDT": "DET", "POS": "PART", "PRP": "PRON", "PRP$": "PRON", "RB": "ADV", "RBR": "ADV", "RBS": "ADV",
	"RP": "ADP", "SYM": "SYM", "TO": "PART", "UH": "INTJ", "VB": "VERB", "VBD": "VERB", "VBG": "VERB",
	"VBN": "VERB", "VBP": "VERB", "VBZ": "VERB", "WDT": "PRON", "WP": "PRON", "WP$": "PRON", "WRB": "ADV",
	"$": "SYM", "#": "SYM", "``": "PUNCT", "''": "PUNCT", "(": "PUNCT", ")": "PUNCT", "-LRB-": "PUNCT",
	"-RRB-": "PUNCT", ",": "PUNCT", ".": "PUNCT", ":": "PUNCT",
}

// UniversalPOS - "NNS" --> "NOUN"; unknown tags are "X"
func UniversalPOS(penn string) string {
	if u, ok := pennuniversal[penn]; ok {
		return u
	}
	return "X"
}

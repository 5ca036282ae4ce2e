//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package annot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Remote - a spaCy-style annotation service that answers {"text": "..."} with tokens, entities, and sentences
type Remote struct {
	URL    string
	Client *http.Client
	stops  map[string]struct{}
}

// NewRemote - cfg supplies the url and timeout; the stop set is built as it is for Local
func NewRemote(cfg Config, stops []string) *Remote {
	timeoutsec := cfg.TimeoutSec
	if timeoutsec < 1 {
		timeoutsec = 30
	}
	return &Remote{
		URL:    cfg.Remote,
		Client: &http.Client{Timeout: time.Duration(timeoutsec) * time.Second},
		stops:  StopSet(stops, cfg),
	}
}

// wiretoken - what the service sends for each token; the flags are optional
type wiretoken struct {
	Id         int    `json:"id"`
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`
	Tag        string `json:"tag"`
	Idx        int    `json:"idx"`
	Text       string `json:"text"`
	Lemma      string `json:"lemma"`
	EntIOB     string `json:"ent_iob"`
	EntType    string `json:"ent_type"`
	IsStop     *bool  `json:"is_stop"`
	IsPunct    *bool  `json:"is_punct"`
}

type wireentity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type wiredoc struct {
	Tokens []wiretoken  `json:"tokens"`
	Ents   []wireentity `json:"ents"`
	Sents  []string     `json:"sents"`
}

func (r *Remote) Annotate(ctx context.Context, text string) (Doc, error) {
	const (
		FAIL1 = "%w: %s answered %d: %s"
		FAIL2 = "%w: %s"
	)
	if strings.TrimSpace(text) == "" {
		return Doc{Text: text}, nil
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Doc{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return Doc{}, fmt.Errorf(FAIL2, ErrRemote, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return Doc{}, fmt.Errorf(FAIL2, ErrRemote, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return Doc{}, fmt.Errorf(FAIL1, ErrRemote, r.URL, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var wd wiredoc
	if err = json.NewDecoder(resp.Body).Decode(&wd); err != nil {
		return Doc{}, fmt.Errorf(FAIL2, ErrRemote, err.Error())
	}
	Msg.TMI(fmt.Sprintf("annot.Remote: %d tokens from %s", len(wd.Tokens), r.URL))
	return r.todoc(text, wd), nil
}

// todoc - fill the gaps the service left: flags, universal tags, entity spans
func (r *Remote) todoc(text string, wd wiredoc) Doc {
	doc := Doc{Text: text, Sentences: wd.Sents}
	doc.Tokens = make([]Token, len(wd.Tokens))
	for i, w := range wd.Tokens {
		t := Token{
			Index:    i,
			Sentence: w.SentenceId,
			Idx:      w.Idx,
			Text:     w.Text,
			Lemma:    w.Lemma,
			POS:      w.Pos,
			Tag:      w.Tag,
			Dep:      w.Dep,
			Head:     w.Head,
			EntIOB:   w.EntIOB,
			EntType:  w.EntType,
		}
		setflags(&t, r.stops)
		if w.IsStop != nil {
			t.IsStop = *w.IsStop
		}
		if w.IsPunct != nil {
			t.IsPunct = *w.IsPunct
		}
		if t.POS == "" {
			t.POS = UniversalPOS(t.Tag)
		}
		if t.EntIOB == "" {
			t.EntIOB = "O"
		}
		if t.Lemma == "" {
			t.Lemma = strings.ToLower(t.Text)
		}
		doc.Tokens[i] = t
	}

	if len(wd.Ents) > 0 {
		for _, e := range wd.Ents {
			doc.Entities = append(doc.Entities, Entity(e))
		}
	} else {
		doc.Entities = Entities(doc)
	}
	return doc
}

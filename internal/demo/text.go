//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/bow"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/charts"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/corpus"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/topics"
	"golang.org/x/sync/errgroup"
	"io"
	"time"
)

// parsed - the corpus, cut into bags, with one annotated Doc per bag
type parsed struct {
	c    corpus.Corpus
	bags []corpus.Bag
	docs []annot.Doc
}

// parse - load the corpus and annotate every bag; the bags are annotated concurrently
func parse(ctx context.Context, env Env, p Progress) (parsed, error) {
	const (
		STAGE = "annotate"
		MSG1  = "loaded '%s': %s sentences in %s bags"
		MSG2  = "annotated %s bags"
		FAIL1 = "parse(): %w"
	)
	start := time.Now()

	c, err := corpus.Load(env.Cfg.CorpusFile)
	if err != nil {
		return parsed{}, fmt.Errorf(FAIL1, err)
	}
	bags := corpus.Bags(c, env.Set.BOW.SentencesPerBag)
	p.Report(STAGE, fmt.Sprintf(MSG1, c.Name, Msg.Num(len(corpus.Sentences(c))), Msg.Num(len(bags))))
	previous := time.Now()
	Msg.Timer("B1", "corpus loaded", start, start)

	an, err := annot.New(env.Set.Annot, env.Set.Stops)
	if err != nil {
		return parsed{}, fmt.Errorf(FAIL1, err)
	}

	docs := make([]annot.Doc, len(bags))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, env.Cfg.WorkerCount))
	for i := range bags {
		i := i
		g.Go(func() error {
			d, e := an.Annotate(gctx, bags[i].Text)
			if e != nil {
				return e
			}
			docs[i] = d
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return parsed{}, fmt.Errorf(FAIL1, err)
	}

	p.Report(STAGE, fmt.Sprintf(MSG2, Msg.Num(len(docs))))
	Msg.Timer("B2", "bags annotated", start, previous)
	return parsed{c: c, bags: bags, docs: docs}, nil
}

// report - the first bag in detail and then how many entities turned up overall
func report(w io.Writer, ps parsed, limit int) {
	const (
		HEAD = "\n===== annotation of %s\n"
		ENTS = "\n%s named entities in %s bags\n"
	)
	if len(ps.docs) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, HEAD, ps.bags[0].Loc)
	annot.Report(w, ps.docs[0], limit)

	ne := 0
	for _, d := range ps.docs {
		ne += len(d.Entities)
	}
	_, _ = fmt.Fprintf(w, ENTS, Msg.Num(ne), Msg.Num(len(ps.docs)))
}

// Annotate - load, annotate, and print the token and entity tables
func Annotate(ctx context.Context, env Env, p Progress, w io.Writer) error {
	ps, err := parse(ctx, env, p)
	if err != nil {
		return err
	}
	report(w, ps, env.Set.Annot.ReportLimit)
	return nil
}

// documents - every bag as one list of filtered tokens with the learned bigrams merged
func documents(ps parsed, cfg bow.Config) ([][]string, *bow.Phrases) {
	opts := cfg.FilterOptions()
	var sentences [][]string
	perbag := make([][][]string, len(ps.docs))
	for i, d := range ps.docs {
		perbag[i] = bow.Filter(d, opts)
		sentences = append(sentences, perbag[i]...)
	}

	phr := bow.LearnPhrases(sentences, cfg.PhraseMinCount, cfg.PhraseThreshold, cfg.PhraseJoiner)
	docs := make([][]string, len(perbag))
	for i, ss := range perbag {
		docs[i] = gen.FlattenSlices(phr.ApplyAll(ss))
	}
	return docs, phr
}

// Topics - annotate and then model the bags as lda topics
func Topics(ctx context.Context, env Env, p Progress, w io.Writer) error {
	ps, err := parse(ctx, env, p)
	if err != nil {
		return err
	}
	return topicsfrom(ctx, env, ps, p, w)
}

func topicsfrom(ctx context.Context, env Env, ps parsed, p Progress, w io.Writer) error {
	const (
		STAGE = "topics"
		MSG1  = "%d bigram phrases learned"
		MSG2  = "dictionary of %s terms after filtering extremes"
		MSG3  = "%d topics fitted"
		MSG4  = "chart written to %s"
		FAIL1 = "topicsfrom(): %w"
		PHR   = "\n===== bigram phrases\n%v\n"
		CHART = "topics-%s.html"
	)
	start := time.Now()
	cfg := env.Set.BOW

	docs, phr := documents(ps, cfg)
	p.Report(STAGE, fmt.Sprintf(MSG1, len(phr.Known())))
	_, _ = fmt.Fprintf(w, PHR, phr.Known())

	dict := bow.NewDictionary(docs)
	dict.FilterExtremes(cfg.NoBelow, cfg.NoAbove, cfg.KeepN)
	p.Report(STAGE, fmt.Sprintf(MSG2, Msg.Num(dict.Len())))
	previous := time.Now()
	Msg.Timer("C1", "bag of words built", start, start)

	// drop the bags that lost every term: lda rows must not be empty
	var texts []string
	var bags []corpus.Bag
	for i, t := range bow.Texts(docs, dict) {
		if t == "" {
			continue
		}
		texts = append(texts, t)
		bags = append(bags, ps.bags[i])
	}

	m, err := topics.Fit(ctx, texts, bags, env.Set.LDA, env.Set.Stops)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	p.Report(STAGE, fmt.Sprintf(MSG3, m.Topics))
	Msg.Timer("C2", "lda model fitted", start, previous)

	m.Summary(w)

	if !env.Set.LDA.GraphDocs {
		return nil
	}
	fp, err := charts.ToFile(env.Cfg.OutputDir, fmt.Sprintf(CHART, ps.c.Name), func(cw io.Writer) error {
		return m.Plot(cw, env.Set.LDA)
	})
	switch {
	case errors.Is(err, topics.ErrTooSmall):
		Msg.WARN(err.Error())
		return nil
	case err != nil:
		return fmt.Errorf(FAIL1, err)
	}
	p.Report(STAGE, fmt.Sprintf(MSG4, fp))
	return nil
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/corpus"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/mat"
	"runtime"
	"strings"
)

var Msg = lnch.Msg

var ErrNoDocs = errors.New("no documents to model")

//
// LDA CONFIGURATION
//

type LDAConfig struct {
	Topics               int
	Iterations           int
	TransformationPasses int
	BurnInPasses         int
	ChangeEvalFrq        int
	PerplexEvalFrq       int
	PerplexTol           float64
	Goroutines           int
	TopN                 int
	GraphDocs            bool
}

func DefaultLDAConfig() LDAConfig {
	return LDAConfig{
		Topics:               vv.LDATOPICS,
		Iterations:           vv.LDAITER,
		TransformationPasses: vv.LDAXFORMPASSES,
		BurnInPasses:         vv.LDABURNINPASSES,
		ChangeEvalFrq:        vv.LDACHGEVALFRQ,
		PerplexEvalFrq:       vv.LDAPERPEVALFRQ,
		PerplexTol:           vv.LDAPERPTOL,
		Goroutines:           runtime.NumCPU(),
		TopN:                 vv.LDATOPN,
		GraphDocs:            true,
	}
}

// Model - the output of the pipeline; both matrices have topics as their rows
type Model struct {
	DocsOverTopics  mat.Matrix // topics x docs
	TopicsOverWords mat.Matrix // topics x words
	Vocab           []string
	Docs            []corpus.Bag
	Topics          int
	TopN            int
}

// Fit - build the lda model for the texts; bags[i] is where texts[i] came from
func Fit(ctx context.Context, texts []string, bags []corpus.Bag, cfg LDAConfig, stops []string) (*Model, error) {
	const (
		FAIL1 = "Fit(): %d texts but %d bags"
		FAIL2 = "Fit(): the vectoriser found no words outside the stoplist"
		FAIL3 = "Fit(): lda pipeline: %w"
		MSG1  = "Fit(): modelling %s documents as %d topics"
		MSG2  = "Fit(): vocabulary of %s words"
	)

	if len(texts) == 0 || allblank(texts) {
		return nil, ErrNoDocs
	}
	if len(bags) != len(texts) {
		return nil, fmt.Errorf(FAIL1, len(texts), len(bags))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg = clamp(cfg)
	Msg.FYI(fmt.Sprintf(MSG1, Msg.Num(len(texts)), cfg.Topics))

	vectoriser := nlp.NewCountVectoriser(stops...)

	// an empty vocabulary makes for a zero-row matrix that the lda will not accept; probe it first
	vectoriser.Fit(texts...)
	if len(vectoriser.Vocabulary) == 0 {
		return nil, errors.New(FAIL2)
	}
	Msg.PEEK(fmt.Sprintf(MSG2, Msg.Num(len(vectoriser.Vocabulary))))

	lda := nlp.NewLatentDirichletAllocation(cfg.Topics)
	lda.Processes = cfg.Goroutines
	lda.Iterations = cfg.Iterations
	lda.TransformationPasses = cfg.TransformationPasses
	lda.BurnInPasses = cfg.BurnInPasses
	lda.ChangeEvaluationFrequency = cfg.ChangeEvalFrq
	lda.PerplexityEvaluationFrequency = cfg.PerplexEvalFrq
	lda.PerplexityTolerance = cfg.PerplexTol

	pipeline := nlp.NewPipeline(vectoriser, lda)

	docsOverTopics, err := pipeline.FitTransform(texts...)
	if err != nil {
		return nil, fmt.Errorf(FAIL3, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	vocab := make([]string, len(vectoriser.Vocabulary))
	for k, v := range vectoriser.Vocabulary {
		vocab[v] = k
	}

	m := &Model{
		DocsOverTopics:  docsOverTopics,
		TopicsOverWords: lda.Components(),
		Vocab:           vocab,
		Docs:            bags,
		Topics:          cfg.Topics,
		TopN:            cfg.TopN,
	}
	return m, nil
}

// clamp - fill in zero values and keep the topic count sane
func clamp(cfg LDAConfig) LDAConfig {
	def := DefaultLDAConfig()
	if cfg.Topics < 1 {
		cfg.Topics = def.Topics
	}
	if cfg.Topics > vv.LDAMAXTOPICS {
		cfg.Topics = vv.LDAMAXTOPICS
	}
	if cfg.Iterations < 1 {
		cfg.Iterations = def.Iterations
	}
	if cfg.TransformationPasses < 1 {
		cfg.TransformationPasses = cfg.Iterations / 2
	}
	if cfg.Goroutines < 1 || cfg.Goroutines > runtime.NumCPU() {
		cfg.Goroutines = runtime.NumCPU()
	}
	if cfg.ChangeEvalFrq < 1 {
		cfg.ChangeEvalFrq = def.ChangeEvalFrq
	}
	if cfg.PerplexEvalFrq < 1 {
		cfg.PerplexEvalFrq = def.PerplexEvalFrq
	}
	if cfg.PerplexTol <= 0 {
		cfg.PerplexTol = def.PerplexTol
	}
	if cfg.TopN < 1 {
		cfg.TopN = def.TopN
	}
	return cfg
}

func allblank(ss []string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

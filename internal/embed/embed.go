//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package embed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model"
	"github.com/e-gun/wego/pkg/model/glove"
	"github.com/e-gun/wego/pkg/model/lexvec"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"
	"github.com/olekukonko/tablewriter"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var Msg = lnch.Msg

var ErrNoText = errors.New("nothing to embed")

const (
	MODELW2V    = "w2v"
	MODELGLOVE  = "glove"
	MODELLEXVEC = "lexvec"
	PREFIX      = "emb-"
)

// Config - which wego model to train and the options for each
type Config struct {
	Model      string
	Neighbours int
	Probes     int
	W2V        word2vec.Options
	GloVe      glove.Options
	LexVec     lexvec.Options
}

// DefaultConfig - the counts are low: the bundled corpus is small
func DefaultConfig() Config {
	nc := runtime.NumCPU()
	return Config{
		Model:      MODELW2V,
		Neighbours: vv.VECTORNEIGHBORS,
		Probes:     vv.VECTORPROBES,
		W2V: word2vec.Options{
			BatchSize:          1024,
			Dim:                50,
			DocInMemory:        true,
			Goroutines:         nc,
			Initlr:             0.025,
			Iter:               15,
			LogBatch:           100000,
			MaxCount:           -1,
			MaxDepth:           150,
			MinCount:           3,
			MinLR:              0.0000025,
			ModelType:          "skipgram", // "cbow" and "skipgram" available
			NegativeSampleSize: 5,
			OptimizerType:      "hs",
			SubsampleThreshold: 0.001,
			ToLower:            false,
			UpdateLRBatch:      100000,
			Verbose:            false,
			Window:             5,
		},
		GloVe: glove.Options{
			Alpha:              0.55,
			BatchSize:          1024,
			CountType:          "inc", // "inc", "prox" available; but we panic on "prox"
			Dim:                50,
			DocInMemory:        true,
			Goroutines:         nc,
			Initlr:             0.025,
			Iter:               25,
			LogBatch:           100000,
			MaxCount:           -1,
			MinCount:           3,
			SolverType:         "adagrad", // "sdg", "adagrad" available
			SubsampleThreshold: 0.001,
			ToLower:            false,
			Verbose:            false,
			Window:             5,
			Xmax:               90,
		},
		LexVec: lexvec.Options{
			BatchSize:          1024,
			Dim:                50,
			DocInMemory:        true,
			Goroutines:         nc,
			Initlr:             0.025,
			Iter:               15,
			LogBatch:           100000,
			MaxCount:           -1,
			MinCount:           3,
			MinLR:              0.025 * 1.0e-4,
			NegativeSampleSize: 5,
			RelationType:       "ppmi", // "ppmi", "pmi", "co", "logco" are available; "co" will fail to model
			Smooth:             0.75,
			SubsampleThreshold: 1.0e-3,
			ToLower:            false,
			UpdateLRBatch:      100000,
			Verbose:            false,
			Window:             5,
		},
	}
}

// TextBlock - one doc per line, words split by spaces: what wego wants to read
func TextBlock(docs [][]string) string {
	var sb strings.Builder
	for _, d := range docs {
		if len(d) == 0 {
			continue
		}
		sb.WriteString(strings.Join(d, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Train - fit the configured model and hand back its vectors
func Train(ctx context.Context, docs [][]string, cfg Config) (embedding.Embeddings, error) {
	const (
		FAIL1 = "Train(): model initialization failed: %w"
		FAIL2 = "Train(): failed to train vector embeddings: %w"
		FAIL3 = "Train(): failed to save vector embeddings: %w"
		FAIL4 = "Train(): failed to load vector embeddings: %w"
		FAIL5 = "Train(): unknown model type '%s'"
		MSG1  = "Train(): trained a %s model of %s words (%.3fs)"
	)

	thetext := TextBlock(docs)
	if strings.TrimSpace(thetext) == "" {
		return nil, ErrNoText
	}

	start := time.Now()
	var vmodel model.Model
	var err error
	switch cfg.Model {
	case MODELGLOVE:
		vmodel, err = glove.NewForOptions(cfg.GloVe)
	case MODELLEXVEC:
		vmodel, err = lexvec.NewForOptions(cfg.LexVec)
	case MODELW2V, "":
		vmodel, err = word2vec.NewForOptions(cfg.W2V)
	default:
		return nil, fmt.Errorf(FAIL5, cfg.Model)
	}
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	// Train() cannot be interrupted; run it aside so a cancelled ctx can return at once
	done := make(chan error, 1)
	go func() {
		done <- trainandreport(vmodel, cfg.Model, thetext)
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err = <-done:
	}
	if err != nil {
		return nil, fmt.Errorf(FAIL2, err)
	}

	// use buffers; skip the disk
	var buf bytes.Buffer
	if err = vmodel.Save(&buf, vector.Agg); err != nil {
		return nil, fmt.Errorf(FAIL3, err)
	}
	embs, err := embedding.Load(&buf)
	if err != nil {
		return nil, fmt.Errorf(FAIL4, err)
	}

	Msg.PEEK(fmt.Sprintf(MSG1, cfg.Model, Msg.Num(len(embs)), time.Since(start).Seconds()))
	return embs, nil
}

// trainandreport - w2v and lexvec only return from Train() once their Reporter() has taken the halt signal;
// so Reporter() runs alongside and both of its channels are drained until Train() is done; glove never halts its Reporter()
func trainandreport(vmodel model.Model, modeltype string, thetext string) error {
	const (
		MSG1  = "Train(): %s iteration %d"
		PAUSE = vv.WSPOLLINGPAUSE / 10
	)

	trained := make(chan error, 1)
	go func() {
		// input for Train() is 'io.ReadSeeker'
		trained <- vmodel.Train(strings.NewReader(thetext))
	}()

	// nil channels never deliver: glove just waits on 'trained'
	var ct chan int
	var rep chan string
	if modeltype != MODELGLOVE {
		ct = make(chan int)
		rep = make(chan string)
		go vmodel.Reporter(ct, rep)
	}

	seen := -1
	for {
		select {
		case err := <-trained:
			return err
		case in := <-ct:
			if in != seen {
				seen = in
				Msg.TMI(fmt.Sprintf(MSG1, modeltype, in))
			}
		case <-rep:
		}
		time.Sleep(PAUSE)
	}
}

// Fingerprint - the store key for a model of these docs under these settings
func Fingerprint(docs [][]string, cfg Config) string {
	return PREFIX + store.Fingerprint(cfg, docs)
}

// TrainOrFetch - a stored model for the same docs and settings is reused
func TrainOrFetch(ctx context.Context, st store.Store, docs [][]string, cfg Config) (embedding.Embeddings, error) {
	const (
		MSG1 = "TrainOrFetch(): fetching stored model %s"
		MSG2 = "TrainOrFetch(): generating a model; it will be stored as %s"
	)
	fp := Fingerprint(docs, cfg)

	ok, err := st.Check(ctx, fp)
	if err != nil {
		return nil, err
	}
	if ok {
		Msg.FYI(fmt.Sprintf(MSG1, fp))
		var embs embedding.Embeddings
		if err = st.Fetch(ctx, fp, &embs); err != nil {
			return nil, err
		}
		return embs, nil
	}

	Msg.FYI(fmt.Sprintf(MSG2, fp))
	embs, err := Train(ctx, docs, cfg)
	if err != nil {
		return nil, err
	}
	if err = st.Add(ctx, fp, embs); err != nil {
		return nil, err
	}
	return embs, nil
}

// Neighbour - one of the words nearest to a probe
type Neighbour struct {
	Word       string
	Similarity float64
}

// Neighbours - the k nearest words to word by cosine similarity
func Neighbours(embs embedding.Embeddings, word string, k int) ([]Neighbour, error) {
	const (
		FAIL1 = "Neighbours(): failed to produce a Searcher: %w"
		FAIL2 = "Neighbours(): '%s': %w"
	)
	searcher, err := search.New(embs...)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}
	nn, err := searcher.SearchInternal(word, k)
	if err != nil {
		return nil, fmt.Errorf(FAIL2, word, err)
	}
	out := make([]Neighbour, len(nn))
	for i, n := range nn {
		out[i] = Neighbour{Word: n.Word, Similarity: n.Similarity}
	}
	return out, nil
}

// Report - a table of neighbours for each probe word; words the model never saw are noted and skipped
func Report(w io.Writer, embs embedding.Embeddings, probes []string, k int) {
	const (
		MISS = "(no vector for '%s')\n"
	)
	for _, p := range probes {
		nn, err := Neighbours(embs, p, k)
		if err != nil {
			_, _ = fmt.Fprintf(w, MISS, p)
			continue
		}
		tw := tablewriter.NewWriter(w)
		tw.SetAutoFormatHeaders(false)
		tw.SetHeader([]string{"Rank", "Neighbour of " + p, "Similarity"})
		for i, n := range nn {
			tw.Append([]string{strconv.Itoa(i + 1), n.Word, fmt.Sprintf("%.4f", n.Similarity)})
		}
		tw.Render()
	}
}

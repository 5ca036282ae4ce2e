//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/charnn"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/charts"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/corpus"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Generate - train the character model on the corpus, sampling after every epoch, then chart the losses
func Generate(ctx context.Context, env Env, p Progress, w io.Writer) error {
	const (
		STAGE = "generate"
		MSG1  = "%s characters, alphabet of %d, %s windows"
		MSG2  = "resuming from %s epoch %d (loss %.4f)"
		MSG3  = "epoch %d/%d: loss %.4f"
		MSG4  = "chart written to %s"
		WARN1 = "the stored checkpoints were trained on a different alphabet; starting afresh"
		FAIL1 = "Generate(): %w"
		CHART = "generate-%s.html"
		TITLE = "character model loss per epoch"
	)
	start := time.Now()
	cfg := env.Set.CharNN

	c, err := corpus.Load(env.Cfg.CorpusFile)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	text := strings.ToLower(corpus.Clean(c.Raw))
	alph := charnn.NewAlphabet(text)
	ex, err := charnn.Windows(alph.Encode(text), cfg.MaxLen, cfg.Step)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	p.Report(STAGE, fmt.Sprintf(MSG1, Msg.Num(len([]rune(text))), alph.Len(), Msg.Num(len(ex))))

	prefix := vv.CHARCKPREFIX + "-" + c.Name
	model := charnn.NewLSTM(alph.Len(), cfg.Hidden, rand.New(rand.NewSource(cfg.Seed)))

	if env.Cfg.Resume {
		ck, best, e := charnn.LoadBest(ctx, env.Store, prefix)
		switch {
		case errors.Is(e, store.ErrNotFound):
			// nothing to resume
		case e != nil:
			return fmt.Errorf(FAIL1, e)
		case !alph.Same(charnn.FromRunes(ck.Alphabet)):
			Msg.WARN(WARN1)
		default:
			model = best
			cfg.InitialEpoch = ck.Epoch
			p.Report(STAGE, fmt.Sprintf(MSG2, prefix, ck.Epoch, ck.Loss))
		}
	}
	Msg.Timer("E1", "character windows built", start, start)

	progress := func(epoch int, loss float64) error {
		p.Report(STAGE, fmt.Sprintf(MSG3, epoch, cfg.Epochs, loss))
		return nil
	}

	hist, err := charnn.Train(ctx, model, ex, cfg,
		charnn.CheckpointCallback(ctx, env.Store, prefix, model, alph),
		charnn.SampleCallback(w, model, alph, text, cfg, rand.New(rand.NewSource(cfg.Seed+1))),
		progress)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	Msg.Timer("E2", fmt.Sprintf("%d epochs of character model training", len(hist)), start, start)

	if len(hist) == 0 {
		return nil
	}
	xs := make([]string, len(hist))
	for i := range hist {
		xs[i] = strconv.Itoa(cfg.InitialEpoch + i + 1)
	}
	fp, err := charts.ToFile(env.Cfg.OutputDir, fmt.Sprintf(CHART, c.Name), func(cw io.Writer) error {
		return charts.Line(cw, TITLE, xs, hist)
	})
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	p.Report(STAGE, fmt.Sprintf(MSG4, fp))
	return nil
}

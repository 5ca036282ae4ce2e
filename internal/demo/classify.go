//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/charts"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/classify"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/newsgroups"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"io"
	"time"
)

const (
	CLSPREFIX = "cls-"
)

// Classify - fetch the newsgroups, vectorise, fit both classifiers, and score them on the held-out split
func Classify(ctx context.Context, env Env, p Progress, w io.Writer) error {
	const (
		STAGE = "classify"
		MSG1  = "%s training and %s test documents"
		MSG2  = "tf-idf + svd: %d components"
		MSG3  = "%s: accuracy %.4f, macro f1 %.4f"
		MSG4  = "chart written to %s"
		FAIL1 = "Classify(): %w"
		CHART = "classify-%s.html"
		TITLE = "%s: f1 per category"
	)
	start := time.Now()
	s := env.Set.Classify

	ds, err := newsgroups.Fetch(ctx, s.Newsgroups)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	p.Report(STAGE, fmt.Sprintf(MSG1, Msg.Num(len(ds.Train)), Msg.Num(len(ds.Test))))
	previous := time.Now()
	Msg.Timer("D1", "newsgroups fetched", start, start)

	trtx, trlb := textsandlabels(ds.Train)
	tetx, telb := textsandlabels(ds.Test)

	ft, err := classify.Vectorise(trtx, tetx, s.Model.Components, env.Set.Stops)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	p.Report(STAGE, fmt.Sprintf(MSG2, ft.K))
	Msg.Timer("D2", "documents vectorised", start, previous)
	previous = time.Now()

	for _, c := range []classify.Classifier{classify.NewGaussianNB(s.Model), classify.NewLinearSVM(s.Model)} {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = c.Fit(ft.Train, trlb); err != nil {
			return fmt.Errorf(FAIL1, err)
		}
		rep := classify.Evaluate(c.Name(), telb, c.Predict(ft.Test), ds.Categories)
		p.Report(STAGE, fmt.Sprintf(MSG3, c.Name(), rep.Accuracy, rep.MacroF1))
		rep.Write(w)
		Msg.Timer("D3", c.Name()+" fitted and scored", start, previous)
		previous = time.Now()

		fp := CLSPREFIX + c.Name() + "-" + store.Fingerprint(s, trtx)
		if err = classify.Save(ctx, env.Store, fp, c); err != nil {
			return fmt.Errorf(FAIL1, err)
		}

		labels, values := rep.F1s()
		var cf string
		cf, err = charts.ToFile(env.Cfg.OutputDir, fmt.Sprintf(CHART, c.Name()), func(cw io.Writer) error {
			return charts.Bars(cw, fmt.Sprintf(TITLE, c.Name()), labels, values)
		})
		if err != nil {
			return fmt.Errorf(FAIL1, err)
		}
		p.Report(STAGE, fmt.Sprintf(MSG4, cf))
	}
	return nil
}

func textsandlabels(dd []newsgroups.Document) ([]string, []int) {
	tx := make([]string, len(dd))
	lb := make([]int, len(dd))
	for i, d := range dd {
		tx[i] = d.Text
		lb[i] = d.Label
	}
	return tx, lb
}

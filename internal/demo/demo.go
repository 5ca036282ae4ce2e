//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"bytes"
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/str"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"golang.org/x/sync/errgroup"
	"io"
	"strings"
	"time"
)

// Progress - where a runner reports the stage it has reached
type Progress interface {
	Report(stage, msg string)
}

// ProgressFunc - adapt a plain func to Progress
type ProgressFunc func(stage, msg string)

func (f ProgressFunc) Report(stage, msg string) { f(stage, msg) }

// Terminal - progress as NOTE messages
var Terminal = ProgressFunc(func(stage, msg string) {
	Msg.NOTE(fmt.Sprintf("[%s] %s", stage, msg))
})

// Discard - progress that goes nowhere
var Discard = ProgressFunc(func(string, string) {})

// Env - what every runner needs besides the context, the progress sink, and the writer
type Env struct {
	Cfg   str.CurrentConfiguration
	Set   Settings
	Store store.Store
}

// Runner - the shape shared by Annotate, Topics, Classify, Generate, Embed, and All
type Runner func(ctx context.Context, env Env, p Progress, w io.Writer) error

// Runners - demo name to runner
var Runners = map[string]Runner{
	vv.DEMOANNOTATE: Annotate,
	vv.DEMOTOPICS:   Topics,
	vv.DEMOCLASSIFY: Classify,
	vv.DEMOGENERATE: Generate,
	vv.DEMOEMBED:    Embed,
	vv.DEMOALL:      All,
}

// Run - look the demo up by name and run it
func Run(ctx context.Context, name string, env Env, p Progress, w io.Writer) error {
	const (
		FAIL = "unknown demo '%s'; available: %s"
		MSG1 = "running the '%s' demo"
	)
	r, ok := Runners[name]
	if !ok {
		return fmt.Errorf(FAIL, name, strings.Join(vv.KnownDemos, ", "))
	}
	Msg.FYI(fmt.Sprintf(MSG1, name))
	return r(ctx, env, p, w)
}

// All - three branches that share nothing: annotate then topics; classify; generate.
// Each branch writes to its own buffer and the buffers are copied out in that order.
func All(ctx context.Context, env Env, p Progress, w io.Writer) error {
	const (
		MSG1 = "all branches finished"
	)
	start := time.Now()

	var annotout, clsout, genout bytes.Buffer
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ps, err := parse(gctx, env, p)
		if err != nil {
			return err
		}
		report(&annotout, ps, env.Set.Annot.ReportLimit)
		return topicsfrom(gctx, env, ps, p, &annotout)
	})

	g.Go(func() error {
		return Classify(gctx, env, p, &clsout)
	})

	g.Go(func() error {
		return Generate(gctx, env, p, &genout)
	})

	err := g.Wait()
	for _, b := range []*bytes.Buffer{&annotout, &clsout, &genout} {
		if _, e := io.Copy(w, b); e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		return err
	}
	Msg.Timer("A", MSG1, start, start)
	return nil
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/demo"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/web"
	"github.com/pkg/profile"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var Msg = lnch.Msg

func main() {
	const (
		MSG1 = "%s demo finished"
		MSG2 = "%s model store at '%s'"
		SHUT = 10 * time.Second
	)

	// go tool pprof --pdf ./HipparchiaNLPNotebook ./cpu.pprof > profile.pdf

	lnch.LookForConfigFile()
	lnch.ConfigAtLaunch()
	cfg := *lnch.Config

	switch {
	case cfg.ProfileCPU:
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case cfg.ProfileMEM:
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if !cfg.QuietStart {
		lnch.PrintCopyright()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg)
	Msg.EC(err)
	defer st.Close()
	Msg.PEEK(fmt.Sprintf(MSG2, cfg.ModelStore, cfg.CheckpointDir))

	env := demo.Env{Cfg: cfg, Set: demo.LoadSettings(cfg), Store: st}

	if cfg.Serve {
		serve(ctx, env, SHUT)
		return
	}

	start := time.Now()
	if err = demo.Run(ctx, cfg.Demo, env, demo.Terminal, os.Stdout); err != nil {
		Msg.EC(err)
	}
	Msg.Timer("Z", fmt.Sprintf(MSG1, cfg.Demo), start, start)
}

// serve - block until the server stops or the process is told to quit
func serve(ctx context.Context, env demo.Env, grace time.Duration) {
	an, err := annot.New(env.Set.Annot, env.Set.Stops)
	Msg.EC(err)

	launch := func(ctx context.Context, name string, p demo.Progress, w io.Writer) error {
		return demo.Run(ctx, name, env, p, w)
	}
	srv := web.NewServer(ctx, env.Cfg, an, launch)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if e := srv.Shutdown(sctx); e != nil {
			Msg.WARN(e.Error())
		}
	}()

	if err = srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Msg.EC(err)
	}
	Msg.NOTE(vv.MYNAME + " has stopped serving")
}

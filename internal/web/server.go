//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/str"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"strings"
)

var Msg = lnch.Msg

type Server struct {
	Cfg    str.CurrentConfiguration
	Annot  annot.Annotator
	Runs   *Registry
	Launch Launcher
	Echo   *echo.Echo

	// runs outlive the requests that start them; they hang off this instead
	ctx context.Context
}

// NewServer - build the echo instance and its routes; nothing is served until Start
func NewServer(ctx context.Context, cfg str.CurrentConfiguration, an annot.Annotator, launch Launcher) *Server {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		if len(ua) == 0 {
			return 0, nil
		}
		return buf.WriteString(ua[len(ua)-1])
	}

	//
	// SETUP
	//

	e := echo.New()
	e.HideBanner = true
	e.HidePort = cfg.QuietStart

	if cfg.HostIP != vv.SERVEDFROMHOST {
		// anything not on localhost is assumed to be exposed
		e.Server.ReadTimeout = vv.TIMEOUTRD
		e.Server.WriteTimeout = vv.TIMEOUTWR
	}

	switch cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))
	e.Use(middleware.Recover())

	s := &Server{
		Cfg:    cfg,
		Annot:  an,
		Runs:   NewRegistry(vv.RUNSKEPT),
		Launch: launch,
		Echo:   e,
		ctx:    ctx,
	}

	//
	// ROUTES
	//

	// [a] index

	e.GET("/", s.RtIndex)

	// [b] annotation ("rt-annotate.go")

	e.POST("/annotate", s.RtAnnotate) // body is plain text; answer is the annotated Doc

	// [c] charts ("rt-charts.go")

	e.GET("/charts/:file", s.RtCharts) // '/charts/topics-westhaven.html'

	// [d] runs ("rt-runs.go")

	e.GET("/run/:demo", s.RtRun)            // '/run/topics'
	e.GET("/run/status/:id", s.RtRunStatus) // '/run/status/8e1d...?from=3'

	// [e] websocket ("rt-websocket.go")

	e.GET("/ws", s.RtWebsocket)

	return s
}

// Start - this blocks until the server stops
func (s *Server) Start() error {
	const (
		MSG1 = "serving on http://%s"
	)
	addr := fmt.Sprintf("%s:%d", s.Cfg.HostIP, s.Cfg.HostPort)
	Msg.NOTE(fmt.Sprintf(MSG1, addr))
	return s.Echo.Start(addr)
}

// Shutdown - cancel every run and stop accepting requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.Runs.CancelAll()
	return s.Echo.Shutdown(ctx)
}

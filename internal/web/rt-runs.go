//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/labstack/echo/v4"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

type IndexJSON struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Demos   []string `json:"demos"`
	Routes  []string `json:"routes"`
}

type RunJSON struct {
	ID     string `json:"id"`
	Demo   string `json:"demo"`
	Status string `json:"status"`
	WS     string `json:"ws"`
}

// RtIndex - what can be asked for
func (s *Server) RtIndex(c echo.Context) error {
	var rr []string
	for _, r := range s.Echo.Routes() {
		rr = append(rr, r.Method+" "+r.Path)
	}
	slices.Sort(rr)
	ij := IndexJSON{
		Name:    vv.MYNAME,
		Version: vv.VERSION,
		Demos:   vv.KnownDemos,
		Routes:  slices.Compact(rr),
	}
	return gen.JSONresponse(c, ij)
}

// RtRun - start a demo in the background; the answer carries the id to poll or to send down the websocket
func (s *Server) RtRun(c echo.Context) error {
	const (
		FAIL = "unknown demo '%s'; available: %s"
		MSG1 = "RtRun(): '%s' launched as %s"
	)
	d := c.Param("demo")
	if !slices.Contains(vv.KnownDemos, d) {
		return gen.JSONerror(c, http.StatusNotFound, fmt.Errorf(FAIL, d, strings.Join(vv.KnownDemos, ", ")))
	}

	r := s.Runs.Start(s.ctx, d, s.Launch)
	Msg.PEEK(fmt.Sprintf(MSG1, d, r.ID))

	rj := RunJSON{
		ID:     r.ID,
		Demo:   d,
		Status: "/run/status/" + r.ID,
		WS:     "/ws",
	}
	return gen.JSONresponse(c, rj)
}

// RtRunStatus - "?from=n" skips the first n progress messages
func (s *Server) RtRunStatus(c echo.Context) error {
	const (
		FAIL = "no run with that id"
	)
	r, ok := s.Runs.Get(c.Param("id"))
	if !ok {
		return gen.JSONerror(c, http.StatusNotFound, errors.New(FAIL))
	}
	from, _ := strconv.Atoi(c.QueryParam("from"))
	return gen.JSONresponse(c, r.Status(from))
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"errors"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/labstack/echo/v4"
	"net/http"
	"os"
	"path/filepath"
)

// RtCharts - hand over a rendered chart page from the output directory; nothing outside it is reachable
func (s *Server) RtCharts(c echo.Context) error {
	const (
		FAIL = "no such chart"
		EXT  = ".html"
	)
	name := c.Param("file")
	if name == "" || filepath.Base(name) != name || filepath.Ext(name) != EXT {
		return gen.JSONerror(c, http.StatusNotFound, errors.New(FAIL))
	}

	fp := filepath.Join(s.Cfg.OutputDir, name)
	if fi, err := os.Stat(fp); err != nil || fi.IsDir() {
		return gen.JSONerror(c, http.StatusNotFound, errors.New(FAIL))
	}
	return c.File(fp)
}

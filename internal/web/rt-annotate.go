//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
	"strings"
)

// RtAnnotate - POST a text; get back its tokens, entities, and sentences as JSON
func (s *Server) RtAnnotate(c echo.Context) error {
	const (
		FAIL1 = "the text exceeds %d bytes"
		FAIL2 = "there is no text to annotate"
		FAIL3 = "RtAnnotate(): %s"
	)

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, vv.MAXINPUTLEN+1))
	if err != nil {
		return gen.JSONerror(c, http.StatusBadRequest, err)
	}
	if len(body) > vv.MAXINPUTLEN {
		return gen.JSONerror(c, http.StatusRequestEntityTooLarge, fmt.Errorf(FAIL1, vv.MAXINPUTLEN))
	}
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return gen.JSONerror(c, http.StatusBadRequest, errors.New(FAIL2))
	}

	doc, err := s.Annot.Annotate(c.Request().Context(), text)
	if err != nil {
		Msg.WARN(fmt.Sprintf(FAIL3, err.Error()))
		status := http.StatusInternalServerError
		if errors.Is(err, annot.ErrRemote) {
			status = http.StatusBadGateway
		}
		return gen.JSONerror(c, status, err)
	}
	return gen.JSONresponse(c, doc)
}

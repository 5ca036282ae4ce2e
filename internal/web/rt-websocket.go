//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"strings"
	"time"
)

var (
	Upgrader = websocket.Upgrader{}
)

// WSJSOut - one push down the websocket; Close is "open" until the run is done
type WSJSOut struct {
	V       []string `json:"value"`
	ID      string   `json:"ID"`
	Close   string   `json:"close"`
	Elapsed string   `json:"elapsed"`
	Error   string   `json:"error,omitempty"`
}

//
// THE ROUTE
//

// RtWebsocket - the client sends a run id and then gets progress messages until that run is done
func (s *Server) RtWebsocket(c echo.Context) error {
	const (
		FAILCON = "RtWebsocket(): ws connection failed"
		FAILID  = "RtWebsocket(): never received a run id"
		FAILRUN = "no run with the id '%s'"
	)

	ws, err := Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		Msg.NOTE(FAILCON)
		return nil
	}
	defer ws.Close()

	id, ok := receiveid(ws)
	if !ok {
		Msg.FYI(FAILID)
		return nil
	}

	r, ok := s.Runs.Get(id)
	if !ok {
		_ = ws.WriteJSON(WSJSOut{ID: id, Close: "closed", Error: fmt.Sprintf(FAILRUN, id)})
		return nil
	}

	s.wsmessageloop(c, ws, r)
	return nil
}

// receiveid - the first message is the id; quotes are tolerated
func receiveid(ws *websocket.Conn) (string, bool) {
	if err := ws.SetReadDeadline(time.Now().Add(vv.WSIDWAIT)); err != nil {
		return "", false
	}
	_, m, err := ws.ReadMessage()
	if err != nil {
		return "", false
	}
	_ = ws.SetReadDeadline(time.Time{})
	id := strings.TrimSpace(strings.ReplaceAll(string(m), `"`, ""))
	return id, id != ""
}

// wsmessageloop - push whatever is new every WSPOLLINGPAUSE; the last push has Close set to "closed"
func (s *Server) wsmessageloop(c echo.Context, ws *websocket.Conn, r *Run) {
	const (
		FAIL = "wsmessageloop(): client for %s went away"
	)
	next := 0
	for {
		st := r.Status(next)
		next = st.Next

		jso := WSJSOut{V: st.Messages, ID: r.ID, Close: "open", Elapsed: st.Elapsed}
		if st.Done {
			jso.Close = "closed"
			jso.Error = st.Error
		}

		if len(jso.V) > 0 || st.Done {
			if err := ws.WriteJSON(jso); err != nil {
				Msg.FYI(fmt.Sprintf(FAIL, r.ID))
				return
			}
		}
		if st.Done {
			return
		}

		select {
		case <-c.Request().Context().Done():
			return
		case <-time.After(vv.WSPOLLINGPAUSE):
		}
	}
}

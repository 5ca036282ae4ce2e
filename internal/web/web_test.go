//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/demo"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type echoannot struct{ err error }

func (e echoannot) Annotate(_ context.Context, text string) (annot.Doc, error) {
	if e.err != nil {
		return annot.Doc{}, e.err
	}
	var tt []annot.Token
	for i, w := range strings.Fields(text) {
		tt = append(tt, annot.Token{Index: i, Text: w, Head: -1})
	}
	return annot.Doc{Text: text, Tokens: tt, Sentences: []string{text}}, nil
}

// steps - a launcher that reports n stages and prints the demo name
func steps(n int, release <-chan struct{}) Launcher {
	return func(ctx context.Context, name string, p demo.Progress, w io.Writer) error {
		for i := 0; i < n; i++ {
			p.Report(name, fmt.Sprintf("step %d", i))
		}
		if release != nil {
			select {
			case <-release:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		_, _ = fmt.Fprintf(w, "report for %s", name)
		return nil
	}
}

func newtest(t *testing.T, an annot.Annotator, launch Launcher) *Server {
	cfg := *lnch.BuildDefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.QuietStart = true
	return NewServer(context.Background(), cfg, an, launch)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func wait(t *testing.T, s *Server, id string) RunStatus {
	// stays under the rate limit
	var st RunStatus
	require.Eventually(t, func() bool {
		rec := get(t, s, "/run/status/"+id)
		if rec.Code != http.StatusOK {
			return false
		}
		var polled RunStatus
		if json.Unmarshal(rec.Body.Bytes(), &polled) != nil {
			return false
		}
		st = polled
		return st.Done
	}, 5*time.Second, 25*time.Millisecond)
	return st
}

func TestIndex(t *testing.T) {
	s := newtest(t, echoannot{}, steps(0, nil))
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var ij IndexJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ij))
	assert.Equal(t, vv.KnownDemos, ij.Demos)
	assert.Contains(t, ij.Routes, "POST /annotate")
	assert.Contains(t, ij.Routes, "GET /ws")
}

func TestAnnotateRoute(t *testing.T) {
	s := newtest(t, echoannot{}, steps(0, nil))

	req := httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader("boats in the harbour"))
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc annot.Doc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Tokens, 4)
	assert.Equal(t, "harbour", doc.Tokens[3].Text)

	req = httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader("  \n"))
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader(strings.Repeat("a", vv.MAXINPUTLEN+1)))
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnnotateRemoteFailure(t *testing.T) {
	s := newtest(t, echoannot{err: fmt.Errorf("dial: %w", annot.ErrRemote)}, steps(0, nil))
	req := httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader("text"))
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "remote annotator failed")
}

func TestRunAndStatus(t *testing.T) {
	s := newtest(t, echoannot{}, steps(3, nil))

	rec := get(t, s, "/run/topics")
	require.Equal(t, http.StatusOK, rec.Code)
	var rj RunJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rj))
	assert.Equal(t, "topics", rj.Demo)
	assert.Equal(t, "/run/status/"+rj.ID, rj.Status)

	st := wait(t, s, rj.ID)
	assert.Equal(t, []string{"[topics] step 0", "[topics] step 1", "[topics] step 2"}, st.Messages)
	assert.Equal(t, "report for topics", st.Output)
	assert.Empty(t, st.Error)

	rec = get(t, s, "/run/status/"+rj.ID+"?from=2")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, []string{"[topics] step 2"}, st.Messages)
	assert.Equal(t, 3, st.Next)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/run/sentiment").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/run/status/nope").Code)
}

func TestRunFailureAndPanic(t *testing.T) {
	bad := func(ctx context.Context, name string, p demo.Progress, w io.Writer) error {
		if name == vv.DEMOGENERATE {
			panic("boom")
		}
		return errors.New("no corpus")
	}
	s := newtest(t, echoannot{}, bad)

	r := s.Runs.Start(context.Background(), vv.DEMOCLASSIFY, s.Launch)
	assert.Equal(t, "no corpus", wait(t, s, r.ID).Error)

	r = s.Runs.Start(context.Background(), vv.DEMOGENERATE, s.Launch)
	assert.Contains(t, wait(t, s, r.ID).Error, "panicked: boom")
}

func TestRegistryPrunesFinished(t *testing.T) {
	g := NewRegistry(2)
	release := make(chan struct{})
	running := g.Start(context.Background(), "all", steps(0, release))
	for i := 0; i < 3; i++ {
		r := g.Start(context.Background(), "embed", steps(0, nil))
		require.Eventually(t, r.isdone, time.Second, time.Millisecond)
	}
	g.Start(context.Background(), "embed", steps(0, nil))

	// the unfinished run is never dropped
	_, ok := g.Get(running.ID)
	assert.True(t, ok)
	assert.LessOrEqual(t, g.Len(), 3)

	running.Cancel()
	require.Eventually(t, running.isdone, time.Second, time.Millisecond)
	assert.ErrorIs(t, running.err, context.Canceled)
	close(release)
}

func TestCharts(t *testing.T) {
	s := newtest(t, echoannot{}, steps(0, nil))
	require.NoError(t, os.WriteFile(filepath.Join(s.Cfg.OutputDir, "topics-x.html"), []byte("<html>chart</html>"), 0644))

	rec := get(t, s, "/charts/topics-x.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chart")

	assert.Equal(t, http.StatusNotFound, get(t, s, "/charts/missing.html").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/charts/notes.txt").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/charts/..%2Fsecret.html").Code)
}

func TestWebsocketProgress(t *testing.T) {
	release := make(chan struct{})
	s := newtest(t, echoannot{}, steps(2, release))
	ts := httptest.NewServer(s.Echo)
	defer ts.Close()

	r := s.Runs.Start(context.Background(), vv.DEMOEMBED, s.Launch)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`"`+r.ID+`"`)))

	var seen []string
	var last WSJSOut
	for {
		var jso WSJSOut
		require.NoError(t, ws.ReadJSON(&jso))
		assert.Equal(t, r.ID, jso.ID)
		seen = append(seen, jso.V...)
		if len(seen) == 2 && release != nil {
			close(release)
			release = nil
		}
		if jso.Close == "closed" {
			last = jso
			break
		}
	}
	assert.Equal(t, []string{"[embed] step 0", "[embed] step 1"}, seen)
	assert.Empty(t, last.Error)
}

func TestWebsocketUnknownRun(t *testing.T) {
	s := newtest(t, echoannot{}, steps(0, nil))
	ts := httptest.NewServer(s.Echo)
	defer ts.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("missing")))

	var jso WSJSOut
	require.NoError(t, ws.ReadJSON(&jso))
	assert.Equal(t, "closed", jso.Close)
	assert.Contains(t, jso.Error, "no run with the id 'missing'")
}

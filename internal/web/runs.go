//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/demo"
	"github.com/google/uuid"
	"io"
	"sync"
	"time"
)

//
// RUN REGISTRY: the run routes write; the status route and the websocket read
//

// Launcher - start the named demo; progress goes to p and the printed report to w
type Launcher func(ctx context.Context, name string, p demo.Progress, w io.Writer) error

// Run - one demo running (or finished) in the background
type Run struct {
	ID       string
	Demo     string
	Launched time.Time

	cancel   context.CancelFunc
	mu       sync.Mutex
	msgs     []string
	out      bytes.Buffer
	done     bool
	finished time.Time
	err      error
}

// RunStatus - what /run/status/:id and the websocket hand back
type RunStatus struct {
	ID       string   `json:"id"`
	Demo     string   `json:"demo"`
	Messages []string `json:"messages"`
	Next     int      `json:"next"`
	Done     bool     `json:"done"`
	Error    string   `json:"error,omitempty"`
	Elapsed  string   `json:"elapsed"`
	Output   string   `json:"output,omitempty"`
}

// Report - Run is a demo.Progress
func (r *Run) Report(stage, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, fmt.Sprintf("[%s] %s", stage, msg))
}

// Write - Run is also the io.Writer the demo prints its report to
func (r *Run) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.Write(p)
}

// Status - the messages from index 'from' onwards; the report text is only included once the run is done
func (r *Run) Status(from int) RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	from = min(max(from, 0), len(r.msgs))
	st := RunStatus{
		ID:       r.ID,
		Demo:     r.Demo,
		Messages: append([]string{}, r.msgs[from:]...),
		Next:     len(r.msgs),
		Done:     r.done,
	}

	end := time.Now()
	if r.done {
		end = r.finished
		st.Output = r.out.String()
		if r.err != nil {
			st.Error = r.err.Error()
		}
	}
	st.Elapsed = fmt.Sprintf("%.1fs", end.Sub(r.Launched).Seconds())
	return st
}

func (r *Run) Cancel() { r.cancel() }

func (r *Run) finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = true
	r.finished = time.Now()
	r.err = err
}

func (r *Run) isdone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

type Registry struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	order []string
	keep  int
}

// NewRegistry - keep is how many runs to remember before the oldest finished ones are dropped
func NewRegistry(keep int) *Registry {
	return &Registry{runs: make(map[string]*Run), keep: keep}
}

// Start - launch in a goroutine and hand back the Run at once
func (g *Registry) Start(parent context.Context, name string, launch Launcher) *Run {
	const (
		MSG1 = "run %s (%s) finished in %s"
		MSG2 = "run %s (%s) failed: %s"
		MSG3 = "run %s (%s) was cancelled"
		FAIL = "run %s panicked: %v"
	)
	ctx, cancel := context.WithCancel(parent)
	r := &Run{ID: uuid.New().String(), Demo: name, Launched: time.Now(), cancel: cancel}

	g.mu.Lock()
	g.runs[r.ID] = r
	g.order = append(g.order, r.ID)
	g.prune()
	g.mu.Unlock()

	go func() {
		defer cancel()
		var err error
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf(FAIL, r.ID, p)
			}
			r.finish(err)
			switch {
			case errors.Is(err, context.Canceled):
				Msg.NOTE(fmt.Sprintf(MSG3, r.ID, name))
			case err != nil:
				Msg.WARN(fmt.Sprintf(MSG2, r.ID, name, err.Error()))
			default:
				Msg.FYI(fmt.Sprintf(MSG1, r.ID, name, time.Since(r.Launched).Round(time.Millisecond)))
			}
		}()
		err = launch(ctx, name, r, r)
	}()
	return r
}

func (g *Registry) Get(id string) (*Run, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.runs[id]
	return r, ok
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.runs)
}

// CancelAll - used at shutdown
func (g *Registry) CancelAll() {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, r := range g.runs {
		r.Cancel()
	}
}

// prune - forget the oldest finished runs beyond g.keep; unfinished runs always stay; call with g.mu held
func (g *Registry) prune() {
	if g.keep < 1 || len(g.order) <= g.keep {
		return
	}
	excess := len(g.order) - g.keep
	kept := g.order[:0]
	for _, id := range g.order {
		if excess > 0 && g.runs[id].isdone() {
			delete(g.runs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	g.order = kept
}

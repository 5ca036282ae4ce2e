//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"math"
	"strconv"
	"strings"
)

type Checkpoint struct {
	Epoch    int
	Loss     float64
	Alphabet []rune
	Params   Params
}

// CheckpointName - <prefix>-<epoch:02d>-<loss:.4f>
func CheckpointName(prefix string, epoch int, loss float64) string {
	return fmt.Sprintf("%s-%02d-%.4f", prefix, epoch, loss)
}

// CheckpointCallback - store the model whenever the epoch loss is the best seen so far
func CheckpointCallback(ctx context.Context, st store.Store, prefix string, model *LSTM, alph Alphabet) Callback {
	const (
		MSG1 = "epoch %02d: loss improved from %.5f to %.5f, saving model to %s"
		MSG2 = "epoch %02d: loss did not improve from %.5f"
	)
	best := math.Inf(1)
	return func(epoch int, loss float64) error {
		if !(loss < best) {
			Msg.PEEK(fmt.Sprintf(MSG2, epoch, best))
			return nil
		}
		name := CheckpointName(prefix, epoch, loss)
		ck := Checkpoint{Epoch: epoch, Loss: loss, Alphabet: alph.Chars, Params: model.Params()}
		if err := st.Add(ctx, name, ck); err != nil {
			return fmt.Errorf("checkpoint %s: %w", name, err)
		}
		Msg.FYI(fmt.Sprintf(MSG1, epoch, best, loss, name))
		best = loss
		return nil
	}
}

// LoadBest - the stored checkpoint with the lowest loss; store.ErrNotFound if there are none
func LoadBest(ctx context.Context, st store.Store, prefix string) (Checkpoint, *LSTM, error) {
	names, err := st.List(ctx, prefix+"-")
	if err != nil {
		return Checkpoint{}, nil, err
	}

	bestname := ""
	bestloss := math.Inf(1)
	for _, n := range names {
		l, ok := lossfromname(n)
		if ok && l < bestloss {
			bestname, bestloss = n, l
		}
	}
	if bestname == "" {
		return Checkpoint{}, nil, fmt.Errorf("%s: %w", prefix, store.ErrNotFound)
	}

	var ck Checkpoint
	if err = st.Fetch(ctx, bestname, &ck); err != nil {
		return Checkpoint{}, nil, err
	}
	model, err := FromParams(ck.Params)
	if err != nil {
		return Checkpoint{}, nil, err
	}
	return ck, model, nil
}

func lossfromname(n string) (float64, bool) {
	i := strings.LastIndex(n, "-")
	if i < 0 {
		return 0, false
	}
	l, err := strconv.ParseFloat(n[i+1:], 64)
	if err != nil {
		return 0, false
	}
	return l, true
}

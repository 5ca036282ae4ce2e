//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"math/rand"
	"runtime"
	"sync"
	"time"
)

var Msg = lnch.Msg

type Config struct {
	MaxLen       int
	Step         int
	Hidden       int
	BatchSize    int
	Epochs       int
	InitialEpoch int
	LearningRate float64
	Rho          float64
	Epsilon      float64
	Clip         float64
	Seed         int64
	Diversities  []float64
	GenerateLen  int
	Workers      int
}

func DefaultConfig() Config {
	return Config{
		MaxLen:       vv.CHARMAXLEN,
		Step:         vv.CHARSTEP,
		Hidden:       vv.CHARHIDDEN,
		BatchSize:    vv.CHARBATCH,
		Epochs:       vv.CHAREPOCHS,
		LearningRate: vv.CHARLR,
		Rho:          vv.CHARRHO,
		Epsilon:      vv.CHAREPSILON,
		Clip:         vv.CHARCLIP,
		Seed:         vv.CHARSEED,
		Diversities:  append([]float64(nil), vv.CharDiversities...),
		GenerateLen:  vv.CHARGENLEN,
		Workers:      runtime.NumCPU(),
	}
}

// Callback - called at the end of every epoch; epochs count from 1; an error stops the training
type Callback func(epoch int, loss float64) error

// Train - mini-batch RMSprop over shuffled examples; returns the mean loss of each epoch run
func Train(ctx context.Context, model *LSTM, examples []Example, cfg Config, callbacks ...Callback) ([]float64, error) {
	const (
		FAIL1 = "Train(): no examples"
		FAIL2 = "Train(): id %d is outside an alphabet of %d"
		MSG1  = "Train(): epoch %d/%d: loss %.4f (%s examples in %.1fs)"
	)

	if len(examples) == 0 {
		return nil, errors.New(FAIL1)
	}
	inrange := func(x int) bool { return x >= 0 && x < model.Vocab }
	for _, e := range examples {
		if !inrange(e.Target) {
			return nil, fmt.Errorf(FAIL2, e.Target, model.Vocab)
		}
		for _, x := range e.Input {
			if !inrange(x) {
				return nil, fmt.Errorf(FAIL2, x, model.Vocab)
			}
		}
	}

	bs := cfg.BatchSize
	if bs < 1 {
		bs = 1
	}
	workers := cfg.Workers
	if workers < 1 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	opt := NewRMSprop(cfg)
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}

	var history []float64
	for epoch := cfg.InitialEpoch; epoch < cfg.Epochs; epoch++ {
		start := time.Now()
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		total := float64(0)
		for _, batch := range gen.ChunkSlice(order, bs) {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			grads, loss := batchgradient(model, examples, batch, workers)
			total += loss
			grads.Scale(1 / float64(len(batch)))
			opt.Step(model, grads)
		}

		mean := total / float64(len(examples))
		history = append(history, mean)
		Msg.FYI(fmt.Sprintf(MSG1, epoch+1, cfg.Epochs, mean, Msg.Num(len(examples)), time.Since(start).Seconds()))

		for _, cb := range callbacks {
			if err := cb(epoch+1, mean); err != nil {
				return history, err
			}
		}
	}
	return history, nil
}

// batchgradient - split the batch over the workers; each sums into its own gradient, then those are summed
func batchgradient(model *LSTM, examples []Example, batch []int, workers int) (*LSTM, float64) {
	size := (len(batch) + workers - 1) / workers
	parts := gen.ChunkSlice(batch, size)

	grads := make([]*LSTM, len(parts))
	losses := make([]float64, len(parts))

	var wg sync.WaitGroup
	for w := range parts {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			g := model.Zeros()
			for _, i := range parts[w] {
				losses[w] += model.Backward(examples[i].Input, examples[i].Target, g)
			}
			grads[w] = g
		}(w)
	}
	wg.Wait()

	sum := grads[0]
	loss := losses[0]
	for w := 1; w < len(parts); w++ {
		sum.Add(grads[w])
		loss += losses[w]
	}
	return sum, loss
}

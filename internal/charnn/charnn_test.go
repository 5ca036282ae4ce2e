//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"bytes"
	"context"
	"errors"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestAlphabet(t *testing.T) {
	a := NewAlphabet("banana!")
	assert.Equal(t, []rune{'!', 'a', 'b', 'n'}, a.Chars)
	ids := a.Encode("ban?")
	assert.Equal(t, []int{2, 1, 3}, ids)
	assert.Equal(t, "ban", a.Decode(ids))
	assert.True(t, a.Same(FromRunes(a.Chars)))
	assert.False(t, a.Same(NewAlphabet("band")))
}

func TestWindows(t *testing.T) {
	ids := []int{0, 1, 2, 3, 4, 5, 6}
	ex, err := Windows(ids, 3, 2)
	require.NoError(t, err)
	require.Len(t, ex, 2)
	assert.Equal(t, Example{Input: []int{0, 1, 2}, Target: 3}, ex[0])
	assert.Equal(t, Example{Input: []int{2, 3, 4}, Target: 5}, ex[1])

	ex, err = Windows(ids, 3, 1)
	require.NoError(t, err)
	assert.Len(t, ex, 4)

	_, err = Windows(ids[:3], 3, 1)
	assert.ErrorIs(t, err, ErrCorpusTooShort)
}

func TestForwardIsADistribution(t *testing.T) {
	l := NewLSTM(5, 8, rand.New(rand.NewSource(1)))
	p := l.Forward([]int{0, 3, 4, 1})
	require.Len(t, p, 5)
	sum := 0.0
	for _, v := range p {
		assert.Greater(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 1.0, l.B.At(8, 0), 1e-12)
	assert.InDelta(t, 0.0, l.B.At(0, 0), 1e-12)
}

func TestGradientCheck(t *testing.T) {
	const (
		H   = 1e-5
		TOL = 1e-4
	)
	rng := rand.New(rand.NewSource(3))
	l := NewLSTM(4, 5, rng)
	// make the biases non-trivial too
	for r := 0; r < 20; r++ {
		l.B.Set(r, 0, rng.Float64()-0.5)
	}

	seq := []int{1, 3, 0, 2, 2}
	target := 3

	g := l.Zeros()
	l.Backward(seq, target, g)

	lm, gm := l.mats(), g.mats()
	for k := range lm {
		raw := lm[k].RawMatrix().Data
		graw := gm[k].RawMatrix().Data
		for _, idx := range []int{0, len(raw) / 2, len(raw) - 1} {
			orig := raw[idx]
			raw[idx] = orig + H
			up := l.Loss(seq, target)
			raw[idx] = orig - H
			down := l.Loss(seq, target)
			raw[idx] = orig

			numeric := (up - down) / (2 * H)
			diff := math.Abs(numeric - graw[idx])
			rel := diff / math.Max(1e-8, math.Abs(numeric)+math.Abs(graw[idx]))
			assert.True(t, diff < 1e-7 || rel < TOL, "matrix %d index %d: numeric %g analytic %g", k, idx, numeric, graw[idx])
		}
	}
}

func TestParamsRoundTrip(t *testing.T) {
	l := NewLSTM(3, 4, rand.New(rand.NewSource(2)))
	back, err := FromParams(l.Params())
	require.NoError(t, err)
	assert.Equal(t, l.Forward([]int{0, 1, 2}), back.Forward([]int{0, 1, 2}))

	p := l.Params()
	p.Wy = p.Wy[1:]
	_, err = FromParams(p)
	assert.Error(t, err)
}

func TestRMSpropClips(t *testing.T) {
	l := NewLSTM(2, 2, rand.New(rand.NewSource(4)))
	g := l.Zeros()
	g.By.Set(0, 0, 300)
	g.By.Set(1, 0, 400)

	before := l.By.At(0, 0)
	opt := &RMSprop{LR: 0.01, Rho: 0.9, Epsilon: 1e-7, Clip: 5}
	opt.Step(l, g)
	assert.InDelta(t, 5.0, g.Norm(), 1e-9)
	// first step of rmsprop moves each weight by about lr / sqrt(1-rho)
	assert.InDelta(t, before-0.01/math.Sqrt(0.1), l.By.At(0, 0), 1e-6)
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	probs := []float64{0.1, 0.7, 0.2}
	assert.Equal(t, 1, Sample(probs, 0, rng))

	// a cold temperature is nearly argmax
	hits := 0
	for i := 0; i < 200; i++ {
		if Sample(probs, 0.05, rng) == 1 {
			hits++
		}
	}
	assert.Greater(t, hits, 195)

	// a zero probability is never drawn
	for i := 0; i < 200; i++ {
		assert.NotEqual(t, 2, Sample([]float64{0.5, 0.5, 0}, 1.2, rng))
	}
}

func TestTrainLowersLossAndCheckpoints(t *testing.T) {
	ctx := context.Background()
	text := strings.Repeat("abcd ", 60)
	alph := NewAlphabet(text)
	ex, err := Windows(alph.Encode(text), 6, 1)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.MaxLen = 6
	cfg.Hidden = 12
	cfg.BatchSize = 16
	cfg.Epochs = 6
	cfg.Workers = 2
	cfg.GenerateLen = 10
	cfg.Diversities = []float64{0.5}

	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)

	model := NewLSTM(alph.Len(), cfg.Hidden, rand.New(rand.NewSource(cfg.Seed)))
	var samples bytes.Buffer
	hist, err := Train(ctx, model, ex, cfg,
		CheckpointCallback(ctx, st, "test", model, alph),
		SampleCallback(&samples, model, alph, text, cfg, rand.New(rand.NewSource(9))))
	require.NoError(t, err)
	require.Len(t, hist, 6)
	assert.Less(t, hist[5], hist[0])
	assert.Contains(t, samples.String(), "diversity: 0.5")

	names, err := st.List(ctx, "test-")
	require.NoError(t, err)
	assert.NotEmpty(t, names)
	assert.Equal(t, CheckpointName("test", 1, hist[0]), names[0])

	ck, best, err := LoadBest(ctx, st, "test")
	require.NoError(t, err)
	lowest := hist[0]
	for _, h := range hist {
		lowest = math.Min(lowest, h)
	}
	assert.InDelta(t, lowest, ck.Loss, 1e-9)
	assert.True(t, alph.Same(FromRunes(ck.Alphabet)))

	gen := Generate(best, alph, "abcd a", 20, 0.2, rand.New(rand.NewSource(1)))
	assert.Len(t, []rune(gen), 20)
	for _, r := range gen {
		assert.Contains(t, alph.Chars, r)
	}
}

func TestTrainStops(t *testing.T) {
	model := NewLSTM(3, 4, rand.New(rand.NewSource(1)))
	ex := []Example{{Input: []int{0, 1}, Target: 2}}
	cfg := DefaultConfig()
	cfg.Epochs = 3

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Train(ctx, model, ex, cfg)
	assert.ErrorIs(t, err, context.Canceled)

	halt := errors.New("halt")
	hist, err := Train(context.Background(), model, ex, cfg, func(epoch int, loss float64) error { return halt })
	assert.ErrorIs(t, err, halt)
	assert.Len(t, hist, 1)

	_, err = Train(context.Background(), model, []Example{{Input: []int{7}, Target: 0}}, cfg)
	assert.Error(t, err)
}

func TestLoadBestEmpty(t *testing.T) {
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	_, _, err = LoadBest(context.Background(), st, "charnn")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

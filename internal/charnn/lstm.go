//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"fmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
	"math/rand"
)

// LSTM - one recurrent layer over one-hot characters followed by a softmax over the alphabet
//
// the gate blocks of Wx, Wh and B are stacked in the order input, forget, output, candidate
type LSTM struct {
	Vocab  int
	Hidden int
	Wx     *mat.Dense // 4H x V
	Wh     *mat.Dense // 4H x H
	B      *mat.Dense // 4H x 1
	Wy     *mat.Dense // V x H
	By     *mat.Dense // V x 1
}

// Params - a flat copy of the weights for checkpoints
type Params struct {
	Vocab  int
	Hidden int
	Wx     []float64
	Wh     []float64
	B      []float64
	Wy     []float64
	By     []float64
}

// NewLSTM - glorot-uniform weights; the forget gate starts with a bias of 1
func NewLSTM(vocab, hidden int, rng *rand.Rand) *LSTM {
	l := zeros(vocab, hidden)
	glorot(l.Wx, vocab, 4*hidden, rng)
	glorot(l.Wh, hidden, 4*hidden, rng)
	glorot(l.Wy, hidden, vocab, rng)
	for r := hidden; r < 2*hidden; r++ {
		l.B.Set(r, 0, 1)
	}
	return l
}

func zeros(vocab, hidden int) *LSTM {
	return &LSTM{
		Vocab:  vocab,
		Hidden: hidden,
		Wx:     mat.NewDense(4*hidden, vocab, nil),
		Wh:     mat.NewDense(4*hidden, hidden, nil),
		B:      mat.NewDense(4*hidden, 1, nil),
		Wy:     mat.NewDense(vocab, hidden, nil),
		By:     mat.NewDense(vocab, 1, nil),
	}
}

func glorot(m *mat.Dense, fanin, fanout int, rng *rand.Rand) {
	limit := math.Sqrt(6 / float64(fanin+fanout))
	raw := m.RawMatrix().Data
	for i := range raw {
		raw[i] = (rng.Float64()*2 - 1) * limit
	}
}

// mats - the weights in a fixed order; optimisers and gradients rely on it
func (l *LSTM) mats() []*mat.Dense {
	return []*mat.Dense{l.Wx, l.Wh, l.B, l.Wy, l.By}
}

// Zeros - an all-zero LSTM of the same shape; used to accumulate gradients
func (l *LSTM) Zeros() *LSTM {
	return zeros(l.Vocab, l.Hidden)
}

func (l *LSTM) Add(o *LSTM) {
	om := o.mats()
	for i, m := range l.mats() {
		m.Add(m, om[i])
	}
}

func (l *LSTM) Scale(f float64) {
	for _, m := range l.mats() {
		m.Scale(f, m)
	}
}

func (l *LSTM) Params() Params {
	cp := func(m *mat.Dense) []float64 {
		return append([]float64(nil), m.RawMatrix().Data...)
	}
	return Params{Vocab: l.Vocab, Hidden: l.Hidden, Wx: cp(l.Wx), Wh: cp(l.Wh), B: cp(l.B), Wy: cp(l.Wy), By: cp(l.By)}
}

func FromParams(p Params) (*LSTM, error) {
	const (
		FAIL = "FromParams(): %s holds %d values; expected %d"
	)
	l := zeros(p.Vocab, p.Hidden)
	src := [][]float64{p.Wx, p.Wh, p.B, p.Wy, p.By}
	names := []string{"Wx", "Wh", "B", "Wy", "By"}
	for i, m := range l.mats() {
		raw := m.RawMatrix().Data
		if len(src[i]) != len(raw) {
			return nil, fmt.Errorf(FAIL, names[i], len(src[i]), len(raw))
		}
		copy(raw, src[i])
	}
	return l, nil
}

// trace - everything the backward pass needs from the forward pass
type trace struct {
	xs    []int
	hs    []*mat.VecDense // len(xs)+1; hs[0] is the zero state
	cs    [][]float64     // len(xs)+1
	ii    [][]float64
	ff    [][]float64
	oo    [][]float64
	gg    [][]float64
	tc    [][]float64 // tanh(c)
	probs []float64
}

func (l *LSTM) forward(seq []int) *trace {
	H := l.Hidden
	T := len(seq)
	tr := &trace{
		xs: seq,
		hs: make([]*mat.VecDense, T+1),
		cs: make([][]float64, T+1),
		ii: make([][]float64, T),
		ff: make([][]float64, T),
		oo: make([][]float64, T),
		gg: make([][]float64, T),
		tc: make([][]float64, T),
	}
	tr.hs[0] = mat.NewVecDense(H, nil)
	tr.cs[0] = make([]float64, H)

	z := mat.NewVecDense(4*H, nil)
	for t, x := range seq {
		z.MulVec(l.Wh, tr.hs[t])
		zr := z.RawVector().Data
		for r := range zr {
			zr[r] += l.Wx.At(r, x) + l.B.At(r, 0)
		}

		i, f, o, g := make([]float64, H), make([]float64, H), make([]float64, H), make([]float64, H)
		c, tc, h := make([]float64, H), make([]float64, H), make([]float64, H)
		cprev := tr.cs[t]
		for k := 0; k < H; k++ {
			i[k] = sigmoid(zr[k])
			f[k] = sigmoid(zr[H+k])
			o[k] = sigmoid(zr[2*H+k])
			g[k] = math.Tanh(zr[3*H+k])
			c[k] = f[k]*cprev[k] + i[k]*g[k]
			tc[k] = math.Tanh(c[k])
			h[k] = o[k] * tc[k]
		}
		tr.ii[t], tr.ff[t], tr.oo[t], tr.gg[t], tr.tc[t] = i, f, o, g, tc
		tr.cs[t+1] = c
		tr.hs[t+1] = mat.NewVecDense(H, h)
	}

	logits := mat.NewVecDense(l.Vocab, nil)
	logits.MulVec(l.Wy, tr.hs[T])
	lr := logits.RawVector().Data
	for v := range lr {
		lr[v] += l.By.At(v, 0)
	}
	tr.probs = softmax(lr)
	return tr
}

// Forward - the distribution over the next character after seq
func (l *LSTM) Forward(seq []int) []float64 {
	if len(seq) == 0 {
		return uniform(l.Vocab)
	}
	return l.forward(seq).probs
}

// Loss - cross-entropy of the target after seq
func (l *LSTM) Loss(seq []int, target int) float64 {
	return xent(l.Forward(seq), target)
}

// Backward - add the gradient of Loss(seq, target) into grads and return the loss
func (l *LSTM) Backward(seq []int, target int, grads *LSTM) float64 {
	H := l.Hidden
	T := len(seq)
	tr := l.forward(seq)

	dlogits := append([]float64(nil), tr.probs...)
	dlogits[target] -= 1
	dl := mat.NewVecDense(l.Vocab, dlogits)

	grads.Wy.RankOne(grads.Wy, 1, dl, tr.hs[T])
	for v, d := range dlogits {
		grads.By.Set(v, 0, grads.By.At(v, 0)+d)
	}

	dh := mat.NewVecDense(H, nil)
	dh.MulVec(l.Wy.T(), dl)
	dc := make([]float64, H)
	dz := mat.NewVecDense(4*H, nil)
	dzr := dz.RawVector().Data

	for t := T - 1; t >= 0; t-- {
		i, f, o, g, tc := tr.ii[t], tr.ff[t], tr.oo[t], tr.gg[t], tr.tc[t]
		cprev := tr.cs[t]
		dhr := dh.RawVector().Data
		for k := 0; k < H; k++ {
			dc[k] += dhr[k] * o[k] * (1 - tc[k]*tc[k])
			dzr[k] = dc[k] * g[k] * i[k] * (1 - i[k])
			dzr[H+k] = dc[k] * cprev[k] * f[k] * (1 - f[k])
			dzr[2*H+k] = dhr[k] * tc[k] * o[k] * (1 - o[k])
			dzr[3*H+k] = dc[k] * i[k] * (1 - g[k]*g[k])
		}

		x := tr.xs[t]
		for r, d := range dzr {
			grads.Wx.Set(r, x, grads.Wx.At(r, x)+d)
			grads.B.Set(r, 0, grads.B.At(r, 0)+d)
		}
		grads.Wh.RankOne(grads.Wh, 1, dz, tr.hs[t])

		dh.MulVec(l.Wh.T(), dz)
		for k := 0; k < H; k++ {
			dc[k] *= f[k]
		}
	}
	return xent(tr.probs, target)
}

// Norm - the l2 norm of every weight taken together
func (l *LSTM) Norm() float64 {
	ss := float64(0)
	for _, m := range l.mats() {
		n := floats.Norm(m.RawMatrix().Data, 2)
		ss += n * n
	}
	return math.Sqrt(ss)
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	mx := floats.Max(x)
	for i, v := range x {
		out[i] = math.Exp(v - mx)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}

func xent(probs []float64, target int) float64 {
	const (
		TINY = 1e-12
	)
	return -math.Log(math.Max(probs[target], TINY))
}

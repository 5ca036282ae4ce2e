//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package classify

import (
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math/rand"
)

// LinearSVM - one-vs-rest hinge loss classifiers trained with Pegasos; the last weight is the bias
type LinearSVM struct {
	Alpha  float64
	Epochs int
	Seed   int64
	W      [][]float64
}

func NewLinearSVM(cfg Config) *LinearSVM {
	return &LinearSVM{Alpha: cfg.Alpha, Epochs: cfg.Epochs, Seed: cfg.Seed}
}

func (s *LinearSVM) Name() string { return "LinearSVM" }

func (s *LinearSVM) Fit(X mat.Matrix, y []int) error {
	const (
		FAIL1 = "LinearSVM.Fit(): %d rows but %d labels"
		FAIL2 = "LinearSVM.Fit(): alpha must be positive, not %g"
		MSG1  = "LinearSVM.Fit(): class %d of %d: hinge loss %.4f after %d epochs"
	)

	n, _ := X.Dims()
	if n != len(y) {
		return fmt.Errorf(FAIL1, n, len(y))
	}
	if n == 0 {
		return ErrNoTraining
	}
	if s.Alpha <= 0 {
		return fmt.Errorf(FAIL2, s.Alpha)
	}
	if err := checklabels(y); err != nil {
		return err
	}
	if s.Epochs < 1 {
		s.Epochs = 1
	}

	rows := augment(X)
	nc := y[gen.ArgMax(y)] + 1
	s.W = make([][]float64, nc)

	for c := 0; c < nc; c++ {
		yc := make([]float64, n)
		for i := range y {
			yc[i] = -1
			if y[i] == c {
				yc[i] = 1
			}
		}
		s.W[c] = pegasos(rows, yc, s.Alpha, s.Epochs, rand.New(rand.NewSource(s.Seed+int64(c))))
		Msg.TMI(fmt.Sprintf(MSG1, c+1, nc, hinge(rows, yc, s.W[c]), s.Epochs))
	}
	return nil
}

// Decision - raw margins for every row and class
func (s *LinearSVM) Decision(X mat.Matrix) [][]float64 {
	rows := augment(X)
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(s.W))
		for c, w := range s.W {
			out[i][c] = floats.Dot(w, r)
		}
	}
	return out
}

func (s *LinearSVM) Predict(X mat.Matrix) []int {
	dv := s.Decision(X)
	out := make([]int, len(dv))
	for i := range dv {
		out[i] = gen.ArgMax(dv[i])
	}
	return out
}

// pegasos - stochastic sub-gradient descent with step 1/(lambda t)
func pegasos(rows [][]float64, y []float64, lambda float64, epochs int, rng *rand.Rand) []float64 {
	w := make([]float64, len(rows[0]))
	t := 1
	for e := 0; e < epochs; e++ {
		for _, i := range rng.Perm(len(rows)) {
			eta := 1 / (lambda * float64(t))
			margin := y[i] * floats.Dot(w, rows[i])
			floats.Scale(1-eta*lambda, w)
			if margin < 1 {
				floats.AddScaled(w, eta*y[i], rows[i])
			}
			t++
		}
	}
	return w
}

func hinge(rows [][]float64, y []float64, w []float64) float64 {
	loss := float64(0)
	for i, r := range rows {
		if m := 1 - y[i]*floats.Dot(w, r); m > 0 {
			loss += m
		}
	}
	return loss / float64(len(rows))
}

// augment - copy the rows out of X with a trailing constant for the bias
func augment(X mat.Matrix) [][]float64 {
	n, d := X.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, d+1)
		mat.Row(rows[i][:d], i, X)
		rows[i][d] = 1
	}
	return rows
}

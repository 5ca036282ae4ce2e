//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package classify

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"math"
)

// Classifier - fit on rows of X labelled by y; labels run from 0 to classes-1
type Classifier interface {
	Fit(X mat.Matrix, y []int) error
	Predict(X mat.Matrix) []int
	Name() string
}

// GaussianNB - naive bayes with one normal distribution per class and feature
type GaussianNB struct {
	VarSmoothing float64
	Priors       []float64
	Theta        [][]float64 // class x feature means
	Sigma        [][]float64 // class x feature variances, smoothed
	Epsilon      float64
}

func NewGaussianNB(cfg Config) *GaussianNB {
	return &GaussianNB{VarSmoothing: cfg.VarSmoothing}
}

func (g *GaussianNB) Name() string { return "GaussianNB" }

func (g *GaussianNB) Fit(X mat.Matrix, y []int) error {
	const (
		FAIL1 = "GaussianNB.Fit(): %d rows but %d labels"
		// no variance anywhere would divide by zero
		FLOOR = 1e-12
	)

	n, d := X.Dims()
	if n != len(y) {
		return fmt.Errorf(FAIL1, n, len(y))
	}
	if n == 0 {
		return ErrNoTraining
	}
	if err := checklabels(y); err != nil {
		return err
	}
	nc := y[gen.ArgMax(y)] + 1

	col := make([]float64, n)
	maxvar := float64(0)
	for j := 0; j < d; j++ {
		mat.Col(col, j, X)
		if v := popvariance(col); v > maxvar {
			maxvar = v
		}
	}
	g.Epsilon = g.VarSmoothing * maxvar
	if g.Epsilon <= 0 {
		g.Epsilon = FLOOR
	}

	byclass := make([][]int, nc)
	for i, c := range y {
		byclass[c] = append(byclass[c], i)
	}

	g.Priors = make([]float64, nc)
	g.Theta = make([][]float64, nc)
	g.Sigma = make([][]float64, nc)
	for c := 0; c < nc; c++ {
		rows := byclass[c]
		g.Priors[c] = float64(len(rows)) / float64(n)
		g.Theta[c] = make([]float64, d)
		g.Sigma[c] = make([]float64, d)
		if len(rows) == 0 {
			continue
		}
		vals := make([]float64, len(rows))
		for j := 0; j < d; j++ {
			for k, r := range rows {
				vals[k] = X.At(r, j)
			}
			g.Theta[c][j] = stat.Mean(vals, nil)
			g.Sigma[c][j] = popvariance(vals) + g.Epsilon
		}
	}
	return nil
}

// JointLogLikelihood - log P(c) + log P(x|c) for every row and class
func (g *GaussianNB) JointLogLikelihood(X mat.Matrix) [][]float64 {
	n, d := X.Dims()
	jll := make([][]float64, n)
	for i := 0; i < n; i++ {
		jll[i] = make([]float64, len(g.Priors))
		for c := range g.Priors {
			if g.Priors[c] == 0 {
				jll[i][c] = math.Inf(-1)
				continue
			}
			ll := math.Log(g.Priors[c])
			for j := 0; j < d; j++ {
				v := g.Sigma[c][j]
				diff := X.At(i, j) - g.Theta[c][j]
				ll -= 0.5 * (math.Log(2*math.Pi*v) + diff*diff/v)
			}
			jll[i][c] = ll
		}
	}
	return jll
}

func (g *GaussianNB) Predict(X mat.Matrix) []int {
	jll := g.JointLogLikelihood(X)
	out := make([]int, len(jll))
	for i := range jll {
		out[i] = gen.ArgMax(jll[i])
	}
	return out
}

// popvariance - divide by n, not n-1
func popvariance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	_, v := stat.MeanVariance(x, nil)
	return v * float64(len(x)-1) / float64(len(x))
}

func checklabels(y []int) error {
	for _, c := range y {
		if c < 0 {
			return errors.New("labels must not be negative")
		}
	}
	return nil
}

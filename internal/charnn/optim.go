//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charnn

import (
	"math"
)

// RMSprop - a running mean of squared gradients scales each step
type RMSprop struct {
	LR      float64
	Rho     float64
	Epsilon float64
	Clip    float64 // global norm; 0 turns clipping off
	cache   [][]float64
}

func NewRMSprop(cfg Config) *RMSprop {
	return &RMSprop{LR: cfg.LearningRate, Rho: cfg.Rho, Epsilon: cfg.Epsilon, Clip: cfg.Clip}
}

// Step - move model against grads; grads may be rescaled in place by the clipping
func (r *RMSprop) Step(model, grads *LSTM) {
	if r.Clip > 0 {
		if n := grads.Norm(); n > r.Clip {
			grads.Scale(r.Clip / n)
		}
	}

	pm := model.mats()
	gm := grads.mats()
	if r.cache == nil {
		r.cache = make([][]float64, len(pm))
		for i, m := range pm {
			r.cache[i] = make([]float64, len(m.RawMatrix().Data))
		}
	}

	for i := range pm {
		p := pm[i].RawMatrix().Data
		g := gm[i].RawMatrix().Data
		c := r.cache[i]
		for k := range p {
			c[k] = r.Rho*c[k] + (1-r.Rho)*g[k]*g[k]
			p[k] -= r.LR * g[k] / (math.Sqrt(c[k]) + r.Epsilon)
		}
	}
}

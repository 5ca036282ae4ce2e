//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package classify

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/e-gun/nlp"
	"gonum.org/v1/gonum/mat"
)

var Msg = lnch.Msg

var ErrNoTraining = errors.New("no training documents")

type Config struct {
	Components   int
	Alpha        float64
	Epochs       int
	Seed         int64
	VarSmoothing float64
}

func DefaultConfig() Config {
	return Config{
		Components:   vv.CLSCOMPONENTS,
		Alpha:        vv.CLSALPHA,
		Epochs:       vv.CLSEPOCHS,
		Seed:         vv.CLSSEED,
		VarSmoothing: vv.CLSVARSMOOTH,
	}
}

// Features - one row per document, one column per latent dimension
type Features struct {
	Train *mat.Dense
	Test  *mat.Dense
	K     int
}

// Vectorise - counts -> tf-idf -> truncated svd; fitted on train only and then applied to test
func Vectorise(train, test []string, k int, stops []string) (Features, error) {
	const (
		FAIL1 = "Vectorise(): no terms survived the stoplist"
		FAIL2 = "Vectorise(): fit: %w"
		FAIL3 = "Vectorise(): transform: %w"
		MSG1  = "Vectorise(): %s terms reduced to %d components"
	)

	if len(train) == 0 {
		return Features{}, ErrNoTraining
	}

	vectoriser := nlp.NewCountVectoriser(stops...)
	vectoriser.Fit(train...)
	nv := len(vectoriser.Vocabulary)
	if nv == 0 {
		return Features{}, errors.New(FAIL1)
	}

	// the svd cannot return more components than the smaller dimension of the tf-idf matrix
	k = min(k, nv, len(train))
	if k < 1 {
		k = 1
	}
	Msg.PEEK(fmt.Sprintf(MSG1, Msg.Num(nv), k))

	pipeline := nlp.NewPipeline(vectoriser, nlp.NewTfidfTransformer(), nlp.NewTruncatedSVD(k))

	lsi, err := pipeline.FitTransform(train...)
	if err != nil {
		return Features{}, fmt.Errorf(FAIL2, err)
	}
	ft := Features{Train: mat.DenseCopyOf(lsi.T()), K: k}

	if len(test) > 0 {
		tl, e := pipeline.Transform(test...)
		if e != nil {
			return Features{}, fmt.Errorf(FAIL3, e)
		}
		ft.Test = mat.DenseCopyOf(tl.T())
	}
	return ft, nil
}

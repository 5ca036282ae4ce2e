//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/charts"
	"github.com/e-gun/nlp"
	"io"
)

var ErrTooSmall = errors.New("the model is too small to project onto a plane")

//
// LDA GRAPHING PREP
//

// Project - flatten each doc's topic distribution to two coordinates
func (m *Model) Project() ([]charts.Point, error) {
	const (
		FAIL = "Project(): truncated svd: %w"
	)
	dr, dc := m.DocsOverTopics.Dims()
	if dr < 2 || dc < 2 {
		return nil, ErrTooSmall
	}

	svd := nlp.NewTruncatedSVD(2)
	flat, err := svd.FitTransform(m.DocsOverTopics)
	if err != nil {
		return nil, fmt.Errorf(FAIL, err)
	}

	// flat is 2 x docs
	pts := make([]charts.Point, dc)
	for doc := 0; doc < dc; doc++ {
		pts[doc] = charts.Point{X: flat.At(0, doc), Y: flat.At(1, doc)}
		if doc < len(m.Docs) {
			pts[doc].Label = m.Docs[doc].Loc
		}
	}
	return pts, nil
}

// Plot - scatter of the projected docs, coloured by dominant topic
func (m *Model) Plot(w io.Writer, cfg LDAConfig) error {
	const (
		TITLE  = "%d topics over %d documents"
		SERIES = "topic %02d"
	)
	if !cfg.GraphDocs {
		return nil
	}

	pts, err := m.Project()
	if err != nil {
		return err
	}

	dom := m.Dominant()
	series := make(map[string][]charts.Point)
	for i, p := range pts {
		k := fmt.Sprintf(SERIES, dom[i]+1)
		series[k] = append(series[k], p)
	}

	return charts.Scatter(w, fmt.Sprintf(TITLE, m.Topics, len(pts)), series)
}

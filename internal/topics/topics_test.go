//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"bytes"
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"testing"
)

// handmade - 2 topics x 4 docs; 2 topics x 3 words
func handmade() *Model {
	dot := mat.NewDense(2, 4, []float64{
		0.9, 0.8, 0.1, 0.3,
		0.1, 0.2, 0.9, 0.7,
	})
	tow := mat.NewDense(2, 3, []float64{
		5, 1, 3,
		0, 4, 2,
	})
	bags := []corpus.Bag{{Loc: "t/0", Text: "a"}, {Loc: "t/1", Text: "b"}, {Loc: "t/2", Text: "c"}, {Loc: "t/3", Text: "d"}}
	return &Model{DocsOverTopics: dot, TopicsOverWords: tow, Vocab: []string{"harbour", "garden", "engine"}, Docs: bags, Topics: 2, TopN: 2}
}

func TestSortedTopics(t *testing.T) {
	m := handmade()
	st := m.SortedTopics(2)
	require.Len(t, st, 2)
	assert.Equal(t, []TopicWord{{"harbour", 5}, {"engine", 3}}, st[0])
	assert.Equal(t, []TopicWord{{"garden", 4}, {"engine", 2}}, st[1])
	assert.Len(t, m.SortedTopics(10)[0], 3)
}

func TestDocsPerTopicAndWeights(t *testing.T) {
	m := handmade()
	assert.Equal(t, []int{0, 0, 1, 1}, m.Dominant())
	assert.Equal(t, []int{2, 2}, m.DocsPerTopic())
	w := m.WeightByTopic()
	assert.InDelta(t, 1.0, w[0], 1e-9)
	assert.InDelta(t, 1.9/2.1, w[1], 1e-9)
}

func TestTopDocs(t *testing.T) {
	td := handmade().TopDocs()
	require.Len(t, td, 2)
	assert.Equal(t, "t/0", td[0].Bag.Loc)
	assert.Equal(t, "t/2", td[1].Bag.Loc)
	assert.InDelta(t, 0.9, td[1].Score, 1e-9)
}

func TestSummary(t *testing.T) {
	var b bytes.Buffer
	handmade().Summary(&b)
	out := b.String()
	assert.Contains(t, out, "harbour, engine")
	assert.Contains(t, out, "2 (50.00%)")
	assert.Contains(t, out, "t/2")
}

func TestPlot(t *testing.T) {
	m := handmade()
	pts, err := m.Project()
	require.NoError(t, err)
	assert.Len(t, pts, 4)
	assert.Equal(t, "t/3", pts[3].Label)

	var b bytes.Buffer
	require.NoError(t, m.Plot(&b, LDAConfig{GraphDocs: true}))
	assert.Contains(t, b.String(), "topic 01")

	b.Reset()
	require.NoError(t, m.Plot(&b, LDAConfig{GraphDocs: false}))
	assert.Zero(t, b.Len())
}

func TestProjectTooSmall(t *testing.T) {
	m := &Model{DocsOverTopics: mat.NewDense(1, 3, []float64{1, 1, 1})}
	_, err := m.Project()
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestFit(t *testing.T) {
	docs := []string{
		"harbour boats harbour fishing boats nets",
		"garden beans garden onions soil",
		"harbour nets fishing quay boats",
		"soil beans onions garden compost",
		"boats quay harbour fishing",
		"compost soil garden beans",
	}
	bags := make([]corpus.Bag, len(docs))
	for i := range docs {
		bags[i] = corpus.Bag{Loc: fmt.Sprintf("t/%d", i), Text: docs[i]}
	}

	cfg := DefaultLDAConfig()
	cfg.Topics = 2
	cfg.Iterations = 30
	cfg.TransformationPasses = 30
	cfg.TopN = 3

	m, err := Fit(context.Background(), docs, bags, cfg, []string{"the"})
	require.NoError(t, err)

	r, c := m.DocsOverTopics.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, len(docs), c)
	tr, tc := m.TopicsOverWords.Dims()
	assert.Equal(t, 2, tr)
	assert.Equal(t, len(m.Vocab), tc)
	assert.Contains(t, m.Vocab, "harbour")

	total := 0
	for _, n := range m.DocsPerTopic() {
		total += n
	}
	assert.Equal(t, len(docs), total)
	assert.Len(t, m.SortedTopics(3)[1], 3)
}

func TestFitErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Fit(ctx, nil, nil, DefaultLDAConfig(), nil)
	assert.ErrorIs(t, err, ErrNoDocs)

	_, err = Fit(ctx, []string{"a b"}, nil, DefaultLDAConfig(), nil)
	assert.Error(t, err)

	_, err = Fit(ctx, []string{"the the"}, []corpus.Bag{{}}, DefaultLDAConfig(), []string{"the"})
	assert.Error(t, err)

	cc, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Fit(cc, []string{"boats"}, []corpus.Bag{{}}, DefaultLDAConfig(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClamp(t *testing.T) {
	c := clamp(LDAConfig{Topics: 500})
	assert.Equal(t, 30, c.Topics)
	assert.Equal(t, c.Iterations/2, c.TransformationPasses)
	assert.Positive(t, c.Goroutines)
}

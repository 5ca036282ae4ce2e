//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package embed

import (
	"bytes"
	"context"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func docs() [][]string {
	var dd [][]string
	lines := []string{
		"harbour boats fishing nets quay",
		"garden beans onions soil compost",
		"boats quay harbour nets fishing",
		"soil compost garden onions beans",
	}
	for i := 0; i < 25; i++ {
		for _, l := range lines {
			dd = append(dd, strings.Fields(l))
		}
	}
	return dd
}

func tiny() Config {
	cfg := DefaultConfig()
	cfg.W2V.Dim = 10
	cfg.W2V.Iter = 3
	cfg.W2V.MinCount = 1
	cfg.W2V.Goroutines = 2
	cfg.GloVe.Dim = 10
	cfg.GloVe.Iter = 3
	cfg.GloVe.MinCount = 1
	cfg.GloVe.Goroutines = 2
	cfg.LexVec.Dim = 10
	cfg.LexVec.Iter = 3
	cfg.LexVec.MinCount = 1
	cfg.LexVec.Goroutines = 2
	return cfg
}

func TestTextBlock(t *testing.T) {
	assert.Equal(t, "a b\nc\n", TextBlock([][]string{{"a", "b"}, {}, {"c"}}))
}

func TestTrainAndNeighbours(t *testing.T) {
	embs, err := Train(context.Background(), docs(), tiny())
	require.NoError(t, err)
	assert.Len(t, embs, 10)

	nn, err := Neighbours(embs, "harbour", 3)
	require.NoError(t, err)
	require.Len(t, nn, 3)
	for _, n := range nn {
		assert.NotEqual(t, "harbour", n.Word)
	}
	assert.GreaterOrEqual(t, nn[0].Similarity, nn[2].Similarity)

	_, err = Neighbours(embs, "locomotive", 3)
	assert.Error(t, err)

	var b bytes.Buffer
	Report(&b, embs, []string{"garden", "locomotive"}, 2)
	assert.Contains(t, b.String(), "Neighbour of garden")
	assert.Contains(t, b.String(), "no vector for 'locomotive'")
}

func TestTrainEveryModelReturns(t *testing.T) {
	// a model that never returns shows up as a deadline error rather than a hung test
	for _, m := range []string{MODELW2V, MODELLEXVEC, MODELGLOVE} {
		t.Run(m, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			cfg := tiny()
			cfg.Model = m
			embs, err := Train(ctx, docs(), cfg)
			require.NoError(t, err)
			assert.Len(t, embs, 10)
		})
	}
}

func TestTrainErrors(t *testing.T) {
	_, err := Train(context.Background(), nil, tiny())
	assert.ErrorIs(t, err, ErrNoText)

	cfg := tiny()
	cfg.Model = "fasttext"
	_, err = Train(context.Background(), docs(), cfg)
	assert.Error(t, err)
}

func TestTrainOrFetchStores(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)

	first, err := TrainOrFetch(ctx, st, docs(), tiny())
	require.NoError(t, err)

	ok, err := st.Check(ctx, Fingerprint(docs(), tiny()))
	require.NoError(t, err)
	assert.True(t, ok)

	// a second call must come from the store: same vectors exactly
	second, err := TrainOrFetch(ctx, st, docs(), tiny())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var raw embedding.Embeddings
	require.NoError(t, st.Fetch(ctx, Fingerprint(docs(), tiny()), &raw))
	assert.Len(t, raw, len(first))
}

//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/embed"
	"io"
	"sort"
	"time"
)

// Embed - word vectors for the filtered and phrased bags; the neighbours of the commonest words are printed
func Embed(ctx context.Context, env Env, p Progress, w io.Writer) error {
	const (
		STAGE = "embed"
		MSG1  = "%s vectors; probing %v"
		FAIL1 = "Embed(): %w"
	)
	start := time.Now()

	ps, err := parse(ctx, env, p)
	if err != nil {
		return err
	}
	docs, _ := documents(ps, env.Set.BOW)
	previous := time.Now()

	embs, err := embed.TrainOrFetch(ctx, env.Store, docs, env.Set.Embed)
	if err != nil {
		return fmt.Errorf(FAIL1, err)
	}
	Msg.Timer("F1", "embeddings ready", start, previous)

	probes := commonest(docs, env.Set.Embed.Probes)
	p.Report(STAGE, fmt.Sprintf(MSG1, Msg.Num(len(embs)), probes))
	embed.Report(w, embs, probes, env.Set.Embed.Neighbours)
	return nil
}

// commonest - the n most frequent words; ties go to the alphabetically earlier word
func commonest(docs [][]string, n int) []string {
	count := make(map[string]int)
	for _, d := range docs {
		for _, t := range d {
			count[t]++
		}
	}
	words := make([]string, 0, len(count))
	for k := range count {
		words = append(words, k)
	}
	sort.Slice(words, func(i, j int) bool {
		if count[words[i]] != count[words[j]] {
			return count[words[i]] > count[words[j]]
		}
		return words[i] < words[j]
	})
	if n < len(words) {
		words = words[:max(0, n)]
	}
	return words
}

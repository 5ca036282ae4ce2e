//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/corpus"
	"github.com/olekukonko/tablewriter"
	"io"
	"sort"
	"strings"
)

type TopicWord struct {
	W string
	V float64
}

// Ranked - the bag that most fits a topic
type Ranked struct {
	Topic int
	Score float64
	Bag   corpus.Bag
}

// SortedTopics - the n most significant words for each topic
func (m *Model) SortedTopics(n int) map[int][]TopicWord {
	tr, tc := m.TopicsOverWords.Dims()
	if n > tc {
		n = tc
	}

	tops := make(map[int][]TopicWord, tr)
	for topic := 0; topic < tr; topic++ {
		tss := make([]TopicWord, tc)
		for word := 0; word < tc; word++ {
			tss[word] = TopicWord{W: m.Vocab[word], V: m.TopicsOverWords.At(topic, word)}
		}
		sort.SliceStable(tss, func(i, j int) bool { return tss[i].V > tss[j].V })
		tops[topic] = tss[0:n]
	}
	return tops
}

// Dominant - the topic with the highest weight for each doc
func (m *Model) Dominant() []int {
	dr, dc := m.DocsOverTopics.Dims()
	winners := make([]int, dc)
	for doc := 0; doc < dc; doc++ {
		max := float64(0)
		for topic := 0; topic < dr; topic++ {
			// any given doc will look like
			// Topic #0=0.006009, Topic #1=0.006915, Topic #2=0.000688, Topic #3=0.449514, Topic #4=0.536875
			if v := m.DocsOverTopics.At(topic, doc); v > max {
				winners[doc] = topic
				max = v
			}
		}
	}
	return winners
}

// DocsPerTopic - N docs have topic X as their dominant topic
func (m *Model) DocsPerTopic() []int {
	dr, _ := m.DocsOverTopics.Dims()
	counter := make([]int, dr)
	for _, w := range m.Dominant() {
		counter[w]++
	}
	return counter
}

// WeightByTopic - scaled total accumulated weight of each topic; the heaviest is 1
func (m *Model) WeightByTopic() []float64 {
	dr, dc := m.DocsOverTopics.Dims()
	counter := make([]float64, dr)
	for doc := 0; doc < dc; doc++ {
		for topic := 0; topic < dr; topic++ {
			counter[topic] += m.DocsOverTopics.At(topic, doc)
		}
	}

	high := float64(0)
	for _, c := range counter {
		if c > high {
			high = c
		}
	}

	scaled := make([]float64, dr)
	if high == 0 {
		return scaled
	}
	for i := range counter {
		scaled[i] = counter[i] / high
	}
	return scaled
}

// TopDocs - for each topic the doc that scores highest on it
func (m *Model) TopDocs() []Ranked {
	dr, dc := m.DocsOverTopics.Dims()
	winners := make([]Ranked, dr)
	for topic := 0; topic < dr; topic++ {
		max := float64(0)
		winner := 0
		for doc := 0; doc < dc; doc++ {
			if v := m.DocsOverTopics.At(topic, doc); v > max {
				winner = doc
				max = v
			}
		}
		winners[topic] = Ranked{Topic: topic, Score: max}
		if winner < len(m.Docs) {
			winners[topic].Bag = m.Docs[winner]
		}
	}
	return winners
}

// Summary - report on top words, topic weights and the most representative bags
func (m *Model) Summary(w io.Writer) {
	const (
		TITLE1  = "Topic model of the corpus via Latent Dirichlet Allocation\n"
		TITLE2  = "\nBags most associated with each topic\n"
		MAXSENT = 160
	)

	topn := m.TopN
	if topn < 1 {
		topn = 8
	}

	tops := m.SortedTopics(topn)
	dpt := m.DocsPerTopic()
	wbt := m.WeightByTopic()
	_, dc := m.DocsOverTopics.Dims()

	_, _ = fmt.Fprint(w, TITLE1)
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader([]string{"Topic", fmt.Sprintf("Top %d words", topn), "Dominant in", "Scaled weight"})
	for topic := 0; topic < len(dpt); topic++ {
		ww := make([]string, len(tops[topic]))
		for i, t := range tops[topic] {
			ww[i] = t.W
		}
		share := float64(0)
		if dc > 0 {
			share = float64(dpt[topic]) / float64(dc) * 100
		}
		tw.Append([]string{
			fmt.Sprintf("%d", topic+1),
			strings.Join(ww, ", "),
			fmt.Sprintf("%d (%.2f%%)", dpt[topic], share),
			fmt.Sprintf("%.2f%%", wbt[topic]*100),
		})
	}
	tw.Render()

	_, _ = fmt.Fprint(w, TITLE2)
	st := tablewriter.NewWriter(w)
	st.SetAutoFormatHeaders(false)
	st.SetHeader([]string{"Topic", "Score", "Locus", "Bag"})
	for _, r := range m.TopDocs() {
		txt := r.Bag.Text
		if len([]rune(txt)) > MAXSENT {
			txt = string([]rune(txt)[:MAXSENT]) + "…"
		}
		st.Append([]string{fmt.Sprintf("%d", r.Topic+1), fmt.Sprintf("%.4f", r.Score), r.Bag.Loc, txt})
	}
	st.Render()
}

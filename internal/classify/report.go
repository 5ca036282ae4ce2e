//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package classify

import (
	"fmt"
	"github.com/olekukonko/tablewriter"
	"io"
	"strconv"
)

type ClassScore struct {
	Category  string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

type Report struct {
	Name      string
	Accuracy  float64
	MacroF1   float64
	PerClass  []ClassScore
	Confusion [][]int // rows are the true labels
}

// Evaluate - score predictions against the truth; a class with nothing predicted scores 0 precision
func Evaluate(name string, yTrue, yPred []int, categories []string) Report {
	nc := len(categories)
	conf := make([][]int, nc)
	for i := range conf {
		conf[i] = make([]int, nc)
	}

	right := 0
	for i := range yTrue {
		if i >= len(yPred) {
			break
		}
		t, p := yTrue[i], yPred[i]
		if t == p {
			right++
		}
		if t >= 0 && t < nc && p >= 0 && p < nc {
			conf[t][p]++
		}
	}

	r := Report{Name: name, Confusion: conf, PerClass: make([]ClassScore, nc)}
	if len(yTrue) > 0 {
		r.Accuracy = float64(right) / float64(len(yTrue))
	}

	sumf1 := float64(0)
	for c := 0; c < nc; c++ {
		tp := conf[c][c]
		predicted, actual := 0, 0
		for k := 0; k < nc; k++ {
			predicted += conf[k][c]
			actual += conf[c][k]
		}
		cs := ClassScore{Category: categories[c], Support: actual}
		if predicted > 0 {
			cs.Precision = float64(tp) / float64(predicted)
		}
		if actual > 0 {
			cs.Recall = float64(tp) / float64(actual)
		}
		if cs.Precision+cs.Recall > 0 {
			cs.F1 = 2 * cs.Precision * cs.Recall / (cs.Precision + cs.Recall)
		}
		sumf1 += cs.F1
		r.PerClass[c] = cs
	}
	if nc > 0 {
		r.MacroF1 = sumf1 / float64(nc)
	}
	return r
}

// F1s - labels and scores, ready for a bar chart
func (r Report) F1s() ([]string, []float64) {
	ll := make([]string, len(r.PerClass))
	ff := make([]float64, len(r.PerClass))
	for i, c := range r.PerClass {
		ll[i] = c.Category
		ff[i] = c.F1
	}
	return ll, ff
}

// Write - per class scores followed by the confusion matrix
func (r Report) Write(w io.Writer) {
	const (
		HEAD = "\n%s: accuracy %.4f, macro F1 %.4f\n"
		CONF = "Confusion matrix (rows: truth)\n"
	)
	_, _ = fmt.Fprintf(w, HEAD, r.Name, r.Accuracy, r.MacroF1)

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"Category", "Precision", "Recall", "F1", "Support"})
	for _, c := range r.PerClass {
		tw.Append([]string{c.Category, f4(c.Precision), f4(c.Recall), f4(c.F1), strconv.Itoa(c.Support)})
	}
	tw.Render()

	_, _ = fmt.Fprint(w, CONF)
	cm := tablewriter.NewWriter(w)
	cm.SetAutoFormatHeaders(false)
	head := []string{""}
	for _, c := range r.PerClass {
		head = append(head, c.Category)
	}
	cm.SetHeader(head)
	for i, row := range r.Confusion {
		line := []string{r.PerClass[i].Category}
		for _, v := range row {
			line = append(line, strconv.Itoa(v))
		}
		cm.Append(line)
	}
	cm.Render()
}

func f4(f float64) string { return fmt.Sprintf("%.4f", f) }

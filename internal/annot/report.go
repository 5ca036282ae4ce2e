//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package annot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Report - a token table (at most limit rows) followed by an entity table
func Report(w io.Writer, doc Doc, limit int) {
	const (
		HEAD = "%d tokens in %d sentences; %d entities\n"
		MORE = "(%d more tokens not shown)\n"
	)
	fmt.Fprintf(w, HEAD, len(doc.Tokens), len(doc.Sentences), len(doc.Entities))

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"#", "text", "lemma", "pos", "tag", "dep", "head", "ent", "stop", "punct", "alpha"})
	tw.SetAutoFormatHeaders(false)

	show := doc.Tokens
	if limit > 0 && len(show) > limit {
		show = show[:limit]
	}
	for _, t := range show {
		ent := t.EntIOB
		if t.EntType != "" {
			ent += "-" + t.EntType
		}
		tw.Append([]string{strconv.Itoa(t.Index), t.Text, t.Lemma, t.POS, t.Tag, t.Dep, strconv.Itoa(t.Head), ent,
			yn(t.IsStop), yn(t.IsPunct), yn(t.IsAlpha)})
	}
	tw.Render()
	if len(show) < len(doc.Tokens) {
		fmt.Fprintf(w, MORE, len(doc.Tokens)-len(show))
	}

	if len(doc.Entities) == 0 {
		return
	}
	et := tablewriter.NewWriter(w)
	et.SetHeader([]string{"entity", "label", "tokens"})
	et.SetAutoFormatHeaders(false)
	for _, e := range doc.Entities {
		et.Append([]string{e.Text, e.Label, fmt.Sprintf("%d:%d", e.Start, e.End)})
	}
	et.Render()
}

func yn(b bool) string {
	if b {
		return "y"
	}
	return ""
}

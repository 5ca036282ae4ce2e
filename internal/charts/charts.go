//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package charts

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"io"
	"os"
	"path/filepath"
)

var ErrNoData = errors.New("nothing to chart")

// Point - one labelled dot on a scatter
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Scatter - one series per key; the keys are drawn in sorted order so the colours are stable
func Scatter(w io.Writer, title string, series map[string][]Point) error {
	if len(series) == 0 {
		return ErrNoData
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(titleopts(title)),
		charts.WithToolboxOpts(toolbox(title)),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	for _, k := range gen.SortedKeys(series) {
		pts := series[k]
		dd := make([]opts.ScatterData, len(pts))
		for i, p := range pts {
			dd[i] = opts.ScatterData{Name: p.Label, Value: []float64{p.X, p.Y}, SymbolSize: 8}
		}
		sc.AddSeries(k, dd)
	}
	return sc.Render(w)
}

// Line - a single series over the categories in xs
func Line(w io.Writer, title string, xs []string, ys []float64) error {
	const (
		FAIL = "Line(): %d labels but %d values"
	)
	if len(ys) == 0 {
		return ErrNoData
	}
	if len(xs) != len(ys) {
		return fmt.Errorf(FAIL, len(xs), len(ys))
	}

	ln := charts.NewLine()
	ln.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(titleopts(title)),
		charts.WithToolboxOpts(toolbox(title)),
	)

	dd := make([]opts.LineData, len(ys))
	for i, y := range ys {
		dd[i] = opts.LineData{Value: y}
	}
	ln.SetXAxis(xs).AddSeries(title, dd)
	return ln.Render(w)
}

// Bars - labels along the bottom, one bar each
func Bars(w io.Writer, title string, labels []string, values []float64) error {
	const (
		FAIL = "Bars(): %d labels but %d values"
	)
	if len(values) == 0 {
		return ErrNoData
	}
	if len(labels) != len(values) {
		return fmt.Errorf(FAIL, len(labels), len(values))
	}

	br := charts.NewBar()
	br.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(titleopts(title)),
		charts.WithToolboxOpts(toolbox(title)),
	)

	dd := make([]opts.BarData, len(values))
	for i, v := range values {
		dd[i] = opts.BarData{Value: v}
	}
	br.SetXAxis(labels).AddSeries(title, dd)
	return br.Render(w)
}

// ToFile - open dir/name for writing and hand it to the chart function; returns the full path
func ToFile(dir, name string, draw func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return "", err
	}
	fp := filepath.Join(dir, name)
	f, err := os.Create(fp)
	if err != nil {
		return "", err
	}
	if err = draw(f); err != nil {
		_ = f.Close()
		return "", err
	}
	return fp, f.Close()
}

func titleopts(title string) opts.Title {
	const (
		LEFTALIGN = "20"
		BOTTALIGN = "3%"
	)
	tst := opts.TextStyle{
		FontStyle: "normal",
		FontSize:  16,
		Padding:   "15",
	}
	return opts.Title{
		Title:      title,
		TitleStyle: &tst,
		Bottom:     BOTTALIGN,
		Left:       LEFTALIGN,
	}
}

func toolbox(title string) opts.Toolbox {
	const (
		SAVETYPE = "png"
		SAVESTR  = "Save to file..."
	)
	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  title,
		Title: SAVESTR, // get chinese if ""
	}
	return opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    "20",
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}
}

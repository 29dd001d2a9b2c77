// Package view derives what the console shows for a result under a given
// display mode, and draws it as terminal text.
//
// Select is pure: it holds no state and never triggers a request, so the
// console can call it on every render.
package view

import (
	"github.com/csheth/insightlens/internal/result"
)

const (
	// PlaceholderMessage is shown in every mode until a result exists.
	PlaceholderMessage = "Results will be displayed here."
	// ChartUnavailableMessage is Chart mode's own empty state.
	ChartUnavailableMessage = "No chart data available."
	// DefaultSeriesName labels an untitled chart series.
	DefaultSeriesName = "Chart"
)

// Kind tags an Output.
type Kind int

const (
	// KindNothing means a result exists but lacks the active mode's facet.
	KindNothing Kind = iota
	KindPlaceholder
	KindText
	KindTable
	KindChart
	KindChartUnavailable
)

// Output is a renderable description of the results area.
type Output struct {
	Kind    Kind
	Message string
	Text    string
	Table   *TableOutput
	Chart   *ChartOutput
}

// TableOutput is a header row plus body rows in positional order.
type TableOutput struct {
	Header []string
	Rows   [][]string
}

// ChartOutput is a single bar series.
type ChartOutput struct {
	Series    string
	Title     string
	ShowTitle bool
	Bars      []Bar
}

// Bar is one category. Missing is set when the data series is shorter than
// the label list.
type Bar struct {
	Label   string
	Value   float64
	Missing bool
}

// Select maps mode and the current result to an Output. A nil result means
// no result has been produced (or the last one was cleared by a failure).
func Select(mode Mode, res *result.Result) Output {
	if res == nil {
		return Output{Kind: KindPlaceholder, Message: PlaceholderMessage}
	}
	switch mode {
	case ModeTable:
		if !res.HasTable() {
			return Output{Kind: KindNothing}
		}
		return Output{Kind: KindTable, Table: tableOutput(res.Table)}
	case ModeChart:
		if !res.HasChart() {
			return Output{Kind: KindChartUnavailable, Message: ChartUnavailableMessage}
		}
		return Output{Kind: KindChart, Chart: chartOutput(res.Chart)}
	default:
		if !res.HasText() {
			return Output{Kind: KindNothing}
		}
		return Output{Kind: KindText, Text: res.TextValue()}
	}
}

func tableOutput(t *result.Table) *TableOutput {
	out := &TableOutput{
		Header: append([]string(nil), t.Columns...),
		Rows:   make([][]string, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, result.RowStrings(row))
	}
	return out
}

func chartOutput(c *result.Chart) *ChartOutput {
	out := &ChartOutput{Series: DefaultSeriesName}
	if title, ok := c.Title(); ok {
		out.Series = title
		out.Title = title
		out.ShowTitle = true
	}
	out.Bars = make([]Bar, len(c.Labels))
	for i, label := range c.Labels {
		bar := Bar{Label: label}
		if i < len(c.Data) {
			bar.Value = c.Data[i]
		} else {
			bar.Missing = true
		}
		out.Bars[i] = bar
	}
	return out
}

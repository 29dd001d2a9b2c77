package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultWidth  = 80
	minWidth      = 20
	barColor      = "#4f8cff"
	maxLabelWidth = 24
)

// Options controls terminal rendering.
type Options struct {
	Width int
}

func (o Options) width() int {
	if o.Width <= 0 {
		return defaultWidth
	}
	if o.Width < minWidth {
		return minWidth
	}
	return o.Width
}

// Render draws out as terminal text. KindNothing renders as an empty string.
func Render(out Output, opts Options) string {
	switch out.Kind {
	case KindPlaceholder, KindChartUnavailable:
		return out.Message
	case KindText:
		return RenderText(out.Text, opts)
	case KindTable:
		return RenderTable(out.Table, opts)
	case KindChart:
		return RenderChart(out.Chart, opts)
	default:
		return ""
	}
}

// RenderText wraps prose verbatim at the configured width.
func RenderText(body string, opts Options) string {
	return wordwrap.String(body, opts.width())
}

// RenderTable draws the header and body rows. Column names are printed as
// sent; ragged rows are padded by the table writer.
func RenderTable(t *TableOutput, opts Options) string {
	if t == nil {
		return ""
	}
	tw := table.NewWriter()
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	tw.SetAllowedRowLength(opts.width())

	header := make(table.Row, len(t.Header))
	for i, col := range t.Header {
		header[i] = col
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tw.AppendRow(cells)
	}

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteRune('\n')
	b.WriteString(rowCount(len(t.Rows)))
	return b.String()
}

func rowCount(n int) string {
	if n == 1 {
		return "(1 row)"
	}
	return fmt.Sprintf("(%d rows)", n)
}

// RenderChart draws one horizontal bar per label, scaled against the largest
// value. Negative values draw as empty bars but keep their printed value.
func RenderChart(c *ChartOutput, opts Options) string {
	if c == nil {
		return ""
	}
	labelWidth := 0
	valueWidth := 0
	peak := 0.0
	for _, bar := range c.Bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(bar.Label))
		valueWidth = max(valueWidth, len(formatValue(bar)))
		if !bar.Missing && bar.Value > peak {
			peak = bar.Value
		}
	}
	labelWidth = min(labelWidth, maxLabelWidth)

	barWidth := opts.width() - labelWidth - valueWidth - 2
	if barWidth < 10 {
		barWidth = 10
	}
	meter := progress.New(
		progress.WithSolidFill(barColor),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)

	var lines []string
	if c.ShowTitle {
		lines = append(lines, c.Title)
	}
	lines = append(lines, "■ "+c.Series)
	for _, bar := range c.Bars {
		ratio := 0.0
		if !bar.Missing && peak > 0 && bar.Value > 0 {
			ratio = bar.Value / peak
		}
		label := runewidth.Truncate(bar.Label, labelWidth, "…")
		label = runewidth.FillRight(label, labelWidth)
		lines = append(lines, fmt.Sprintf("%s %s %s", label, meter.ViewAs(ratio), formatValue(bar)))
	}
	return strings.Join(lines, "\n")
}

func formatValue(bar Bar) string {
	if bar.Missing || math.IsNaN(bar.Value) {
		return "–"
	}
	return strconv.FormatFloat(bar.Value, 'f', -1, 64)
}

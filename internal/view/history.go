package view

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/insightlens/internal/history"
)

// EmptyHistoryMessage is shown before the first successful query.
const EmptyHistoryMessage = "No previous queries yet."

// HistoryLine is one rendered history row.
type HistoryLine struct {
	Query     string
	Timestamp string
}

// HistoryLines flattens entries in their current (newest-first) order.
func HistoryLines(entries []history.Entry) []HistoryLine {
	lines := make([]HistoryLine, len(entries))
	for i, entry := range entries {
		lines[i] = HistoryLine{Query: entry.Query(), Timestamp: entry.Timestamp()}
	}
	return lines
}

// RenderHistory prints each query with its timestamp right-aligned.
func RenderHistory(entries []history.Entry, opts Options) string {
	if len(entries) == 0 {
		return EmptyHistoryMessage
	}
	width := opts.width()
	rows := make([]string, 0, len(entries))
	for _, line := range HistoryLines(entries) {
		stampWidth := runewidth.StringWidth(line.Timestamp)
		queryWidth := width - stampWidth - 2
		if queryWidth < minWidth/2 {
			queryWidth = minWidth / 2
		}
		wrapped := strings.Split(wordwrap.String(line.Query, queryWidth), "\n")
		first := runewidth.FillRight(wrapped[0], queryWidth)
		rows = append(rows, first+"  "+line.Timestamp)
		rows = append(rows, wrapped[1:]...)
	}
	return strings.Join(rows, "\n")
}

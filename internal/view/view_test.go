package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/insightlens/internal/history"
	"github.com/csheth/insightlens/internal/result"
)

func decode(t *testing.T, body string) *result.Result {
	t.Helper()
	res, err := result.Decode([]byte(body))
	require.NoError(t, err)
	return &res
}

func TestSelectPlaceholderInEveryMode(t *testing.T) {
	for _, mode := range Modes {
		out := Select(mode, nil)
		assert.Equal(t, KindPlaceholder, out.Kind, mode.String())
		assert.Equal(t, PlaceholderMessage, Render(out, Options{}))
	}
}

func TestSelectTextThenTable(t *testing.T) {
	res := decode(t, `{"text":"42"}`)

	out := Select(ModeText, res)
	require.Equal(t, KindText, out.Kind)
	assert.Equal(t, "42", Render(out, Options{}))

	out = Select(ModeTable, res)
	assert.Equal(t, KindNothing, out.Kind)
	assert.Empty(t, Render(out, Options{}))
}

func TestSelectTextWithoutFacetRendersNothing(t *testing.T) {
	res := decode(t, `{"chart":{"labels":["a"],"data":[1]}}`)
	out := Select(ModeText, res)
	assert.Equal(t, KindNothing, out.Kind)
}

func TestSelectTableKeepsOrder(t *testing.T) {
	res := decode(t, `{"table":{"columns":["A","B"],"rows":[[1,2],[3,4]]}}`)

	out := Select(ModeTable, res)
	require.Equal(t, KindTable, out.Kind)
	assert.Equal(t, []string{"A", "B"}, out.Table.Header)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, out.Table.Rows)

	rendered := Render(out, Options{Width: 60})
	assert.Contains(t, rendered, "A")
	assert.Contains(t, rendered, "(2 rows)")
	first := strings.Index(rendered, "1")
	second := strings.Index(rendered, "3")
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second, "rows render in the order sent")
}

func TestSelectTableKeepsRaggedRows(t *testing.T) {
	res := decode(t, `{"table":{"columns":["A","B","C"],"rows":[[1],[2,3,4,5]]}}`)
	out := Select(ModeTable, res)
	require.Equal(t, KindTable, out.Kind)
	assert.Len(t, out.Table.Rows[0], 1)
	assert.Len(t, out.Table.Rows[1], 4)
	assert.NotEmpty(t, Render(out, Options{}))
}

func TestSelectTableHeaderNotUppercased(t *testing.T) {
	res := decode(t, `{"table":{"columns":["client_name"],"rows":[["Acme"]]}}`)
	rendered := Render(Select(ModeTable, res), Options{})
	assert.Contains(t, rendered, "client_name")
	assert.Contains(t, rendered, "(1 row)")
}

func TestSelectChartSeries(t *testing.T) {
	res := decode(t, `{"chart":{"labels":["Q1","Q2"],"data":[10,20],"label":"Sales"}}`)

	out := Select(ModeChart, res)
	require.Equal(t, KindChart, out.Kind)
	assert.Equal(t, "Sales", out.Chart.Series)
	assert.True(t, out.Chart.ShowTitle)
	assert.Equal(t, "Sales", out.Chart.Title)
	assert.Equal(t, []Bar{{Label: "Q1", Value: 10}, {Label: "Q2", Value: 20}}, out.Chart.Bars)

	rendered := Render(out, Options{Width: 60})
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Sales", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "Q1"))
	assert.True(t, strings.HasSuffix(lines[2], "10"))
	assert.True(t, strings.HasPrefix(lines[3], "Q2"))
	assert.True(t, strings.HasSuffix(lines[3], "20"))
}

func TestSelectChartWithoutLabelUsesDefaultSeries(t *testing.T) {
	res := decode(t, `{"chart":{"labels":["a","b","c"],"data":[1,2]}}`)
	out := Select(ModeChart, res)
	require.Equal(t, KindChart, out.Kind)
	assert.Equal(t, DefaultSeriesName, out.Chart.Series)
	assert.False(t, out.Chart.ShowTitle)
	assert.True(t, out.Chart.Bars[2].Missing)

	rendered := Render(out, Options{})
	assert.True(t, strings.HasPrefix(rendered, "■ Chart"))
}

func TestSelectChartUnavailable(t *testing.T) {
	res := decode(t, `{"text":"only prose"}`)
	out := Select(ModeChart, res)
	assert.Equal(t, KindChartUnavailable, out.Kind)
	assert.Equal(t, ChartUnavailableMessage, Render(out, Options{}))
	assert.NotEqual(t, PlaceholderMessage, Render(out, Options{}))
}

func TestRenderTextWraps(t *testing.T) {
	body := strings.Repeat("word ", 30)
	rendered := RenderText(body, Options{Width: 20})
	for _, line := range strings.Split(rendered, "\n") {
		assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20)
	}
}

func TestRenderHistory(t *testing.T) {
	assert.Equal(t, EmptyHistoryMessage, RenderHistory(nil, Options{}))

	var log history.Log
	at := time.Date(2026, 1, 2, 8, 0, 0, 0, time.Local)
	log.Record(history.NewEntry("Q1", at))
	log.Record(history.NewEntry("Q2", at.Add(time.Minute)))

	rendered := RenderHistory(log.Entries(), Options{Width: 60})
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Q2"))
	assert.True(t, strings.HasSuffix(lines[0], "1/2/2026, 8:01:00 AM"))
	assert.True(t, strings.HasPrefix(lines[1], "Q1"))
}

func TestModeCycle(t *testing.T) {
	assert.Equal(t, ModeTable, ModeText.Next())
	assert.Equal(t, ModeText, ModeChart.Next())
	assert.Equal(t, ModeChart, ModeText.Prev())

	mode, err := ParseMode("Chart")
	require.NoError(t, err)
	assert.Equal(t, ModeChart, mode)
	_, err = ParseMode("pie")
	assert.Error(t, err)
}

// Package result models the answer payload returned by the analytics backend.
//
// A Result carries up to three independent facets. Any subset may be present;
// the console decides which one to show based on the active view mode.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Result is the decoded body of a successful /query response.
type Result struct {
	Text  *string `json:"text,omitempty"`
	Table *Table  `json:"table,omitempty"`
	Chart *Chart  `json:"chart,omitempty"`
}

// Table is a column header plus positional rows. Rows are not required to
// match the header width.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// Chart is a single bar series keyed by label.
type Chart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Label  *string   `json:"label,omitempty"`
}

// ErrNotObject is returned by Decode when the body is valid JSON but not an object.
var ErrNotObject = errors.New("result: body is not a JSON object")

// Decode parses a response body into a Result.
func Decode(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, ErrNotObject
	}
	var res Result
	if err := json.Unmarshal(trimmed, &res); err != nil {
		return Result{}, fmt.Errorf("result: decode body: %w", err)
	}
	return res, nil
}

// HasText reports whether the text facet was sent.
func (r Result) HasText() bool {
	return r.Text != nil
}

// HasTable reports whether both the columns and rows of the table facet were sent.
func (r Result) HasTable() bool {
	return r.Table != nil && r.Table.Columns != nil && r.Table.Rows != nil
}

// HasChart reports whether both the labels and data of the chart facet were sent.
func (r Result) HasChart() bool {
	return r.Chart != nil && r.Chart.Labels != nil && r.Chart.Data != nil
}

// Facets lists the populated facet names, used for log lines.
func (r Result) Facets() string {
	var names []string
	if r.HasText() {
		names = append(names, "text")
	}
	if r.HasTable() {
		names = append(names, "table")
	}
	if r.HasChart() {
		names = append(names, "chart")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// TextValue returns the text facet or an empty string.
func (r Result) TextValue() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// Title returns the chart label and whether one was sent.
func (c Chart) Title() (string, bool) {
	if c.Label == nil || *c.Label == "" {
		return "", false
	}
	return *c.Label, true
}

// String is a convenience for building results in code.
func String(s string) *string {
	return &s
}

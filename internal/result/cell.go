package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Cell is one table value. The backend sends arbitrary JSON scalars, so the
// original token is kept to render numbers exactly as they were sent.
type Cell struct {
	value any
}

// NewCell wraps a Go value as a table cell.
func NewCell(v any) Cell {
	return Cell{value: v}
}

// Cells wraps a row of Go values.
func Cells(values ...any) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = NewCell(v)
	}
	return row
}

// Value returns the decoded value: string, json.Number, bool, nil, or a
// nested slice/map for non-scalar cells.
func (c Cell) Value() any {
	return c.value
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	c.value = v
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// String renders the cell the way the console prints it. Null renders empty.
func (c Cell) String() string {
	switch v := c.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []any, map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}

// RowStrings renders a row cell by cell in positional order.
func RowStrings(row []Cell) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cell.String()
	}
	return out
}

package view

import (
	"fmt"
	"strings"
)

// Mode is the display lens applied to the current result.
type Mode int

const (
	ModeText Mode = iota
	ModeTable
	ModeChart
)

// Modes lists the modes in tab order.
var Modes = []Mode{ModeText, ModeTable, ModeChart}

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeChart:
		return "chart"
	default:
		return "text"
	}
}

// Label is the tab caption.
func (m Mode) Label() string {
	switch m {
	case ModeTable:
		return "Table"
	case ModeChart:
		return "Chart"
	default:
		return "Text"
	}
}

// Next cycles forward through Modes, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// Prev cycles backward through Modes, wrapping around.
func (m Mode) Prev() Mode {
	return Modes[(int(m)+len(Modes)-1)%len(Modes)]
}

// ParseMode accepts the lowercase mode names used on the command line.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text":
		return ModeText, nil
	case "table":
		return ModeTable, nil
	case "chart":
		return ModeChart, nil
	default:
		return ModeText, fmt.Errorf("unknown view %q (want text, table or chart)", raw)
	}
}

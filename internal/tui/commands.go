package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/insightlens/internal/console"
)

var errNoBackend = errors.New("no backend configured")

type queryResultMsg struct {
	outcome console.Outcome
}

type escalationMsg struct {
	ticket console.Ticket
}

type clipboardResultMsg struct {
	lines int
	err   error
}

type clipboardFadeMsg struct{}

// queryJob runs one submission. The outcome always travels in the payload so
// the controller sees failures as well as successes.
func queryJob(q console.Querier, req console.Request, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		if q == nil {
			out := console.Outcome{RequestID: req.ID, Query: req.Query, Err: errNoBackend}
			return queryResultMsg{outcome: out}, out.Err
		}
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		out := console.Execute(ctx, q, req)
		return queryResultMsg{outcome: out}, out.Err
	}
}

// escalationCmd wakes the loop once the ticket's deadline has passed.
func escalationCmd(ticket console.Ticket, now time.Time) tea.Cmd {
	wait := ticket.Deadline.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return escalationMsg{ticket: ticket}
	})
}

func copyJob(write func(string) error, text string) jobRunner {
	lines := strings.Count(text, "\n") + 1
	return func(context.Context) (tea.Msg, error) {
		err := write(text)
		return clipboardResultMsg{lines: lines, err: err}, err
	}
}

func clipboardFadeCmd() tea.Cmd {
	return tea.Tick(clipboardFadeDelay, func(time.Time) tea.Msg {
		return clipboardFadeMsg{}
	})
}

// Package console owns the query lifecycle for one console view: the query
// text, the latest outcome, the display mode, the history log and the
// loading indicator with its escalation timer.
//
// The controller is driven from a single event loop. Submit and Complete are
// split so the network call can run elsewhere and report back; Execute is the
// piece that may run off-loop because it touches no controller state.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/csheth/insightlens/internal/history"
	"github.com/csheth/insightlens/internal/result"
	"github.com/csheth/insightlens/internal/view"
)

// ErrorMessage is the only failure text users see.
const ErrorMessage = "Failed to get response from backend."

// ErrRequestFailed wraps every failure cause: transport errors, non-2xx
// statuses and undecodable bodies alike.
var ErrRequestFailed = errors.New("request failed")

// Querier is the backend surface the controller needs.
type Querier interface {
	Query(ctx context.Context, query string) (result.Result, error)
}

// LoadingState mirrors the spinner and its escalation line.
type LoadingState struct {
	Active                 bool
	ElapsedBeyondThreshold bool
}

// Request is one submission to send. Escalation is set when this submission
// armed the escalation timer; the caller schedules Controller.Fire for it.
type Request struct {
	ID         uint64
	Query      string
	Escalation *Ticket
}

// Outcome is what came back for a Request.
type Outcome struct {
	RequestID uint64
	Query     string
	Result    result.Result
	Err       error
	Elapsed   time.Duration
}

// State is a read-only snapshot of everything the console renders.
type State struct {
	Query   string
	Result  *result.Result
	Err     error
	Mode    view.Mode
	Loading LoadingState
	History []history.Entry
}

// ErrorMessage returns the generic failure text, or "" when the last outcome succeeded.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return ErrorMessage
}

// Output is the view selection for the snapshot.
func (s State) Output() view.Output {
	return view.Select(s.Mode, s.Result)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now, letting tests drive the escalation timer and
// history timestamps with simulated time.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.log = logger
		}
	}
}

// Controller is the single owned state record behind one console view.
type Controller struct {
	now     func() time.Time
	log     *slog.Logger
	query   string
	result  *result.Result
	err     error
	mode    view.Mode
	loading LoadingState
	history history.Log
	timer   escalation
	nextID  uint64
	torn    bool
}

// New returns an idle controller in Text mode.
func New(opts ...Option) *Controller {
	c := &Controller{
		now:  time.Now,
		log:  slog.New(slog.DiscardHandler),
		mode: view.ModeText,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(slog.String("component", "console"))
	return c
}

// SetQuery records the current input text.
func (c *Controller) SetQuery(q string) {
	c.query = q
}

// SetMode switches the display lens. It never issues a request.
func (c *Controller) SetMode(m view.Mode) {
	c.mode = m
}

// CanSubmit reports whether the current input would be accepted.
func (c *Controller) CanSubmit() bool {
	return strings.TrimSpace(c.query) != ""
}

// Submit starts a submission of raw. A blank query is a no-op and returns
// false. Overlapping submissions are allowed; each gets its own Request.
func (c *Controller) Submit(raw string) (Request, bool) {
	if strings.TrimSpace(raw) == "" {
		return Request{}, false
	}
	c.query = raw
	c.nextID++
	req := Request{ID: c.nextID, Query: raw}

	c.err = nil
	if !c.loading.Active && !c.torn {
		ticket := c.timer.Arm(c.now())
		req.Escalation = &ticket
	}
	c.loading.Active = true
	c.log.Info("query submitted", slog.Uint64("request", req.ID), slog.Int("chars", len(raw)))
	return req, true
}

// Execute performs the network call for req. It reads no controller state
// and may run off the event loop.
func Execute(ctx context.Context, q Querier, req Request) Outcome {
	started := time.Now()
	res, err := q.Query(ctx, req.Query)
	return Outcome{
		RequestID: req.ID,
		Query:     req.Query,
		Result:    res,
		Err:       err,
		Elapsed:   time.Since(started),
	}
}

// Complete applies an outcome. Whichever outcome is applied last owns the
// result slot; the loading indicator switches off regardless of how many
// other requests are still outstanding.
func (c *Controller) Complete(out Outcome) {
	if out.Err != nil {
		c.err = fmt.Errorf("%w: %w", ErrRequestFailed, out.Err)
		c.result = nil
		c.log.Warn("query failed",
			slog.Uint64("request", out.RequestID),
			slog.Duration("elapsed", out.Elapsed),
			slog.Any("error", out.Err),
		)
	} else {
		res := out.Result
		c.result = &res
		c.err = nil
		c.history.Record(history.NewEntry(out.Query, c.now()))
		c.log.Info("query succeeded",
			slog.Uint64("request", out.RequestID),
			slog.Duration("elapsed", out.Elapsed),
			slog.String("facets", res.Facets()),
		)
	}
	c.stopLoading()
}

// Fire delivers an escalation ticket. It reports whether the escalation line
// was switched on; stale, early or repeated tickets are ignored.
func (c *Controller) Fire(t Ticket) bool {
	if !c.loading.Active {
		return false
	}
	if !c.timer.Fire(t, c.now()) {
		return false
	}
	c.loading.ElapsedBeyondThreshold = true
	c.log.Info("request exceeded escalation threshold", slog.Duration("threshold", EscalationThreshold))
	return true
}

// Teardown cancels the escalation timer. Outstanding requests are not
// aborted; the timer just never fires again.
func (c *Controller) Teardown() {
	c.torn = true
	c.stopLoading()
}

func (c *Controller) stopLoading() {
	c.timer.Cancel()
	c.loading = LoadingState{}
}

// Loading returns the current loading indicator.
func (c *Controller) Loading() LoadingState {
	return c.loading
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() State {
	var res *result.Result
	if c.result != nil {
		copied := *c.result
		res = &copied
	}
	return State{
		Query:   c.query,
		Result:  res,
		Err:     c.err,
		Mode:    c.mode,
		Loading: c.loading,
		History: c.history.Entries(),
	}
}

package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/csheth/insightlens/internal/backend"
	"github.com/csheth/insightlens/internal/console"
	"github.com/csheth/insightlens/internal/view"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Backend backend.Client
	Logger  *slog.Logger
	// RequestTimeout bounds each query job; zero leaves it to the HTTP client.
	RequestTimeout time.Duration
	// Clock replaces time.Now for the escalation timer and history stamps.
	Clock func() time.Time
	// Clipboard replaces the system clipboard writer.
	Clipboard func(string) error
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := config.Clock
	if now == nil {
		now = time.Now
	}
	copyFn := config.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	input := textinput.New()
	input.Placeholder = composerPlaceholder
	input.Prompt = "› "
	input.CharLimit = composerCharLimit
	input.Width = 70
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	m := &model{
		config:   config,
		log:      logger.With(slog.String("component", "tui")),
		now:      now,
		copyFn:   copyFn,
		ctrl:     console.New(console.WithClock(now), console.WithLogger(logger)),
		jobs:     newJobBus(logger),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
		spinner:  spin,
		viewport: vp,
		layout:   newPageLayout(),
		inflight: map[string]bool{},
		dirty:    true,
	}
	return m
}

type model struct {
	config Config
	log    *slog.Logger
	now    func() time.Time
	copyFn func(string) error

	ctrl *console.Controller
	jobs *jobBus
	keys keyMap
	help help.Model

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	layout   pageLayout

	inflight    map[string]bool
	lastJob     *jobSnapshot
	infoMessage string
	helpVisible bool
	dirty       bool
	quitting    bool
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case spinner.TickMsg:
		if !m.ctrl.Loading().Active {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case escalationMsg:
		return m, m.handleEscalation(msg.ticket)
	case jobSignalMsg:
		m.inflight[msg.Snapshot.ID] = true
		return m, nil
	case jobResultEnvelope:
		delete(m.inflight, msg.Snapshot.ID)
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		return m.Update(msg.Payload)
	case queryResultMsg:
		m.ctrl.Complete(msg.outcome)
		m.markDirty()
		return m, nil
	case clipboardResultMsg:
		if msg.err != nil {
			m.infoMessage = "Copy failed: clipboard unavailable."
			m.log.Warn("clipboard write failed", slog.Any("error", msg.err))
		} else {
			m.infoMessage = copiedMessage(msg.lines)
		}
		return m, clipboardFadeCmd()
	case clipboardFadeMsg:
		m.infoMessage = ""
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Clear):
		if m.input.Value() != "" {
			m.setQuery("")
			return m, nil
		}
		return m, m.quit()
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.NextView):
		m.setMode(m.ctrl.Snapshot().Mode.Next())
		return m, nil
	case key.Matches(msg, m.keys.PrevView):
		m.setMode(m.ctrl.Snapshot().Mode.Prev())
		return m, nil
	case key.Matches(msg, m.keys.TextView):
		m.setMode(view.ModeText)
		return m, nil
	case key.Matches(msg, m.keys.TableView):
		m.setMode(view.ModeTable)
		return m, nil
	case key.Matches(msg, m.keys.ChartView):
		m.setMode(view.ModeChart)
		return m, nil
	case key.Matches(msg, m.keys.QuickOne):
		m.setQuery(quickQueries[0])
		return m, nil
	case key.Matches(msg, m.keys.QuickTwo):
		m.setQuery(quickQueries[1])
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyView()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuery(m.input.Value())
	return m, cmd
}

// submit hands the composer text to the controller. The composer keeps its
// text so a failed question can be retried with enter.
func (m *model) submit() tea.Cmd {
	wasLoading := m.ctrl.Loading().Active
	req, ok := m.ctrl.Submit(m.input.Value())
	if !ok {
		return nil
	}
	m.infoMessage = ""
	m.markDirty()

	cmds := []tea.Cmd{m.jobs.Start(jobKindQuery, queryJob(m.config.Backend, req, m.config.RequestTimeout))}
	if !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	if req.Escalation != nil {
		cmds = append(cmds, escalationCmd(*req.Escalation, m.now()))
	}
	return tea.Batch(cmds...)
}

// handleEscalation delivers a ticket. A tick that lands before the deadline
// by the controller's clock is rescheduled for the remainder.
func (m *model) handleEscalation(ticket console.Ticket) tea.Cmd {
	if m.ctrl.Fire(ticket) {
		return nil
	}
	loading := m.ctrl.Loading()
	if loading.Active && !loading.ElapsedBeyondThreshold && m.now().Before(ticket.Deadline) {
		return escalationCmd(ticket, m.now())
	}
	return nil
}

func (m *model) quit() tea.Cmd {
	m.quitting = true
	m.ctrl.Teardown()
	m.log.Info("console quitting", slog.Int("inflight", len(m.inflight)))
	return tea.Quit
}

func (m *model) setQuery(q string) {
	m.input.SetValue(q)
	m.input.CursorEnd()
	m.ctrl.SetQuery(q)
}

func (m *model) setMode(mode view.Mode) {
	m.ctrl.SetMode(mode)
	m.markDirty()
	m.viewport.GotoTop()
}

func (m *model) copyView() tea.Cmd {
	text := m.plainOutput()
	if strings.TrimSpace(text) == "" {
		m.infoMessage = "Nothing to copy yet."
		return clipboardFadeCmd()
	}
	return m.jobs.Start(jobKindCopy, copyJob(m.copyFn, text))
}

func (m *model) renderOptions() view.Options {
	return view.Options{Width: m.layout.viewportWidth}
}

// plainOutput is the current view without styling.
func (m *model) plainOutput() string {
	return ansi.Strip(view.Render(m.ctrl.Snapshot().Output(), m.renderOptions()))
}

func (m *model) markDirty() {
	m.dirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.dirty {
		return
	}
	m.dirty = false
	m.viewport.SetContent(view.Render(m.ctrl.Snapshot().Output(), m.renderOptions()))
}

func (m *model) applyLayout() {
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.input.Width = m.layout.viewportWidth - 4
	m.help.Width = m.layout.windowWidth
	m.markDirty()
}

func copiedMessage(lines int) string {
	if lines == 1 {
		return "Copied 1 line to the clipboard."
	}
	return fmt.Sprintf("Copied %d lines to the clipboard.", lines)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/insightlens/internal/view"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	m.refreshViewportIfDirty()
	return joinNonEmpty([]string{
		m.heroView(),
		m.composerPanel(),
		m.resultsPanel(),
		m.statusView(),
		m.historyPanel(),
		m.footerView(),
	})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(headerTitle),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) composerPanel() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Question"),
		m.input.View(),
	})
}

func (m *model) tabsView() string {
	active := m.ctrl.Snapshot().Mode
	tabs := make([]string, 0, len(view.Modes))
	for _, mode := range view.Modes {
		if mode == active {
			tabs = append(tabs, activeTabStyle.Render(mode.Label()))
			continue
		}
		tabs = append(tabs, tabStyle.Render(mode.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *model) resultsPanel() string {
	body := m.viewport.View()
	if m.viewport.TotalLineCount() > m.viewport.Height {
		body = lipgloss.JoinVertical(lipgloss.Left, body,
			helperStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.tabsView(), resultsBoxStyle.Render(body))
}

// statusView holds the loading indicator and the error line. The error line
// never shows backend detail.
func (m *model) statusView() string {
	state := m.ctrl.Snapshot()
	var parts []string
	if state.Loading.Active {
		line := fmt.Sprintf("%s %s", m.spinner.View(), loadingMessage)
		parts = append(parts, helperStyle.Render(line))
		if state.Loading.ElapsedBeyondThreshold {
			parts = append(parts, escalationStyle.Render(escalationMessage))
		}
	}
	if msg := state.ErrorMessage(); msg != "" {
		parts = append(parts, errorStyle.Render(msg))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	return strings.Join(parts, "\n")
}

func (m *model) historyPanel() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Query History"),
		historyStyle.Render(m.historyBody()),
	})
}

// historyBody renders as many of the newest entries as fit in the history
// rows, with a count of the rest.
func (m *model) historyBody() string {
	entries := m.ctrl.Snapshot().History
	opts := m.renderOptions()
	limit := m.layout.historyHeight
	if len(entries) <= limit {
		if body := view.RenderHistory(entries, opts); strings.Count(body, "\n") < limit {
			return body
		}
	}
	shown := min(len(entries), limit-1)
	for ; shown > 0; shown-- {
		body := view.RenderHistory(entries[:shown], opts)
		if strings.Count(body, "\n")+1 <= limit-1 {
			return body + "\n" + helperStyle.Render(fmt.Sprintf("… %d older", len(entries)-shown))
		}
	}
	return helperStyle.Render(fmt.Sprintf("… %d queries", len(entries)))
}

func (m *model) footerView() string {
	parts := []string{}
	if meter := m.sessionMeterView(); meter != "" {
		parts = append(parts, meter)
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "\n")
}

func (m *model) sessionMeterView() string {
	state := m.ctrl.Snapshot()
	stats := []string{
		fmt.Sprintf("View %s", state.Mode.Label()),
		fmt.Sprintf("Asked %d", len(state.History)),
	}
	if n := len(m.inflight); n > 0 {
		stats = append(stats, fmt.Sprintf("In flight %d", n))
	}
	if m.lastJob != nil && m.lastJob.Kind == jobKindQuery {
		stats = append(stats, fmt.Sprintf("Last %s in %s", m.lastJob.Status, m.lastJob.Duration.Round(10*time.Millisecond)))
	}
	if m.config.Backend != nil {
		stats = append(stats, m.config.Backend.Name())
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	accentColor = lipgloss.Color("#4f8cff")

	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	escalationStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166")).Italic(true)
	historyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	tabStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 2)
	activeTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentColor).Padding(0, 2)
	resultsBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
)

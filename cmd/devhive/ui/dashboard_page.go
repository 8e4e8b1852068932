package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
)

// DashboardModel shows the knowledge base totals. It fetches stats once when
// the program starts and again only when the user explicitly refreshes.
type DashboardModel struct {
	client  *api.Client
	styles  Styles
	state   RequestState[api.StatsSnapshot]
	spinner spinner.Model
	width   int
	height  int
}

// NewDashboardModel creates the dashboard page, already pending its first
// stats fetch. The returned command must be run by the program's Init.
func NewDashboardModel(client *api.Client, styles Styles) (DashboardModel, tea.Cmd) {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	m := DashboardModel{
		client:  client,
		styles:  styles,
		spinner: sp,
	}
	seq := m.state.Begin()
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(seq))
}

// SetSize updates the page dimensions.
func (m *DashboardModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Loading reports whether this page's request is in flight.
func (m DashboardModel) Loading() bool { return m.state.Pending() }

func (m DashboardModel) fetchCmd(seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		snap, err := client.FetchStats(context.Background())
		if err != nil {
			return statsFailedMsg{page: RouteDashboard, seq: seq, message: userMessage(err)}
		}
		return statsLoadedMsg{page: RouteDashboard, seq: seq, snap: snap}
	}
}

// Refresh triggers a new stats fetch unless one is already in flight.
func (m DashboardModel) Refresh() (DashboardModel, tea.Cmd) {
	if m.state.Pending() {
		return m, nil
	}
	seq := m.state.Begin()
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(seq))
}

// Update handles messages addressed to this page.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.page == RouteDashboard {
			m.state.Resolve(msg.seq, msg.snap)
		}
		return m, nil

	case statsFailedMsg:
		if msg.page == RouteDashboard {
			m.state.Fail(msg.seq, msg.message)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.Refresh()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the page for the current request phase.
func (m DashboardModel) View() string {
	s := m.styles
	title := s.Title.Render("Dashboard")

	switch m.state.Phase() {
	case PhasePending, PhaseIdle:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			LoadingLine(s, m.spinner.View(), "Loading stats..."),
		)

	case PhaseFailed:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			ErrorBanner(s, m.state.Err()),
			s.Muted.Render("Press r to retry."),
		)

	default:
		snap := m.state.Data()
		totals := lipgloss.JoinHorizontal(lipgloss.Top,
			StatTile(s, "Total Vectors", snap.TotalVectors),
			" ",
			StatTile(s, "Total Documents", snap.TotalDocuments),
		)
		bySource := lipgloss.JoinHorizontal(lipgloss.Top,
			StatTile(s, "GitHub Documents", snap.Sources.GitHub),
			" ",
			StatTile(s, "Notion Documents", snap.Sources.Notion),
			" ",
			StatTile(s, "Slack Documents", snap.Sources.Slack),
		)
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			totals,
			bySource,
			"",
			s.Muted.Render("Press r to refresh."),
		)
	}
}

package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
)

// IntegrationsModel shows per-source integration status derived from the
// same stats snapshot the dashboard uses, plus backend reachability. It owns
// its own request state: a failure here never touches the dashboard and vice
// versa.
type IntegrationsModel struct {
	client  *api.Client
	styles  Styles
	state   RequestState[api.StatsSnapshot]
	health  RequestState[bool]
	spinner spinner.Model
	width   int
	height  int
}

// NewIntegrationsModel creates the integrations page, already pending its
// first fetch. The returned command must be run by the program's Init.
func NewIntegrationsModel(client *api.Client, styles Styles) (IntegrationsModel, tea.Cmd) {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	m := IntegrationsModel{
		client:  client,
		styles:  styles,
		spinner: sp,
	}
	statsSeq := m.state.Begin()
	healthSeq := m.health.Begin()
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(statsSeq), m.healthCmd(healthSeq))
}

// SetSize updates the page dimensions.
func (m *IntegrationsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Loading reports whether this page's stats request is in flight.
func (m IntegrationsModel) Loading() bool { return m.state.Pending() }

func (m IntegrationsModel) fetchCmd(seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		snap, err := client.FetchStats(context.Background())
		if err != nil {
			return statsFailedMsg{page: RouteIntegrations, seq: seq, message: userMessage(err)}
		}
		return statsLoadedMsg{page: RouteIntegrations, seq: seq, snap: snap}
	}
}

func (m IntegrationsModel) healthCmd(seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		hs, err := client.Health(context.Background())
		return healthMsg{seq: seq, healthy: err == nil && hs.Healthy()}
	}
}

// Refresh triggers a new fetch unless one is already in flight.
func (m IntegrationsModel) Refresh() (IntegrationsModel, tea.Cmd) {
	if m.state.Pending() {
		return m, nil
	}
	statsSeq := m.state.Begin()
	healthSeq := m.health.Begin()
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(statsSeq), m.healthCmd(healthSeq))
}

// Update handles messages addressed to this page.
func (m IntegrationsModel) Update(msg tea.Msg) (IntegrationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.page == RouteIntegrations {
			m.state.Resolve(msg.seq, msg.snap)
		}
		return m, nil

	case statsFailedMsg:
		if msg.page == RouteIntegrations {
			m.state.Fail(msg.seq, msg.message)
		}
		return m, nil

	case healthMsg:
		m.health.Resolve(msg.seq, msg.healthy)
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

// sourcePanel renders one integration's status block.
func (m IntegrationsModel) sourcePanel(key string, count int) string {
	s := m.styles
	status := s.Muted.Render("No documents")
	if count > 0 {
		status = s.Success.Render("Connected")
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		SourceTag(s, key),
		fmt.Sprintf("%s documents", s.Bold.Render(fmt.Sprintf("%d", count))),
		status,
	))
}

// View renders the page for the current request phase.
func (m IntegrationsModel) View() string {
	s := m.styles
	title := s.Title.Render("Data Integrations")

	var server string
	switch {
	case m.health.Pending():
		server = s.Muted.Render("Checking server...")
	case m.health.Phase() == PhaseResolved && m.health.Data():
		server = s.Success.Render("Server is running")
	default:
		server = s.Error.Render("Server unreachable")
	}

	switch m.state.Phase() {
	case PhasePending, PhaseIdle:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			server,
			LoadingLine(s, m.spinner.View(), "Loading integration status..."),
		)

	case PhaseFailed:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			server,
			ErrorBanner(s, m.state.Err()),
			s.Muted.Render("Press r to retry."),
		)

	default:
		snap := m.state.Data()
		panels := lipgloss.JoinHorizontal(lipgloss.Top,
			m.sourcePanel(api.SourceGitHub, snap.Sources.GitHub),
			" ",
			m.sourcePanel(api.SourceNotion, snap.Sources.Notion),
			" ",
			m.sourcePanel(api.SourceSlack, snap.Sources.Slack),
		)
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			server,
			panels,
			"",
			s.Muted.Render(fmt.Sprintf("%d indexed chunks across all sources. Press r to refresh.", snap.TotalVectors)),
		)
	}
}

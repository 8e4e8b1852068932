package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
)

// SearchModel is the knowledge base search page. It starts idle: nothing is
// requested until the user submits a query.
type SearchModel struct {
	client  *api.Client
	styles  Styles
	state   RequestState[[]api.SearchResult]
	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
}

// NewSearchModel creates the search page.
func NewSearchModel(client *api.Client, styles Styles) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search for knowledge..."
	ti.CharLimit = 512
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))

	return SearchModel{
		client:  client,
		styles:  styles,
		input:   ti,
		spinner: sp,
	}
}

// SetSize updates the page dimensions.
func (m *SearchModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(20, w-8)
}

// Loading reports whether this page's request is in flight.
func (m SearchModel) Loading() bool { return m.state.Pending() }

// Focus gives keyboard focus to the query input.
func (m *SearchModel) Focus() { m.input.Focus() }

func (m SearchModel) searchCmd(seq int, query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		results, err := client.RunSearch(context.Background(), query)
		if err != nil {
			return searchFailedMsg{seq: seq, message: userMessage(err)}
		}
		return searchDoneMsg{seq: seq, results: results}
	}
}

// submit validates and dispatches the current query. A query that is empty
// after trimming is rejected before any state transition: the page keeps
// showing whatever it showed before.
func (m SearchModel) submit() (SearchModel, tea.Cmd) {
	if m.state.Pending() {
		// Single-flight: the submit affordance is disabled while pending.
		return m, nil
	}
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	seq := m.state.Begin()
	return m, tea.Batch(m.spinner.Tick, m.searchCmd(seq, query))
}

// Update handles messages addressed to this page.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.state.Resolve(msg.seq, msg.results)
		return m, nil

	case searchFailedMsg:
		m.state.Fail(msg.seq, msg.message)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the page for the current request phase.
func (m SearchModel) View() string {
	s := m.styles
	title := s.Title.Render("Search Knowledge Base")
	prompt := m.input.View()

	var body string
	switch m.state.Phase() {
	case PhaseIdle:
		body = s.Muted.Render("Type a query and press Enter.")

	case PhasePending:
		body = LoadingLine(s, m.spinner.View(), "Searching...")

	case PhaseFailed:
		body = ErrorBanner(s, m.state.Err())

	default:
		results := m.state.Data()
		if len(results) == 0 {
			body = EmptyNotice(s, "No results found. Try rephrasing your search.")
			break
		}
		rows := make([]string, 0, len(results)+1)
		rows = append(rows, s.Subtitle.Render(fmt.Sprintf("%d result(s)", len(results))))
		for _, r := range results {
			rows = append(rows, ResultRow(s, r.Text, r.Source, r.Score))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, "", body)
}

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
)

// AskModel is the question-answering page. Exactly one answer is held at a
// time: a successful submission replaces the previous answer and its sources
// entirely. There is no history.
type AskModel struct {
	client   *api.Client
	styles   Styles
	state    RequestState[api.Answer]
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

// NewAskModel creates the ask page.
func NewAskModel(client *api.Client, styles Styles) AskModel {
	ti := textinput.New()
	ti.Placeholder = "What would you like to know?"
	ti.CharLimit = 1024
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	vp := viewport.New(80, 20)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return AskModel{
		client:   client,
		styles:   styles,
		input:    ti,
		spinner:  sp,
		viewport: vp,
		renderer: renderer,
	}
}

// SetSize updates the page dimensions and rewraps the answer.
func (m *AskModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(20, w-8)
	m.viewport.Width = w
	m.viewport.Height = max(5, h-8)
	if renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, w-4)),
	); err == nil {
		m.renderer = renderer
	}
	if m.state.Phase() == PhaseResolved {
		m.viewport.SetContent(m.renderAnswer(m.state.Data()))
	}
}

// Loading reports whether this page's request is in flight.
func (m AskModel) Loading() bool { return m.state.Pending() }

// Focus gives keyboard focus to the question input.
func (m *AskModel) Focus() { m.input.Focus() }

func (m AskModel) askCmd(seq int, question string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		answer, err := client.AskQuestion(context.Background(), question)
		if err != nil {
			return askFailedMsg{seq: seq, message: userMessage(err)}
		}
		return askDoneMsg{seq: seq, answer: answer}
	}
}

// submit validates and dispatches the current question. Whitespace-only
// input is rejected before any state transition or network call.
func (m AskModel) submit() (AskModel, tea.Cmd) {
	if m.state.Pending() {
		return m, nil
	}
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m, nil
	}
	seq := m.state.Begin()
	return m, tea.Batch(m.spinner.Tick, m.askCmd(seq, question))
}

// Update handles messages addressed to this page.
func (m AskModel) Update(msg tea.Msg) (AskModel, tea.Cmd) {
	switch msg := msg.(type) {
	case askDoneMsg:
		if m.state.Resolve(msg.seq, msg.answer) {
			m.viewport.SetContent(m.renderAnswer(msg.answer))
			m.viewport.GotoTop()
		}
		return m, nil

	case askFailedMsg:
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
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// renderAnswer builds the full answer panel: markdown body plus the source
// list that backed it.
func (m AskModel) renderAnswer(ans api.Answer) string {
	s := m.styles

	parts := []string{
		s.Bold.Render("Answer"),
		m.safeRenderMarkdown(ans.Answer),
	}
	if len(ans.Sources) > 0 {
		parts = append(parts, s.Bold.Render("Sources"))
		for _, src := range ans.Sources {
			parts = append(parts, s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
				s.Body.Render(src.Text),
				SourceTag(s, src.Source),
			)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// safeRenderMarkdown renders markdown, falling back to plain text if the
// renderer errors or panics.
func (m AskModel) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}

// View renders the page for the current request phase.
func (m AskModel) View() string {
	s := m.styles
	title := s.Title.Render("Ask a Question")
	prompt := m.input.View()

	var body string
	switch m.state.Phase() {
	case PhaseIdle:
		body = s.Muted.Render("Ask anything about your knowledge base and press Enter.")

	case PhasePending:
		body = LoadingLine(s, m.spinner.View(), "Thinking...")

	case PhaseFailed:
		body = ErrorBanner(s, m.state.Err())

	default:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, "", body)
}

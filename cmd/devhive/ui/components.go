package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Pure presentation helpers. Props in, rendered string out: no state, no
// network access.

// sourceTagSpec maps a known source key to its display label and color.
var sourceTagSpec = map[string]struct {
	label string
	color lipgloss.Color
}{
	"github": {"GitHub", GitHubColor},
	"notion": {"Notion", NotionColor},
	"slack":  {"Slack", SlackColor},
}

// StatTile renders one labeled metric. The value is rendered verbatim,
// including when it is exactly zero.
func StatTile(s Styles, label string, value int) string {
	return s.Card.Render(fmt.Sprintf("%s: %s", s.Muted.Render(label), s.Bold.Render(fmt.Sprintf("%d", value))))
}

// SourceTag renders the colored label for a source key. Unrecognized keys
// render the raw key in the neutral style instead of failing.
func SourceTag(s Styles, key string) string {
	if spec, ok := sourceTagSpec[key]; ok {
		return s.NeutralTag.Background(spec.color).Render(spec.label)
	}
	return s.NeutralTag.Render(key)
}

// ResultRow renders one search hit: snippet, source tag and, only when
// present, the score. A nil score renders nothing in its place.
func ResultRow(s Styles, text, source string, score *float64) string {
	meta := SourceTag(s, source)
	if score != nil {
		meta = lipgloss.JoinHorizontal(lipgloss.Center, meta, "  ", s.Muted.Render(fmt.Sprintf("Score: %.4f", *score)))
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, s.Body.Render(text), meta))
}

// ErrorBanner renders a failure message, or nothing when the message is
// empty.
func ErrorBanner(s Styles, message string) string {
	if message == "" {
		return ""
	}
	return s.ErrorPanel.Render(message)
}

// EmptyNotice renders the explicit "nothing here" state, distinct from the
// never-requested idle state.
func EmptyNotice(s Styles, text string) string {
	return s.EmptyNotice.Render(text)
}

// LoadingLine renders the in-flight indicator next to a short status label.
func LoadingLine(s Styles, spinnerView, label string) string {
	return lipgloss.JoinHorizontal(lipgloss.Center, spinnerView, " ", s.Muted.Render(label))
}

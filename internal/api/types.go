// Package api provides the HTTP transport client for the DevHive backend.
// The client is a transparent pass-through: response fields are decoded
// exactly as the backend sends them, never renamed or defaulted.
package api

// Known source keys as the backend reports them.
const (
	SourceGitHub = "github"
	SourceNotion = "notion"
	SourceSlack  = "slack"
)

// SourceCounts holds per-source document counts from the stats resource.
type SourceCounts struct {
	GitHub int `json:"github"`
	Notion int `json:"notion"`
	Slack  int `json:"slack"`
}

// StatsSnapshot is a single complete read of the stats resource.
// It is immutable once received; a new fetch replaces it wholesale.
type StatsSnapshot struct {
	TotalVectors   int          `json:"total_vectors"`
	TotalDocuments int          `json:"total_documents"`
	Sources        SourceCounts `json:"sources"`
}

// SearchResult is one hit from the search endpoint. Score is nil when the
// backend omits it; rendering treats absence and zero differently.
type SearchResult struct {
	Text   string   `json:"text"`
	Source string   `json:"source"`
	Score  *float64 `json:"score,omitempty"`
}

// AnswerSource is one context chunk the backend used to build an answer.
type AnswerSource struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Answer is the response to a question. At most one Answer is held in memory
// at a time; a new submission discards the previous one entirely.
type Answer struct {
	Answer  string         `json:"answer"`
	Sources []AnswerSource `json:"sources"`
}

// HealthStatus reports backend reachability from the health endpoint.
type HealthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Healthy reports whether the backend considers itself operational.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

type askRequest struct {
	Question string `json:"question"`
}

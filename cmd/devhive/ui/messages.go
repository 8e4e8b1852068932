package ui

import (
	"errors"

	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
)

// Response messages. Each carries the route of the page that issued the
// request plus the sequence number of the submission, so a page can discard
// responses it did not ask for (other pages' traffic, superseded
// submissions).

type statsLoadedMsg struct {
	page Route
	seq  int
	snap api.StatsSnapshot
}

type statsFailedMsg struct {
	page    Route
	seq     int
	message string
}

type searchDoneMsg struct {
	seq     int
	results []api.SearchResult
}

type searchFailedMsg struct {
	seq     int
	message string
}

type askDoneMsg struct {
	seq    int
	answer api.Answer
}

type askFailedMsg struct {
	seq     int
	message string
}

type healthMsg struct {
	seq     int
	healthy bool
}

// userMessage extracts the short human-readable string from a transport
// failure. Anything that is not a TransportError gets a generic message;
// raw errors never reach the screen.
func userMessage(err error) string {
	var terr *api.TransportError
	if errors.As(err, &terr) && terr.UserMessage() != "" {
		return terr.UserMessage()
	}
	return "Something went wrong. Please try again."
}

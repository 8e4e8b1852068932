package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// http.Transport keeps idle connections alive briefly after tests.
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func TestFetchStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/stats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("no auth header may ever be sent, got %q", auth)
		}
		io.WriteString(w, `{"total_vectors":120,"total_documents":40,"sources":{"github":10,"notion":20,"slack":10}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	snap, err := client.FetchStats(context.Background())
	if err != nil {
		t.Fatalf("FetchStats failed: %v", err)
	}
	if snap.TotalVectors != 120 || snap.TotalDocuments != 40 {
		t.Errorf("unexpected totals: %+v", snap)
	}
	if snap.Sources.GitHub != 10 || snap.Sources.Notion != 20 || snap.Sources.Slack != 10 {
		t.Errorf("unexpected source counts: %+v", snap.Sources)
	}
}

func TestFetchStatsZeroValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total_vectors":0,"total_documents":0,"sources":{"github":0,"notion":0,"slack":0}}`)
	}))
	defer server.Close()

	snap, err := NewClient(server.URL).FetchStats(context.Background())
	if err != nil {
		t.Fatalf("FetchStats failed: %v", err)
	}
	if snap.TotalVectors != 0 || snap.Sources.GitHub != 0 {
		t.Errorf("zero values must survive decoding: %+v", snap)
	}
}

func TestRunSearchSendsBodyVerbatim(t *testing.T) {
	// The transport must not trim or rewrite the query; trimming is the
	// controller's job before calling it.
	const query = "  pricing  "
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if req["query"] != query {
			t.Errorf("query rewritten in transit: %q", req["query"])
		}
		if len(req) != 1 {
			t.Errorf("body must contain only the query field, got %v", req)
		}
		io.WriteString(w, `{"results":[{"text":"Plan costs $9/mo","source":"notion","score":0.87},{"text":"second","source":"github"}]}`)
	}))
	defer server.Close()

	results, err := NewClient(server.URL).RunSearch(context.Background(), query)
	if err != nil {
		t.Fatalf("RunSearch failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one POST, got %d", calls)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Server order preserved, never re-sorted.
	if results[0].Text != "Plan costs $9/mo" || results[1].Text != "second" {
		t.Errorf("result order changed: %+v", results)
	}
	if results[0].Score == nil || *results[0].Score != 0.87 {
		t.Errorf("expected score 0.87, got %v", results[0].Score)
	}
	if results[1].Score != nil {
		t.Errorf("absent score must decode as nil, got %v", *results[1].Score)
	}
}

func TestRunSearchEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[]}`)
	}))
	defer server.Close()

	results, err := NewClient(server.URL).RunSearch(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("RunSearch failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set, got %d", len(results))
	}
}

func TestAskQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if req["question"] != "What is KTP?" {
			t.Errorf("unexpected question: %q", req["question"])
		}
		io.WriteString(w, `{"answer":"A knowledge platform.","sources":[{"text":"KTP docs","source":"notion"}]}`)
	}))
	defer server.Close()

	ans, err := NewClient(server.URL).AskQuestion(context.Background(), "What is KTP?")
	if err != nil {
		t.Fatalf("AskQuestion failed: %v", err)
	}
	if ans.Answer != "A knowledge platform." {
		t.Errorf("unexpected answer: %q", ans.Answer)
	}
	if len(ans.Sources) != 1 || ans.Sources[0].Source != "notion" {
		t.Errorf("unexpected sources: %+v", ans.Sources)
	}
}

func TestServerErrorIsGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pinecone exploded: stack trace ...", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchStats(context.Background())
	if err == nil {
		t.Fatal("expected error on 500")
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	msg := terr.UserMessage()
	if msg == "" {
		t.Fatal("user message must be non-empty")
	}
	// Never leak raw status codes or server internals to the user.
	if strings.Contains(msg, "500") || strings.Contains(msg, "pinecone") {
		t.Errorf("user message leaks technical detail: %q", msg)
	}
}

func TestMalformedBodyIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<!doctype html><html>not json</html>`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).RunSearch(context.Background(), "q")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError on malformed body, got %v", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).AskQuestion(context.Background(), "hello")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError when unreachable, got %v", err)
	}
	if terr.UserMessage() == "" {
		t.Error("user message must be non-empty")
	}
}

func TestNonOKSuccessStatus(t *testing.T) {
	// Any 2xx counts as success, not just 200.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		io.WriteString(w, `{"status":"healthy"}`)
	}))
	defer server.Close()

	hs, err := NewClient(server.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if !hs.Healthy() {
		t.Errorf("expected healthy status, got %+v", hs)
	}
}

func TestDefaultBaseURL(t *testing.T) {
	client := NewClient("")
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", client.BaseURL())
	}
}

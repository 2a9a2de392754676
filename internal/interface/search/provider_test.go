package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/go-cmp/cmp"
)

const ddgBody = `{
  "Heading": "Go",
  "AbstractText": "Go is a programming language.",
  "AbstractURL": "https://en.wikipedia.org/wiki/Go_(programming_language)",
  "RelatedTopics": [
    {"Text": "Gopher - The Go mascot", "FirstURL": "https://duckduckgo.com/Gopher"},
    {"Name": "Tools", "Topics": [
      {"Text": "gofmt - Formatter", "FirstURL": "https://duckduckgo.com/gofmt"}
    ]}
  ]
}`

const braveBody = `{
  "web": {"results": [
    {"title": " Go ", "url": "https://go.dev/", "description": "The <strong>Go</strong> language"},
    {"title": "Tour", "url": "https://go.dev/tour", "description": "A tour"}
  ]}
}`

func TestDuckDuckGoSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(ddgBody))
	}))
	defer srv.Close()

	resp, err := Search(context.Background(), "  golang  ", &Config{Provider: ProviderDuckDuckGo, DDGBaseURL: srv.URL})
	assert.NoError(t, err)
	assert.Equal(t, "golang", gotQuery)
	assert.Equal(t, ProviderDuckDuckGo, resp.Provider)

	want := []Result{
		{Title: "Go", URL: "https://en.wikipedia.org/wiki/Go_(programming_language)", Description: "Go is a programming language."},
		{Title: "Gopher", URL: "https://duckduckgo.com/Gopher", Description: "The Go mascot"},
		{Title: "gofmt", URL: "https://duckduckgo.com/gofmt", Description: "Formatter"},
	}
	if diff := cmp.Diff(want, resp.Results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestBraveSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		w.Write([]byte(braveBody))
	}))
	defer srv.Close()

	resp, err := Search(context.Background(), "go", &Config{
		BraveAPIKey:  "secret",
		BraveBaseURL: srv.URL,
		Count:        1,
	})
	assert.NoError(t, err)
	assert.Equal(t, ProviderBrave, resp.Provider)
	assert.Equal(t, []Result{{Title: "Go", URL: "https://go.dev/", Description: "The Go language"}}, resp.Results)
}

func TestSearchFallsBackToDuckDuckGo(t *testing.T) {
	brave := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer brave.Close()
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ddgBody))
	}))
	defer ddg.Close()

	resp, err := Search(context.Background(), "go", &Config{
		BraveAPIKey:  "secret",
		BraveBaseURL: brave.URL,
		DDGBaseURL:   ddg.URL,
	})
	assert.NoError(t, err)
	assert.Equal(t, ProviderDuckDuckGo, resp.Provider)
}

func TestSearchErrors(t *testing.T) {
	_, err := Search(context.Background(), "   ", nil)
	assert.EqualError(t, err, "missing query")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err = Search(context.Background(), "go", &Config{DDGBaseURL: srv.URL})
	assert.EqualError(t, err, "ddg: invalid JSON in search response")
}

func TestWithDefaults(t *testing.T) {
	cfg := (&Config{Count: 100}).WithDefaults()
	assert.Equal(t, MaxSearchCount, cfg.Count)
	assert.Equal(t, "auto", cfg.Provider)
	assert.Equal(t, []string{ProviderBrave, ProviderDuckDuckGo}, buildOrder(cfg))

	cfg = (&Config{Provider: ProviderDuckDuckGo}).WithDefaults()
	assert.Equal(t, []string{ProviderDuckDuckGo, ProviderBrave}, buildOrder(cfg))
}

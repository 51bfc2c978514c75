package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/models"
)

func resultsPage(snippets ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><body><div id='links'>")
	for _, s := range snippets {
		sb.WriteString(`<div class="result"><a class="result__snippet">` + s + `</a></div>`)
	}
	sb.WriteString("</div></body></html>")
	return sb.String()
}

func TestFetchSnippets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "example.com" {
			t.Errorf("query = %q, want %q", got, "example.com")
		}
		fmt.Fprint(w, resultsPage(
			"A long enough snippet about the site.",
			"short",
			"Another perfectly reasonable result snippet.",
		))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(config.SearchConfig{MaxSnippets: 20, MinSnippetLen: 10}, srv.URL+"/html/")

	snippets, err := d.FetchSnippets(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("FetchSnippets returned error: %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets (short one filtered), got %d: %v", len(snippets), snippets)
	}
	if snippets[0] != "A long enough snippet about the site." {
		t.Errorf("snippets out of document order: %v", snippets)
	}
}

func TestFetchSnippets_CapsAtMaxSnippets(t *testing.T) {
	var many []string
	for i := 0; i < 30; i++ {
		many = append(many, fmt.Sprintf("Result snippet number %d with plenty of text.", i))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage(many...))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(config.SearchConfig{MaxSnippets: 5, MinSnippetLen: 10}, srv.URL+"/html/")

	snippets, err := d.FetchSnippets(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("FetchSnippets returned error: %v", err)
	}
	if len(snippets) != 5 {
		t.Errorf("expected cap of 5 snippets, got %d", len(snippets))
	}
}

func TestFetchSnippets_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	d := NewDuckDuckGo(config.SearchConfig{}, srv.URL+"/html/")

	_, err := d.FetchSnippets(context.Background(), "example.com")
	var reportErr *models.ReportError
	if !errors.As(err, &reportErr) {
		t.Fatalf("error = %v, want *models.ReportError", err)
	}
	if reportErr.Code != models.ErrCodeSearchFailure {
		t.Errorf("code = %q, want %q", reportErr.Code, models.ErrCodeSearchFailure)
	}
}

func TestFetchSnippets_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>No results.</p></body></html>")
	}))
	defer srv.Close()

	d := NewDuckDuckGo(config.SearchConfig{}, srv.URL+"/html/")

	snippets, err := d.FetchSnippets(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("no results should not be an error: %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("expected 0 snippets, got %d", len(snippets))
	}
}

func TestHostname(t *testing.T) {
	d := NewDuckDuckGo(config.SearchConfig{}, "")
	if got := d.Hostname(); got != "html.duckduckgo.com" {
		t.Errorf("default Hostname() = %q, want %q", got, "html.duckduckgo.com")
	}

	d = NewDuckDuckGo(config.SearchConfig{}, "http://127.0.0.1:9999/html/")
	if got := d.Hostname(); got != "127.0.0.1" {
		t.Errorf("override Hostname() = %q, want %q", got, "127.0.0.1")
	}
}

package search

import (
	"context"
	"net/url"
	"strings"
)

// SnippetFetcher gathers brief third-party context about a domain from an
// external search interface. Scraping a public results page is inherently
// markup-dependent, so the strategy lives behind this narrow interface and
// can be swapped without touching the pipeline.
type SnippetFetcher interface {
	// FetchSnippets returns up to the configured number of result snippets
	// for the domain, in document order. Errors propagate to the caller;
	// there is no local recovery.
	FetchSnippets(ctx context.Context, domain string) ([]string, error)

	// Hostname is the search interface's hostname, listed in the report's
	// sources alongside the crawled page hostnames.
	Hostname() string
}

// BareDomain derives the search query domain from a seed URL by stripping
// the leading subdomain label: "www.example.com" becomes "example.com",
// while a two-label host is returned unchanged.
func BareDomain(seedURL string) string {
	u, err := url.Parse(seedURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/models"
)

// mapFetcher serves pages from a map; unknown URLs fail like a dead link.
type mapFetcher struct {
	pages map[string]string
}

func (f *mapFetcher) Fetch(_ context.Context, targetURL string) (string, error) {
	html, ok := f.pages[targetURL]
	if !ok {
		return "", errors.New("not found")
	}
	return html, nil
}

func testConfig() config.CrawlConfig {
	return config.CrawlConfig{
		MaxDepth:    1,
		Concurrency: 3,
		MaxPages:    10,
		Timeout:     5 * time.Second,
	}
}

func linkPage(hrefs ...string) string {
	body := ""
	for _, h := range hrefs {
		body += fmt.Sprintf(`<a href="%s">link</a>`, h)
	}
	return "<html><body>" + body + "</body></html>"
}

func TestCrawl_SeedOnly(t *testing.T) {
	f := &mapFetcher{pages: map[string]string{
		"http://site.test/": "<html><body><p>No links here.</p></body></html>",
	}}
	c := New(testConfig(), f, nil)

	pages, err := c.Crawl(context.Background(), "http://site.test/")
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].URL != "http://site.test/" {
		t.Errorf("page URL = %q, want seed", pages[0].URL)
	}
}

func TestCrawl_FollowsLinksOneHop(t *testing.T) {
	f := &mapFetcher{pages: map[string]string{
		"http://site.test/":  linkPage("/a", "/b"),
		"http://site.test/a": linkPage("/c"),
		"http://site.test/b": "<html><body><p>b</p></body></html>",
		"http://site.test/c": "<html><body><p>never reached at depth 1</p></body></html>",
	}}
	c := New(testConfig(), f, nil)

	pages, err := c.Crawl(context.Background(), "http://site.test/")
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages (seed + 2 links), got %d", len(pages))
	}
	for _, p := range pages {
		if p.URL == "http://site.test/c" {
			t.Error("depth-2 page fetched despite MaxDepth=1")
		}
	}
}

func TestCrawl_MaxPagesCap(t *testing.T) {
	f := &mapFetcher{pages: map[string]string{
		"http://site.test/":  linkPage("/a", "/b", "/c"),
		"http://site.test/a": "<html><body>a</body></html>",
		"http://site.test/b": "<html><body>b</body></html>",
		"http://site.test/c": "<html><body>c</body></html>",
	}}

	cfg := testConfig()
	cfg.MaxPages = 1
	c := New(cfg, f, nil)

	pages, err := c.Crawl(context.Background(), "http://site.test/")
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("expected exactly MaxPages=1 pages, got %d", len(pages))
	}
}

func TestCrawl_ZeroTimeout(t *testing.T) {
	f := &mapFetcher{pages: map[string]string{
		"http://site.test/": "<html><body>fast</body></html>",
	}}

	cfg := testConfig()
	cfg.Timeout = 0
	c := New(cfg, f, nil)

	pages, err := c.Crawl(context.Background(), "http://site.test/")
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected 0 pages with an already-expired budget, got %d", len(pages))
	}
}

func TestCrawl_InvalidSeed(t *testing.T) {
	c := New(testConfig(), &mapFetcher{}, nil)

	for _, seed := range []string{"", "not a url at all ://", "ftp://site.test/", "/relative/path"} {
		_, err := c.Crawl(context.Background(), seed)
		var reportErr *models.ReportError
		if !errors.As(err, &reportErr) {
			t.Fatalf("Crawl(%q) error = %v, want *models.ReportError", seed, err)
		}
		if reportErr.Code != models.ErrCodeInvalidInput {
			t.Errorf("Crawl(%q) code = %q, want %q", seed, reportErr.Code, models.ErrCodeInvalidInput)
		}
	}
}

func TestCrawl_DeadLinksSwallowed(t *testing.T) {
	f := &mapFetcher{pages: map[string]string{
		"http://site.test/":      linkPage("/dead", "/alive"),
		"http://site.test/alive": "<html><body>alive</body></html>",
	}}
	c := New(testConfig(), f, nil)

	pages, err := c.Crawl(context.Background(), "http://site.test/")
	if err != nil {
		t.Fatalf("dead link failed the crawl: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("expected 2 pages (seed + alive), got %d", len(pages))
	}
}

func TestCrawl_DeduplicatesLinks(t *testing.T) {
	fetches := make(map[string]int)
	f := &countingFetcher{
		inner: &mapFetcher{pages: map[string]string{
			"http://site.test/":  linkPage("/a", "/a", "/a#frag", "/"),
			"http://site.test/a": "<html><body>a</body></html>",
		}},
		counts: fetches,
	}

	// Concurrency 1 keeps the plain counts map race-free.
	cfg := testConfig()
	cfg.Concurrency = 1
	c := New(cfg, f, nil)

	pages, err := c.Crawl(context.Background(), "http://site.test/")
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 unique pages, got %d", len(pages))
	}
	for url, n := range fetches {
		if n != 1 {
			t.Errorf("%s fetched %d times, want 1", url, n)
		}
	}
}

type countingFetcher struct {
	inner  Fetcher
	counts map[string]int
}

func (f *countingFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	f.counts[targetURL]++
	return f.inner.Fetch(ctx, targetURL)
}

func TestNormalizeLink(t *testing.T) {
	base, _ := url.Parse("http://site.test/dir/page")

	tests := []struct {
		href string
		want string
	}{
		{"/abs", "http://site.test/abs"},
		{"rel", "http://site.test/dir/rel"},
		{"http://other.test/x", "http://other.test/x"},
		{"https://other.test/x", "https://other.test/x"},
		{"/page#section", "http://site.test/page"},
		{"mailto:someone@site.test", ""},
		{"javascript:void(0)", ""},
	}

	for _, tt := range tests {
		if got := normalizeLink(base, tt.href); got != tt.want {
			t.Errorf("normalizeLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

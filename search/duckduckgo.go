package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/models"
)

// duckDuckGoEndpoint is the JS-free HTML results page.
const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// snippetSelector matches the snippet element of one organic result.
const snippetSelector = ".result__snippet"

// DuckDuckGo scrapes result snippets from the DuckDuckGo HTML interface.
// It issues exactly one unauthenticated query per call.
type DuckDuckGo struct {
	cfg        config.SearchConfig
	httpClient *http.Client
	endpoint   string
}

// NewDuckDuckGo creates a snippet fetcher against the public DuckDuckGo
// HTML endpoint. endpointOverride is for tests; pass "" in production.
func NewDuckDuckGo(cfg config.SearchConfig, endpointOverride string) *DuckDuckGo {
	if cfg.MaxSnippets <= 0 {
		cfg.MaxSnippets = 20
	}
	if cfg.MinSnippetLen <= 0 {
		cfg.MinSnippetLen = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	endpoint := endpointOverride
	if endpoint == "" {
		endpoint = duckDuckGoEndpoint
	}
	return &DuckDuckGo{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   endpoint,
	}
}

// Hostname returns the hostname of the search endpoint in use.
func (d *DuckDuckGo) Hostname() string {
	u, err := url.Parse(d.endpoint)
	if err != nil {
		return "duckduckgo.com"
	}
	return u.Hostname()
}

// FetchSnippets queries the search page for the domain and returns the
// visible text of every snippet element longer than MinSnippetLen, capped
// at MaxSnippets, in document order.
func (d *DuckDuckGo) FetchSnippets(ctx context.Context, domain string) ([]string, error) {
	query := d.endpoint + "?q=" + url.QueryEscape(domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, models.NewReportError(models.ErrCodeSearchFailure, "build search request", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, models.NewReportError(models.ErrCodeSearchFailure, "search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewReportError(models.ErrCodeSearchFailure,
			fmt.Sprintf("search returned HTTP %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, models.NewReportError(models.ErrCodeSearchFailure, "read search response", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, models.NewReportError(models.ErrCodeSearchFailure, "parse search response", err)
	}

	var snippets []string
	doc.Find(snippetSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) > d.cfg.MinSnippetLen {
			snippets = append(snippets, text)
		}
		return len(snippets) < d.cfg.MaxSnippets
	})

	return snippets, nil
}

package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/models"
)

// Crawler fetches a bounded set of pages reachable within MaxDepth link
// hops of a seed URL. Three stop conditions race, first one wins:
//
//	(a) natural completion — no more reachable links within depth
//	(b) page-count cap     — further fetch issuance stops, resolved pages kept
//	(c) wall-clock timeout — in-flight fetches are cancelled, resolved pages kept
//
// Per-page fetch errors are swallowed: they neither fail the crawl nor
// count toward the page total. Crawl only errors on an invalid seed URL.
type Crawler struct {
	cfg     config.CrawlConfig
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates a Crawler. A non-positive Concurrency falls back to 3; all
// other fields are taken as given so tests can pin boundary values
// (MaxPages = 1, Timeout = 0).
func New(cfg config.CrawlConfig, fetcher Fetcher, logger *slog.Logger) *Crawler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{cfg: cfg, fetcher: fetcher, logger: logger}
}

// Crawl runs the bounded crawl and returns the fetched pages in
// completion order. The slice length is between 0 and MaxPages.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) ([]models.CrawledPage, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || !seed.IsAbs() || (seed.Scheme != "http" && seed.Scheme != "https") {
		return nil, models.NewReportError(models.ErrCodeInvalidInput,
			"seed URL must be an absolute http(s) URL", err)
	}
	seed.Fragment = ""

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	run := &models.CrawlRun{StartedAt: time.Now()}
	var mu sync.Mutex

	// addPage appends a completed page and reports whether the cap is hit.
	// Hitting the cap cancels the crawl context, which stops further fetch
	// issuance without discarding already-resolved pages.
	addPage := func(pageURL, html string) bool {
		mu.Lock()
		defer mu.Unlock()
		if len(run.Pages) >= c.cfg.MaxPages {
			return true
		}
		run.Pages = append(run.Pages, models.CrawledPage{URL: pageURL, HTML: html})
		if len(run.Pages) >= c.cfg.MaxPages {
			cancel()
			return true
		}
		return false
	}

	visited := map[string]struct{}{seed.String(): {}}
	frontier := []string{seed.String()}

	for depth := 0; depth <= c.cfg.MaxDepth && len(frontier) > 0 && ctx.Err() == nil; depth++ {
		var (
			next   []string
			nextMu sync.Mutex
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.cfg.Concurrency)

		for _, pageURL := range frontier {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}

				html, err := c.fetcher.Fetch(gctx, pageURL)
				if err != nil {
					c.logger.Debug("page fetch failed", "url", pageURL, "depth", depth, "error", err)
					return nil
				}

				if full := addPage(pageURL, html); full || depth >= c.cfg.MaxDepth {
					return nil
				}

				base, err := url.Parse(pageURL)
				if err != nil {
					return nil
				}
				for _, link := range extractLinks(base, html) {
					nextMu.Lock()
					if _, seen := visited[link]; !seen {
						visited[link] = struct{}{}
						next = append(next, link)
					}
					nextMu.Unlock()
				}
				return nil
			})
		}

		// Per-page errors never reach the group; Wait only reflects
		// context cancellation, which is a stop condition, not a failure.
		_ = g.Wait()
		frontier = next
	}

	c.logger.Info("crawl finished",
		"seed", seed.String(),
		"pages", run.PageCount(),
		"elapsed", time.Since(run.StartedAt).Round(time.Millisecond),
	)
	return run.Pages, nil
}

// extractLinks pulls all a[href] targets from the page, resolved against
// base, fragment-stripped, http(s) only.
func extractLinks(base *url.URL, html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		if link := normalizeLink(base, href); link != "" {
			links = append(links, link)
		}
	})
	return links
}

package report

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/use-agent/sitebrief/budget"
	"github.com/use-agent/sitebrief/cleaner"
	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/llm"
	"github.com/use-agent/sitebrief/models"
	"github.com/use-agent/sitebrief/search"
)

// PageCrawler is the crawl stage as seen by the pipeline.
type PageCrawler interface {
	Crawl(ctx context.Context, seedURL string) ([]models.CrawledPage, error)
}

// Pipeline sequences the report stages: crawl, normalize, snippet fetch,
// token-budget optimization, prompt assembly, and synthesis. Every data
// structure it touches is request-scoped; nothing is shared across runs.
type Pipeline struct {
	crawler   PageCrawler
	cleaner   *cleaner.Cleaner
	snippets  search.SnippetFetcher
	optimizer *budget.Optimizer
	tokenizer budget.Tokenizer
	synth     llm.Synthesizer
	budgets   config.BudgetConfig
	logger    *slog.Logger
}

// NewPipeline wires the pipeline stages together. The budget config is
// passed explicitly so tests can exercise boundary ceilings.
func NewPipeline(
	pc PageCrawler,
	cl *cleaner.Cleaner,
	sf search.SnippetFetcher,
	tok budget.Tokenizer,
	synth llm.Synthesizer,
	budgets config.BudgetConfig,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		crawler:   pc,
		cleaner:   cl,
		snippets:  sf,
		optimizer: budget.NewOptimizer(tok, budgets.BoundaryRatio),
		tokenizer: tok,
		synth:     synth,
		budgets:   budgets,
		logger:    logger,
	}
}

// Generate runs the full pipeline for one seed URL and returns the report
// markdown plus the deduplicated source hostnames.
//
// Client errors (invalid seed, assembled prompt over the hard ceiling) come
// back as *models.ReportError with a client code; everything else is a
// server-side failure. No partial report is ever returned.
func (p *Pipeline) Generate(ctx context.Context, seedURL string) (*models.ReportResult, error) {
	if strings.TrimSpace(seedURL) == "" {
		return nil, models.NewReportError(models.ErrCodeInvalidInput, "url is required", nil)
	}

	pages, err := p.crawler.Crawl(ctx, seedURL)
	if err != nil {
		return nil, err
	}
	p.logger.Info("crawl stage complete", "seed", seedURL, "pages", len(pages))

	crawledText := p.cleaner.NormalizePages(pages)

	domain := search.BareDomain(seedURL)
	snippets, err := p.snippets.FetchSnippets(ctx, domain)
	if err != nil {
		return nil, err
	}
	externalText := strings.Join(snippets, "\n")
	p.logger.Info("snippet stage complete", "domain", domain, "snippets", len(snippets))

	crawledText, err = p.optimizer.Optimize(crawledText, p.budgets.CrawledTokens)
	if err != nil {
		return nil, err
	}
	externalText, err = p.optimizer.Optimize(externalText, p.budgets.SnippetTokens)
	if err != nil {
		return nil, err
	}

	combined := "WEBSITE CONTENT:\n" + crawledText + "\n\nEXTERNAL CONTEXT:\n" + externalText
	combined, err = p.optimizer.Optimize(combined, p.budgets.CombinedTokens)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(combined)

	// The assembled prompt, template included, must fit the backend limit.
	promptTokens, err := p.tokenizer.Count(prompt)
	if err != nil {
		return nil, err
	}
	if promptTokens > p.budgets.HardCeiling {
		return nil, models.NewReportError(models.ErrCodeContentTooLarge,
			"content too large to generate a report", nil)
	}
	p.logger.Info("prompt assembled", "tokens", promptTokens, "hardCeiling", p.budgets.HardCeiling)

	body, err := p.synth.GenerateReport(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sources := collectSources(pages, p.snippets.Hostname())
	return &models.ReportResult{
		Markdown: appendSources(body, sources),
		Sources:  sources,
	}, nil
}

// collectSources returns the deduplicated hostnames of every crawled page
// plus the search hostname, in first-seen order.
func collectSources(pages []models.CrawledPage, searchHost string) []string {
	seen := make(map[string]struct{})
	var sources []string

	add := func(host string) {
		if host == "" {
			return
		}
		if _, ok := seen[host]; ok {
			return
		}
		seen[host] = struct{}{}
		sources = append(sources, host)
	}

	for _, page := range pages {
		if u, err := url.Parse(page.URL); err == nil {
			add(u.Hostname())
		}
	}
	add(searchHost)
	return sources
}

// appendSources adds the Sources section to the synthesized markdown.
func appendSources(markdown string, sources []string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(markdown, "\n"))
	sb.WriteString("\n\n## Sources\n\n")
	for _, host := range sources {
		sb.WriteString("- ")
		sb.WriteString(host)
		sb.WriteByte('\n')
	}
	return sb.String()
}

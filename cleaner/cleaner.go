package cleaner

import (
	"log/slog"
	"strings"

	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/dedup"
	"github.com/use-agent/sitebrief/models"
)

// Cleaner converts crawled HTML into plain text suitable for semantic
// analysis. Two strategies are supported:
//
//	"strip" (default): remove boilerplate elements, keep all remaining text
//	"readability":     Mozilla Readability main-content extraction,
//	                   falling back to strip when extraction fails
type Cleaner struct {
	mode string
}

// New creates a Cleaner for the configured extract mode.
func New(cfg config.CleanerConfig) *Cleaner {
	mode := cfg.ExtractMode
	if mode == "" {
		mode = "strip"
	}
	return &Cleaner{mode: mode}
}

// NormalizePages converts every page to plain text and concatenates the
// results with a single newline separator, in crawl-completion order.
// Pages whose text is a SimHash near-duplicate of an earlier page are
// dropped so repeated bodies (trailing-slash aliases, print views) don't
// eat the token budget twice.
func (c *Cleaner) NormalizePages(pages []models.CrawledPage) string {
	texts := make([]string, 0, len(pages))
	var fingerprints []uint64

	for _, p := range pages {
		var text string
		if c.mode == "readability" {
			text = c.ExtractMain(p.HTML, p.URL)
		} else {
			text = Normalize(p.HTML)
		}
		if text == "" {
			continue
		}

		fp := dedup.Fingerprint(text)
		duplicate := false
		for _, seen := range fingerprints {
			if dedup.NearDuplicate(fp, seen, dedup.DefaultThreshold) {
				duplicate = true
				break
			}
		}
		if duplicate {
			slog.Debug("near-duplicate page dropped", "url", p.URL)
			continue
		}

		fingerprints = append(fingerprints, fp)
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n")
}

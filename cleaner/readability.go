package cleaner

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// minContentLength is the minimum TextContent length (in characters) for
// readability output to be considered valid. Below this threshold we assume
// the algorithm failed to locate the main content and fall back to the
// strip-based normalizer.
const minContentLength = 50

// ExtractMain runs the Mozilla Readability algorithm on rawHTML and returns
// the main content as plain text.
//
// Fallback behaviour (normalization must never fail just because
// readability choked):
//   - If URL parsing fails           → Normalize(rawHTML)
//   - If readability.FromReader errs → Normalize(rawHTML)
//   - If extracted text < 50 chars   → Normalize(rawHTML)
func (c *Cleaner) ExtractMain(rawHTML string, sourceURL string) string {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Warn("readability: invalid source URL, falling back to strip mode",
			"url", sourceURL, "error", err,
		)
		return Normalize(rawHTML)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Warn("readability: extraction failed, falling back to strip mode",
			"url", sourceURL, "error", err,
		)
		return Normalize(rawHTML)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < minContentLength {
		slog.Warn("readability: extracted content too short, falling back to strip mode",
			"url", sourceURL, "length", len(text),
		)
		return Normalize(rawHTML)
	}

	return text
}

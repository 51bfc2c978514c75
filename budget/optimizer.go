package budget

import (
	"log/slog"
	"strings"
)

// DefaultBoundaryRatio is the fraction of a truncated block's length beyond
// which a trailing sentence boundary is preferred over the hard token cut.
// A boundary at or before the ratio keeps the hard cut, so truncation never
// discards more than (1 - ratio) of the block.
const DefaultBoundaryRatio = 0.8

// Optimizer guarantees that a text block never exceeds a caller-specified
// token ceiling while keeping the text readable. Optimization is idempotent
// and returns already-small inputs byte-identical to their cleaned form.
type Optimizer struct {
	tok           Tokenizer
	boundaryRatio float64
}

// NewOptimizer creates an Optimizer. A non-positive boundaryRatio falls back
// to DefaultBoundaryRatio.
func NewOptimizer(tok Tokenizer, boundaryRatio float64) *Optimizer {
	if boundaryRatio <= 0 {
		boundaryRatio = DefaultBoundaryRatio
	}
	return &Optimizer{tok: tok, boundaryRatio: boundaryRatio}
}

// Optimize cleans text and enforces the token ceiling:
//
//  1. CleanText normalizes whitespace and punctuation runs.
//  2. If the cleaned text fits the ceiling, it is returned unchanged.
//  3. Otherwise the token sequence is cut to exactly the ceiling, decoded,
//     and trimmed back to the last sentence boundary when that boundary
//     lies strictly beyond boundaryRatio of the truncated length.
func (o *Optimizer) Optimize(text string, ceiling int) (string, error) {
	cleaned := CleanText(text)
	if ceiling <= 0 {
		return "", nil
	}

	ids, err := o.tok.Encode(cleaned)
	if err != nil {
		return "", err
	}
	if len(ids) <= ceiling {
		return cleaned, nil
	}
	rawTokens := len(ids)

	cut, err := o.tok.Decode(ids[:ceiling])
	if err != nil {
		return "", err
	}

	// Re-tokenizing a decoded prefix can merge differently and land a token
	// or two over the ceiling; shave until the count fits.
	for {
		n, err := o.tok.Count(cut)
		if err != nil {
			return "", err
		}
		if n <= ceiling {
			break
		}
		ids, err = o.tok.Encode(cut)
		if err != nil {
			return "", err
		}
		cut, err = o.tok.Decode(ids[:ceiling])
		if err != nil {
			return "", err
		}
	}

	cut = strings.TrimRight(cut, " \n")

	if i := strings.LastIndexByte(cut, '.'); i >= 0 {
		if float64(i+1) > o.boundaryRatio*float64(len(cut)) {
			cut = cut[:i+1]
		}
	}

	slog.Debug("block truncated to token ceiling",
		"ceiling", ceiling,
		"rawTokens", rawTokens,
		"resultBytes", len(cut),
	)
	return cut, nil
}

package budget

import (
	"fmt"
	"unicode/utf8"

	"github.com/tiktoken-go/tokenizer"
)

// Tokenizer is the subword codec every budget ceiling is expressed in.
// It must match the encoding used by the report synthesizer so that counts
// computed here are valid predictors of the backend's own limits.
type Tokenizer interface {
	Encode(text string) ([]uint, error)
	Decode(ids []uint) (string, error)
	Count(text string) (int, error)
}

// bpeTokenizer wraps the cl100k_base byte-pair encoding.
type bpeTokenizer struct {
	codec tokenizer.Codec
}

// NewTokenizer returns a Tokenizer backed by the cl100k_base BPE vocabulary.
// The vocabulary is embedded in the binary; no network access is needed.
func NewTokenizer() (Tokenizer, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base codec: %w", err)
	}
	return &bpeTokenizer{codec: codec}, nil
}

func (t *bpeTokenizer) Encode(text string) ([]uint, error) {
	ids, _, err := t.codec.Encode(text)
	return ids, err
}

func (t *bpeTokenizer) Decode(ids []uint) (string, error) {
	return t.codec.Decode(ids)
}

func (t *bpeTokenizer) Count(text string) (int, error) {
	return t.codec.Count(text)
}

// EstimateTokens provides a fast token count estimate without running the
// BPE codec. Used only for logging; budget enforcement always goes through
// the real Tokenizer.
//
// Heuristic: utf8 rune count / 3, between English (~4 chars/token) and
// CJK (~1.5 chars/token).
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	est := n / 3
	if est < 1 {
		return 1
	}
	return est
}

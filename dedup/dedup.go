// Package dedup detects near-duplicate page text with 64-bit SimHash
// fingerprints. Crawled sites often serve the same body under several
// URLs (trailing slash, tracking params, print views); dropping the
// copies before token budgeting keeps the budget for distinct content.
package dedup

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// DefaultThreshold is the Hamming distance at or below which two page
// texts are treated as the same content.
const DefaultThreshold = 3

// Fingerprint computes a 64-bit SimHash of the text: FNV-64a over
// word-level tokens, accumulated into a per-bit vote vector. Empty or
// whitespace-only text maps to 0.
func Fingerprint(text string) uint64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	var votes [64]int
	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		sum := h.Sum64()

		for i := 0; i < 64; i++ {
			if sum&(1<<uint(i)) != 0 {
				votes[i]++
			} else {
				votes[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if votes[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// NearDuplicate reports whether two fingerprints are within threshold
// bits of each other.
func NearDuplicate(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}

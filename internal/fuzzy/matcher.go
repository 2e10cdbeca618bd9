// Package fuzzy reconciles region names across datasets that do not share
// stable keys. It is the single integration mechanism between the boundary
// layers, the area table, and the INGRES location directory.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultCutoff is the similarity floor (0-100 scale) used by every dataset
// reconciliation in the pipeline.
const DefaultCutoff = 70.0

// Match finds the candidate name best matching query, in two phases.
//
// Phase 1: exact case-insensitive equality, first match wins, returned
// immediately without scoring. This makes matching idempotent for stored
// names regardless of the cutoff.
//
// Phase 2: the single highest-scoring candidate by Score, returned only if
// its score is at least cutoff. Equal top scores break to the earliest
// candidate in input order.
//
// Returns the matched index and true, or -1 and false.
func Match(query string, names []string, cutoff float64) (int, bool) {
	for i, name := range names {
		if strings.EqualFold(name, query) {
			return i, true
		}
	}

	best := -1
	bestScore := 0.0
	for i, name := range names {
		s := Score(query, name)
		if s > bestScore {
			best = i
			bestScore = s
		}
	}
	if best >= 0 && bestScore >= cutoff {
		return best, true
	}
	return -1, false
}

// partialWeight discounts substring matches relative to whole-string
// matches, so "Haveli" against "Haveli Taluka" scores 90 rather than 100.
const partialWeight = 0.9

// Score computes a weighted-ratio similarity between two names on a 0-100
// scale. It takes the best of three comparisons: the plain one, a
// token-sorted one so "Haveli Taluka" scores high against "Taluka Haveli",
// and a weighted partial one so a bare name scores high against a variant
// carrying a "Taluka"/"District" style suffix.
func Score(a, b string) float64 {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return 0
	}

	best := levenshtein.Similarity(la, lb, nil)
	if s := levenshtein.Similarity(sortTokens(la), sortTokens(lb), nil); s > best {
		best = s
	}
	if s := partialWeight * partialSimilarity(la, lb); s > best {
		best = s
	}
	return best * 100
}

// partialSimilarity slides the shorter name over same-length windows of the
// longer and keeps the best window similarity.
func partialSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == len(rb) {
		return levenshtein.Similarity(string(ra), string(rb), nil)
	}

	short := string(ra)
	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		if s := levenshtein.Similarity(short, string(rb[i:i+len(ra)]), nil); s > best {
			best = s
		}
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

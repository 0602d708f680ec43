package search

import (
	"github.com/nikbrunner/blink/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Blink          *model.Blink
	MatchedIndexes []int
	Score          int
}

// blinkTitles implements fuzzy.Source for a Blink slice.
type blinkTitles []model.Blink

func (bt blinkTitles) String(i int) string {
	return bt[i].Title
}

func (bt blinkTitles) Len() int {
	return len(bt)
}

// FuzzySearch searches Blinks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearch(blinks []model.Blink, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, blinkTitles(blinks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Blink:          &blinks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// Filter returns the Blinks matching query, best match first.
// An empty query returns blinks unchanged.
func Filter(blinks []model.Blink, query string) []model.Blink {
	if query == "" {
		return blinks
	}
	results := FuzzySearch(blinks, query)
	out := make([]model.Blink, len(results))
	for i, r := range results {
		out[i] = *r.Blink
	}
	return out
}

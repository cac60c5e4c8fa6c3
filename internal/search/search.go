package search

import (
	"github.com/nbrandt/bv/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for a bookmark slice.
type bookmarkTitles []*model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FuzzySearch searches bookmark titles using fuzzy matching. Private
// bookmarks are never candidates: quick search is not a vault surface.
// Returns results sorted by match score (best first).
func FuzzySearch(lib *model.Library, query string) []Result {
	if query == "" {
		return nil
	}

	candidates := make(bookmarkTitles, 0, len(lib.Bookmarks))
	for i := range lib.Bookmarks {
		if lib.Bookmarks[i].IsPrivate {
			continue
		}
		candidates = append(candidates, &lib.Bookmarks[i])
	}

	matches := fuzzy.FindFrom(query, candidates)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       candidates[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

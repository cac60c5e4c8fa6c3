// Package view derives the visible bookmark list and tag aggregation from
// library state plus transient selectors. Everything here is pure: no
// mutation, no IO.
package view

import (
	"sort"
	"strings"

	"github.com/nbrandt/bv/internal/model"
)

// Query holds the transient selectors that shape the visible list.
type Query struct {
	ActiveCollection string // model.CollectionAll, ViewFavorites, ViewPrivate, or a collection id
	Search           string // debounced search text
	SelectedTags     []string
	PrivateUnlocked  bool
}

// Visible computes the ordered list of bookmarks for the query.
//
// Stages, in order: privacy partition, collection scoping, tag OR-filter,
// substring search over title/description/tags, stable pinned-first sort.
func Visible(bookmarks []model.Bookmark, q Query) []model.Bookmark {
	var filtered []model.Bookmark

	if q.ActiveCollection == model.ViewPrivate {
		// The UI gates this earlier; an empty result here is defense in
		// depth against direct navigation while locked.
		if !q.PrivateUnlocked {
			return []model.Bookmark{}
		}
		for _, b := range bookmarks {
			if b.IsPrivate {
				filtered = append(filtered, b)
			}
		}
	} else {
		// Private bookmarks never leak into non-vault views, unlocked or not.
		for _, b := range bookmarks {
			if b.IsPrivate {
				continue
			}
			switch q.ActiveCollection {
			case model.ViewFavorites:
				if b.IsPinned {
					filtered = append(filtered, b)
				}
			case model.CollectionAll:
				filtered = append(filtered, b)
			default:
				if b.CollectionID == q.ActiveCollection {
					filtered = append(filtered, b)
				}
			}
		}
	}

	if len(q.SelectedTags) > 0 {
		filtered = filterByTags(filtered, q.SelectedTags)
	}

	if q.Search != "" {
		filtered = filterBySearch(filtered, q.Search)
	}

	// Pinned first; ties keep their prior relative order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].IsPinned && !filtered[j].IsPinned
	})

	if filtered == nil {
		filtered = []model.Bookmark{}
	}
	return filtered
}

// filterByTags keeps bookmarks carrying at least one selected tag.
func filterByTags(bookmarks []model.Bookmark, selected []string) []model.Bookmark {
	var result []model.Bookmark
	for _, b := range bookmarks {
		for _, tag := range selected {
			if b.HasTag(tag) {
				result = append(result, b)
				break
			}
		}
	}
	return result
}

// filterBySearch keeps bookmarks whose title, description or any tag
// contains the query, case-insensitively.
func filterBySearch(bookmarks []model.Bookmark, query string) []model.Bookmark {
	q := strings.ToLower(query)
	var result []model.Bookmark
	for _, b := range bookmarks {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Description), q) {
			result = append(result, b)
			continue
		}
		for _, tag := range b.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				result = append(result, b)
				break
			}
		}
	}
	return result
}

// AllTags returns the deduplicated, sorted union of bookmark tags and
// registered custom tags. Private bookmarks contribute only when the vault
// is unlocked.
func AllTags(bookmarks []model.Bookmark, customTags []string, privateUnlocked bool) []string {
	seen := make(map[string]bool)
	for _, b := range bookmarks {
		if b.IsPrivate && !privateUnlocked {
			continue
		}
		for _, t := range b.Tags {
			seen[t] = true
		}
	}
	for _, t := range customTags {
		seen[t] = true
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

package view

import (
	"testing"

	"github.com/nbrandt/bv/internal/model"
	"gotest.tools/v3/assert"
)

func TestVisible_PrivatePartition(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "pub", Title: "Public", CollectionID: model.CollectionAll, IsPrivate: false},
		{ID: "priv", Title: "Secret", CollectionID: model.CollectionAll, IsPrivate: true},
	}

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{
			name:    "library view hides private even when unlocked",
			query:   Query{ActiveCollection: model.CollectionAll, PrivateUnlocked: true},
			wantIDs: []string{"pub"},
		},
		{
			name:    "library view hides private when locked",
			query:   Query{ActiveCollection: model.CollectionAll, PrivateUnlocked: false},
			wantIDs: []string{"pub"},
		},
		{
			name:    "private view locked yields nothing",
			query:   Query{ActiveCollection: model.ViewPrivate, PrivateUnlocked: false},
			wantIDs: []string{},
		},
		{
			name:    "private view unlocked yields only private",
			query:   Query{ActiveCollection: model.ViewPrivate, PrivateUnlocked: true},
			wantIDs: []string{"priv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(bookmarks, tt.query)
			assertIDs(t, got, tt.wantIDs)
		})
	}
}

func TestVisible_CollectionScoping(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "b1", Title: "Work Doc", CollectionID: "work"},
		{ID: "b2", Title: "Recipe", CollectionID: "recipes"},
		{ID: "b3", Title: "Starred", CollectionID: "work", IsPinned: true},
		{ID: "b4", Title: "Loose", CollectionID: model.CollectionAll},
	}

	got := Visible(bookmarks, Query{ActiveCollection: "work"})
	assertIDs(t, got, []string{"b3", "b1"}) // pinned first

	got = Visible(bookmarks, Query{ActiveCollection: model.ViewFavorites})
	assertIDs(t, got, []string{"b3"})

	got = Visible(bookmarks, Query{ActiveCollection: model.CollectionAll})
	if len(got) != 4 {
		t.Errorf("library view should keep everything non-private, got %d", len(got))
	}
}

func TestVisible_PinnedFirstStable(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "A", Title: "A", CollectionID: model.CollectionAll, IsPinned: false},
		{ID: "B", Title: "B", CollectionID: model.CollectionAll, IsPinned: true},
		{ID: "C", Title: "C", CollectionID: model.CollectionAll, IsPinned: false},
	}

	got := Visible(bookmarks, Query{ActiveCollection: model.CollectionAll})
	assertIDs(t, got, []string{"B", "A", "C"})
}

func TestVisible_TagFilterIsUnion(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "b1", Title: "Go", CollectionID: model.CollectionAll, Tags: []string{"go", "dev"}},
		{ID: "b2", Title: "Rust", CollectionID: model.CollectionAll, Tags: []string{"rust"}},
		{ID: "b3", Title: "Cooking", CollectionID: model.CollectionAll, Tags: []string{"food"}},
	}

	// OR semantics: any selected tag qualifies.
	got := Visible(bookmarks, Query{
		ActiveCollection: model.CollectionAll,
		SelectedTags:     []string{"go", "rust"},
	})
	assertIDs(t, got, []string{"b1", "b2"})
}

func TestVisible_SearchMatchesTitleDescriptionTags(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "b1", Title: "React Docs", Description: "UI library", CollectionID: model.CollectionAll},
		{ID: "b2", Title: "Cooking", Description: "react to heat", CollectionID: model.CollectionAll},
		{ID: "b3", Title: "News", CollectionID: model.CollectionAll, Tags: []string{"reactive"}},
		{ID: "b4", Title: "Other", CollectionID: model.CollectionAll},
	}

	got := Visible(bookmarks, Query{ActiveCollection: model.CollectionAll, Search: "REACT"})
	assertIDs(t, got, []string{"b1", "b2", "b3"})
}

func TestVisible_EmptyInput(t *testing.T) {
	got := Visible(nil, Query{ActiveCollection: model.CollectionAll})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestAllTags(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "b1", Tags: []string{"go", "dev"}},
		{ID: "b2", Tags: []string{"dev", "web"}},
		{ID: "b3", Tags: []string{"secret"}, IsPrivate: true},
	}
	custom := []string{"later", "dev"}

	// Locked: private tags stay hidden.
	got := AllTags(bookmarks, custom, false)
	want := []string{"dev", "go", "later", "web"}
	assertStrings(t, got, want)

	// Unlocked: private tags contribute.
	got = AllTags(bookmarks, custom, true)
	want = []string{"dev", "go", "later", "secret", "web"}
	assertStrings(t, got, want)
}

func assertIDs(t *testing.T, got []model.Bookmark, want []string) {
	t.Helper()
	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.DeepEqual(t, ids, want)
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	assert.DeepEqual(t, got, want)
}

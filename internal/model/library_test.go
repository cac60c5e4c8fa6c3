package model_test

import (
	"errors"
	"testing"

	"github.com/nbrandt/bv/internal/model"
)

func TestLibrary_AddBookmark_Prepends(t *testing.T) {
	lib := model.NewLibrary()

	first := lib.AddBookmark(model.BookmarkDraft{Title: "First", URL: "https://one.com"})
	second := lib.AddBookmark(model.BookmarkDraft{Title: "Second", URL: "https://two.com"})

	if len(lib.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(lib.Bookmarks))
	}
	if lib.Bookmarks[0].ID != second.ID {
		t.Error("expected newest bookmark first")
	}
	if lib.Bookmarks[1].ID != first.ID {
		t.Error("expected oldest bookmark last")
	}
	if first.CollectionID != model.CollectionAll {
		t.Errorf("zero-value ref should resolve to %q, got %q", model.CollectionAll, first.CollectionID)
	}
	if first.CreatedAt == 0 {
		t.Error("expected CreatedAt to be assigned")
	}
}

func TestLibrary_AddBookmark_ResolvesPendingCollection(t *testing.T) {
	lib := model.NewLibrary()

	b1 := lib.AddBookmark(model.BookmarkDraft{
		Title:      "Trip Planning",
		URL:        "https://maps.example.com",
		Collection: model.RefByName("Travel"),
	})

	if len(lib.Collections) != 1 {
		t.Fatalf("expected 1 collection created, got %d", len(lib.Collections))
	}
	travel := lib.Collections[0]
	if travel.Name != "Travel" {
		t.Errorf("expected collection 'Travel', got %q", travel.Name)
	}
	if b1.CollectionID != travel.ID {
		t.Errorf("bookmark should be assigned to new collection %s, got %s", travel.ID, b1.CollectionID)
	}

	// Same pending name again (different case) must reuse, not duplicate.
	b2 := lib.AddBookmark(model.BookmarkDraft{
		Title:      "Packing List",
		URL:        "https://packing.example.com",
		Collection: model.RefByName("travel"),
	})

	if len(lib.Collections) != 1 {
		t.Errorf("expected collection to be reused, got %d collections", len(lib.Collections))
	}
	if b2.CollectionID != travel.ID {
		t.Errorf("second bookmark should reuse collection %s, got %s", travel.ID, b2.CollectionID)
	}
}

func TestLibrary_EditBookmark(t *testing.T) {
	lib := model.NewLibrary()
	b := lib.AddBookmark(model.BookmarkDraft{Title: "Old Title", URL: "https://example.com"})

	ok := lib.EditBookmark(b.ID, model.BookmarkDraft{
		Title:      "New Title",
		URL:        "https://example.com",
		Collection: model.RefByName("Reading"),
		IsPinned:   true,
	})
	if !ok {
		t.Fatal("expected edit to succeed")
	}

	got := lib.GetBookmarkByID(b.ID)
	if got.Title != "New Title" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if !got.IsPinned {
		t.Error("expected pinned flag to be updated")
	}
	if lib.GetCollectionByID(got.CollectionID) == nil {
		t.Error("edit should have materialized the pending collection")
	}
	if got.CreatedAt != b.CreatedAt {
		t.Error("edit must not change CreatedAt")
	}

	// Unknown id is a no-op.
	if lib.EditBookmark("nonexistent", model.BookmarkDraft{Title: "X"}) {
		t.Error("expected edit of unknown id to report false")
	}
}

func TestLibrary_DeleteBookmark(t *testing.T) {
	lib := model.NewLibrary()
	b := lib.AddBookmark(model.BookmarkDraft{Title: "Doomed", URL: "https://gone.com"})

	if !lib.DeleteBookmark(b.ID) {
		t.Error("expected delete to report true")
	}
	if len(lib.Bookmarks) != 0 {
		t.Errorf("expected 0 bookmarks, got %d", len(lib.Bookmarks))
	}
	if lib.DeleteBookmark(b.ID) {
		t.Error("expected second delete to report false")
	}
}

func TestLibrary_TogglePin(t *testing.T) {
	lib := model.NewLibrary()
	b := lib.AddBookmark(model.BookmarkDraft{Title: "Test", URL: "https://test.com"})

	if !lib.TogglePin(b.ID) {
		t.Fatal("unexpected toggle failure")
	}
	if !lib.GetBookmarkByID(b.ID).IsPinned {
		t.Error("expected bookmark to be pinned after toggle")
	}

	lib.TogglePin(b.ID)
	if lib.GetBookmarkByID(b.ID).IsPinned {
		t.Error("expected bookmark to be unpinned after second toggle")
	}

	if lib.TogglePin("nonexistent") {
		t.Error("expected toggle of unknown id to report false")
	}
}

func TestLibrary_MoveBookmark(t *testing.T) {
	lib := model.NewLibrary()
	work, err := lib.AddCollection("Work", "blue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := lib.AddBookmark(model.BookmarkDraft{Title: "Roadmap", URL: "https://roadmap.example.com"})

	// Case-insensitive exact match.
	if err := lib.MoveBookmark(b.ID, "work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lib.GetBookmarkByID(b.ID).CollectionID != work.ID {
		t.Error("expected bookmark moved to Work")
	}

	// Unknown name signals the caller and changes nothing.
	err = lib.MoveBookmark(b.ID, "Wørk")
	if !errors.Is(err, model.ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
	if lib.GetBookmarkByID(b.ID).CollectionID != work.ID {
		t.Error("failed move must not change the bookmark")
	}
}

func TestLibrary_AddCollection_RejectsDuplicates(t *testing.T) {
	lib := model.NewLibrary()

	if _, err := lib.AddCollection("Work", "blue"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	duplicates := []string{"Work", "work", "WORK"}
	for _, name := range duplicates {
		_, err := lib.AddCollection(name, "red")
		if !errors.Is(err, model.ErrDuplicateCollection) {
			t.Errorf("AddCollection(%q): expected ErrDuplicateCollection, got %v", name, err)
		}
	}

	if len(lib.Collections) != 1 {
		t.Errorf("expected collection list unchanged at 1, got %d", len(lib.Collections))
	}
}

func TestLibrary_DeleteCollection_CascadesToSentinel(t *testing.T) {
	lib := &model.Library{
		Collections: []model.Collection{
			{ID: "1", Name: "Work", Icon: "Briefcase", Color: "blue"},
		},
		Bookmarks: []model.Bookmark{
			{ID: "b1", URL: "https://example.com", Title: "Example", CollectionID: "1"},
			{ID: "b2", URL: "https://other.com", Title: "Other", CollectionID: model.CollectionAll},
		},
	}

	if !lib.DeleteCollection("1") {
		t.Fatal("expected delete to report true")
	}

	if lib.GetCollectionByID("1") != nil {
		t.Error("expected collection 1 to be gone")
	}

	// The member bookmark must be reassigned, never left dangling.
	b1 := lib.GetBookmarkByID("b1")
	if b1 == nil {
		t.Fatal("bookmark b1 must survive collection deletion")
	}
	if b1.CollectionID != model.CollectionAll {
		t.Errorf("expected b1 reassigned to %q, got %q", model.CollectionAll, b1.CollectionID)
	}
	for _, b := range lib.Bookmarks {
		if b.CollectionID == "1" {
			t.Errorf("bookmark %s still references deleted collection", b.ID)
		}
	}
}

func TestLibrary_DeleteCollection_UnknownID(t *testing.T) {
	lib := model.NewLibrary()
	if lib.DeleteCollection("nonexistent") {
		t.Error("expected delete of unknown id to report false")
	}
}

func TestLibrary_RemoveTagGlobally(t *testing.T) {
	lib := model.NewLibrary()
	lib.AddBookmark(model.BookmarkDraft{Title: "A", URL: "https://a.com", Tags: []string{"go", "dev"}})
	lib.AddBookmark(model.BookmarkDraft{Title: "B", URL: "https://b.com", Tags: []string{"dev"}})
	lib.AddCustomTag("dev")
	lib.AddCustomTag("later")

	lib.RemoveTagGlobally("dev")

	for _, b := range lib.Bookmarks {
		if b.HasTag("dev") {
			t.Errorf("bookmark %s still carries removed tag", b.ID)
		}
	}
	for _, tag := range lib.CustomTags {
		if tag == "dev" {
			t.Error("custom tag registry still carries removed tag")
		}
	}
	if !lib.Bookmarks[1].HasTag("go") {
		t.Error("unrelated tags must survive")
	}
}

func TestLibrary_AddCustomTag_Dedupes(t *testing.T) {
	lib := model.NewLibrary()
	lib.AddCustomTag("Reading")
	lib.AddCustomTag("reading")
	lib.AddCustomTag("  ")

	if len(lib.CustomTags) != 1 {
		t.Fatalf("expected 1 custom tag, got %d", len(lib.CustomTags))
	}
	if lib.CustomTags[0] != "reading" {
		t.Errorf("expected lowercased tag, got %q", lib.CustomTags[0])
	}
}

func TestLibrary_ImportMerge(t *testing.T) {
	lib := model.NewLibrary()
	existing, _ := lib.AddCollection("Development", "blue")
	lib.AddBookmark(model.BookmarkDraft{Title: "Existing", URL: "https://example.com"})

	collections := []model.Collection{
		{ID: "imported-col", Name: "development", Icon: "Folder", Color: "blue"},
		{ID: "new-col", Name: "News", Icon: "Folder", Color: "blue"},
	}
	bookmarks := []model.Bookmark{
		{ID: "i1", Title: "Duplicate", URL: "https://example.com", CollectionID: model.CollectionAll},
		{ID: "i2", Title: "Go Blog", URL: "https://go.dev/blog", CollectionID: "imported-col"},
		{ID: "i3", Title: "HN", URL: "https://news.ycombinator.com", CollectionID: "new-col"},
	}

	added, skipped := lib.ImportMerge(collections, bookmarks)

	if added != 2 || skipped != 1 {
		t.Errorf("expected 2 added / 1 skipped, got %d / %d", added, skipped)
	}
	if len(lib.Collections) != 2 {
		t.Errorf("expected 2 collections (one reused), got %d", len(lib.Collections))
	}
	if got := lib.GetBookmarkByID("i2"); got == nil || got.CollectionID != existing.ID {
		t.Error("imported bookmark should be remapped to the existing collection id")
	}
}

func TestLibrary_NormalizesTags(t *testing.T) {
	lib := model.NewLibrary()
	b := lib.AddBookmark(model.BookmarkDraft{
		Title: "Tagged",
		URL:   "https://tags.com",
		Tags:  []string{"Go", "go", " dev ", ""},
	})

	if len(b.Tags) != 2 {
		t.Fatalf("expected 2 normalized tags, got %v", b.Tags)
	}
	if b.Tags[0] != "go" || b.Tags[1] != "dev" {
		t.Errorf("expected [go dev], got %v", b.Tags)
	}
}

package model

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrCollectionNotFound is returned when a move targets a collection
	// name that does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrDuplicateCollection is returned when a collection with the same
	// case-insensitive name already exists.
	ErrDuplicateCollection = errors.New("collection already exists")
)

// Library owns the canonical bookmark and collection state plus the
// registry of custom tags not yet attached to any bookmark. All mutations
// go through its methods so that referential integrity holds: a bookmark's
// CollectionID always names an existing collection or the CollectionAll
// sentinel.
type Library struct {
	Bookmarks   []Bookmark   `json:"bookmarks"`
	Collections []Collection `json:"collections"`
	CustomTags  []string     `json:"customTags"`
}

// NewLibrary creates an empty Library with initialized slices.
func NewLibrary() *Library {
	return &Library{
		Bookmarks:   []Bookmark{},
		Collections: []Collection{},
		CustomTags:  []string{},
	}
}

// DefaultCollections returns the starter collections used when no saved
// state exists or the saved state is unreadable.
func DefaultCollections() []Collection {
	return []Collection{
		{ID: GenerateUUID(), Name: "Work", Icon: "Briefcase", Color: "blue"},
		{ID: GenerateUUID(), Name: "Design Inspiration", Icon: "Palette", Color: "purple"},
		{ID: GenerateUUID(), Name: "Recipes", Icon: "Coffee", Color: "green"},
	}
}

// AddBookmark creates a bookmark from the draft, resolving its collection
// reference, and prepends it so the library stays most-recent-first.
// Returns the stored bookmark.
func (l *Library) AddBookmark(draft BookmarkDraft) Bookmark {
	b := Bookmark{
		ID:           GenerateUUID(),
		URL:          draft.URL,
		Title:        draft.Title,
		Description:  draft.Description,
		ImageURL:     draft.ImageURL,
		Tags:         normalizeTags(draft.Tags),
		CollectionID: l.resolveRef(draft.Collection),
		IsPrivate:    draft.IsPrivate,
		IsPinned:     draft.IsPinned,
		CreatedAt:    nowMillis(),
		Note:         draft.Note,
	}
	l.Bookmarks = append([]Bookmark{b}, l.Bookmarks...)
	return b
}

// EditBookmark merges the draft over the bookmark with the given id,
// resolving the collection reference the same way AddBookmark does.
// Returns false (no-op) if the id is unknown.
func (l *Library) EditBookmark(id string, draft BookmarkDraft) bool {
	b := l.GetBookmarkByID(id)
	if b == nil {
		return false
	}
	b.URL = draft.URL
	b.Title = draft.Title
	b.Description = draft.Description
	b.ImageURL = draft.ImageURL
	b.Tags = normalizeTags(draft.Tags)
	b.CollectionID = l.resolveRef(draft.Collection)
	b.IsPrivate = draft.IsPrivate
	b.IsPinned = draft.IsPinned
	b.Note = draft.Note
	return true
}

// DeleteBookmark removes the bookmark with the given id.
// Returns whether a bookmark was removed.
func (l *Library) DeleteBookmark(id string) bool {
	for i := range l.Bookmarks {
		if l.Bookmarks[i].ID == id {
			l.Bookmarks = append(l.Bookmarks[:i], l.Bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

// TogglePin flips the pinned flag of the bookmark with the given id.
// Returns false if the id is unknown.
func (l *Library) TogglePin(id string) bool {
	b := l.GetBookmarkByID(id)
	if b == nil {
		return false
	}
	b.IsPinned = !b.IsPinned
	return true
}

// MoveBookmark reassigns the bookmark to the collection matching the given
// name (case-insensitive, exact). Returns ErrCollectionNotFound and makes
// no change when the name matches nothing.
func (l *Library) MoveBookmark(id, collectionName string) error {
	target := l.FindCollectionByName(collectionName)
	if target == nil {
		return ErrCollectionNotFound
	}
	b := l.GetBookmarkByID(id)
	if b == nil {
		return nil
	}
	b.CollectionID = target.ID
	return nil
}

// AddCollection creates a collection with the given name and color.
// Returns ErrDuplicateCollection and leaves the list unchanged when a
// collection with the same case-insensitive name exists.
func (l *Library) AddCollection(name, color string) (Collection, error) {
	if l.FindCollectionByName(name) != nil {
		return Collection{}, ErrDuplicateCollection
	}
	if color == "" {
		color = DefaultCollectionColor
	}
	c := Collection{
		ID:    GenerateUUID(),
		Name:  strings.TrimSpace(name),
		Icon:  DefaultCollectionIcon,
		Color: color,
	}
	l.Collections = append(l.Collections, c)
	return c, nil
}

// DeleteCollection removes the collection with the given id. Member
// bookmarks are reassigned to CollectionAll first so no bookmark is ever
// left referencing a deleted collection. Returns whether a collection was
// removed.
func (l *Library) DeleteCollection(id string) bool {
	idx := -1
	for i := range l.Collections {
		if l.Collections[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	// Cascade before removal: orphaned bookmarks go to the sentinel.
	for i := range l.Bookmarks {
		if l.Bookmarks[i].CollectionID == id {
			l.Bookmarks[i].CollectionID = CollectionAll
		}
	}

	l.Collections = append(l.Collections[:idx], l.Collections[idx+1:]...)
	return true
}

// RemoveTagGlobally strips the tag from every bookmark and from the
// custom-tag registry.
func (l *Library) RemoveTagGlobally(tag string) {
	for i := range l.Bookmarks {
		kept := l.Bookmarks[i].Tags[:0]
		for _, t := range l.Bookmarks[i].Tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		l.Bookmarks[i].Tags = kept
	}

	kept := l.CustomTags[:0]
	for _, t := range l.CustomTags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	l.CustomTags = kept
}

// AddCustomTag registers a tag not attached to any bookmark yet.
// Duplicates are ignored.
func (l *Library) AddCustomTag(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return
	}
	for _, t := range l.CustomTags {
		if t == tag {
			return
		}
	}
	l.CustomTags = append(l.CustomTags, tag)
}

// GetBookmarkByID finds a bookmark by id, returns nil if not found.
func (l *Library) GetBookmarkByID(id string) *Bookmark {
	for i := range l.Bookmarks {
		if l.Bookmarks[i].ID == id {
			return &l.Bookmarks[i]
		}
	}
	return nil
}

// GetCollectionByID finds a collection by id, returns nil if not found.
func (l *Library) GetCollectionByID(id string) *Collection {
	for i := range l.Collections {
		if l.Collections[i].ID == id {
			return &l.Collections[i]
		}
	}
	return nil
}

// FindCollectionByName finds a collection by case-insensitive name,
// returns nil if not found.
func (l *Library) FindCollectionByName(name string) *Collection {
	name = strings.TrimSpace(name)
	for i := range l.Collections {
		if sameName(l.Collections[i].Name, name) {
			return &l.Collections[i]
		}
	}
	return nil
}

// HasBookmarkURL reports whether any bookmark already stores the URL.
func (l *Library) HasBookmarkURL(url string) bool {
	for i := range l.Bookmarks {
		if l.Bookmarks[i].URL == url {
			return true
		}
	}
	return false
}

// ImportMerge merges imported collections and bookmarks into the library.
// Collections are matched by case-insensitive name and reused; imported
// bookmarks pointing at a reused collection are remapped to the existing
// id. Bookmarks whose URL is already stored are skipped.
// Returns (bookmarks added, bookmarks skipped).
func (l *Library) ImportMerge(collections []Collection, bookmarks []Bookmark) (added, skipped int) {
	idRemap := make(map[string]string)
	for _, c := range collections {
		if existing := l.FindCollectionByName(c.Name); existing != nil {
			idRemap[c.ID] = existing.ID
			continue
		}
		l.Collections = append(l.Collections, c)
	}

	for _, b := range bookmarks {
		if l.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		if mapped, ok := idRemap[b.CollectionID]; ok {
			b.CollectionID = mapped
		}
		if b.CollectionID != CollectionAll && l.GetCollectionByID(b.CollectionID) == nil {
			b.CollectionID = CollectionAll
		}
		l.Bookmarks = append(l.Bookmarks, b)
		added++
	}
	return added, skipped
}

// resolveRef turns a CollectionRef into a concrete collection id, creating
// the collection when a by-name ref matches nothing.
func (l *Library) resolveRef(ref CollectionRef) string {
	if !ref.IsByName() {
		if ref.existingID == "" {
			return CollectionAll
		}
		return ref.existingID
	}
	if existing := l.FindCollectionByName(ref.newName); existing != nil {
		return existing.ID
	}
	c := Collection{
		ID:    GenerateUUID(),
		Name:  ref.newName,
		Icon:  DefaultCollectionIcon,
		Color: DefaultCollectionColor,
	}
	l.Collections = append(l.Collections, c)
	return c.ID
}

// normalizeTags lowercases, trims and dedupes a tag list, preserving the
// first occurrence order.
func normalizeTags(tags []string) []string {
	result := []string{}
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}

// SortedCollections returns the collections ordered by name for display.
func (l *Library) SortedCollections() []Collection {
	result := make([]Collection, len(l.Collections))
	copy(result, l.Collections)
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result
}

package model

import "time"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Tags         []string `json:"tags"`
	CollectionID string   `json:"collectionId"` // CollectionAll = uncategorized
	IsPrivate    bool     `json:"isPrivate"`
	IsPinned     bool     `json:"isPinned"`
	CreatedAt    int64    `json:"createdAt"` // unix milliseconds
	Note         string   `json:"note,omitempty"`
}

// BookmarkDraft holds the user-provided fields for creating or editing a
// Bookmark. ID and CreatedAt are assigned by the Library.
type BookmarkDraft struct {
	URL         string
	Title       string
	Description string
	ImageURL    string
	Tags        []string
	Collection  CollectionRef
	IsPrivate   bool
	IsPinned    bool
	Note        string
}

// HasTag reports whether the bookmark carries the given tag.
func (b Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// nowMillis returns the current time as unix milliseconds.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

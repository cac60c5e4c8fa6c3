package model

import "strings"

// Reserved view identifiers. CollectionAll doubles as the sentinel
// CollectionID for uncategorized bookmarks; none of these are stored as
// Collection entities.
const (
	CollectionAll = "all"
	ViewFavorites = "favorites"
	ViewPrivate   = "private"
)

// Default appearance for implicitly created collections.
const (
	DefaultCollectionIcon  = "Folder"
	DefaultCollectionColor = "blue"
)

// Collection is a user-defined named grouping of bookmarks.
// Names are unique case-insensitively.
type Collection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CollectionRef identifies the collection a bookmark draft should land in:
// an existing collection by id, or one to be created (or reused) by name.
// The zero value refers to the uncategorized sentinel.
type CollectionRef struct {
	existingID string
	newName    string
}

// RefExisting returns a CollectionRef for an existing collection id
// (or a reserved sentinel such as CollectionAll).
func RefExisting(id string) CollectionRef {
	return CollectionRef{existingID: id}
}

// RefByName returns a CollectionRef for a collection that may not exist yet.
// It is resolved at save time: a collection with the same case-insensitive
// name is reused, otherwise a new one is created.
func RefByName(name string) CollectionRef {
	return CollectionRef{newName: strings.TrimSpace(name)}
}

// IsByName reports whether the ref must be resolved by name.
func (r CollectionRef) IsByName() bool {
	return r.newName != ""
}

// sameName compares collection names case-insensitively.
func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

package storage

// View and sort mode identifiers for Preferences.
const (
	ViewGrid = "grid"
	ViewList = "list"

	SortByDate = "date"
	SortByName = "name"
)

// Preferences holds persisted user preferences. The private-vault unlock
// state is deliberately absent: it is ephemeral per session.
type Preferences struct {
	ViewMode      string `json:"viewMode"`
	SortBy        string `json:"sortBy"`
	ConfirmDelete bool   `json:"confirmDelete"`
}

// DefaultPreferences returns the preferences used when nothing is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		ViewMode:      ViewGrid,
		SortBy:        SortByDate,
		ConfirmDelete: true,
	}
}

// LoadPreferences reads preferences, applying defaults for missing or
// invalid fields.
func LoadPreferences(s Store) Preferences {
	prefs := Load(s, KeyPrefs, DefaultPreferences())

	defaults := DefaultPreferences()
	if prefs.ViewMode != ViewGrid && prefs.ViewMode != ViewList {
		prefs.ViewMode = defaults.ViewMode
	}
	if prefs.SortBy != SortByDate && prefs.SortBy != SortByName {
		prefs.SortBy = defaults.SortBy
	}

	return prefs
}

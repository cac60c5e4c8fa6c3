// Package overlay decides what a single back signal does: it closes the
// innermost open UI layer, falls back to resetting the collection view,
// and finally requests application exit.
package overlay

// Flags is a snapshot of which dismissible layers are currently open.
// Callers must build it from live state at signal time; the back handler
// is registered once for the process lifetime, so a captured copy would
// go stale.
type Flags struct {
	Detail         bool // bookmark detail overlay
	Editor         bool // add/edit bookmark modal
	PrivacyAuth    bool // vault PIN prompt
	DeleteConfirm  bool // delete confirmation dialog
	Settings       bool // settings overlay
	AddCollection  bool // add-collection modal
	FilterMenu     bool // tag filter menu
	Sidebar        bool // navigation sidebar
	NonDefaultView bool // active collection is not the default library
}

// Action is the single thing a back signal does.
type Action int

const (
	CloseDetail Action = iota
	CloseEditor
	ClosePrivacyAuth
	CloseDeleteConfirm
	CloseSettings
	CloseAddCollection
	CloseFilterMenu
	CloseSidebar
	ResetView
	Quit
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case CloseDetail:
		return "close-detail"
	case CloseEditor:
		return "close-editor"
	case ClosePrivacyAuth:
		return "close-privacy-auth"
	case CloseDeleteConfirm:
		return "close-delete-confirm"
	case CloseSettings:
		return "close-settings"
	case CloseAddCollection:
		return "close-add-collection"
	case CloseFilterMenu:
		return "close-filter-menu"
	case CloseSidebar:
		return "close-sidebar"
	case ResetView:
		return "reset-view"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Dispatch evaluates the flags in fixed priority order and returns exactly
// the first matching action. The order encodes "innermost layer closes
// first" and must not be reordered.
func Dispatch(f Flags) Action {
	switch {
	case f.Detail:
		return CloseDetail
	case f.Editor:
		return CloseEditor
	case f.PrivacyAuth:
		return ClosePrivacyAuth
	case f.DeleteConfirm:
		return CloseDeleteConfirm
	case f.Settings:
		return CloseSettings
	case f.AddCollection:
		return CloseAddCollection
	case f.FilterMenu:
		return CloseFilterMenu
	case f.Sidebar:
		return CloseSidebar
	case f.NonDefaultView:
		return ResetView
	default:
		return Quit
	}
}

package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbrandt/bv/internal/logger"
	"github.com/nbrandt/bv/internal/model"
	"github.com/nbrandt/bv/internal/storage"
	"github.com/nbrandt/bv/internal/view"
)

// handleDetailKey handles keys while the detail overlay is open. Esc is
// consumed earlier by the back handler.
func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.lib.GetBookmarkByID(a.detailID)
	if b == nil {
		a.detailID = ""
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Edit):
		a.openEditorFor(*b)

	case key.Matches(msg, a.keys.Delete):
		a.requestDelete(b.ID)

	case key.Matches(msg, a.keys.Pin):
		a.togglePin(b.ID)

	case key.Matches(msg, a.keys.Move):
		a.movePrompt.Reset(b.ID)
		a.moveOpen = true

	case key.Matches(msg, a.keys.YankURL):
		if err := clipboard.WriteAll(b.URL); err != nil {
			a.notice = "Clipboard unavailable"
		} else {
			a.notice = "URL copied"
		}

	case key.Matches(msg, a.keys.Open):
		openBrowser(b.URL)

	case key.Matches(msg, a.keys.Quit):
		a.detailID = ""
	}

	return a, nil
}

// handleEditorKey handles keys while the editor modal is open.
func (a App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		a.editor.CycleField(1)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.editor.CycleField(-1)
		return a, nil
	case tea.KeyCtrlP:
		a.editor.IsPinned = !a.editor.IsPinned
		return a, nil
	case tea.KeyCtrlR:
		a.editor.IsPrivate = !a.editor.IsPrivate
		return a, nil
	case tea.KeyEnter:
		a.saveEditor()
		return a, nil
	}

	if input := a.editor.focusedInput(); input != nil {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// saveEditor validates and commits the editor, adding or editing as
// indicated by EditID.
func (a *App) saveEditor() {
	draft := a.editor.Draft()
	if draft.URL == "" {
		a.notice = "URL is required"
		a.editor.FocusField(fieldURL)
		return
	}
	if draft.Title == "" {
		draft.Title = draft.URL
	}

	if a.editor.EditID != "" {
		if a.lib.EditBookmark(a.editor.EditID, draft) {
			a.log.Info("bookmark edited", logger.String("id", a.editor.EditID))
		}
	} else {
		b := a.lib.AddBookmark(draft)
		a.log.Info("bookmark added", logger.String("id", b.ID))
	}

	a.saveLibrary()
	a.editorOpen = false
	a.editor.Reset()
	a.refresh()
}

// handleAuthKey handles keys while the vault PIN prompt is open.
func (a App) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if a.gate.Unlock(a.auth.Input.Value()) {
			a.log.Info("vault unlocked")
			a.authOpen = false
			a.setActiveCollection(model.ViewPrivate)
		} else {
			a.auth.Notice = "Incorrect PIN"
			a.auth.Input.Reset()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.auth.Input, cmd = a.auth.Input.Update(msg)
	return a, cmd
}

// handleSetupKey handles the blocking first-run PIN setup flow.
func (a App) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if a.setup.Stage == 0 {
			pin := a.setup.Input.Value()
			if !validPIN(pin) {
				a.setup.Notice = "PIN must be at least 6 digits"
				a.setup.Input.Reset()
				return a, nil
			}
			a.setup.Stage = 1
			a.setup.Notice = ""
			a.setup.Input.Blur()
			a.setup.Confirm.Focus()
			return a, nil
		}

		if a.setup.Confirm.Value() != a.setup.Input.Value() {
			a.setup.Notice = "PINs do not match"
			a.setup.Stage = 0
			a.setup.Confirm.Reset()
			a.setup.Confirm.Blur()
			a.setup.Input.Reset()
			a.setup.Input.Focus()
			return a, nil
		}

		a.gate.SetPIN(a.setup.Input.Value())
		if err := storage.Save(a.store, storage.KeyVaultPIN, a.gate.PIN()); err != nil {
			a.log.Error("save vault pin", logger.Error(err))
		}
		a.log.Info("vault pin set")
		a.setupOpen = false
		a.notice = "Vault PIN set"
		return a, nil
	}

	stage := &a.setup.Input
	if a.setup.Stage == 1 {
		stage = &a.setup.Confirm
	}
	var cmd tea.Cmd
	*stage, cmd = stage.Update(msg)
	return a, cmd
}

// validPIN reports whether pin is all digits and long enough for the
// vault.
func validPIN(pin string) bool {
	if len(pin) < 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// handleConfirmKey handles the delete confirmation dialog.
func (a App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter", "d":
		id := a.confirm.BookmarkID
		a.confirmOpen = false
		a.confirm.BookmarkID = ""
		a.deleteBookmark(id)
	case "n":
		a.confirmOpen = false
		a.confirm.BookmarkID = ""
	}
	return a, nil
}

// settingsItemCount is the number of rows in the settings menu.
const settingsItemCount = 5

// handleSettingsKey handles the settings overlay.
func (a App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.settingsCursor < settingsItemCount-1 {
			a.settingsCursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case key.Matches(msg, a.keys.Select):
		a.applySetting(a.settingsCursor)
	}
	return a, nil
}

// applySetting toggles the selected settings row.
func (a *App) applySetting(idx int) {
	switch idx {
	case 0: // theme
		a.theme = ToggleTheme(a.theme)
		a.styles = StylesFor(a.theme)
		a.saveTheme()
	case 1: // view mode
		if a.prefs.ViewMode == storage.ViewGrid {
			a.prefs.ViewMode = storage.ViewList
		} else {
			a.prefs.ViewMode = storage.ViewGrid
		}
		a.savePrefs()
	case 2: // sort order
		if a.prefs.SortBy == storage.SortByDate {
			a.prefs.SortBy = storage.SortByName
		} else {
			a.prefs.SortBy = storage.SortByDate
		}
		a.savePrefs()
		a.refresh()
	case 3: // delete confirmation
		a.prefs.ConfirmDelete = !a.prefs.ConfirmDelete
		a.savePrefs()
	case 4: // lock vault
		a.lockVault()
	}
}

// handleCollectionModalKey handles the add-collection modal.
func (a App) handleCollectionModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyRight:
		a.collectionModal.ColorIdx = (a.collectionModal.ColorIdx + 1) % len(CollectionColors)
		return a, nil
	case tea.KeyShiftTab, tea.KeyLeft:
		n := len(CollectionColors)
		a.collectionModal.ColorIdx = (a.collectionModal.ColorIdx + n - 1) % n
		return a, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(a.collectionModal.Name.Value())
		if name == "" {
			a.collectionModal.Notice = "Name is required"
			return a, nil
		}
		color := CollectionColors[a.collectionModal.ColorIdx]
		c, err := a.lib.AddCollection(name, color)
		if err != nil {
			if errors.Is(err, model.ErrDuplicateCollection) {
				a.collectionModal.Notice = "A collection with that name exists"
			} else {
				a.collectionModal.Notice = err.Error()
			}
			return a, nil
		}
		a.log.Info("collection added", logger.String("id", c.ID), logger.String("name", c.Name))
		a.saveLibrary()
		a.addCollectionOpen = false
		a.setActiveCollection(c.ID)
		return a, nil
	}

	var cmd tea.Cmd
	a.collectionModal.Name, cmd = a.collectionModal.Name.Update(msg)
	return a, cmd
}

// filterTags returns the tag rows the filter menu shows.
func (a App) filterTags() []string {
	return view.AllTags(a.lib.Bookmarks, a.lib.CustomTags, a.gateUnlocked())
}

// handleFilterMenuKey handles the tag filter menu. The last cursor row
// is the new-tag input.
func (a App) handleFilterMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := a.filterTags()
	inputRow := len(tags)

	if a.filterMenu.Typing {
		switch msg.Type {
		case tea.KeyEnter:
			tag := strings.ToLower(strings.TrimSpace(a.filterMenu.NewTag.Value()))
			if tag != "" {
				a.lib.AddCustomTag(tag)
				a.selectedTags = toggleTag(a.selectedTags, tag)
				a.refresh()
			}
			a.filterMenu.NewTag.Reset()
			a.filterMenu.Typing = false
			a.filterMenu.NewTag.Blur()
			return a, nil
		case tea.KeyEsc:
			a.filterMenu.NewTag.Reset()
			a.filterMenu.Typing = false
			a.filterMenu.NewTag.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.filterMenu.NewTag, cmd = a.filterMenu.NewTag.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Down):
		if a.filterMenu.Cursor < inputRow {
			a.filterMenu.Cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.filterMenu.Cursor > 0 {
			a.filterMenu.Cursor--
		}

	case key.Matches(msg, a.keys.Select):
		if a.filterMenu.Cursor == inputRow {
			a.filterMenu.Typing = true
			a.filterMenu.NewTag.Focus()
			return a, nil
		}
		a.selectedTags = toggleTag(a.selectedTags, tags[a.filterMenu.Cursor])
		a.refresh()

	case msg.String() == "x":
		if a.filterMenu.Cursor < inputRow {
			tag := tags[a.filterMenu.Cursor]
			a.lib.RemoveTagGlobally(tag)
			a.selectedTags = removeTag(a.selectedTags, tag)
			a.saveLibrary()
			a.refresh()
			if rows := len(a.filterTags()); a.filterMenu.Cursor > rows {
				a.filterMenu.Cursor = rows
			}
		}

	case msg.String() == "c":
		a.selectedTags = nil
		a.refresh()
	}

	return a, nil
}

// toggleTag adds tag to selected, or removes it if already present.
func toggleTag(selected []string, tag string) []string {
	for _, t := range selected {
		if t == tag {
			return removeTag(selected, tag)
		}
	}
	return append(selected, tag)
}

func removeTag(selected []string, tag string) []string {
	out := selected[:0]
	for _, t := range selected {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// sidebarEntry is one selectable row of the sidebar.
type sidebarEntry struct {
	id    string // collection or view id, "" for the new-collection row
	label string
}

// sidebarEntries builds the sidebar rows: built-in views first, then
// user collections, then the new-collection action.
func (a App) sidebarEntries() []sidebarEntry {
	entries := []sidebarEntry{
		{id: model.CollectionAll, label: "All Bookmarks"},
		{id: model.ViewFavorites, label: "Favorites"},
		{id: model.ViewPrivate, label: "Private"},
	}
	for _, c := range a.lib.SortedCollections() {
		entries = append(entries, sidebarEntry{id: c.ID, label: c.Name})
	}
	entries = append(entries, sidebarEntry{label: "+ New Collection"})
	return entries
}

// handleSidebarKey handles the collection sidebar.
func (a App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := a.sidebarEntries()

	switch {
	case key.Matches(msg, a.keys.Down):
		if a.sidebarCursor < len(entries)-1 {
			a.sidebarCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.sidebarCursor > 0 {
			a.sidebarCursor--
		}

	case key.Matches(msg, a.keys.Select):
		entry := entries[a.sidebarCursor]
		a.sidebarOpen = false
		switch entry.id {
		case "":
			a.collectionModal.Reset()
			a.addCollectionOpen = true
		case model.ViewPrivate:
			a.selectPrivate()
		default:
			a.setActiveCollection(entry.id)
		}

	case key.Matches(msg, a.keys.Delete):
		// Copy the id before mutating: DeleteCollection shifts the
		// slice, so a pointer into it would alias the next element.
		id := entries[a.sidebarCursor].id
		if a.lib.GetCollectionByID(id) != nil {
			if a.lib.DeleteCollection(id) {
				a.log.Info("collection deleted", logger.String("id", id))
				a.saveLibrary()
				if a.activeCollection == id {
					a.setActiveCollection(model.CollectionAll)
				}
				if a.sidebarCursor >= len(a.sidebarEntries()) {
					a.sidebarCursor--
				}
			}
		}
	}

	return a, nil
}

// handleMoveKey handles the move-to-collection prompt.
func (a App) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.moveOpen = false
		return a, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(a.movePrompt.Input.Value())
		a.moveOpen = false
		if name == "" {
			return a, nil
		}
		if err := a.lib.MoveBookmark(a.movePrompt.BookmarkID, name); err != nil {
			if errors.Is(err, model.ErrCollectionNotFound) {
				a.notice = "No collection named " + name
			} else {
				a.notice = err.Error()
			}
			return a, nil
		}
		a.log.Info("bookmark moved",
			logger.String("id", a.movePrompt.BookmarkID),
			logger.String("collection", name))
		a.saveLibrary()
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.movePrompt.Input, cmd = a.movePrompt.Input.Update(msg)
	return a, cmd
}

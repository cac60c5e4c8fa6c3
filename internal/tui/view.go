package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nbrandt/bv/internal/model"
	"github.com/nbrandt/bv/internal/storage"
)

// renderView draws the whole screen: header, active surface, hints.
func (a App) renderView() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	switch {
	case a.setupOpen:
		b.WriteString(a.renderSetup())
	case a.moveOpen:
		b.WriteString(a.renderMovePrompt())
	case a.detailID != "":
		b.WriteString(a.renderDetail())
	case a.editorOpen:
		b.WriteString(a.renderEditor())
	case a.authOpen:
		b.WriteString(a.renderAuth())
	case a.confirmOpen:
		b.WriteString(a.renderConfirm())
	case a.settingsOpen:
		b.WriteString(a.renderSettings())
	case a.addCollectionOpen:
		b.WriteString(a.renderCollectionModal())
	case a.filterMenuOpen:
		b.WriteString(a.renderFilterMenu())
	case a.sidebarOpen:
		b.WriteString(a.renderSidebar())
	default:
		b.WriteString(a.renderList())
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints())

	return a.styles.App.Render(b.String())
}

// renderHeader draws the title row with view context and status badges.
func (a App) renderHeader() string {
	title := a.styles.Title.Render("bv")

	location := "All Bookmarks"
	switch a.activeCollection {
	case model.CollectionAll:
	case model.ViewFavorites:
		location = "Favorites"
	case model.ViewPrivate:
		location = "Private"
	default:
		if c := a.lib.GetCollectionByID(a.activeCollection); c != nil {
			location = c.Name
		}
	}

	parts := []string{title, a.styles.Header.Render(location)}

	if len(a.selectedTags) > 0 {
		parts = append(parts, a.styles.TagSelected.Render("#"+strings.Join(a.selectedTags, " #")))
	}
	if a.offline {
		parts = append(parts, a.styles.Offline.Render("offline"))
	}
	if a.notice != "" {
		parts = append(parts, a.styles.Notice.Render(a.notice))
	}

	header := strings.Join(parts, "  ")

	if a.searching || a.searchQuery != "" {
		header += "\n" + a.styles.Label.Render("search: ") + a.searchInput.View()
	}

	return header
}

// renderList draws the visible bookmarks in the configured view mode.
func (a App) renderList() string {
	if len(a.visible) == 0 {
		if a.activeCollection == model.ViewPrivate && !a.gateUnlocked() {
			return a.styles.Empty.Render("Private bookmarks are locked.")
		}
		return a.styles.Empty.Render("No bookmarks here. Press a to add one.")
	}

	if a.prefs.ViewMode == storage.ViewGrid {
		return a.renderGrid()
	}

	var b strings.Builder
	for i, bm := range a.visible {
		line := a.bookmarkLine(bm)
		if i == a.cursor {
			b.WriteString(a.styles.ItemSelected.Render(line))
		} else {
			b.WriteString(a.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderGrid draws bookmarks as two-column bordered cards.
func (a App) renderGrid() string {
	cardWidth := a.width/2 - 6
	if cardWidth < 24 {
		cardWidth = 24
	}

	var cards []string
	for i, bm := range a.visible {
		style := a.styles.Card
		if i == a.cursor {
			style = a.styles.CardSelected
		}

		body := a.styles.Header.Render(truncate(a.markerPrefix(bm)+bm.Title, cardWidth))
		body += "\n" + a.styles.URL.Render(truncate(bm.URL, cardWidth))
		if len(bm.Tags) > 0 {
			body += "\n" + a.styles.Tag.Render(truncate("#"+strings.Join(bm.Tags, " #"), cardWidth))
		}
		cards = append(cards, style.Width(cardWidth).Render(body))
	}

	var rows []string
	for i := 0; i < len(cards); i += 2 {
		if i+1 < len(cards) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1]))
		} else {
			rows = append(rows, cards[i])
		}
	}
	return strings.Join(rows, "\n")
}

// bookmarkLine formats one list row.
func (a App) bookmarkLine(bm model.Bookmark) string {
	line := a.markerPrefix(bm) + bm.Title
	if len(bm.Tags) > 0 {
		line += "  #" + strings.Join(bm.Tags, " #")
	}
	return truncate(line, a.width-6)
}

// markerPrefix returns the pin/private markers for a bookmark row.
func (a App) markerPrefix(bm model.Bookmark) string {
	prefix := ""
	if bm.IsPinned {
		prefix += "* "
	}
	if bm.IsPrivate {
		prefix += "~ "
	}
	return prefix
}

// renderDetail draws the detail overlay for the open bookmark.
func (a App) renderDetail() string {
	bm := a.lib.GetBookmarkByID(a.detailID)
	if bm == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render(bm.Title))
	b.WriteString("\n")
	b.WriteString(a.styles.URL.Render(bm.URL))
	b.WriteString("\n")

	if bm.Description != "" {
		b.WriteString("\n" + bm.Description + "\n")
	}
	if len(bm.Tags) > 0 {
		b.WriteString("\n" + a.styles.Tag.Render("#"+strings.Join(bm.Tags, " #")) + "\n")
	}
	if bm.Note != "" {
		b.WriteString("\n" + a.styles.Label.Render("note: ") + bm.Note + "\n")
	}

	var flags []string
	if bm.IsPinned {
		flags = append(flags, a.styles.Pin.Render("pinned"))
	}
	if bm.IsPrivate {
		flags = append(flags, a.styles.Private.Render("private"))
	}
	if c := a.lib.GetCollectionByID(bm.CollectionID); c != nil && c.ID != model.CollectionAll {
		flags = append(flags, a.styles.Label.Render(c.Name))
	}
	if len(flags) > 0 {
		b.WriteString("\n" + strings.Join(flags, "  ") + "\n")
	}

	return a.styles.Overlay.Render(b.String())
}

// renderEditor draws the add/edit modal.
func (a App) renderEditor() string {
	title := "Add Bookmark"
	if a.editor.EditID != "" {
		title = "Edit Bookmark"
	}

	rows := []struct {
		label string
		input string
	}{
		{"Title", a.editor.Title.View()},
		{"URL", a.editor.URL.View()},
		{"Description", a.editor.Description.View()},
		{"Tags", a.editor.Tags.View()},
		{"Collection", a.editor.Collection.View()},
	}

	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render(title))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(a.styles.Label.Render(fmt.Sprintf("%-12s", row.label)))
		b.WriteString(row.input)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Label.Render(fmt.Sprintf("%-12s", "Flags")))
	b.WriteString(checkbox("pinned (ctrl+p)", a.editor.IsPinned))
	b.WriteString("  ")
	b.WriteString(checkbox("private (ctrl+r)", a.editor.IsPrivate))
	b.WriteString("\n")

	if a.notice != "" {
		b.WriteString("\n" + a.styles.Notice.Render(a.notice))
	}

	return a.styles.Overlay.Render(b.String())
}

func checkbox(label string, checked bool) string {
	if checked {
		return "[x] " + label
	}
	return "[ ] " + label
}

// renderAuth draws the vault PIN prompt.
func (a App) renderAuth() string {
	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("Unlock Private Bookmarks"))
	b.WriteString("\n")
	b.WriteString(a.auth.Input.View())
	if a.auth.Notice != "" {
		b.WriteString("\n" + a.styles.Notice.Render(a.auth.Notice))
	}
	return a.styles.Overlay.Render(b.String())
}

// renderSetup draws the blocking PIN setup flow.
func (a App) renderSetup() string {
	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("Set Up Vault PIN"))
	b.WriteString("\n")
	if a.setup.Stage == 0 {
		b.WriteString(a.setup.Input.View())
	} else {
		b.WriteString(a.setup.Confirm.View())
	}
	if a.setup.Notice != "" {
		b.WriteString("\n" + a.styles.Notice.Render(a.setup.Notice))
	}
	return a.styles.Overlay.Render(b.String())
}

// renderConfirm draws the delete confirmation dialog.
func (a App) renderConfirm() string {
	title := "Delete bookmark?"
	if bm := a.lib.GetBookmarkByID(a.confirm.BookmarkID); bm != nil {
		title = "Delete " + truncate(bm.Title, 40) + "?"
	}

	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(a.styles.HintKey.Render("y") + a.styles.HintDesc.Render(" delete  "))
	b.WriteString(a.styles.HintKey.Render("n") + a.styles.HintDesc.Render(" keep"))
	return a.styles.Overlay.Render(b.String())
}

// renderSettings draws the settings menu.
func (a App) renderSettings() string {
	vaultState := "locked"
	if a.gateUnlocked() {
		vaultState = "unlocked"
	}

	rows := []string{
		"Theme: " + a.theme,
		"View mode: " + a.prefs.ViewMode,
		"Sort by: " + a.prefs.SortBy,
		"Confirm delete: " + onOff(a.prefs.ConfirmDelete),
		"Vault: " + vaultState + " (enter locks)",
	}

	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("Settings"))
	b.WriteString("\n")
	for i, row := range rows {
		if i == a.settingsCursor {
			b.WriteString(a.styles.ItemSelected.Render(row))
		} else {
			b.WriteString(a.styles.Item.Render(row))
		}
		b.WriteString("\n")
	}
	return a.styles.Overlay.Render(b.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// renderCollectionModal draws the add-collection modal.
func (a App) renderCollectionModal() string {
	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("New Collection"))
	b.WriteString("\n")
	b.WriteString(a.collectionModal.Name.View())
	b.WriteString("\n\n")
	b.WriteString(a.styles.Label.Render("Color: "))
	for i, color := range CollectionColors {
		if i == a.collectionModal.ColorIdx {
			b.WriteString(a.styles.TagSelected.Render("[" + color + "]"))
		} else {
			b.WriteString(a.styles.Tag.Render(" " + color + " "))
		}
	}
	if a.collectionModal.Notice != "" {
		b.WriteString("\n" + a.styles.Notice.Render(a.collectionModal.Notice))
	}
	return a.styles.Overlay.Render(b.String())
}

// renderFilterMenu draws the tag filter menu.
func (a App) renderFilterMenu() string {
	tags := a.filterTags()

	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("Filter by Tags"))
	b.WriteString("\n")

	if len(tags) == 0 {
		b.WriteString(a.styles.Empty.Render("No tags yet.") + "\n")
	}
	for i, tag := range tags {
		row := checkbox(tag, containsTag(a.selectedTags, tag))
		if i == a.filterMenu.Cursor && !a.filterMenu.Typing {
			b.WriteString(a.styles.ItemSelected.Render(row))
		} else {
			b.WriteString(a.styles.Item.Render(row))
		}
		b.WriteString("\n")
	}

	inputRow := a.filterMenu.NewTag.View()
	if a.filterMenu.Cursor == len(tags) && !a.filterMenu.Typing {
		b.WriteString(a.styles.ItemSelected.Render(inputRow))
	} else {
		b.WriteString(a.styles.Item.Render(inputRow))
	}

	b.WriteString("\n\n")
	b.WriteString(a.styles.HintKey.Render("enter") + a.styles.HintDesc.Render(" toggle  "))
	b.WriteString(a.styles.HintKey.Render("x") + a.styles.HintDesc.Render(" remove everywhere  "))
	b.WriteString(a.styles.HintKey.Render("c") + a.styles.HintDesc.Render(" clear"))

	return a.styles.Overlay.Render(b.String())
}

func containsTag(selected []string, tag string) bool {
	for _, t := range selected {
		if t == tag {
			return true
		}
	}
	return false
}

// renderSidebar draws the collection sidebar.
func (a App) renderSidebar() string {
	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("Collections"))
	b.WriteString("\n")

	for i, entry := range a.sidebarEntries() {
		label := entry.label
		if entry.id == model.ViewPrivate && !a.gateUnlocked() {
			label += " (locked)"
		}
		if entry.id == a.activeCollection && entry.id != "" {
			label = "> " + label
		}
		if i == a.sidebarCursor {
			b.WriteString(a.styles.ItemSelected.Render(label))
		} else {
			b.WriteString(a.styles.Item.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.HintKey.Render("enter") + a.styles.HintDesc.Render(" select  "))
	b.WriteString(a.styles.HintKey.Render("d") + a.styles.HintDesc.Render(" delete collection"))

	return a.styles.Overlay.Render(b.String())
}

// renderMovePrompt draws the move-to-collection prompt.
func (a App) renderMovePrompt() string {
	var b strings.Builder
	b.WriteString(a.styles.OverlayTitle.Render("Move to Collection"))
	b.WriteString("\n")
	b.WriteString(a.movePrompt.Input.View())
	return a.styles.Overlay.Render(b.String())
}

// renderHints draws the context-sensitive key hints line.
func (a App) renderHints() string {
	k := a.keys

	type hint struct{ keyLabel, desc string }
	var rows []hint

	switch {
	case a.setupOpen, a.authOpen, a.moveOpen:
		rows = []hint{{"enter", "confirm"}, {"esc", "back"}}
	case a.detailID != "":
		rows = []hint{
			{k.Edit.Help().Key, k.Edit.Help().Desc},
			{k.Delete.Help().Key, k.Delete.Help().Desc},
			{k.Pin.Help().Key, k.Pin.Help().Desc},
			{k.Open.Help().Key, k.Open.Help().Desc},
			{k.YankURL.Help().Key, k.YankURL.Help().Desc},
			{k.Back.Help().Key, "close"},
		}
	case a.editorOpen:
		rows = []hint{{"tab", "next field"}, {"enter", "save"}, {"esc", "cancel"}}
	case a.confirmOpen, a.settingsOpen, a.addCollectionOpen, a.filterMenuOpen, a.sidebarOpen:
		rows = []hint{{"esc", "back"}}
	default:
		rows = []hint{
			{k.Add.Help().Key, k.Add.Help().Desc},
			{k.Search.Help().Key, k.Search.Help().Desc},
			{k.Filter.Help().Key, k.Filter.Help().Desc},
			{k.Sidebar.Help().Key, k.Sidebar.Help().Desc},
			{k.ViewMode.Help().Key, k.ViewMode.Help().Desc},
			{k.Settings.Help().Key, k.Settings.Help().Desc},
			{k.Quit.Help().Key, k.Quit.Help().Desc},
		}
	}

	var parts []string
	for _, r := range rows {
		parts = append(parts, a.styles.HintKey.Render(r.keyLabel)+" "+a.styles.HintDesc.Render(r.desc))
	}
	return a.styles.Help.Render(strings.Join(parts, "  "))
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

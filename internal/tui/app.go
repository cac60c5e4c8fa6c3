package tui

import (
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbrandt/bv/internal/logger"
	"github.com/nbrandt/bv/internal/model"
	"github.com/nbrandt/bv/internal/netcheck"
	"github.com/nbrandt/bv/internal/overlay"
	"github.com/nbrandt/bv/internal/storage"
	"github.com/nbrandt/bv/internal/vault"
	"github.com/nbrandt/bv/internal/view"
)

// searchDebounce is how long search input must settle before the query
// commits.
const searchDebounce = 300 * time.Millisecond

// searchDebounceMsg fires when a scheduled debounce tick elapses. Only
// the message carrying the latest sequence number commits.
type searchDebounceMsg struct{ seq int }

// connectivityMsg carries the result of a connectivity probe.
type connectivityMsg struct{ online bool }

// App is the main bubbletea model: the single controller owning all
// application state. Mutations happen here and are persisted right after.
type App struct {
	lib     *model.Library
	store   storage.Store
	gate    *vault.Gate
	log     logger.Logger
	keys    KeyMap
	styles  Styles
	theme   string
	prefs   storage.Preferences
	checker *netcheck.Checker

	// Selectors feeding the derived view
	activeCollection string
	searchInput      textinput.Model
	searchQuery      string // debounced
	searchSeq        int
	searching        bool
	selectedTags     []string

	// Derived list
	visible []model.Bookmark
	cursor  int

	// For gg command
	lastKeyWasG bool

	// Overlay layers. Open flags mirror the dispatcher's Flags; the
	// dispatcher always reads them live at signal time.
	detailID          string // "" = closed
	editorOpen        bool
	editor            EditorState
	authOpen          bool
	auth              AuthState
	confirmOpen       bool
	confirm           ConfirmState
	settingsOpen      bool
	settingsCursor    int
	addCollectionOpen bool
	collectionModal   CollectionModalState
	filterMenuOpen    bool
	filterMenu        FilterMenuState
	sidebarOpen       bool
	sidebarCursor     int

	// PIN setup blocks everything until complete; it sits outside the
	// back-signal stack.
	setupOpen bool
	setup     SetupState

	// Move prompt; dismissed directly, not via the back stack.
	moveOpen   bool
	movePrompt MovePromptState

	offline bool
	notice  string

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Library *model.Library
	Store   storage.Store
	Gate    *vault.Gate
	Theme   string // saved theme, "" = detect from terminal
	Prefs   storage.Preferences
	Log     logger.Logger     // optional, Nop if nil
	Keys    *KeyMap           // optional, uses default if nil
	Checker *netcheck.Checker // optional, no offline indicator if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	log := params.Log
	if log == nil {
		log = logger.Nop()
	}

	theme := ResolveTheme(params.Theme)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search bookmarks..."
	searchInput.CharLimit = 100
	searchInput.Width = 32

	app := App{
		lib:              params.Library,
		store:            params.Store,
		gate:             params.Gate,
		log:              log,
		keys:             keys,
		styles:           StylesFor(theme),
		theme:            theme,
		prefs:            params.Prefs,
		checker:          params.Checker,
		activeCollection: model.CollectionAll,
		searchInput:      searchInput,
		editor:           NewEditorState(),
		auth:             NewAuthState(),
		collectionModal:  NewCollectionModalState(),
		filterMenu:       NewFilterMenuState(),
		setup:            NewSetupState(),
		movePrompt:       NewMovePromptState(),
		width:            80,
		height:           24,
	}

	if app.gate != nil && app.gate.NeedsSetup() {
		app.setupOpen = true
		app.setup.Reset()
	}

	app.refresh()
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.checker == nil {
		return textinput.Blink
	}
	checker := a.checker
	probe := func() tea.Msg {
		return connectivityMsg{online: checker.Online()}
	}
	return tea.Batch(textinput.Blink, probe)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case searchDebounceMsg:
		// Stale ticks (earlier keystrokes) are ignored; only the most
		// recent pending timer commits.
		if msg.seq == a.searchSeq {
			a.searchQuery = a.searchInput.Value()
			a.refresh()
		}
		return a, nil

	case connectivityMsg:
		if a.offline == msg.online {
			a.log.Info("connectivity changed", logger.Bool("online", msg.online))
		}
		a.offline = !msg.online
		return a, a.scheduleProbe()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// handleKey routes a key press to the innermost active surface.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	a.notice = ""

	// PIN setup blocks the whole UI until complete.
	if a.setupOpen {
		return a.handleSetupKey(msg)
	}

	// The move prompt is a browser-prompt stand-in; it closes itself.
	if a.moveOpen {
		return a.handleMoveKey(msg)
	}

	// Search input captures keys while focused; Esc only blurs it.
	if a.searching {
		return a.handleSearchKey(msg)
	}

	// The platform back signal.
	if key.Matches(msg, a.keys.Back) {
		cmd := a.handleBack()
		return a, cmd
	}

	// Route to the innermost open overlay.
	switch {
	case a.detailID != "":
		return a.handleDetailKey(msg)
	case a.editorOpen:
		return a.handleEditorKey(msg)
	case a.authOpen:
		return a.handleAuthKey(msg)
	case a.confirmOpen:
		return a.handleConfirmKey(msg)
	case a.settingsOpen:
		return a.handleSettingsKey(msg)
	case a.addCollectionOpen:
		return a.handleCollectionModalKey(msg)
	case a.filterMenuOpen:
		return a.handleFilterMenuKey(msg)
	case a.sidebarOpen:
		return a.handleSidebarKey(msg)
	}

	return a.handleNormalKey(msg)
}

// OverlayFlags snapshots the live layer state for the dispatcher.
func (a App) OverlayFlags() overlay.Flags {
	return overlay.Flags{
		Detail:         a.detailID != "",
		Editor:         a.editorOpen,
		PrivacyAuth:    a.authOpen,
		DeleteConfirm:  a.confirmOpen,
		Settings:       a.settingsOpen,
		AddCollection:  a.addCollectionOpen,
		FilterMenu:     a.filterMenuOpen,
		Sidebar:        a.sidebarOpen,
		NonDefaultView: a.activeCollection != model.CollectionAll,
	}
}

// handleBack applies one back signal: close the innermost layer, reset
// the view, or quit.
func (a *App) handleBack() tea.Cmd {
	action := overlay.Dispatch(a.OverlayFlags())
	a.log.Info("back signal", logger.String("action", action.String()))

	switch action {
	case overlay.CloseDetail:
		a.detailID = ""
	case overlay.CloseEditor:
		a.editorOpen = false
		a.editor.Reset() // also clears the edit target
	case overlay.ClosePrivacyAuth:
		a.authOpen = false
	case overlay.CloseDeleteConfirm:
		a.confirmOpen = false
		a.confirm.BookmarkID = ""
	case overlay.CloseSettings:
		a.settingsOpen = false
	case overlay.CloseAddCollection:
		a.addCollectionOpen = false
	case overlay.CloseFilterMenu:
		a.filterMenuOpen = false
	case overlay.CloseSidebar:
		a.sidebarOpen = false
	case overlay.ResetView:
		a.setActiveCollection(model.CollectionAll)
	case overlay.Quit:
		return tea.Quit
	}
	return nil
}

// refresh recomputes the visible list from the live selectors.
func (a *App) refresh() {
	a.visible = view.Visible(a.lib.Bookmarks, view.Query{
		ActiveCollection: a.activeCollection,
		Search:           a.searchQuery,
		SelectedTags:     a.selectedTags,
		PrivateUnlocked:  a.gateUnlocked(),
	})
	if a.prefs.SortBy == storage.SortByName {
		// Re-sort alphabetically without disturbing the pinned-first
		// partition.
		sort.SliceStable(a.visible, func(i, j int) bool {
			if a.visible[i].IsPinned != a.visible[j].IsPinned {
				return a.visible[i].IsPinned
			}
			return strings.ToLower(a.visible[i].Title) < strings.ToLower(a.visible[j].Title)
		})
	}
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) gateUnlocked() bool {
	return a.gate != nil && a.gate.Unlocked()
}

// setActiveCollection switches the view and recomputes.
func (a *App) setActiveCollection(id string) {
	a.activeCollection = id
	a.cursor = 0
	a.refresh()
}

// saveLibrary persists both entity collections whole, as one explicit
// step at the end of a mutation.
func (a *App) saveLibrary() {
	if err := storage.Save(a.store, storage.KeyBookmarks, a.lib.Bookmarks); err != nil {
		a.log.Error("save bookmarks", logger.Error(err))
	}
	if err := storage.Save(a.store, storage.KeyCollections, a.lib.Collections); err != nil {
		a.log.Error("save collections", logger.Error(err))
	}
}

func (a *App) savePrefs() {
	if err := storage.Save(a.store, storage.KeyPrefs, a.prefs); err != nil {
		a.log.Error("save preferences", logger.Error(err))
	}
}

func (a *App) saveTheme() {
	if err := storage.Save(a.store, storage.KeyTheme, a.theme); err != nil {
		a.log.Error("save theme", logger.Error(err))
	}
}

// scheduleProbe queues the next connectivity check.
func (a App) scheduleProbe() tea.Cmd {
	if a.checker == nil {
		return nil
	}
	checker := a.checker
	return tea.Tick(netcheck.DefaultInterval, func(time.Time) tea.Msg {
		return connectivityMsg{online: checker.Online()}
	})
}

// scheduleDebounce queues a commit for the current search sequence.
func (a App) scheduleDebounce() tea.Cmd {
	seq := a.searchSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// currentBookmark returns the bookmark under the cursor, or nil.
func (a App) currentBookmark() *model.Bookmark {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return nil
	}
	return a.lib.GetBookmarkByID(a.visible[a.cursor].ID)
}

// handleSearchKey feeds keys into the focused search input and schedules
// the debounce.
func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	case tea.KeyEnter:
		// Commit immediately; no point waiting out the timer.
		a.searching = false
		a.searchInput.Blur()
		a.searchSeq++
		a.searchQuery = a.searchInput.Value()
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.searchSeq++
	return a, tea.Batch(cmd, a.scheduleDebounce())
}

// handleNormalKey handles keys with no overlay open.
func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.visible) > 0 && a.cursor < len(a.visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.visible) > 0 {
			a.cursor = len(a.visible) - 1
		}

	case key.Matches(msg, a.keys.Select):
		if b := a.currentBookmark(); b != nil {
			a.detailID = b.ID
		}

	case key.Matches(msg, a.keys.Add):
		a.editor.Reset()
		if c := a.lib.GetCollectionByID(a.activeCollection); c != nil {
			a.editor.Collection.SetValue(c.Name)
		}
		a.editor.IsPrivate = a.activeCollection == model.ViewPrivate
		a.editorOpen = true

	case key.Matches(msg, a.keys.Edit):
		if b := a.currentBookmark(); b != nil {
			a.openEditorFor(*b)
		}

	case key.Matches(msg, a.keys.Delete):
		if b := a.currentBookmark(); b != nil {
			a.requestDelete(b.ID)
		}

	case key.Matches(msg, a.keys.Pin):
		if b := a.currentBookmark(); b != nil {
			a.togglePin(b.ID)
		}

	case key.Matches(msg, a.keys.Move):
		if b := a.currentBookmark(); b != nil {
			a.movePrompt.Reset(b.ID)
			a.moveOpen = true
		}

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.Focus()

	case key.Matches(msg, a.keys.Filter):
		a.filterMenu.Reset()
		a.filterMenuOpen = true

	case key.Matches(msg, a.keys.Sidebar):
		a.sidebarCursor = 0
		a.sidebarOpen = true

	case key.Matches(msg, a.keys.Settings):
		a.settingsCursor = 0
		a.settingsOpen = true

	case key.Matches(msg, a.keys.ViewMode):
		if a.prefs.ViewMode == storage.ViewGrid {
			a.prefs.ViewMode = storage.ViewList
		} else {
			a.prefs.ViewMode = storage.ViewGrid
		}
		a.savePrefs()

	case key.Matches(msg, a.keys.YankURL):
		if b := a.currentBookmark(); b != nil {
			if err := clipboard.WriteAll(b.URL); err != nil {
				a.notice = "Clipboard unavailable"
			} else {
				a.notice = "URL copied"
			}
		}

	case key.Matches(msg, a.keys.Open):
		if b := a.currentBookmark(); b != nil {
			openBrowser(b.URL)
		}

	case key.Matches(msg, a.keys.Lock):
		a.lockVault()
	}

	return a, nil
}

// openEditorFor loads a bookmark into the editor and opens it.
func (a *App) openEditorFor(b model.Bookmark) {
	collectionName := ""
	if c := a.lib.GetCollectionByID(b.CollectionID); c != nil {
		collectionName = c.Name
	}
	a.editor.LoadBookmark(b, collectionName)
	a.editorOpen = true
}

// requestDelete opens the confirmation dialog, or deletes outright when
// confirmations are disabled. A detail overlay showing the bookmark
// closes first.
func (a *App) requestDelete(id string) {
	if a.detailID == id {
		a.detailID = ""
	}
	if !a.prefs.ConfirmDelete {
		a.deleteBookmark(id)
		return
	}
	a.confirm.BookmarkID = id
	a.confirmOpen = true
}

func (a *App) deleteBookmark(id string) {
	if a.detailID == id {
		a.detailID = ""
	}
	if a.lib.DeleteBookmark(id) {
		a.log.Info("bookmark deleted", logger.String("id", id))
		a.saveLibrary()
		a.refresh()
	}
}

func (a *App) togglePin(id string) {
	if a.lib.TogglePin(id) {
		a.saveLibrary()
		a.refresh()
	}
}

// lockVault re-locks and leaves the private view if it was active.
func (a *App) lockVault() {
	if a.gate == nil || !a.gate.Unlocked() {
		return
	}
	a.gate.Lock()
	a.log.Info("vault locked")
	if a.activeCollection == model.ViewPrivate {
		a.setActiveCollection(model.CollectionAll)
	} else {
		a.refresh()
	}
	a.notice = "Vault locked"
}

// selectPrivate routes to the vault view, or to the auth prompt while
// locked.
func (a *App) selectPrivate() {
	if a.gateUnlocked() {
		a.setActiveCollection(model.ViewPrivate)
		return
	}
	a.auth.Reset()
	a.authOpen = true
}

// openBrowser opens a URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

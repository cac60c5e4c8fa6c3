package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nbrandt/bv/internal/model"
)

// editorField indexes the focusable rows of the bookmark editor.
type editorField int

const (
	fieldTitle editorField = iota
	fieldURL
	fieldDescription
	fieldTags
	fieldCollection
	editorFieldCount
)

// EditorState holds state for the add/edit bookmark modal.
type EditorState struct {
	Title       textinput.Model
	URL         textinput.Model
	Description textinput.Model
	Tags        textinput.Model
	Collection  textinput.Model // collection name, resolved at save time
	Field       editorField
	EditID      string // "" = adding a new bookmark
	IsPrivate   bool
	IsPinned    bool
}

// NewEditorState creates an EditorState with initialized inputs.
func NewEditorState() EditorState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 48

	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = 500
	url.Width = 48

	description := textinput.New()
	description.Placeholder = "Description"
	description.CharLimit = 500
	description.Width = 48

	tags := textinput.New()
	tags.Placeholder = "tag1, tag2, tag3"
	tags.CharLimit = 200
	tags.Width = 48

	collection := textinput.New()
	collection.Placeholder = "Collection (blank = library)"
	collection.CharLimit = 100
	collection.Width = 48

	return EditorState{
		Title:       title,
		URL:         url,
		Description: description,
		Tags:        tags,
		Collection:  collection,
	}
}

// Reset clears the editor for a fresh add session.
func (e *EditorState) Reset() {
	e.Title.Reset()
	e.URL.Reset()
	e.Description.Reset()
	e.Tags.Reset()
	e.Collection.Reset()
	e.Field = fieldTitle
	e.EditID = ""
	e.IsPrivate = false
	e.IsPinned = false
	e.Title.Focus()
	e.URL.Blur()
	e.Description.Blur()
	e.Tags.Blur()
	e.Collection.Blur()
}

// LoadBookmark fills the editor from an existing bookmark.
func (e *EditorState) LoadBookmark(b model.Bookmark, collectionName string) {
	e.Reset()
	e.EditID = b.ID
	e.Title.SetValue(b.Title)
	e.URL.SetValue(b.URL)
	e.Description.SetValue(b.Description)
	e.Tags.SetValue(strings.Join(b.Tags, ", "))
	e.Collection.SetValue(collectionName)
	e.IsPrivate = b.IsPrivate
	e.IsPinned = b.IsPinned
}

// Draft builds the BookmarkDraft from the current inputs.
func (e *EditorState) Draft() model.BookmarkDraft {
	var tags []string
	for _, t := range strings.Split(e.Tags.Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	ref := model.RefExisting(model.CollectionAll)
	if name := strings.TrimSpace(e.Collection.Value()); name != "" {
		ref = model.RefByName(name)
	}

	return model.BookmarkDraft{
		URL:         strings.TrimSpace(e.URL.Value()),
		Title:       strings.TrimSpace(e.Title.Value()),
		Description: strings.TrimSpace(e.Description.Value()),
		Tags:        tags,
		Collection:  ref,
		IsPrivate:   e.IsPrivate,
		IsPinned:    e.IsPinned,
	}
}

// focusedInput returns the textinput for the current field, or nil for
// the flags row.
func (e *EditorState) focusedInput() *textinput.Model {
	switch e.Field {
	case fieldTitle:
		return &e.Title
	case fieldURL:
		return &e.URL
	case fieldDescription:
		return &e.Description
	case fieldTags:
		return &e.Tags
	case fieldCollection:
		return &e.Collection
	}
	return nil
}

// CycleField moves focus forward or backward through the editor fields.
func (e *EditorState) CycleField(delta int) {
	next := (int(e.Field) + delta + int(editorFieldCount)) % int(editorFieldCount)
	e.FocusField(editorField(next))
}

// FocusField moves editor focus to the given field.
func (e *EditorState) FocusField(f editorField) {
	e.Field = f
	for _, input := range []*textinput.Model{&e.Title, &e.URL, &e.Description, &e.Tags, &e.Collection} {
		input.Blur()
	}
	if input := e.focusedInput(); input != nil {
		input.Focus()
	}
}

// AuthState holds state for the vault PIN prompt.
type AuthState struct {
	Input  textinput.Model
	Notice string
}

// NewAuthState creates an AuthState with a masked input.
func NewAuthState() AuthState {
	input := textinput.New()
	input.Placeholder = "PIN"
	input.CharLimit = 12
	input.Width = 16
	input.EchoMode = textinput.EchoPassword
	return AuthState{Input: input}
}

// Reset clears the prompt for a new attempt.
func (a *AuthState) Reset() {
	a.Input.Reset()
	a.Notice = ""
	a.Input.Focus()
}

// SetupState holds state for first-run (or reset) PIN setup.
type SetupState struct {
	Input   textinput.Model
	Confirm textinput.Model
	Stage   int // 0 = choose, 1 = confirm
	Notice  string
}

// NewSetupState creates a SetupState with masked inputs.
func NewSetupState() SetupState {
	input := textinput.New()
	input.Placeholder = "Choose a PIN (6+ digits)"
	input.CharLimit = 12
	input.Width = 26
	input.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Repeat PIN"
	confirm.CharLimit = 12
	confirm.Width = 26
	confirm.EchoMode = textinput.EchoPassword

	return SetupState{Input: input, Confirm: confirm}
}

// Reset clears the setup flow.
func (s *SetupState) Reset() {
	s.Input.Reset()
	s.Confirm.Reset()
	s.Stage = 0
	s.Notice = ""
	s.Input.Focus()
	s.Confirm.Blur()
}

// ConfirmState holds state for the delete confirmation dialog.
type ConfirmState struct {
	BookmarkID string
}

// CollectionModalState holds state for the add-collection modal.
type CollectionModalState struct {
	Name     textinput.Model
	ColorIdx int
	Notice   string
}

// CollectionColors are the selectable collection colors.
var CollectionColors = []string{"blue", "purple", "green", "red", "orange", "teal"}

// NewCollectionModalState creates the modal state with its input.
func NewCollectionModalState() CollectionModalState {
	name := textinput.New()
	name.Placeholder = "Collection name"
	name.CharLimit = 100
	name.Width = 32
	return CollectionModalState{Name: name}
}

// Reset clears the modal for a new session.
func (c *CollectionModalState) Reset() {
	c.Name.Reset()
	c.ColorIdx = 0
	c.Notice = ""
	c.Name.Focus()
}

// FilterMenuState holds state for the tag filter menu.
type FilterMenuState struct {
	Cursor int
	NewTag textinput.Model
	Typing bool // NewTag input focused
}

// NewFilterMenuState creates the menu state with its input.
func NewFilterMenuState() FilterMenuState {
	newTag := textinput.New()
	newTag.Placeholder = "Add new tag..."
	newTag.CharLimit = 50
	newTag.Width = 24
	return FilterMenuState{NewTag: newTag}
}

// Reset clears menu position and input, keeping selected tags (they live
// on the App).
func (f *FilterMenuState) Reset() {
	f.Cursor = 0
	f.NewTag.Reset()
	f.Typing = false
	f.NewTag.Blur()
}

// MovePromptState holds state for the move-to-collection prompt.
type MovePromptState struct {
	Input      textinput.Model
	BookmarkID string
}

// NewMovePromptState creates the prompt state with its input.
func NewMovePromptState() MovePromptState {
	input := textinput.New()
	input.Placeholder = "Collection name (exact)"
	input.CharLimit = 100
	input.Width = 32
	return MovePromptState{Input: input}
}

// Reset prepares the prompt for the given bookmark.
func (m *MovePromptState) Reset(bookmarkID string) {
	m.Input.Reset()
	m.BookmarkID = bookmarkID
	m.Input.Focus()
}

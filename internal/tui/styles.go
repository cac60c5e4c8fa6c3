package tui

import "github.com/charmbracelet/lipgloss"

// Theme identifiers. Persisted; the terminal background decides the
// first-run fallback.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ResolveTheme returns the saved theme, falling back to the terminal
// background. Read once at init.
func ResolveTheme(saved string) string {
	if saved == ThemeLight || saved == ThemeDark {
		return saved
	}
	if lipgloss.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips between light and dark.
func ToggleTheme(theme string) string {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Header       lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	URL          lipgloss.Style
	Tag          lipgloss.Style
	TagSelected  lipgloss.Style
	Pin          lipgloss.Style
	Private      lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Label        lipgloss.Style
	Notice       lipgloss.Style
	Offline      lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
}

// palette holds the raw colors a theme is built from.
type palette struct {
	primary lipgloss.Color
	subtle  lipgloss.Color
	accent  lipgloss.Color
	warn    lipgloss.Color
	border  lipgloss.Color
	invert  lipgloss.Color
}

func lightPalette() palette {
	return palette{
		primary: lipgloss.Color("#3A3A3A"),
		subtle:  lipgloss.Color("#888888"),
		accent:  lipgloss.Color("#4A7070"),
		warn:    lipgloss.Color("#A05050"),
		border:  lipgloss.Color("#AAAAAA"),
		invert:  lipgloss.Color("#FAFAFA"),
	}
}

func darkPalette() palette {
	return palette{
		primary: lipgloss.Color("#C0C0C0"),
		subtle:  lipgloss.Color("#606060"),
		accent:  lipgloss.Color("#5F8787"),
		warn:    lipgloss.Color("#AF6A6A"),
		border:  lipgloss.Color("#505050"),
		invert:  lipgloss.Color("#1A1A1A"),
	}
}

// StylesFor returns the style set for the theme.
func StylesFor(theme string) Styles {
	p := darkPalette()
	if theme == ThemeLight {
		p = lightPalette()
	}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		Item: lipgloss.NewStyle().
			Foreground(p.primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(p.accent).
			Foreground(p.invert),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),

		URL: lipgloss.NewStyle().
			Foreground(p.subtle),

		Tag: lipgloss.NewStyle().
			Foreground(p.subtle),

		TagSelected: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		Pin: lipgloss.NewStyle().
			Foreground(p.accent),

		Private: lipgloss.NewStyle().
			Foreground(p.warn),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(p.subtle),

		Notice: lipgloss.NewStyle().
			Foreground(p.warn),

		Offline: lipgloss.NewStyle().
			Foreground(p.invert).
			Background(p.subtle).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(p.subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(p.accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(p.subtle),
	}
}

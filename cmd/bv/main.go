package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbrandt/bv/internal/exporter"
	"github.com/nbrandt/bv/internal/importer"
	"github.com/nbrandt/bv/internal/logger"
	"github.com/nbrandt/bv/internal/model"
	"github.com/nbrandt/bv/internal/netcheck"
	"github.com/nbrandt/bv/internal/picker"
	"github.com/nbrandt/bv/internal/search"
	"github.com/nbrandt/bv/internal/storage"
	"github.com/nbrandt/bv/internal/tui"
	"github.com/nbrandt/bv/internal/vault"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: bv import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `bv - personal bookmark vault

Usage:
  bv                    Open interactive TUI
  bv <query>            Quick search → select → open
  bv import <file>      Import bookmarks from HTML
  bv export [path]      Export bookmarks to HTML (private excluded)
  bv help               Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    esc         Back (close overlay / reset view / quit)

  Actions:
    enter       Open bookmark detail
    o           Open bookmark in browser
    Y           Copy URL to clipboard
    /           Search (debounced)
    f           Filter by tags
    *           Pin/unpin
    m           Move to collection

  Editing:
    a           Add bookmark
    e           Edit selected bookmark
    d           Delete (with confirmation)

  Other:
    b/tab       Collection sidebar
    v           Toggle grid/list view
    ,           Settings
    L           Lock private vault
    q           Quit

Data Storage:
  ~/.config/bv/  (per-key JSON files, or bv.db when present)
`
	fmt.Print(help)
}

// loadLibrary opens the store and decodes the persisted entities, falling
// back to seed data when nothing valid is stored.
func loadLibrary(store storage.Store) *model.Library {
	lib := model.NewLibrary()
	lib.Bookmarks = storage.Load(store, storage.KeyBookmarks, []model.Bookmark{})
	lib.Collections = storage.Load(store, storage.KeyCollections, model.DefaultCollections())
	return lib
}

// runTUI runs the full interactive TUI.
func runTUI() {
	store, err := storage.OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	log := logger.Nop()
	if dir, err := storage.DefaultDataDir(); err == nil {
		log = logger.NewFile(filepath.Join(dir, "bv.log"), os.Getenv("BV_LOG_LEVEL"))
	}
	defer log.Sync()

	lib := loadLibrary(store)
	gate := vault.NewGate(storage.Load(store, storage.KeyVaultPIN, ""))
	theme := storage.Load(store, storage.KeyTheme, "")
	prefs := storage.LoadPreferences(store)

	app := tui.NewApp(tui.AppParams{
		Library: lib,
		Store:   store,
		Gate:    gate,
		Theme:   theme,
		Prefs:   prefs,
		Log:     log,
		Checker: netcheck.New(netcheck.DefaultProbeURL, 5*time.Second),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
// Private bookmarks never surface here.
func runQuickSearch(query string) {
	store, err := storage.OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	lib := loadLibrary(store)
	results := search.FuzzySearch(lib, query)

	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	var selected *model.Bookmark

	if len(results) == 1 {
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		return
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
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

// runImport handles the import subcommand.
func runImport(filePath string) {
	store, err := storage.OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	lib := loadLibrary(store)

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	collections, bookmarks, err := importer.ParseHTML(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped := lib.ImportMerge(collections, bookmarks)

	if err := storage.Save(store, storage.KeyBookmarks, lib.Bookmarks); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
		os.Exit(1)
	}
	if err := storage.Save(store, storage.KeyCollections, lib.Collections); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving collections: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := storage.OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	lib := loadLibrary(store)
	html := exporter.ExportHTML(lib)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	exported := 0
	for _, b := range lib.Bookmarks {
		if !b.IsPrivate {
			exported++
		}
	}
	fmt.Printf("Exported %d bookmarks, %d collections to %s\n",
		exported, len(lib.Collections), outputPath)
}

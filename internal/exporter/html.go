// Package exporter writes the library to Netscape bookmark HTML.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nbrandt/bv/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the library to Netscape bookmark HTML. Uncategorized
// bookmarks are written at the root, each collection becomes one folder.
// Private bookmarks stay out: the export file is not a vault surface.
func ExportHTML(lib *model.Library) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeBookmarks(&b, lib, model.CollectionAll, 1)

	for _, c := range lib.SortedCollections() {
		prefix := strings.Repeat("    ", 1)
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(c.Name))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		writeBookmarks(&b, lib, c.ID, 2)
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeBookmarks writes the non-private bookmarks of one collection.
func writeBookmarks(b *strings.Builder, lib *model.Library, collectionID string, indent int) {
	prefix := strings.Repeat("    ", indent)
	for _, bm := range lib.Bookmarks {
		if bm.IsPrivate || bm.CollectionID != collectionID {
			continue
		}

		attrs := fmt.Sprintf(` HREF="%s"`, html.EscapeString(bm.URL))
		if bm.CreatedAt > 0 {
			attrs += fmt.Sprintf(` ADD_DATE="%d"`, bm.CreatedAt/1000)
		}
		if len(bm.Tags) > 0 {
			attrs += fmt.Sprintf(` TAGS="%s"`, html.EscapeString(strings.Join(bm.Tags, ",")))
		}

		fmt.Fprintf(b, "%s<DT><A%s>%s</A>\n", prefix, attrs, html.EscapeString(bm.Title))
	}
}

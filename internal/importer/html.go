// Package importer parses Netscape bookmark HTML into collections and
// bookmarks. Collections are flat, so top-level folders become collections
// and nested folders flatten into their top-level ancestor.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nbrandt/bv/internal/model"
	"golang.org/x/net/html"
)

// ParseHTML parses Netscape bookmark HTML and returns collections and
// bookmarks. Returned entities carry fresh ids; callers merge them through
// Library.ImportMerge.
func ParseHTML(r io.Reader) ([]model.Collection, []model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var collections []model.Collection
	var bookmarks []model.Bookmark

	// Stack of collection ids. Only a top-level H3 creates a collection;
	// deeper folders push their enclosing collection id again, flattening
	// the hierarchy.
	var stack []string
	var pendingID string
	var havePending bool

	currentCollection := func() string {
		if len(stack) == 0 {
			return model.CollectionAll
		}
		return stack[len(stack)-1]
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name == "" {
					return
				}
				if len(stack) == 0 {
					c := model.Collection{
						ID:    model.GenerateUUID(),
						Name:  name,
						Icon:  model.DefaultCollectionIcon,
						Color: model.DefaultCollectionColor,
					}
					collections = append(collections, c)
					pendingID = c.ID
				} else {
					pendingID = currentCollection()
				}
				havePending = true
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				createdAt := time.Now().UnixMilli()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = ts * 1000
					}
				}

				bookmarks = append(bookmarks, model.Bookmark{
					ID:           model.GenerateUUID(),
					Title:        title,
					URL:          href,
					Tags:         parseTagsAttr(getAttr(n, "tags")),
					CollectionID: currentCollection(),
					CreatedAt:    createdAt,
				})
				return // Don't recurse into A

			case "dl":
				pushed := false
				if havePending {
					stack = append(stack, pendingID)
					havePending = false
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				return // Children already handled
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return collections, bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}

// parseTagsAttr splits the TAGS attribute some browsers export.
func parseTagsAttr(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

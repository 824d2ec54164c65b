package models

import (
	"slices"
	"time"
)

// Entry is one catalog item with metadata extracted from its front matter
type Entry struct {
	Slug        string   `json:"slug" validate:"required"`                // Derived from the content unit name
	Title       string   `json:"title" validate:"required"`               // From frontmatter `title`, or first H1
	Description string   `json:"description" validate:"required"`         // From frontmatter, or first paragraph
	Date        string   `json:"date,omitempty"`                          // ISO date, display only
	CoverImage  string   `json:"coverImage,omitempty"`                    // Image reference
	Tags        []string `json:"tags,omitempty" validate:"dive,required"` // Tag ids, deduplicated
	Path        string   `json:"-"`                                       // Absolute path to the markdown file
}

// HasTag reports whether the entry carries the tag id
func (e Entry) HasTag(id string) bool {
	return slices.Contains(e.Tags, id)
}

// HasAllTags reports whether the entry's tags are a superset of ids. An empty
// ids list is satisfied by every entry.
func (e Entry) HasAllTags(ids []string) bool {
	for _, id := range ids {
		if !e.HasTag(id) {
			return false
		}
	}
	return true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// ParsedDate parses Date using the accepted ISO layouts
func (e Entry) ParsedDate() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats Date for display, falling back to the raw string
// when it is not an ISO date
func (e Entry) DisplayDate() string {
	if t, ok := e.ParsedDate(); ok {
		return t.Format("Jan 2, 2006")
	}
	return e.Date
}

// Document is an entry together with its rendered body
type Document struct {
	Entry
	Body         string `json:"body"` // Markdown content without frontmatter
	HTML         string `json:"html"` // Body rendered to HTML
	DeclaredSlug string `json:"-"`    // Frontmatter `slug` as written, may differ from Slug
}

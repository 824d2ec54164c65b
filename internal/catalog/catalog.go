// Package catalog loads the template catalog from a content directory and
// resolves slugs back to the content units they were built from.
package catalog

import (
	"fmt"
	"log/slog"
	"time"

	"templatehub/internal/catalog/fs"
	"templatehub/internal/catalog/models"
	"templatehub/internal/errors"
)

// Policy decides what happens when one content unit cannot be read.
type Policy int

const (
	// SkipMalformed logs the failing unit and leaves it out of the catalog.
	SkipMalformed Policy = iota
	// Strict fails the whole load on the first malformed unit.
	Strict
)

// String returns the policy name used in config and logs.
func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "skip"
}

// Options configures a catalog load.
type Options struct {
	Policy Policy
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Catalog is an immutable snapshot of the content directory: the ordered
// entries plus a slug to document registry built from the same scan.
type Catalog struct {
	root     string
	entries  []models.Entry
	docs     map[string]models.Document
	skipped  []string
	loadedAt time.Time
}

// Load scans root and reads every content unit. An unreadable root fails
// with CONTENT_UNAVAILABLE. Malformed units are handled per opts.Policy.
func Load(root string, opts Options) (*Catalog, error) {
	log := opts.logger()

	units, err := fs.ScanContentDir(root)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		root:     root,
		entries:  make([]models.Entry, 0, len(units)),
		docs:     make(map[string]models.Document, len(units)),
		loadedAt: time.Now(),
	}

	for _, unit := range units {
		if existing, dup := c.docs[unit.Slug]; dup {
			err := errors.MalformedContent(
				fmt.Sprintf("content unit %q", unit.Name),
				fmt.Errorf("slug %q already used by %s", unit.Slug, existing.Path),
			)
			if opts.Policy == Strict {
				return nil, err
			}
			log.Warn("skipping content unit", "unit", unit.Name, "error", err)
			c.skipped = append(c.skipped, unit.Name)
			continue
		}

		doc, err := fs.ReadEntry(unit)
		if err != nil {
			if opts.Policy == Strict {
				return nil, err
			}
			log.Warn("skipping content unit", "unit", unit.Name, "error", err)
			c.skipped = append(c.skipped, unit.Name)
			continue
		}

		if doc.DeclaredSlug != "" && doc.DeclaredSlug != doc.Slug {
			log.Warn("frontmatter slug ignored, routing uses the unit name",
				"unit", unit.Name, "declared", doc.DeclaredSlug, "slug", doc.Slug)
		}

		c.entries = append(c.entries, doc.Entry)
		c.docs[doc.Slug] = doc
	}

	log.Debug("catalog loaded", "root", root, "entries", len(c.entries), "skipped", len(c.skipped))
	return c, nil
}

// Root returns the content directory the catalog was loaded from.
func (c *Catalog) Root() string {
	return c.root
}

// LoadedAt returns when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the entries in load order.
func (c *Catalog) Entries() []models.Entry {
	out := make([]models.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Skipped returns the names of units left out by SkipMalformed.
func (c *Catalog) Skipped() []string {
	out := make([]string, len(c.skipped))
	copy(out, c.skipped)
	return out
}

// Resolve returns the document for slug, or a NOT_FOUND error when no
// content unit in this catalog has that slug.
func (c *Catalog) Resolve(slug string) (models.Document, error) {
	doc, ok := c.docs[slug]
	if !ok {
		return models.Document{}, errors.NotFoundf("template %q not found", slug)
	}
	return doc, nil
}

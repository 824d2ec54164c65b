package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"templatehub/internal/errors"
)

// indexFiles are tried in order inside a unit directory
var indexFiles = []string{"index.mdx", "index.md"}

// Unit describes one discovered content unit
type Unit struct {
	Name string // directory or file name as found under the content root
	Slug string // routing key derived from Name
	Path string // absolute path to the markdown file, "" if the directory has none
}

// ScanContentDir lists the content units directly under rootDir in
// directory enumeration order. A missing or unreadable root fails with a
// CONTENT_UNAVAILABLE error.
func ScanContentDir(rootDir string) ([]Unit, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.ContentUnavailable(fmt.Sprintf("resolve content root %s", rootDir), err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, errors.ContentUnavailable(fmt.Sprintf("read content root %s", absRoot), err)
	}

	var units []Unit
	for _, entry := range entries {
		name := entry.Name()
		absPath := filepath.Join(absRoot, name)

		if shouldSkip(name) {
			continue
		}

		if entry.IsDir() {
			units = append(units, Unit{
				Name: name,
				Slug: SlugFromName(name),
				Path: findIndexFile(absPath),
			})
		} else if isContentFile(name) {
			units = append(units, Unit{
				Name: name,
				Slug: SlugFromName(strings.TrimSuffix(name, filepath.Ext(name))),
				Path: absPath,
			})
		}
	}

	return units, nil
}

// findIndexFile returns the index markdown file of a unit directory
func findIndexFile(dir string) string {
	for _, name := range indexFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// isContentFile returns true for top-level markdown units
func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

// shouldSkip returns true for hidden entries and common junk directories
func shouldSkip(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "build", "dist":
		return true
	}
	return false
}

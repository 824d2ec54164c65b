package fs

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"templatehub/internal/catalog/models"
	"templatehub/internal/errors"
	"templatehub/internal/validation"

	"gopkg.in/yaml.v3"
)

var validate = validation.New()

// Frontmatter is the metadata block at the top of a template file
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Slug        string   `yaml:"slug"`
	CoverImage  string   `yaml:"coverImage"`
	CoverAlias  string   `yaml:"cover_image"`
	Tags        []string `yaml:"tags"`
}

// ReadEntry reads a content unit and extracts its metadata and rendered body.
// Any failure is reported as a MALFORMED_CONTENT error naming the unit.
func ReadEntry(unit Unit) (models.Document, error) {
	if unit.Path == "" {
		return models.Document{}, errors.MalformedContent(
			fmt.Sprintf("content unit %q", unit.Name),
			fmt.Errorf("no %s found", strings.Join(indexFiles, " or ")),
		)
	}

	content, err := os.ReadFile(unit.Path)
	if err != nil {
		return models.Document{}, errors.MalformedContent(fmt.Sprintf("read content unit %q", unit.Name), err)
	}

	doc, err := ParseDocument(unit.Slug, content)
	if err != nil {
		return models.Document{}, errors.MalformedContent(fmt.Sprintf("content unit %q", unit.Name), err)
	}
	doc.Path = unit.Path

	return doc, nil
}

// ParseDocument builds a document from raw template content. The slug is
// supplied by the caller; a frontmatter `slug` is only recorded.
func ParseDocument(slug string, content []byte) (models.Document, error) {
	fm, body, err := ParseFrontmatter(content)
	if err != nil {
		return models.Document{}, err
	}

	rendered, err := renderBody([]byte(body))
	if err != nil {
		return models.Document{}, fmt.Errorf("render markdown: %w", err)
	}

	entry := models.Entry{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Date:        strings.TrimSpace(fm.Date),
		CoverImage:  strings.TrimSpace(fm.CoverImage),
		Tags:        normalizeTags(fm.Tags),
	}
	if entry.CoverImage == "" {
		entry.CoverImage = strings.TrimSpace(fm.CoverAlias)
	}
	if entry.Title == "" {
		entry.Title = rendered.title
	}
	if entry.Description == "" {
		entry.Description = rendered.summary
	}

	if err := validate.Validate(entry); err != nil {
		return models.Document{}, err
	}

	return models.Document{
		Entry:        entry,
		Body:         body,
		HTML:         rendered.html,
		DeclaredSlug: strings.TrimSpace(fm.Slug),
	}, nil
}

// ParseFrontmatter splits YAML frontmatter from markdown content. Content
// without a frontmatter block yields an empty Frontmatter and the whole
// content as body; an unterminated block or invalid YAML is an error.
func ParseFrontmatter(content []byte) (Frontmatter, string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	lines := bytes.Split(content, []byte("\n"))

	// Check if content starts with ---
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return Frontmatter{}, string(content), nil
	}

	// Find the closing ---
	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == 0 {
		return Frontmatter{}, "", fmt.Errorf("frontmatter block is not terminated")
	}

	var fm Frontmatter
	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	if err := yaml.Unmarshal(frontmatterBytes, &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	body := bytes.Join(lines[frontmatterEnd+1:], []byte("\n"))
	return fm, string(body), nil
}

// normalizeTags trims tag ids and drops empties and duplicates, keeping the
// first occurrence
func normalizeTags(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

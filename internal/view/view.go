// Package view derives what the catalog shows from the loaded entries, the
// tag registry and the viewer's current selection. It has no rendering of
// its own; the web pages and the terminal browser both drive a Model.
package view

import (
	"slices"

	"github.com/sahilm/fuzzy"

	"templatehub/internal/catalog/models"
	"templatehub/internal/tags"
)

// State is the top-level thing the catalog should display.
type State int

const (
	// StateList shows at least one entry.
	StateList State = iota
	// StateNoMatches means entries exist but the active filters hide all of them.
	StateNoMatches
	// StateEmpty means there is no content at all.
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateNoMatches:
		return "no_matches"
	case StateEmpty:
		return "empty"
	default:
		return "list"
	}
}

// Model holds one viewing session: the entries, the selected tag ids in
// insertion order and an optional title query. Derived values are
// recomputed after every change.
type Model struct {
	entries  []models.Entry
	selected []string
	query    string

	available []tags.Tag
	visible   []int // indices into entries
}

// New builds a model over entries with nothing selected.
func New(entries []models.Entry) *Model {
	m := &Model{}
	m.SetEntries(entries)
	return m
}

// SetEntries swaps the entry list, for example after a reload. Selected ids
// that are no longer available are dropped.
func (m *Model) SetEntries(entries []models.Entry) {
	m.entries = slices.Clone(entries)
	m.available = availableTags(m.entries)

	kept := m.selected[:0]
	for _, id := range m.selected {
		if m.isAvailable(id) {
			kept = append(kept, id)
		}
	}
	m.selected = kept
	m.recompute()
}

// Entries returns every entry, unfiltered.
func (m *Model) Entries() []models.Entry {
	return slices.Clone(m.entries)
}

// AvailableTags returns the registry tags used by at least one entry, in
// registry order.
func (m *Model) AvailableTags() []tags.Tag {
	return slices.Clone(m.available)
}

// SelectedTags returns the selected ids in the order they were selected.
func (m *Model) SelectedTags() []string {
	return slices.Clone(m.selected)
}

// IsSelected reports whether id is part of the selection.
func (m *Model) IsSelected(id string) bool {
	return slices.Contains(m.selected, id)
}

// ToggleTag adds id to the selection or removes it. Ids outside the
// available tags are ignored and ToggleTag reports false.
func (m *Model) ToggleTag(id string) bool {
	if !m.isAvailable(id) {
		return false
	}
	if i := slices.Index(m.selected, id); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
	} else {
		m.selected = append(m.selected, id)
	}
	m.recompute()
	return true
}

// ApplySelection replaces the selection by toggling each id in turn from an
// empty one. Unknown, unused and repeated ids are dropped.
func (m *Model) ApplySelection(ids []string) {
	m.selected = nil
	for _, id := range ids {
		if !m.IsSelected(id) {
			m.ToggleTag(id)
		}
	}
	m.recompute()
}

// ToggledSelection returns what the selection would be after ToggleTag(id),
// without changing the model. Pages use it to build badge links.
func (m *Model) ToggledSelection(id string) []string {
	out := slices.Clone(m.selected)
	if !m.isAvailable(id) {
		return out
	}
	if i := slices.Index(out, id); i >= 0 {
		return slices.Delete(out, i, i+1)
	}
	return append(out, id)
}

// ClearFilters empties the selection and the title query.
func (m *Model) ClearFilters() {
	m.selected = nil
	m.query = ""
	m.recompute()
}

// SetQuery sets the fuzzy title query. An empty query disables it.
func (m *Model) SetQuery(q string) {
	m.query = q
	m.recompute()
}

// Query returns the current title query.
func (m *Model) Query() string {
	return m.query
}

// HasActiveFilters reports whether a selection or a query narrows the list.
func (m *Model) HasActiveFilters() bool {
	return len(m.selected) > 0 || m.query != ""
}

// VisibleEntries returns the entries that carry every selected tag and, with
// a query set, match it. Query matches come back best first.
func (m *Model) VisibleEntries() []models.Entry {
	out := make([]models.Entry, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.entries[idx]
	}
	return out
}

// State reports which of the three catalog states applies.
func (m *Model) State() State {
	switch {
	case len(m.entries) == 0:
		return StateEmpty
	case len(m.visible) == 0:
		return StateNoMatches
	default:
		return StateList
	}
}

// ShowFilter reports whether the tag filter control should be shown.
func (m *Model) ShowFilter() bool {
	return len(m.available) > 0
}

// BadgesFor returns the registry tags for an entry. Ids the registry does
// not know are left out.
func BadgesFor(e models.Entry) []tags.Tag {
	return tags.Resolve(e.Tags)
}

func (m *Model) isAvailable(id string) bool {
	return slices.ContainsFunc(m.available, func(t tags.Tag) bool { return t.ID == id })
}

func (m *Model) recompute() {
	var byTag []int
	for i, e := range m.entries {
		if e.HasAllTags(m.selected) {
			byTag = append(byTag, i)
		}
	}

	if m.query == "" {
		m.visible = byTag
		return
	}

	titles := make([]string, len(byTag))
	for i, idx := range byTag {
		titles[i] = m.entries[idx].Title
	}
	matches := fuzzy.Find(m.query, titles)
	m.visible = make([]int, len(matches))
	for i, match := range matches {
		m.visible[i] = byTag[match.Index]
	}
}

func availableTags(entries []models.Entry) []tags.Tag {
	used := make(map[string]bool)
	for _, e := range entries {
		for _, id := range e.Tags {
			used[id] = true
		}
	}

	var out []tags.Tag
	for _, t := range tags.All() {
		if used[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

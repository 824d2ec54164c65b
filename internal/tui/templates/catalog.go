package templates

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"templatehub/internal/catalog/models"
	"templatehub/internal/tags"
	"templatehub/internal/tui/messages"
	"templatehub/internal/tui/shared"
	"templatehub/internal/tui/theme"
	"templatehub/internal/view"
)

type catalogMode int

const (
	modeList catalogMode = iota
	modeSearch
)

// linesPerEntry is the height of one rendered entry: title row, description
// row and a blank spacer.
const linesPerEntry = 3

// CatalogModel is the filterable template list.
type CatalogModel struct {
	view      *view.Model
	selected  int
	mode      catalogMode
	textInput textinput.Model
	err       error

	width  int
	height int
}

func NewCatalogModel(entries []models.Entry) CatalogModel {
	ti := textinput.New()
	ti.Placeholder = "Search templates..."
	ti.CharLimit = 100
	ti.Width = 40

	return CatalogModel{
		view:      view.New(entries),
		textInput: ti,
	}
}

// SetEntries replaces the entries after a reload. The selection survives for
// tags that are still in use.
func (m *CatalogModel) SetEntries(entries []models.Entry) {
	m.err = nil
	m.view.SetEntries(entries)
	m.clampCursor()
}

// SetError shows the content unavailable state until the next SetEntries.
func (m *CatalogModel) SetError(err error) {
	m.err = err
}

// SetSize updates view dimensions.
func (m *CatalogModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Filter returns the underlying catalog view model.
func (m CatalogModel) Filter() *view.Model {
	return m.view
}

// Selected returns the entry under the cursor.
func (m CatalogModel) Selected() (models.Entry, bool) {
	visible := m.view.VisibleEntries()
	if m.selected < 0 || m.selected >= len(visible) {
		return models.Entry{}, false
	}
	return visible[m.selected], true
}

// IsTyping returns true when the search input has focus.
func (m CatalogModel) IsTyping() bool {
	return m.mode == modeSearch
}

// HintText returns the raw hint string for the current mode.
func (m CatalogModel) HintText() string {
	if m.mode == modeSearch {
		return "type to filter  enter:confirm  esc:cancel"
	}
	switch m.view.State() {
	case view.StateEmpty:
		return "r:reload  ?:help  q:quit"
	case view.StateNoMatches:
		return "c:clear filters  1-9:toggle tag  /:search  r:reload  ?:help  q:quit"
	}
	return "j/k:navigate  1-9:toggle tag  c:clear  /:search  enter:open  r:reload  ?:help  q:quit"
}

func (m *CatalogModel) clampCursor() {
	n := len(m.view.VisibleEntries())
	if m.selected >= n {
		m.selected = max(0, n-1)
	}
}

func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.err != nil {
			return m, nil
		}
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeSearch:
			return m.updateSearch(msg)
		}
	}
	return m, nil
}

func (m CatalogModel) updateList(msg tea.KeyMsg) (CatalogModel, tea.Cmd) {
	key := msg.String()

	switch key {
	case "j", "down":
		if m.selected < len(m.view.VisibleEntries())-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "g", "home":
		m.selected = 0

	case "G", "end":
		m.selected = max(0, len(m.view.VisibleEntries())-1)

	case "c":
		m.view.ClearFilters()
		m.selected = 0

	case "esc":
		if m.view.Query() != "" {
			m.view.SetQuery("")
			m.clampCursor()
		}

	case "/":
		if m.view.State() == view.StateEmpty {
			return m, nil
		}
		m.mode = modeSearch
		m.textInput.SetValue(m.view.Query())
		m.textInput.Focus()
		return m, textinput.Blink

	case "enter":
		if e, ok := m.Selected(); ok {
			return m, messages.OpenTemplate(e.Slug)
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		available := m.view.AvailableTags()
		if idx < len(available) {
			m.view.ToggleTag(available[idx].ID)
			m.selected = 0
		}
	}

	return m, nil
}

func (m CatalogModel) updateSearch(msg tea.KeyMsg) (CatalogModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.textInput.Blur()
		return m, nil

	case "esc":
		m.mode = modeList
		m.textInput.Blur()
		m.textInput.SetValue("")
		m.view.SetQuery("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.view.SetQuery(strings.TrimSpace(m.textInput.Value()))
	m.selected = 0
	return m, cmd
}

func (m CatalogModel) View() string {
	if m.err != nil {
		return shared.CenterContent(lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("Content unavailable"),
			"",
			mutedStyle.Render(m.err.Error()),
			mutedStyle.Render("Press r to retry."),
		), m.height)
	}

	if m.view.State() == view.StateEmpty {
		return shared.CenterContent(lipgloss.JoinVertical(lipgloss.Center,
			stateTitleStyle.Render("No templates yet"),
			mutedStyle.Render("There is no content to show."),
		), m.height)
	}

	var lines []string
	visible := m.view.VisibleEntries()

	header := titleStyle.Render("Templates") +
		mutedStyle.Render(fmt.Sprintf(" %d of %d", len(visible), len(m.view.Entries())))
	lines = append(lines, header, "")

	if m.view.ShowFilter() {
		lines = append(lines, "  "+m.renderFilterBar(), "")
	}

	switch {
	case m.mode == modeSearch:
		lines = append(lines, searchLabelStyle.Render("  Search: ")+m.textInput.View(), "")
	case m.view.Query() != "":
		lines = append(lines, searchLabelStyle.Render("  Search: ")+mutedStyle.Render(m.view.Query()), "")
	}

	if m.view.State() == view.StateNoMatches {
		lines = append(lines,
			listItemStyle.Render("No templates match these filters."),
			listItemStyle.Render(mutedStyle.Render("Press c to clear filters.")),
		)
		return strings.Join(lines, "\n")
	}

	// Calculate visible range for scrolling
	maxVisible := (m.height - len(lines) - 2) / linesPerEntry
	if maxVisible < 1 {
		maxVisible = 1
	}
	startIdx := 0
	if m.selected >= maxVisible {
		startIdx = m.selected - maxVisible + 1
	}
	endIdx := min(startIdx+maxVisible, len(visible))

	if startIdx > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ▲ %d more above", startIdx)))
	}
	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, m.renderEntry(visible[i], i == m.selected)...)
	}
	if endIdx < len(visible) {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ▼ %d more below", len(visible)-endIdx)))
	}

	return strings.Join(lines, "\n")
}

func (m CatalogModel) renderFilterBar() string {
	available := m.view.AvailableTags()
	parts := make([]string, len(available))
	for i, t := range available {
		badge := theme.Badge(t.Color, m.view.IsSelected(t.ID)).Render(t.Label)
		if i < 9 {
			badge = filterKeyStyle.Render(fmt.Sprintf("%d", i+1)) + " " + badge
		}
		parts[i] = badge
	}
	return strings.Join(parts, "  ")
}

func (m CatalogModel) renderEntry(e models.Entry, selected bool) []string {
	style := listItemStyle
	prefix := "  "
	if selected {
		style = selectedListItemStyle
		prefix = "► "
	}

	title := style.Render(prefix + e.Title)
	if d := e.DisplayDate(); d != "" {
		title += " " + mutedStyle.Render(d)
	}
	if badges := renderBadges(view.BadgesFor(e), m.view.IsSelected); badges != "" {
		title += " " + badges
	}

	desc := e.Description
	if m.width > 10 {
		desc = truncate(desc, m.width-8)
	}

	return []string{title, descriptionStyle.Render(desc), ""}
}

// renderBadges renders tag badges, inverting those isSelected reports.
func renderBadges(ts []tags.Tag, isSelected func(string) bool) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = theme.Badge(t.Color, isSelected != nil && isSelected(t.ID)).Render(t.Label)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

package templates

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"templatehub/internal/catalog/models"
	"templatehub/internal/tui/messages"
	"templatehub/internal/view"
)

// DetailModel shows one template's metadata and its markdown body.
type DetailModel struct {
	doc      models.Document
	viewport viewport.Model
	width    int
	height   int
}

func NewDetailModel(doc models.Document) DetailModel {
	m := DetailModel{doc: doc, viewport: viewport.New(0, 0)}
	m.viewport.SetContent(doc.Body)
	return m
}

// Slug returns the slug of the shown document.
func (m DetailModel) Slug() string {
	return m.doc.Slug
}

// SetSize updates the view dimensions and re-wraps the body.
func (m *DetailModel) SetSize(w, h int) {
	m.width = w
	m.height = h

	headerHeight := lipgloss.Height(m.renderHeader())
	m.viewport.Width = w
	m.viewport.Height = max(1, h-headerHeight-1)

	body := strings.TrimSpace(m.doc.Body)
	if w > 4 {
		body = lipgloss.NewStyle().Width(w - 4).PaddingLeft(2).Render(body)
	}
	m.viewport.SetContent(body)
}

// HintText returns the raw hint string for the detail view.
func (m DetailModel) HintText() string {
	return fmt.Sprintf("j/k:scroll  esc:back  ?:help  q:quit  %3.f%%", m.viewport.ScrollPercent()*100)
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "backspace", "h":
			return m, messages.SwitchView(messages.ViewCatalog)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailModel) renderHeader() string {
	lines := []string{titleStyle.Render(m.doc.Title)}
	if m.doc.Description != "" {
		lines = append(lines, "  "+leadStyle.Render(m.doc.Description))
	}

	var meta []string
	if d := m.doc.DisplayDate(); d != "" {
		meta = append(meta, mutedStyle.Render(d))
	}
	if badges := renderBadges(view.BadgesFor(m.doc.Entry), nil); badges != "" {
		meta = append(meta, badges)
	}
	if m.doc.CoverImage != "" {
		meta = append(meta, mutedStyle.Render("cover: "+m.doc.CoverImage))
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+strings.Join(meta, "  "))
	}

	return strings.Join(append(lines, ""), "\n")
}

func (m DetailModel) View() string {
	return m.renderHeader() + "\n" + m.viewport.View()
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"templatehub/internal/catalog"
	"templatehub/internal/logs"
	"templatehub/internal/tui/shared"
	templatesview "templatehub/internal/tui/templates"
)

// AppModel is the root model that dispatches to child views
type AppModel struct {
	store        *catalog.Store
	cat          *catalog.Catalog
	currentView  ViewType
	catalogView  templatesview.CatalogModel
	detailView   templatesview.DetailModel
	detailLoaded bool // true when detailView holds a document
	status       string
	showHelp     bool
	width        int
	height       int
	ready        bool
}

// NewAppModel creates the root application model. The catalog is loaded
// right away; a load error shows the content unavailable state.
func NewAppModel(store *catalog.Store) AppModel {
	m := AppModel{
		store:       store,
		currentView: ViewCatalog,
		catalogView: templatesview.NewCatalogModel(nil),
	}

	cat, err := store.Get()
	m.applyLoad(cat, err)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) applyLoad(cat *catalog.Catalog, err error) {
	if err != nil {
		logs.Logger.Error("failed to load catalog", "root", m.store.Root(), "error", err)
		m.cat = nil
		m.catalogView.SetError(err)
		m.status = "content unavailable"
		return
	}

	m.cat = cat
	m.catalogView.SetEntries(cat.Entries())
	m.status = fmt.Sprintf("%d templates", cat.Len())
	if n := len(cat.Skipped()); n > 0 {
		m.status += fmt.Sprintf(", %d skipped", n)
	}
}

func (m AppModel) reload() tea.Msg {
	cat, err := m.store.Reload()
	return CatalogLoadedMsg{Catalog: cat, Err: err}
}

func (m AppModel) contentHeight() int {
	return m.height - 3 // Reserve space for status bar
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.catalogView.SetSize(msg.Width, m.contentHeight())
		if m.detailLoaded {
			m.detailView.SetSize(msg.Width, m.contentHeight())
		}
		return m, nil

	case OpenTemplateMsg:
		if m.cat == nil {
			return m, nil
		}
		doc, err := m.cat.Resolve(msg.Slug)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.detailView = templatesview.NewDetailModel(doc)
		m.detailView.SetSize(m.width, m.contentHeight())
		m.detailLoaded = true
		m.currentView = ViewDetail
		return m, nil

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, nil

	case ReloadMsg:
		m.status = "reloading..."
		return m, m.reload

	case CatalogLoadedMsg:
		m.applyLoad(msg.Catalog, msg.Err)
		// The open document may be gone after a reload
		if m.currentView == ViewDetail {
			if m.cat == nil {
				m.currentView = ViewCatalog
			} else if doc, err := m.cat.Resolve(m.detailView.Slug()); err != nil {
				m.currentView = ViewCatalog
			} else {
				m.detailView = templatesview.NewDetailModel(doc)
				m.detailView.SetSize(m.width, m.contentHeight())
			}
		}
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !(m.currentView == ViewCatalog && m.catalogView.IsTyping()) {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "r":
				return m, Reload
			}
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewCatalog:
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd
	case ViewDetail:
		if m.detailLoaded {
			m.detailView, cmd = m.detailView.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(helpSections, m.width, m.height)
	}

	var content, hints string
	switch m.currentView {
	case ViewDetail:
		content = m.detailView.View()
		hints = m.detailView.HintText()
	default:
		content = m.catalogView.View()
		hints = m.catalogView.HintText()
	}

	statusText := hints
	if m.status != "" {
		statusText = m.status + " | " + hints
	}

	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render(statusText),
	)

	content = lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Templates Hub - Keyboard Shortcuts",
	},
	{
		Title: "Catalog",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Navigate templates"},
			{Key: "g / G", Desc: "First / last template"},
			{Key: "1 - 9", Desc: "Toggle the n-th tag filter"},
			{Key: "c", Desc: "Clear filters and search"},
			{Key: "/", Desc: "Search titles"},
			{Key: "esc", Desc: "Clear search"},
			{Key: "enter", Desc: "Open template"},
		},
	},
	{
		Title: "Template",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Scroll"},
			{Key: "pgup / pgdown", Desc: "Page up / down"},
			{Key: "esc", Desc: "Back to catalog"},
		},
	},
	{
		Title: "Global",
		Binds: []shared.HelpBind{
			{Key: "r", Desc: "Reload content"},
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
}

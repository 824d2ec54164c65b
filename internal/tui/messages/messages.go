package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"templatehub/internal/catalog"
)

// ViewType represents the different views in the application
type ViewType int

const (
	ViewCatalog ViewType = iota
	ViewDetail
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// OpenTemplateMsg requests the detail view for a slug
type OpenTemplateMsg struct {
	Slug string
}

// ReloadMsg asks the app to drop the cached catalog and load it again
type ReloadMsg struct{}

// CatalogLoadedMsg carries the result of a (re)load
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

func OpenTemplate(slug string) tea.Cmd {
	return func() tea.Msg {
		return OpenTemplateMsg{Slug: slug}
	}
}

func Reload() tea.Msg {
	return ReloadMsg{}
}

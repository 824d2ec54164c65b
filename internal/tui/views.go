package tui

import "templatehub/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewCatalog = messages.ViewCatalog
	ViewDetail  = messages.ViewDetail
)

type SwitchViewMsg = messages.SwitchViewMsg
type OpenTemplateMsg = messages.OpenTemplateMsg
type ReloadMsg = messages.ReloadMsg
type CatalogLoadedMsg = messages.CatalogLoadedMsg

// Reload is the command that requests a content reload.
var Reload = messages.Reload

// Package tags holds the compiled-in tag registry. The registry is closed:
// nothing registers or mutates tags at runtime.
package tags

// Tag is a static category label usable to filter catalog entries.
type Tag struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"` // style reference, e.g. "blue"
	Description string `json:"description,omitempty"`
}

// Class returns the CSS class used to style the tag badge.
func (t Tag) Class() string {
	return "tag-" + t.Color
}

// registry is an array so callers can only ever see copies.
var registry = [...]Tag{
	{ID: "ts", Label: "TypeScript", Color: "blue", Description: "Built with TypeScript"},
	{ID: "dev-edition", Label: "Dev Edition", Color: "purple", Description: "Developer focused templates"},
	{ID: "beginner", Label: "Beginner", Color: "green", Description: "Perfect for beginners"},
	{ID: "fullstack", Label: "Full Stack", Color: "orange", Description: "Complete full-stack solutions"},
	{ID: "open-source", Label: "Open Source", Color: "gray", Description: "Open source projects"},
	{ID: "ai", Label: "AI/ML", Color: "pink", Description: "AI and Machine Learning templates"},
}

// All returns every registered tag in registry order.
func All() []Tag {
	out := make([]Tag, len(registry))
	copy(out, registry[:])
	return out
}

// Lookup returns the tag with the given id. The boolean is false when the id
// is not registered.
func Lookup(id string) (Tag, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return Tag{}, false
}

// Known reports whether id is a registered tag id.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Resolve maps ids to their registered tags, preserving the order of ids and
// silently dropping unknown ones.
func Resolve(ids []string) []Tag {
	var out []Tag
	for _, id := range ids {
		if t, ok := Lookup(id); ok {
			out = append(out, t)
		}
	}
	return out
}

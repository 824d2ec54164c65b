package shared

import "strings"

// CenterContent renders content vertically centered in the available height.
func CenterContent(content string, height int) string {
	content = strings.TrimRight(content, "\n")
	if height <= 0 {
		return content
	}

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}
	if len(contentLines) >= height {
		return content
	}

	lines := make([]string, (height-len(contentLines))/2, height)
	lines = append(lines, contentLines...)
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

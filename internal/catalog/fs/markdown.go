package fs

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// maxSummaryRunes bounds descriptions derived from the first paragraph
const maxSummaryRunes = 200

// markdown renders template bodies. Raw HTML is left out of the output, so
// rendered bodies are safe to embed in pages.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// renderedBody is a parsed markdown body
type renderedBody struct {
	title   string // first H1
	summary string // first paragraph, truncated
	html    string
}

// renderBody parses the markdown source once, extracts the first H1 and
// paragraph and renders it to HTML
func renderBody(source []byte) (renderedBody, error) {
	doc := markdown.Parser().Parse(text.NewReader(source))

	out := renderedBody{
		title:   extractTitle(doc, source),
		summary: extractSummary(doc, source),
	}

	var buf bytes.Buffer
	if err := markdown.Renderer().Render(&buf, source, doc); err != nil {
		return renderedBody{}, err
	}
	out.html = buf.String()

	return out, nil
}

func extractTitle(doc ast.Node, source []byte) string {
	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			heading := n.(*ast.Heading)
			if heading.Level == 1 {
				title = strings.TrimSpace(string(n.Text(source)))
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return title
}

func extractSummary(doc ast.Node, source []byte) string {
	var summary string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindHeading, ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			if s := strings.TrimSpace(string(n.Text(source))); s != "" {
				summary = s
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return truncateRunes(summary, maxSummaryRunes)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}

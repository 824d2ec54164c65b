package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"templatehub/internal/catalog/models"
	"templatehub/internal/config"
	"templatehub/internal/tags"
	"templatehub/internal/view"
)

// tagList collects repeated -tag flags. Comma separated values are split.
type tagList []string

func (t *tagList) String() string { return strings.Join(*t, ",") }

func (t *tagList) Set(v string) error {
	*t = append(*t, config.ParseCommaSeparated(v)...)
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func runList(args []string, env Env) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(env.stderr())
	var selected tagList
	fs.Var(&selected, "tag", "Only show templates carrying this tag id (repeatable)")
	query := fs.String("q", "", "Fuzzy match titles")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cat, err := env.Store.Get()
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	for _, id := range selected {
		if !tags.Known(id) {
			fmt.Fprintf(env.stderr(), "Warning: ignoring unknown tag %q\n", id)
		}
	}

	m := view.New(cat.Entries())
	m.ApplySelection(selected)
	m.SetQuery(*query)
	visible := m.VisibleEntries()

	out := env.stdout()
	if *asJSON {
		if visible == nil {
			visible = []models.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(visible); err != nil {
			fmt.Fprintf(env.stderr(), "Error: %v\n", err)
			return 1
		}
		return 0
	}

	switch m.State() {
	case view.StateEmpty:
		fmt.Fprintln(out, "No templates yet")
		return 0
	case view.StateNoMatches:
		fmt.Fprintln(out, "No templates match these filters")
		return 0
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SLUG", "TITLE", "TAGS", "DATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, e := range visible {
		t.Row(e.Slug, e.Title, badgeLabels(e), e.DisplayDate())
	}
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "Showing %d of %d\n", len(visible), len(m.Entries()))
	return 0
}

func badgeLabels(e models.Entry) string {
	var labels []string
	for _, t := range view.BadgesFor(e) {
		labels = append(labels, t.Label)
	}
	return strings.Join(labels, ", ")
}

func runShow(args []string, env Env) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(env.stderr())
	asHTML := fs.Bool("html", false, "Print the rendered HTML body")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(env.stderr(), "Usage: templatehub show [-html] <slug>")
		return 1
	}

	cat, err := env.Store.Get()
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	doc, err := cat.Resolve(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	printDocument(env.stdout(), doc, *asHTML)
	return 0
}

func printDocument(w io.Writer, doc models.Document, asHTML bool) {
	fmt.Fprintln(w, doc.Title)
	fmt.Fprintln(w, doc.Description)
	if d := doc.DisplayDate(); d != "" {
		fmt.Fprintf(w, "Date: %s\n", d)
	}
	if labels := badgeLabels(doc.Entry); labels != "" {
		fmt.Fprintf(w, "Tags: %s\n", labels)
	}
	if doc.CoverImage != "" {
		fmt.Fprintf(w, "Cover: %s\n", doc.CoverImage)
	}
	fmt.Fprintln(w)
	if asHTML {
		fmt.Fprintln(w, doc.HTML)
	} else {
		fmt.Fprintln(w, doc.Body)
	}
}

func runTags(env Env) int {
	cat, err := env.Store.Get()
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	counts := make(map[string]int)
	for _, e := range cat.Entries() {
		for _, id := range e.Tags {
			counts[id]++
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "LABEL", "TEMPLATES", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, tag := range tags.All() {
		t.Row(tag.ID, tag.Label, strconv.Itoa(counts[tag.ID]), tag.Description)
	}
	fmt.Fprintln(env.stdout(), t.Render())
	return 0
}

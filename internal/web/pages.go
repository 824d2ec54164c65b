package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"templatehub/internal/catalog"
	"templatehub/internal/catalog/models"
	"templatehub/internal/errors"
	"templatehub/internal/tags"
	"templatehub/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var pageNames = []string{"catalog.html", "detail.html", "about.html", "error.html"}

type pageSet struct {
	byName map[string]*template.Template
}

func loadPages() (*pageSet, error) {
	funcs := template.FuncMap{
		"catalogURL": catalogURL,
	}

	ps := &pageSet{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		ps.byName[name] = t
	}
	return ps, nil
}

func assetHandler() http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// catalogURL builds the catalog link for a tag selection.
func catalogURL(selected []string, query string) string {
	v := url.Values{}
	for _, id := range selected {
		v.Add("tag", id)
	}
	if query != "" {
		v.Set("q", query)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

type layoutData struct {
	Title string
	Nav   string
}

type badge struct {
	tags.Tag
	Href     string
	Selected bool
}

type card struct {
	models.Entry
	Badges []badge
}

type catalogPage struct {
	layoutData
	State      string
	Cards      []card
	Filter     []badge
	ShowFilter bool
	HasActive  bool
	Selected   []string
	Query      string
	Total      int
	ClearHref  string
}

type detailPage struct {
	layoutData
	Doc    models.Document
	Badges []badge
	Body   template.HTML
}

type errorPage struct {
	layoutData
	Status  int
	Heading string
	Message string
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := s.pages.byName[name]
	if !ok {
		s.logger.Error("unknown page template", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("failed to render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the page matching the error's code.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	page := errorPage{Status: code.HTTPStatus()}

	switch code {
	case errors.CodeNotFound:
		page.Title = "Not found"
		page.Heading = "Page not found"
		page.Message = "There is nothing at this address."
	case errors.CodeContentUnavailable:
		s.logger.Error("content unavailable", "error", err)
		page.Title = "Content unavailable"
		page.Heading = "Content unavailable"
		page.Message = "The template catalog could not be read. Please try again later."
	default:
		s.logger.Error("request failed", "error", err)
		page.Title = "Error"
		page.Heading = "Something went wrong"
		page.Message = "The page could not be rendered."
	}

	s.render(w, page.Status, "error.html", page)
}

// modelFor builds a view over the catalog with the selection and query from
// the request. ?clear=1 ignores both.
func modelFor(cat *catalog.Catalog, r *http.Request) *view.Model {
	m := view.New(cat.Entries())
	q := r.URL.Query()
	if q.Get("clear") != "" {
		return m
	}
	m.ApplySelection(q["tag"])
	m.SetQuery(strings.TrimSpace(q.Get("q")))
	return m
}

func badgesFor(m *view.Model, ts []tags.Tag) []badge {
	out := make([]badge, len(ts))
	for i, t := range ts {
		out[i] = badge{
			Tag:      t,
			Href:     catalogURL(m.ToggledSelection(t.ID), m.Query()),
			Selected: m.IsSelected(t.ID),
		}
	}
	return out
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Get()
	if err != nil {
		s.renderError(w, err)
		return
	}

	m := modelFor(cat, r)
	visible := m.VisibleEntries()

	cards := make([]card, len(visible))
	for i, e := range visible {
		cards[i] = card{Entry: e, Badges: badgesFor(m, view.BadgesFor(e))}
	}

	s.render(w, http.StatusOK, "catalog.html", catalogPage{
		layoutData: layoutData{Title: "Templates", Nav: "catalog"},
		State:      m.State().String(),
		Cards:      cards,
		Filter:     badgesFor(m, m.AvailableTags()),
		ShowFilter: m.ShowFilter(),
		HasActive:  m.HasActiveFilters(),
		Selected:   m.SelectedTags(),
		Query:      m.Query(),
		Total:      len(m.Entries()),
		ClearHref:  "/",
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Get()
	if err != nil {
		s.renderError(w, err)
		return
	}

	doc, err := cat.Resolve(chi.URLParam(r, "slug"))
	if err != nil {
		s.renderError(w, err)
		return
	}

	m := view.New(cat.Entries())
	s.render(w, http.StatusOK, "detail.html", detailPage{
		layoutData: layoutData{Title: doc.Title, Nav: "catalog"},
		Doc:        doc,
		Badges:     badgesFor(m, view.BadgesFor(doc.Entry)),
		// goldmark omits raw HTML from the source, so the output is safe to embed
		Body: template.HTML(doc.HTML),
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "about.html", struct {
		layoutData
		Tags []tags.Tag
	}{
		layoutData: layoutData{Title: "About", Nav: "about"},
		Tags:       tags.All(),
	})
}

// handleFallback serves files from the public directory, or the 404 page.
func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if s.publicDir != "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		name := path.Clean("/" + r.URL.Path)
		f, err := http.Dir(s.publicDir).Open(name)
		if err == nil {
			defer f.Close()
			if info, err := f.Stat(); err == nil && !info.IsDir() {
				http.ServeContent(w, r, info.Name(), info.ModTime(), f)
				return
			}
		} else if !os.IsNotExist(err) {
			s.logger.Warn("failed to open public file", "path", name, "error", err)
		}
	}

	s.renderError(w, errors.NotFoundf("no route for %s", r.URL.Path))
}

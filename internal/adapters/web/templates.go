package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "join", "login", "ships_index", "ship_new", "ship_detail", "error"}

// formData carries submitted values and per-field errors back to a form
type formData struct {
	Email      string
	Name       string
	RedirectTo string
	Errors     map[string]string
}

type pageData struct {
	Title        string
	User         *user.User
	Ships        []*ship.Ship
	ActiveShipID string
	Ship         *ship.Ship
	Frame        starfield.Frame
	Form         formData
	Message      string
}

// parseTemplates builds one template set per page, each a clone of the shared layout
func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("layout").ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+page+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		set[page] = t
	}
	return set, nil
}

// render executes into a buffer first so a template error never leaves a half-written page
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	t, ok := s.templates[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.serverError(w, r, fmt.Errorf("failed to render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

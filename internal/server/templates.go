package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/section"
	"github.com/Zachkp/folio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// loadTemplates parses the embedded templates and checks that every
// registered section has a "section-<id>" template.
func loadTemplates(sections []section.Section) (*template.Template, error) {
	var tmpl *template.Template
	funcs := template.FuncMap{
		"markdown":      render.Markdown,
		"categoryLabel": render.CategoryLabel,
		"firstName":     render.FirstName,
		"initials":      render.Initials,
		"join":          strings.Join,
		"isActive":      func(active, id string) bool { return active == id },
		"renderSection": func(id string, data any) (template.HTML, error) {
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, sectionTemplate(id), data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	for _, s := range sections {
		if tmpl.Lookup(sectionTemplate(s.ID)) == nil {
			return nil, fmt.Errorf("no template for section %q", s.ID)
		}
	}
	return tmpl, nil
}

func sectionTemplate(id string) string {
	return "section-" + id
}

type skillGroup struct {
	Key   string
	Label string
	Items []string
}

// page is the data every public template renders from.
type page struct {
	store.Snapshot
	Sections []section.Section
	First    string
	Active   string
	Skills   []skillGroup
	Year     int
}

// page combines the shared content with the reader's view.
func (s *Server) page(v *store.View) page {
	snap := s.store.Snapshot()
	snap.ActiveSection = v.ActiveSection()
	snap.Theme = v.Theme()
	p := page{
		Snapshot: snap,
		Sections: s.registry.Sections(),
		First:    s.registry.First().ID,
		Active:   snap.ActiveSection,
		Year:     time.Now().Year(),
	}
	for _, k := range snap.Content.SkillCategories() {
		p.Skills = append(p.Skills, skillGroup{
			Key:   k,
			Label: render.CategoryLabel(k),
			Items: snap.Content.Skills[k],
		})
	}
	return p
}

package presentation

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "page"

// PanelStatus is the loading indicator and unavailable banner region.
const PanelStatus usecase.Panel = "status"

// PageView is the data handed to the full page template.
type PageView struct {
	Lang     Language
	Nav      []NavItem
	Snapshot Snapshot
}

func NewPageView(lang Language, snap Snapshot) PageView {
	return PageView{Lang: lang, Nav: Navigation(lang), Snapshot: snap}
}

type Renderer struct {
	templates *template.Template
}

var scriptSafeJSON = strings.NewReplacer("<", `\u003c`, ">", `\u003e`, "&", `\u0026`)

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		// chartConfig inlines a renderer config into a JSON script block.
		// Markup characters can only occur inside JSON strings, where the
		// unicode escapes decode to the same text.
		"chartConfig": func(raw json.RawMessage) template.JS {
			return template.JS(scriptSafeJSON.Replace(string(raw)))
		},
		"visible": func(snap Snapshot, panel string) bool {
			return snap.Visible(panel)
		},
	}

	t, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) RenderPage(w io.Writer, view PageView) error {
	if err := r.templates.ExecuteTemplate(w, pageTemplate, view); err != nil {
		return errors.Wrap(err, "render page")
	}
	return nil
}

// RenderPanel renders one panel fragment. Unknown panels are rejected with
// usecase.ErrInvalidInput.
func (r *Renderer) RenderPanel(w io.Writer, panel usecase.Panel, snap Snapshot) error {
	if !KnownPanel(panel) {
		return errors.Wrapf(usecase.ErrInvalidInput, "unknown panel %q", panel)
	}
	if err := r.templates.ExecuteTemplate(w, string(panel), snap); err != nil {
		return errors.Wrapf(err, "render panel %s", panel)
	}
	return nil
}

// KnownPanel reports whether panel names a fragment RenderPanel can render.
func KnownPanel(panel usecase.Panel) bool {
	if panel == PanelStatus {
		return true
	}
	for _, p := range allPanels {
		if p == panel {
			return true
		}
	}
	return false
}

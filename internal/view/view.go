// Package view renders the HTML pages.  Templates are embedded so the
// binary is self-contained; each page file is a full document built from
// the shared head/foot partials in layout.html.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Renderer satisfies echo.Renderer over the embedded template set.
type Renderer struct {
	t *template.Template
}

// NewRenderer parses the embedded templates.  A parse failure is a build
// defect, so callers treat the error as fatal.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Render implements echo.Renderer; name is the page template's file name.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

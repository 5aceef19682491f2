// Package render turns view names into HTML using the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

const IndexView = "index.html"

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named view into w. Output is buffered so a template
// error never leaves a half written page behind.
func (r *Renderer) Render(w io.Writer, view string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, view, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Package render owns the HTML template environment used to produce pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"

	"github.com/starford/pinmap/internal/apperr"
	"github.com/starford/pinmap/internal/models"
	"github.com/starford/pinmap/internal/pins"
)

// Template file patterns loaded from the templates directory.
var patterns = []string{"*.html", "partials/*.html"}

// PinPage is the context passed to the pin detail template.
type PinPage struct {
	Pin models.Pin
}

// IndexPage is the context passed to the index template. PinsJSON is the
// serialized array of pin records, trusted for inlining in a script element.
type IndexPage struct {
	Pins     []models.Pin
	PinsJSON template.JS
}

// Environment holds the parsed template set. It is built once per build and
// passed to whatever renders pages.
type Environment struct {
	dir   string
	tmpls *template.Template
}

// funcs are the helpers available to every template.
var funcs = template.FuncMap{
	"pinURL": pins.URL,
}

// New parses the templates found in dir. Templates are addressed by their
// path relative to dir, e.g. "index.html" or "partials/head.html".
func New(dir string) (*Environment, error) {
	return NewFS(dir, os.DirFS(dir))
}

// NewFS is New over an arbitrary file system; name is used in messages.
func NewFS(name string, fsys fs.FS) (*Environment, error) {
	root := template.New("").Funcs(funcs).Option("missingkey=error")
	found := 0
	for _, pattern := range patterns {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("render: glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			data, err := fs.ReadFile(fsys, m)
			if err != nil {
				return nil, fmt.Errorf("render: read %s: %w", m, err)
			}
			if _, err := root.New(m).Parse(string(data)); err != nil {
				return nil, fmt.Errorf("render: parse %s: %w", m, err)
			}
			found++
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("render: no templates in %s: %w", name, apperr.ErrTemplateNotFound)
	}
	return &Environment{dir: name, tmpls: root}, nil
}

// Has reports whether a template called name was loaded.
func (e *Environment) Has(name string) bool {
	return e.tmpls.Lookup(name) != nil
}

// Render executes the named template with data and returns the output.
func (e *Environment) Render(name string, data any) ([]byte, error) {
	tmpl := e.tmpls.Lookup(name)
	if tmpl == nil {
		return nil, fmt.Errorf("render: %s in %s: %w", name, e.dir, apperr.ErrTemplateNotFound)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

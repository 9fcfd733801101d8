// Package testutil provides shared test helpers for laying out site sources.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// PinTemplate is a minimal pin detail template.
const PinTemplate = `<!doctype html>
<title>{{.Pin.Title}}</title>
<h1>{{.Pin.Title}}</h1>
<p class="description">{{.Pin.Description}}</p>
<p class="coords">{{.Pin.Lat}},{{.Pin.Lon}}</p>
{{if .Pin.HasPopupImage}}<img src="{{.Pin.PopupImage}}">{{end}}
<article>{{.Pin.BodyHTML}}</article>
`

// IndexTemplate is a minimal index template embedding the pin payload.
const IndexTemplate = `<!doctype html>
<ul>{{range .Pins}}<li><a href="{{pinURL .Slug}}">{{.Title}}</a></li>{{end}}</ul>
<script id="pins">window.PINS = {{.PinsJSON}};</script>
`

// Site is a temporary source tree with pins, templates, and static dirs.
type Site struct {
	Root      string
	Pins      string
	Templates string
	Static    string
	Output    string
}

// NewSite creates a site source tree with the default templates and empty
// pins and static directories.
func NewSite(t *testing.T) *Site {
	t.Helper()
	root := t.TempDir()
	s := &Site{
		Root:      root,
		Pins:      filepath.Join(root, "pins"),
		Templates: filepath.Join(root, "templates"),
		Static:    filepath.Join(root, "static"),
		Output:    filepath.Join(root, "serve"),
	}
	for _, dir := range []string{s.Pins, s.Templates, s.Static} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	s.WriteTemplate(t, "pin_article.html", PinTemplate)
	s.WriteTemplate(t, "index.html", IndexTemplate)
	return s
}

// WritePin writes a pin source file named name into the pins directory.
func (s *Site) WritePin(t *testing.T, name, content string) {
	t.Helper()
	WriteFile(t, filepath.Join(s.Pins, name), content)
}

// WriteTemplate writes a template into the templates directory.
func (s *Site) WriteTemplate(t *testing.T, name, content string) {
	t.Helper()
	WriteFile(t, filepath.Join(s.Templates, name), content)
}

// WriteStatic writes an asset at rel under the static directory.
func (s *Site) WriteStatic(t *testing.T, rel, content string) {
	t.Helper()
	WriteFile(t, filepath.Join(s.Static, filepath.FromSlash(rel)), content)
}

// PinSource returns front matter markdown for a pin with the given fields.
// An empty popup omits the popup_image attribute.
func PinSource(title, description, lat, lon, popup, body string) string {
	src := "---\ntitle: " + title + "\ndescription: " + description + "\nlat: " + lat + "\nlon: " + lon + "\n"
	if popup != "" {
		src += "popup_image: " + popup + "\n"
	}
	return src + "---\n" + body
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

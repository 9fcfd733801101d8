// Package pins converts parsed source files into pins and projects pins into
// the JSON records embedded in the index page.
package pins

import (
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	"github.com/starford/pinmap/internal/apperr"
	"github.com/starford/pinmap/internal/markdown"
	"github.com/starford/pinmap/internal/models"
	"github.com/starford/pinmap/internal/parser"
)

// Front matter keys.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyLat         = "lat"
	KeyLon         = "lon"
	KeyPopupImage  = "popup_image"
)

// FieldError reports a front matter attribute that is absent or cannot be
// converted. Kind is one of the apperr sentinels and is matched by errors.Is.
type FieldError struct {
	Path  string
	Field string
	Kind  error
	Err   error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("pins: %s: %s: %v", e.Path, e.Field, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *FieldError) Is(target error) bool {
	return target == e.Kind
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Converter renders a Markdown body to HTML.
type Converter interface {
	Convert(src []byte) ([]byte, error)
}

var _ Converter = (*markdown.Converter)(nil)

// Decoder builds pins from source files.
type Decoder struct {
	md Converter
}

// NewDecoder returns a Decoder that renders bodies with md.
func NewDecoder(md Converter) *Decoder {
	return &Decoder{md: md}
}

// Slug derives the pin slug from a source path: the base name without its
// final extension. A dotfile such as ".md" has no extension and keeps its
// whole name.
func Slug(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// Ext returns the extension of a source file name, or "" for a dotfile
// without any other dot.
func Ext(path string) string {
	base := filepath.Base(path)
	return strings.TrimPrefix(base, Slug(base))
}

func validSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".."
}

// ParseFile reads and decodes the pin stored at path.
func (d *Decoder) ParseFile(path string) (models.Pin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Pin{}, fmt.Errorf("pins: read %s: %w", path, err)
	}
	return d.Decode(path, data)
}

// Decode converts raw file contents into a pin. path is used for the slug
// and for error messages only.
func (d *Decoder) Decode(path string, data []byte) (models.Pin, error) {
	slug := Slug(path)
	if !validSlug(slug) {
		return models.Pin{}, &FieldError{Path: path, Field: "slug", Kind: apperr.ErrInvalidSlug}
	}

	res, err := parser.Parse(data)
	if err != nil {
		return models.Pin{}, fmt.Errorf("pins: %s: %w", path, err)
	}

	title, err := requiredString(res, path, KeyTitle)
	if err != nil {
		return models.Pin{}, err
	}
	description, err := requiredString(res, path, KeyDescription)
	if err != nil {
		return models.Pin{}, err
	}
	lat, err := requiredFloat(res, path, KeyLat)
	if err != nil {
		return models.Pin{}, err
	}
	lon, err := requiredFloat(res, path, KeyLon)
	if err != nil {
		return models.Pin{}, err
	}

	var popup *string
	if v, ok := res.Lookup(KeyPopupImage); ok {
		s, err := cast.ToStringE(v)
		if err != nil {
			return models.Pin{}, fmt.Errorf("pins: %s: %s: %w", path, KeyPopupImage, err)
		}
		popup = &s
	}

	body, err := d.md.Convert(res.Body)
	if err != nil {
		return models.Pin{}, fmt.Errorf("pins: %s: %w", path, err)
	}

	return models.Pin{
		Slug:        slug,
		Title:       title,
		Description: description,
		Lat:         lat,
		Lon:         lon,
		BodyHTML:    template.HTML(body), //nolint:gosec // rendered by goldmark
		PopupImage:  popup,
		SourcePath:  path,
	}, nil
}

func requiredString(res *parser.Result, path, key string) (string, error) {
	v, ok := res.Lookup(key)
	if !ok {
		return "", &FieldError{Path: path, Field: key, Kind: apperr.ErrMissingField}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("pins: %s: %s: %w", path, key, err)
	}
	return s, nil
}

func requiredFloat(res *parser.Result, path, key string) (float64, error) {
	v, ok := res.Lookup(key)
	if !ok {
		return 0, &FieldError{Path: path, Field: key, Kind: apperr.ErrMissingField}
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &FieldError{Path: path, Field: key, Kind: apperr.ErrInvalidCoordinate, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FieldError{Path: path, Field: key, Kind: apperr.ErrInvalidCoordinate}
	}
	return f, nil
}

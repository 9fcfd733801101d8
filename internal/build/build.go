// Package build runs the site generation pipeline: discover pins, render
// pin pages and the index, and mirror static assets.
package build

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/starford/pinmap/internal/apperr"
	"github.com/starford/pinmap/internal/assets"
	"github.com/starford/pinmap/internal/models"
	"github.com/starford/pinmap/internal/pins"
	"github.com/starford/pinmap/internal/render"
	"github.com/starford/pinmap/internal/storage"
)

// Output layout.
const (
	IndexFile = "index.html"
	PinsDir   = "pins"
	StaticDir = "static"
	PinExt    = ".md"
)

// Renderer produces HTML from a named template.
type Renderer interface {
	Has(name string) bool
	Render(name string, data any) ([]byte, error)
}

var _ Renderer = (*render.Environment)(nil)

// PinSource decodes pin source files.
type PinSource interface {
	ParseFile(path string) (models.Pin, error)
}

var _ PinSource = (*pins.Decoder)(nil)

// Paths locates the build inputs.
type Paths struct {
	Pins   string
	Static string
	Output string
}

// Report summarizes a finished build.
type Report struct {
	Output   string
	Pins     int
	Assets   int
	Duration time.Duration
}

// Builder runs one build per call to Run.
type Builder struct {
	paths         Paths
	pinTemplate   string
	indexTemplate string
	renderer      Renderer
	source        PinSource
	logger        *slog.Logger
}

// NewBuilder creates a Builder. A renderer and a pin source are required.
func NewBuilder(paths Paths, opts ...Option) (*Builder, error) {
	b := &Builder{
		paths:         paths,
		pinTemplate:   "pin_article.html",
		indexTemplate: "index.html",
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil {
		return nil, errors.New("build: renderer is required")
	}
	if b.source == nil {
		return nil, errors.New("build: pin source is required")
	}
	if paths.Output == "" {
		return nil, errors.New("build: output directory is required")
	}
	return b, nil
}

// Run executes the pipeline. It stops at the first error; output written
// before the failure is left in place.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	for _, name := range []string{b.pinTemplate, b.indexTemplate} {
		if !b.renderer.Has(name) {
			return nil, fmt.Errorf("build: %s: %w", name, apperr.ErrTemplateNotFound)
		}
	}

	out, err := storage.NewFS(b.paths.Output)
	if err != nil {
		return nil, fmt.Errorf("build: prepare output: %w", err)
	}

	sources, err := DiscoverPins(b.paths.Pins)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("build: discovered pins", slog.String("path", b.paths.Pins), slog.Int("count", len(sources)))

	all := make([]models.Pin, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pin, err := b.source.ParseFile(src)
		if err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
		all = append(all, pin)
	}

	for _, pin := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.writePinPage(out, pin); err != nil {
			return nil, err
		}
	}

	if err := b.writeIndex(out, all); err != nil {
		return nil, err
	}

	copied, err := assets.Copy(ctx, b.paths.Static, out, StaticDir, b.logger)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	report := &Report{
		Output:   out.Root(),
		Pins:     len(all),
		Assets:   copied,
		Duration: time.Since(start),
	}
	b.logger.Info("build: completed",
		slog.String("output", report.Output),
		slog.Int("pins", report.Pins),
		slog.Int("assets", report.Assets),
		slog.Duration("duration", report.Duration))
	return report, nil
}

// PinPagePath returns the output path of the page for slug.
func PinPagePath(slug string) string {
	return path.Join(PinsDir, slug, IndexFile)
}

func (b *Builder) writePinPage(out storage.Provider, pin models.Pin) error {
	html, err := b.renderer.Render(b.pinTemplate, render.PinPage{Pin: pin})
	if err != nil {
		return fmt.Errorf("build: pin %s: %w", pin.Slug, err)
	}
	target := PinPagePath(pin.Slug)
	if err := out.Write(target, html); err != nil {
		return fmt.Errorf("build: pin %s: %w", pin.Slug, err)
	}
	b.logger.Debug("build: wrote pin page", slog.String("pin", pin.Slug), slog.String("path", target))
	return nil
}

func (b *Builder) writeIndex(out storage.Provider, all []models.Pin) error {
	payload, err := pins.MarshalRecords(all)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	html, err := b.renderer.Render(b.indexTemplate, render.IndexPage{
		Pins:     all,
		PinsJSON: template.JS(payload), //nolint:gosec // produced by encoding/json
	})
	if err != nil {
		return fmt.Errorf("build: index: %w", err)
	}
	if err := out.Write(IndexFile, html); err != nil {
		return fmt.Errorf("build: index: %w", err)
	}
	return nil
}

// DiscoverPins lists the pin source files directly inside dir, sorted by
// file name. A missing dir yields no pins; any other error is returned.
func DiscoverPins(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("build: read pins dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || pins.Ext(e.Name()) != PinExt {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

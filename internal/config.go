package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/pinmap/internal/markdown"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Site      SiteConfig        `yaml:"site"`
	Templates TemplatesConfig   `yaml:"templates"`
	Markdown  MarkdownConfig    `yaml:"markdown"`
	Watch     WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.Templates.Validate(); err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	if err := c.Markdown.Validate(); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// SiteConfig locates the build inputs and the output directory.
type SiteConfig struct {
	PinsDir      string `yaml:"pins_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`
	OutputDir    string `yaml:"output_dir"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PinsDir, validation.Required),
		validation.Field(&c.TemplatesDir, validation.Required),
		validation.Field(&c.StaticDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	)
}

// TemplatesConfig names the pin detail and index templates.
type TemplatesConfig struct {
	Pin   string `yaml:"pin"`
	Index string `yaml:"index"`
}

// Validate validates the templates configuration.
func (c *TemplatesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Pin, validation.Required),
		validation.Field(&c.Index, validation.Required),
	)
}

// MarkdownConfig controls how pin bodies are rendered.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	UnsafeHTML bool     `yaml:"unsafe_html"`
	HeadingIDs bool     `yaml:"heading_ids"`
}

// Validate validates the markdown configuration.
func (c *MarkdownConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Extensions, validation.Each(validation.By(knownExtension))),
	)
}

// Options converts the configuration to converter options.
func (c *MarkdownConfig) Options() markdown.Options {
	return markdown.Options{
		Extensions: c.Extensions,
		HardWraps:  c.HardWraps,
		UnsafeHTML: c.UnsafeHTML,
		HeadingIDs: c.HeadingIDs,
	}
}

func knownExtension(value interface{}) error {
	name, _ := value.(string)
	if !markdown.KnownExtension(name) {
		return fmt.Errorf("unknown extension %q", name)
	}
	return nil
}

// WatchConfig controls rebuild-on-change mode.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(10*time.Millisecond), validation.Max(time.Minute)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Site: SiteConfig{
			PinsDir:      "./pins",
			TemplatesDir: "./templates",
			StaticDir:    "./static",
			OutputDir:    "./serve",
		},
		Templates: TemplatesConfig{
			Pin:   "pin_article.html",
			Index: "index.html",
		},
		Markdown: MarkdownConfig{
			UnsafeHTML: true,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

package build

import "log/slog"

// Option is a functional option for configuring a Builder.
type Option func(*Builder)

// WithRenderer sets the template environment used for every page.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

// WithPinSource sets the decoder used for pin source files.
func WithPinSource(s PinSource) Option {
	return func(b *Builder) {
		b.source = s
	}
}

// WithTemplates overrides the pin and index template names. Empty values
// keep the defaults.
func WithTemplates(pin, index string) Option {
	return func(b *Builder) {
		if pin != "" {
			b.pinTemplate = pin
		}
		if index != "" {
			b.indexTemplate = index
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

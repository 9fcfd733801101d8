// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/pinmap/internal/build"
	"github.com/starford/pinmap/internal/markdown"
	"github.com/starford/pinmap/internal/pins"
	"github.com/starford/pinmap/internal/render"
	"github.com/starford/pinmap/internal/watch"
)

// Run builds the site with the given options. In watch mode it keeps
// rebuilding on source changes until ctx is cancelled or a signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("pins_dir", cfg.Site.PinsDir),
		slog.String("templates_dir", cfg.Site.TemplatesDir),
		slog.String("static_dir", cfg.Site.StaticDir),
		slog.String("output_dir", cfg.Site.OutputDir),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	decoder := pins.NewDecoder(markdown.New(cfg.Markdown.Options()))

	runBuild := func(ctx context.Context) error {
		// Templates are reloaded for every build so edits are picked up in watch mode.
		env, err := render.New(cfg.Site.TemplatesDir)
		if err != nil {
			return fmt.Errorf("init templates: %w", err)
		}
		b, err := build.NewBuilder(
			build.Paths{
				Pins:   cfg.Site.PinsDir,
				Static: cfg.Site.StaticDir,
				Output: cfg.Site.OutputDir,
			},
			build.WithRenderer(env),
			build.WithPinSource(decoder),
			build.WithTemplates(cfg.Templates.Pin, cfg.Templates.Index),
			build.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		_, err = b.Run(ctx)
		return err
	}

	if err := runBuild(ctx); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if !cfg.Watch.Enabled {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	gCtx, stop := context.WithCancel(gCtx)
	defer stop()

	// Start file watcher.
	g.Go(func() error {
		defer stop()
		roots := []string{cfg.Site.PinsDir, cfg.Site.TemplatesDir, cfg.Site.StaticDir}
		return watch.Watch(gCtx, roots, cfg.Watch.Debounce, logger, runBuild)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			stop()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watcher stopped")
	return nil
}

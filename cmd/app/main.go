package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/pinmap/internal"
	pkgconfig "github.com/starford/pinmap/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// applyFlags overrides file configuration with command-line values.
func applyFlags(cmd *cli.Command, cfg *internal.Config) error {
	if cmd.NArg() > 1 {
		return fmt.Errorf("expected at most one output directory, got %d arguments", cmd.NArg())
	}
	if out := cmd.Args().First(); out != "" {
		cfg.Site.OutputDir = out
	}
	if cmd.IsSet("pins") {
		cfg.Site.PinsDir = cmd.String("pins")
	}
	if cmd.IsSet("templates") {
		cfg.Site.TemplatesDir = cmd.String("templates")
	}
	if cmd.IsSet("static") {
		cfg.Site.StaticDir = cmd.String("static")
	}
	if cmd.IsSet("watch") {
		cfg.Watch.Enabled = cmd.Bool("watch")
	}
	if cmd.IsSet("log-level") {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "pinmap",
		Usage:     "Build a static map site from a directory of Markdown pins",
		ArgsUsage: "[output-dir]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "pinmap.yaml",
				Value:       "pinmap.yaml",
				Sources:     cli.EnvVars("PINMAP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "pins",
				Usage: "Directory containing pin Markdown files",
			},
			&cli.StringFlag{
				Name:  "templates",
				Usage: "Directory containing pin_article.html and index.html",
			},
			&cli.StringFlag{
				Name:  "static",
				Usage: "Directory of static assets to copy into the site",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Rebuild whenever pins, templates or static files change",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

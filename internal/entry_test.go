package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starford/pinmap/internal/apperr"
	"github.com/starford/pinmap/internal/testutil"
	pkgconfig "github.com/starford/pinmap/pkg/config"
)

func siteConfig(site *testutil.Site) *Config {
	cfg := NewDefaultConfig()
	cfg.Site = SiteConfig{
		PinsDir:      site.Pins,
		TemplatesDir: site.Templates,
		StaticDir:    site.Static,
		OutputDir:    site.Output,
	}
	return cfg
}

func TestRun_BuildsSite(t *testing.T) {
	site := testutil.NewSite(t)
	site.WritePin(t, "harbour.md", testutil.PinSource("Harbour", "Ferries", "59.9", "10.7", "", "<span>raw</span>\n"))
	site.WriteStatic(t, "css/site.css", "body{}")

	var logs bytes.Buffer
	err := Run(context.Background(), WithConfig(siteConfig(site)), WithLogOutput(&logs))
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(site.Output, "pins", "harbour", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "<span>raw</span>")

	_, err = os.Stat(filepath.Join(site.Output, "index.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(site.Output, "static", "css", "site.css"))
	require.NoError(t, err)

	require.Contains(t, logs.String(), `"msg":"build: completed"`)
}

func TestRun_RequiresConfig(t *testing.T) {
	require.Error(t, Run(context.Background()))
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Templates.Pin = ""
	require.Error(t, Run(context.Background(), WithConfig(cfg), WithLogOutput(&bytes.Buffer{})))
}

func TestRun_BuildErrorPropagates(t *testing.T) {
	site := testutil.NewSite(t)
	site.WritePin(t, "bad.md", "---\ntitle: Bad\n---\n")

	err := Run(context.Background(), WithConfig(siteConfig(site)), WithLogOutput(&bytes.Buffer{}))
	require.ErrorIs(t, err, apperr.ErrMissingField)
}

func TestRun_MissingTemplatesDir(t *testing.T) {
	site := testutil.NewSite(t)
	cfg := siteConfig(site)
	cfg.Site.TemplatesDir = filepath.Join(site.Root, "nope")

	err := Run(context.Background(), WithConfig(cfg), WithLogOutput(&bytes.Buffer{}))
	require.Error(t, err)
}

func TestRun_WatchStopsOnCancel(t *testing.T) {
	site := testutil.NewSite(t)
	cfg := siteConfig(site)
	cfg.Watch.Enabled = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, WithConfig(cfg), WithLogOutput(&bytes.Buffer{}))
	}()

	// Let the initial build finish before stopping the watcher.
	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop")
	}
	_, err := os.Stat(filepath.Join(site.Output, "index.html"))
	require.NoError(t, err)
}

func TestRun_ExampleSite(t *testing.T) {
	example := filepath.Join("..", "example")
	cfg := NewDefaultConfig()
	read, err := pkgconfig.LoadOptional(filepath.Join(example, "pinmap.yaml"), cfg)
	require.NoError(t, err)
	require.True(t, read)

	out := t.TempDir()
	cfg.Site = SiteConfig{
		PinsDir:      filepath.Join(example, "pins"),
		TemplatesDir: filepath.Join(example, "templates"),
		StaticDir:    filepath.Join(example, "static"),
		OutputDir:    out,
	}
	require.NoError(t, Run(context.Background(), WithConfig(cfg), WithLogOutput(&bytes.Buffer{})))

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), `"slug":"akershus-fortress"`)
	require.Contains(t, string(index), `"url":"/pins/opera-house/","popup_image":null`)

	page, err := os.ReadFile(filepath.Join(out, "pins", "akershus-fortress", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "<strong>1290s</strong>")

	_, err = os.Stat(filepath.Join(out, "static", "js", "map.js"))
	require.NoError(t, err)
}

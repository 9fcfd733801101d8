package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tempOutput(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	require.NoError(t, err)
	return fs
}

func readOut(t *testing.T, s *FS, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err, rel)
	return string(data)
}

func statOut(t *testing.T, s *FS, rel string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err, rel)
	return info
}

func TestWrite(t *testing.T) {
	s := tempOutput(t)
	require.NoError(t, s.Write("index.html", []byte("<h1>Hello</h1>\n")))

	require.Equal(t, "<h1>Hello</h1>\n", readOut(t, s, "index.html"))
	require.Equal(t, os.FileMode(0o644), statOut(t, s, "index.html").Mode().Perm())
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempOutput(t)
	require.NoError(t, s.Write("pins/harbour/index.html", []byte("deep")))

	require.Equal(t, "deep", readOut(t, s, "pins/harbour/index.html"))
}

func TestTraversalBlocked(t *testing.T) {
	s := tempOutput(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.html",
		"/etc/shadow",
	}
	for _, p := range cases {
		require.Error(t, s.CopyFile(os.Args[0], p), "copy %q", p)
		require.Error(t, s.Write(p, []byte("x")), "write %q", p)
		require.Error(t, s.MkdirAll(p), "mkdir %q", p)
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	s := tempOutput(t)
	require.NoError(t, s.Write("atomic.html", []byte("original")))
	require.NoError(t, s.Write("atomic.html", []byte("updated")))

	require.Equal(t, "updated", readOut(t, s, "atomic.html"))

	matches, _ := filepath.Glob(filepath.Join(s.Root(), tmpGlob))
	require.Empty(t, matches)
}

func TestCopyFilePreservesContentModeAndMtime(t *testing.T) {
	s := tempOutput(t)
	src := filepath.Join(t.TempDir(), "app.js")
	require.NoError(t, os.WriteFile(src, []byte("console.log(1)"), 0o600))
	mtime := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, s.CopyFile(src, "static/js/app.js"))

	require.Equal(t, "console.log(1)", readOut(t, s, "static/js/app.js"))

	info := statOut(t, s, "static/js/app.js")
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	require.True(t, info.ModTime().Equal(mtime), "mtime = %v", info.ModTime())
}

func TestCopyFileMissingSource(t *testing.T) {
	s := tempOutput(t)
	require.Error(t, s.CopyFile(filepath.Join(t.TempDir(), "nope"), "x"))
}

func TestNewFS_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	s, err := NewFS(root)
	require.NoError(t, err)
	info, err := os.Stat(s.Root())
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "pinmap-test-*")
	require.NoError(t, err)
	_ = f.Close()

	_, err = NewFS(f.Name())
	require.Error(t, err)
}

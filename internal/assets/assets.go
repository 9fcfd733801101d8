// Package assets mirrors the static source tree into the generated site.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/starford/pinmap/internal/storage"
)

// Copy walks srcDir and copies every regular file to the same relative path
// under prefix in dst. Directories are traversed but not copied as entries;
// symlinks are followed when they point at regular files. A missing srcDir
// copies nothing. It returns the number of files copied.
func Copy(ctx context.Context, srcDir string, dst storage.Provider, prefix string, logger *slog.Logger) (int, error) {
	if err := dst.MkdirAll(prefix); err != nil {
		return 0, fmt.Errorf("assets: %w", err)
	}

	if _, err := os.Stat(srcDir); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("assets: source directory missing", slog.String("path", srcDir))
		return 0, nil
	}

	copied := 0
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(p)
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		target := path.Join(prefix, filepath.ToSlash(rel))
		if err := dst.CopyFile(p, target); err != nil {
			return err
		}
		logger.Debug("assets: copied", slog.String("path", target))
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("assets: copy %s: %w", srcDir, err)
	}
	return copied, nil
}

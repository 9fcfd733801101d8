package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Tree returns a digest covering the relative path and content Sum of every
// regular file under each root. Missing roots contribute nothing.
func Tree(roots ...string) (string, error) {
	h := sha256.New()
	for _, root := range roots {
		var files []string
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if p == root && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			if d.Type().IsRegular() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("checksum: walk %s: %w", root, err)
		}
		sort.Strings(files)

		for _, p := range files {
			data, err := os.ReadFile(p)
			if err != nil {
				return "", fmt.Errorf("checksum: %w", err)
			}
			rel, _ := filepath.Rel(root, p)
			fmt.Fprintf(h, "%s\x00%s\x00%s\n", root, filepath.ToSlash(rel), Sum(data))
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Package storage defines the output-tree file-system abstraction.
package storage

// Provider is the interface for writing into the generated site tree.
// All paths are relative to the output root and use forward slashes or the
// host separator interchangeably.
type Provider interface {
	// Root returns the absolute output directory.
	Root() string
	// MkdirAll creates dir (relative to the output root) and any parents.
	MkdirAll(dir string) error
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// CopyFile copies the file at src (an arbitrary host path) to path,
	// preserving permission bits and modification time.
	CopyFile(src, path string) error
}

var _ Provider = (*FS)(nil)

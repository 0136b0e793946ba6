// Package outfs wraps the handful of filesystem operations the generator
// needs to materialise a batch onto disk: creating the output tree and
// writing text files into it, with every failure wrapped so the caller can
// report a single actionable error (grounded on the os.MkdirAll/os.WriteFile
// pattern pkg/cmd/generate.go uses for its own single-file output).
package outfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root is an output directory rooted at a fixed path; every write goes
// through it so relative paths from a generation batch never escape it.
type Root struct {
	dir string
}

// NewRoot creates dir (and any missing parents) and returns a Root rooted
// there.
func NewRoot(dir string) (Root, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Root{}, fmt.Errorf("creating output directory %q: %w", dir, err)
	}

	return Root{dir: dir}, nil
}

// Dir returns the root's absolute directory path.
func (r Root) Dir() string {
	return r.dir
}

// Join resolves a path relative to the root.
func (r Root) Join(rel string) string {
	return filepath.Join(r.dir, rel)
}

// WriteFile writes data to rel (relative to the root), creating any
// intermediate directories the relative path implies.
func (r Root) WriteFile(rel string, data []byte) error {
	full := r.Join(rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directory for %q: %w", rel, err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", rel, err)
	}

	return nil
}

package builder

import (
	"fmt"
	"os"
)

// FileInfo is the metadata a caller supplies about one project file.
// Enumerating a project's files (walking a directory tree, honoring
// ignore rules, and so on) is left entirely to the caller.
type FileInfo struct {
	Path     string
	MTime    uint64
	FileSize uint64
}

// BuildToFile packs files into a new data file at path, writing to a
// "<path>_" temp file first and renaming it into place only once every
// file has been appended and the builder closed cleanly. On any error
// the temp file is left on disk for inspection rather than deleted,
// matching the no-partial-commit error policy.
func BuildToFile(path string, files []FileInfo, opts ...Option) (Statistics, error) {
	tempPath := path + "_"

	b, err := New(tempPath, opts...)
	if err != nil {
		return Statistics{}, err
	}

	for _, f := range files {
		if err := b.AppendFile(f.Path, f.MTime, f.FileSize); err != nil {
			// A single unreadable file is reported and skipped; it does
			// not abort the whole build.
			fmt.Fprintf(os.Stderr, "qgd: %v\n", err)
		}
	}

	if err := b.Close(); err != nil {
		return b.Stats(), fmt.Errorf("builder: close %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return b.Stats(), fmt.Errorf("builder: rename %s to %s: %w", tempPath, path, err)
	}

	return b.Stats(), nil
}

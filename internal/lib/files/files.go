package files

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/quintans/faults"
)

func Exists(path ...string) bool {
	file := filepath.Join(path...)
	_, err := os.Stat(file)
	return !errors.Is(err, os.ErrNotExist)
}

// ListFiles returns the names of the regular files directly under dir.
// A missing dir has no files.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, faults.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// CreateTemp creates a hidden file next to target, so that a later rename
// stays on the same file system.
func CreateTemp(target string) (*os.File, error) {
	dir, name := filepath.Split(target)
	f, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return nil, faults.Errorf("creating temporary file for %s: %w", target, err)
	}
	return f, nil
}

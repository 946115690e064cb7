package library

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/corona10/goimagehash"
	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/lib/files"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// MaxDistance is the largest Hamming distance between two difference hashes
// for the images to be considered the same.
const MaxDistance = 6

type readImageFunc func(io.Reader) (image.Image, error)

var imageTypes = map[string]readImageFunc{
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
}

// Library tracks the file names of the storage directory. Perceptual hashes
// of the local images are computed on first use and kept per file name.
type Library struct {
	mu     sync.RWMutex
	dir    string
	names  map[string]struct{}
	hashes map[string]*goimagehash.ImageHash
}

func New() *Library {
	return &Library{
		names:  map[string]struct{}{},
		hashes: map[string]*goimagehash.ImageHash{},
	}
}

// Scan replaces the known files with the ones found in dir.
func (l *Library) Scan(dir string) error {
	names, err := files.ListFiles(dir)
	if err != nil {
		return faults.Errorf("scanning library: %w", err)
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.dir = dir
	l.names = set
	l.hashes = map[string]*goimagehash.ImageHash{}

	return nil
}

func (l *Library) Contains(filename string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.names[filename]
	return ok
}

// Add records a file written to path. Files outside the scanned directory
// are ignored and false is returned.
func (l *Library) Add(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.dir == "" || filepath.Dir(path) != filepath.Clean(l.dir) {
		return false
	}
	name := filepath.Base(path)
	l.names[name] = struct{}{}
	delete(l.hashes, name)
	return true
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.names)
}

// Similar returns the first local image, by name, whose difference hash is
// within MaxDistance of img.
func (l *Library) Similar(img image.Image) (string, bool) {
	target, err := goimagehash.DifferenceHash(img)
	if err != nil {
		slog.Warn("Failed to hash image", "error", err)
		return "", false
	}

	l.mu.RLock()
	dir := l.dir
	names := make([]string, 0, len(l.names))
	for n := range l.names {
		if _, ok := imageTypes[ext(n)]; ok {
			names = append(names, n)
		}
	}
	l.mu.RUnlock()
	slices.Sort(names)

	for _, n := range names {
		h := l.hash(dir, n)
		if h == nil {
			continue
		}
		d, err := target.Distance(h)
		if err != nil {
			continue
		}
		if d <= MaxDistance {
			return n, true
		}
	}

	return "", false
}

// hash returns nil for files that cannot be decoded. The failure is
// remembered so the file is not decoded again.
func (l *Library) hash(dir, name string) *goimagehash.ImageHash {
	l.mu.RLock()
	h, ok := l.hashes[name]
	l.mu.RUnlock()
	if ok {
		return h
	}

	h, err := hashFile(filepath.Join(dir, name))
	if err != nil {
		slog.Debug("Skipping library image", "file", name, "error", err)
	}

	l.mu.Lock()
	if l.dir == dir {
		l.hashes[name] = h
	}
	l.mu.Unlock()

	return h
}

func hashFile(path string) (*goimagehash.ImageHash, error) {
	decode, ok := imageTypes[ext(path)]
	if !ok {
		return nil, faults.Errorf("unsupported image type: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, faults.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, faults.Errorf("decoding %s: %w", path, err)
	}

	h, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil, faults.Errorf("hashing %s: %w", path, err)
	}
	return h, nil
}

func ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

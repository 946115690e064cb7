package model

import (
	"strings"
	"time"
)

// Wallpaper is one search result.
type Wallpaper struct {
	ID         string
	URL        string
	ShortURL   string
	Views      int
	Favorites  int
	Source     string
	Purity     string
	Category   string
	DimensionX int
	DimensionY int
	Resolution string
	Ratio      string
	FileSize   int64
	FileType   string
	CreatedAt  time.Time
	Colors     []string
	// Path is the url of the full size image.
	Path   string
	Thumbs Thumbs
}

type Thumbs struct {
	Large    string
	Original string
	Small    string
}

// Filename is the last segment of the full image path, which is also the
// name the file gets in the storage directory.
func (w Wallpaper) Filename() string {
	i := strings.LastIndex(w.Path, "/")
	return w.Path[i+1:]
}

type Page struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	Seed        string
}

func (p Page) HasNext() bool {
	return p.CurrentPage < p.LastPage
}

type SearchResult struct {
	Wallpapers []Wallpaper
	Page       Page
}

package app

import (
	"context"
	"image"
	"io"

	"github.com/quintans/wallfetch/internal/model"
)

// EventBus carries the download events to whoever listens for them.
type EventBus interface {
	DownloadProgress(id string, percent float64)
	DownloadFinished(id, filename string)
	DownloadFailed(id string, err error)
	DownloadCounters(counters DownloadCounters)
}

type Message interface {
	Kind() string
}

// WallpaperAPI is the remote image board.
type WallpaperAPI interface {
	Search(ctx context.Context, search *model.Search, apiKey string) (model.SearchResult, error)
	// Fetch returns the whole body of a thumbnail or full size image.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// Download streams an image into w. total is 0 when the size is unknown.
	Download(ctx context.Context, url string, w io.Writer, onProgress func(written, total int64)) error
}

// Library is the set of images already present in the storage directory.
type Library interface {
	Scan(dir string) error
	Contains(filename string) bool
	// Add records a downloaded file by its full path. It is ignored, and
	// false returned, when path is not in the scanned directory.
	Add(path string) bool
	// Similar returns the name of a local image that looks like img.
	Similar(img image.Image) (string, bool)
}

type Secrets interface {
	GetAPIKey() (string, error)
	SetAPIKey(value string) error
}

type SearchItem struct {
	Wallpaper model.Wallpaper
	Thumbnail []byte
	// Downloaded is set when the image already exists in the storage directory.
	Downloaded bool
	// SimilarTo is the local file that matched perceptually, if any.
	SimilarTo string
}

type SearchPage struct {
	Items []SearchItem
	Page  model.Page
	// Dropped counts the results whose thumbnail could not be fetched.
	Dropped int
}

type DownloadRequest struct {
	ID       string
	URL      string
	Filename string
}

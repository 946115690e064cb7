package app

import "github.com/quintans/wallfetch/internal/model"

type SearchParams struct{}

type PreviewParams struct {
	Wallpaper model.Wallpaper
	Thumbnail []byte
}

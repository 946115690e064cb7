package services

import (
	"context"

	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/model"
)

type Preview struct {
	api app.WallpaperAPI
}

func NewPreview(api app.WallpaperAPI) *Preview {
	return &Preview{api: api}
}

// Load fetches the full size image. Cancelling ctx abandons the transfer.
func (p *Preview) Load(ctx context.Context, w model.Wallpaper) ([]byte, error) {
	b, err := p.api.Fetch(ctx, w.Path)
	if err != nil {
		return nil, faults.Errorf("loading preview of %s: %w", w.ID, err)
	}
	return b, nil
}

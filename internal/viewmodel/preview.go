package viewmodel

import (
	"context"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/lib/safe"
	"github.com/quintans/wallfetch/internal/model"
)

type PreviewService interface {
	Load(ctx context.Context, w model.Wallpaper) ([]byte, error)
}

type PreviewStatus int

const (
	PreviewLoading PreviewStatus = iota
	PreviewLoaded
	PreviewFailed
	PreviewCancelled
)

// Preview shows the thumbnail of a result while its full size image loads.
type Preview struct {
	shared  *Shared
	service PreviewService
	params  app.PreviewParams
	cancel  *safe.Safe[context.CancelFunc]
	Status  *bind.Bind[PreviewStatus]
	Image   bind.Notifier[[]byte]
}

func NewPreview(shared *Shared, service PreviewService, params app.PreviewParams) *Preview {
	return &Preview{
		shared:  shared,
		service: service,
		params:  params,
		cancel:  safe.New[context.CancelFunc](nil),
		Status:  bind.New(PreviewLoading),
		Image:   bind.NewNotifier[[]byte](),
	}
}

func (p *Preview) Wallpaper() model.Wallpaper {
	return p.params.Wallpaper
}

func (p *Preview) Thumbnail() []byte {
	return p.params.Thumbnail
}

// Load blocks until the full size image arrives, fails or is cancelled.
func (p *Preview) Load() {
	ctx, cancel := context.WithCancel(context.Background())
	if old := p.cancel.Swap(cancel); old != nil {
		old()
	}
	defer cancel()

	p.Status.Set(PreviewLoading)
	b, err := p.service.Load(ctx, p.params.Wallpaper)
	if ctx.Err() != nil {
		p.Status.Set(PreviewCancelled)
		return
	}
	if err != nil {
		p.shared.Error(err, "Preview failed", "id", p.params.Wallpaper.ID)
		p.Status.Set(PreviewFailed)
		return
	}

	p.Image.Notify(b)
	p.Status.Set(PreviewLoaded)
}

// Cancel stops loading the full size image, keeping the thumbnail.
func (p *Preview) Cancel() {
	if cancel := p.cancel.Swap(nil); cancel != nil {
		cancel()
	}
}

func (p *Preview) Back() {
	p.Cancel()
	p.shared.Navigate.Back()
}

func (p *Preview) Unmount() {
	p.Cancel()
	p.Status.UnbindAll()
	p.Image.UnbindAll()
}

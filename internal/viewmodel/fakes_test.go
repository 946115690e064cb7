package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/model"
)

func newShared() (*Shared, *[]app.Notify) {
	var notes []app.Notify
	n := bind.NewNotifier[app.Notify]()
	n.Listen(func(v app.Notify) {
		notes = append(notes, v)
	})
	return &Shared{ShowNotification: n}, &notes
}

type fakeSearchService struct {
	mu      sync.Mutex
	search  *model.Search
	saves   int
	queries []string
	pages   []app.SearchPage
	current int
	err     error
}

func (f *fakeSearchService) LoadSearch() (*model.Search, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.search == nil {
		f.search = model.NewSearch()
	}
	return f.search.Clone(), nil
}

func (f *fakeSearchService) SaveSearch(search *model.Search) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search = search.Clone()
	f.saves++
	return nil
}

func (f *fakeSearchService) Search(context.Context) (app.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.search != nil {
		f.queries = append(f.queries, f.search.Encode().Encode())
	}
	if f.err != nil {
		return app.SearchPage{}, f.err
	}
	f.current = 1
	return f.pages[0], nil
}

func (f *fakeSearchService) NextPage(context.Context) (app.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current >= len(f.pages) {
		return app.SearchPage{}, errors.New("no more pages")
	}
	f.current++
	return f.pages[f.current-1], nil
}

func (f *fakeSearchService) HasNextPage() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current > 0 && f.current < len(f.pages)
}

type fakeDownloadService struct {
	reqs [][]app.DownloadRequest
	err  error
}

func (f *fakeDownloadService) Enqueue(reqs []app.DownloadRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.reqs = append(f.reqs, reqs)
	return "batch", nil
}

type fakeAppService struct {
	data model.AppData
	err  error
}

func (f *fakeAppService) LoadData() (model.AppData, error) {
	return f.data, f.err
}

func (f *fakeAppService) SetAPIKey(key string) error {
	f.data.APIKey = key
	return f.err
}

func (f *fakeAppService) SetSaveDir(dir string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.data.SaveDir = dir
	return 42, nil
}

func (f *fakeAppService) SetIgnoreDownloaded(ignore bool) error {
	f.data.IgnoreDownloaded = ignore
	return f.err
}

func (f *fakeAppService) SetMatchSimilar(match bool) error {
	f.data.MatchSimilar = match
	return f.err
}

func (f *fakeAppService) SetConcurrentDownloads(n int) error {
	if n < model.MinConcurrentDownloads || n > model.MaxConcurrentDownloads {
		return model.ErrInvalidConcurrency
	}
	f.data.ConcurrentDownloads = n
	return f.err
}

type fakePreviewService struct {
	body  []byte
	err   error
	block bool
}

func (f *fakePreviewService) Load(ctx context.Context, _ model.Wallpaper) ([]byte, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.body, f.err
}

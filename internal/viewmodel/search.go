package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/model"
)

type SearchService interface {
	LoadSearch() (*model.Search, error)
	SaveSearch(search *model.Search) error
	Search(ctx context.Context) (app.SearchPage, error)
	NextPage(ctx context.Context) (app.SearchPage, error)
	HasNextPage() bool
}

type DownloadService interface {
	Enqueue(reqs []app.DownloadRequest) (string, error)
}

// Item is a snapshot of one result as shown in the grid.
type Item struct {
	Wallpaper model.Wallpaper
	Thumbnail []byte
	SimilarTo string
	State     model.ImageState
	// Progress goes from 0 to 100 while downloading.
	Progress float64
}

type tracked struct {
	state    model.ImageState
	progress float64
}

type Search struct {
	shared   *Shared
	service  SearchService
	download DownloadService
	ignore   *bind.Bind[bool]

	mu          sync.Mutex
	search      *model.Search
	items       []*Item
	index       map[string]*Item
	tracking    map[string]tracked
	gen         int
	ctx         context.Context
	cancel      context.CancelFunc
	searching   int
	pageLoading bool

	pubMu sync.Mutex

	Query           *bind.Bind[string]
	Purity          *bind.Bind[model.Purity]
	Categories      *bind.Bind[model.Categories]
	Sorting         *bind.Bind[model.Sorting]
	TopRange        *bind.Bind[model.TopRange]
	ResolutionLabel *bind.Bind[string]
	RatioLabel      *bind.Bind[string]
	Results         bind.Notifier[[]Item]
	Summary         *bind.Bind[string]
	Downloadable    *bind.Bind[int]
	HasMore         *bind.Bind[bool]
	Busy            *bind.Bind[bool]
	Counters        *bind.Bind[app.DownloadCounters]
}

// NewSearch builds the search screen model. Results in the Downloaded state
// are hidden while ignoreDownloaded is true.
func NewSearch(shared *Shared, service SearchService, download DownloadService, ignoreDownloaded *bind.Bind[bool]) *Search {
	s := &Search{
		shared:          shared,
		service:         service,
		download:        download,
		ignore:          ignoreDownloaded,
		search:          model.NewSearch(),
		index:           map[string]*Item{},
		tracking:        map[string]tracked{},
		ctx:             context.Background(),
		cancel:          func() {},
		Query:           bind.New(""),
		Purity:          bind.New(model.DefaultPurity()),
		Categories:      bind.New(model.DefaultCategories()),
		Sorting:         bind.New(model.DateAdded),
		TopRange:        bind.New(model.LastMonth),
		ResolutionLabel: bind.New(""),
		RatioLabel:      bind.New(""),
		Results:         bind.NewNotifier[[]Item](),
		Summary:         bind.New(""),
		Downloadable:    bind.New(0),
		HasMore:         bind.New(false),
		Busy:            bind.New(false),
		Counters:        bind.New(app.DownloadCounters{}),
	}

	ignoreDownloaded.Listen(func(bool) {
		s.publish()
	})

	return s
}

// Mount loads the last used search.
func (s *Search) Mount() {
	search, err := s.service.LoadSearch()
	if err != nil {
		s.shared.Error(err, "Failed to load search")
		return
	}

	s.mu.Lock()
	s.search = search
	s.mu.Unlock()

	s.Query.Set(search.Query())
	s.Purity.Set(search.Purity())
	s.Categories.Set(search.Categories())
	s.Sorting.Set(search.Sorting())
	s.TopRange.Set(search.TopRange())
	s.refreshFilterLabels()
}

func (s *Search) SetQuery(query string) {
	s.edit(func(m *model.Search) error {
		m.SetQuery(query)
		return nil
	})
	s.Query.Set(query)
}

func (s *Search) SetPurity(purity model.Purity) {
	err := s.edit(func(m *model.Search) error {
		return m.SetPurity(purity)
	})
	if err != nil {
		s.shared.Warn("Select at least one purity level")
		s.Purity.Notify(s.Purity.Get())
		return
	}
	s.Purity.Set(purity)
}

func (s *Search) SetCategories(categories model.Categories) {
	err := s.edit(func(m *model.Search) error {
		return m.SetCategories(categories)
	})
	if err != nil {
		s.shared.Warn("Select at least one category")
		s.Categories.Notify(s.Categories.Get())
		return
	}
	s.Categories.Set(categories)
}

func (s *Search) SetSorting(sorting model.Sorting) {
	s.edit(func(m *model.Search) error {
		m.SetSorting(sorting)
		return nil
	})
	s.Sorting.Set(sorting)
}

func (s *Search) SetTopRange(topRange model.TopRange) {
	s.edit(func(m *model.Search) error {
		m.SetTopRange(topRange)
		return nil
	})
	s.TopRange.Set(topRange)
}

func (s *Search) HasResolution(r model.Resolution) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.HasResolution(r)
}

func (s *Search) AtLeast() (model.Resolution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.AtLeast()
}

func (s *Search) HasRatio(r model.Resolution) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.HasRatio(r)
}

// ToggleResolution adds or removes an exact resolution, leaving the
// minimum resolution mode.
func (s *Search) ToggleResolution(r model.Resolution) {
	s.edit(func(m *model.Search) error {
		m.ToggleResolution(r)
		return nil
	})
	s.refreshFilterLabels()
}

// SetAtLeast switches to minimum resolution mode. The zero resolution
// leaves it.
func (s *Search) SetAtLeast(r model.Resolution) {
	s.edit(func(m *model.Search) error {
		m.SetAtLeast(r)
		return nil
	})
	s.refreshFilterLabels()
}

// ClearResolutions removes the exact and the minimum resolution filters.
func (s *Search) ClearResolutions() {
	s.edit(func(m *model.Search) error {
		m.SetAtLeast(model.Resolution{})
		for _, r := range m.Resolutions() {
			m.ToggleResolution(r)
		}
		return nil
	})
	s.refreshFilterLabels()
}

func (s *Search) ToggleRatio(r model.Resolution) {
	s.edit(func(m *model.Search) error {
		m.ToggleRatio(r)
		return nil
	})
	s.refreshFilterLabels()
}

func (s *Search) ClearRatios() {
	s.edit(func(m *model.Search) error {
		for _, r := range m.Ratios() {
			m.ToggleRatio(r)
		}
		return nil
	})
	s.refreshFilterLabels()
}

// edit changes the search under lock and persists it.
func (s *Search) edit(fn func(*model.Search) error) error {
	s.mu.Lock()
	err := fn(s.search)
	search := s.search.Clone()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	err = s.service.SaveSearch(search)
	if err != nil {
		s.shared.Error(err, "Failed to save search")
	}
	return nil
}

func (s *Search) refreshFilterLabels() {
	s.mu.Lock()
	atLeast, hasAtLeast := s.search.AtLeast()
	resolutions := s.search.Resolutions()
	ratios := s.search.Ratios()
	s.mu.Unlock()

	switch {
	case hasAtLeast:
		s.ResolutionLabel.Set("At least " + atLeast.String())
	default:
		s.ResolutionLabel.Set(filterLabel(resolutions, "Any resolution"))
	}
	s.RatioLabel.Set(filterLabel(ratios, "Any ratio"))
}

func filterLabel(rs []model.Resolution, none string) string {
	switch len(rs) {
	case 0:
		return none
	case 1:
		return rs[0].String()
	default:
		return fmt.Sprintf("%s +%d", rs[0], len(rs)-1)
	}
}

// Search replaces the results with the first page of a new search.
// It blocks until the page arrives.
func (s *Search) Search() {
	ctx, gen := s.restart()
	s.setBusy(1)
	defer s.setBusy(-1)

	hide := s.shared.Loading("Searching wallpapers")
	defer hide()

	page, err := s.service.Search(ctx)
	if s.stale(gen) {
		return
	}
	if err != nil {
		s.shared.Error(err, "Failed to search")
		return
	}

	s.mu.Lock()
	s.items = nil
	clear(s.index)
	s.append(page.Items)
	s.mu.Unlock()

	if len(page.Items) == 0 {
		s.shared.Info("No wallpapers found")
	}
	s.HasMore.Set(s.service.HasNextPage())
	s.publish()
}

// NextPage appends the next page of results. It does nothing if a page is
// already loading or there are no more pages.
func (s *Search) NextPage() {
	s.mu.Lock()
	if s.pageLoading || s.searching > 0 || !s.service.HasNextPage() {
		s.mu.Unlock()
		return
	}
	s.pageLoading = true
	gen := s.gen
	ctx := s.ctx
	s.mu.Unlock()

	hide := s.shared.Loading("Loading more wallpapers")
	defer hide()

	page, err := s.service.NextPage(ctx)

	s.mu.Lock()
	s.pageLoading = false
	s.mu.Unlock()

	if s.stale(gen) {
		return
	}
	if err != nil {
		s.shared.Error(err, "Failed to load next page")
		return
	}

	s.mu.Lock()
	s.append(page.Items)
	s.mu.Unlock()

	s.HasMore.Set(s.service.HasNextPage())
	s.publish()
}

func (s *Search) restart() (context.Context, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.gen++
	return s.ctx, s.gen
}

func (s *Search) stale(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}

func (s *Search) setBusy(delta int) {
	s.mu.Lock()
	s.searching += delta
	busy := s.searching > 0
	s.mu.Unlock()

	s.Busy.Set(busy)
}

// append must be called with the lock held. Results already shown are
// skipped since pages can overlap when new wallpapers are uploaded.
func (s *Search) append(results []app.SearchItem) {
	for _, r := range results {
		if _, ok := s.index[r.Wallpaper.ID]; ok {
			continue
		}

		it := &Item{
			Wallpaper: r.Wallpaper,
			Thumbnail: r.Thumbnail,
			SimilarTo: r.SimilarTo,
			State:     model.Unselected,
		}
		if r.Downloaded {
			it.State = model.Downloaded
		}
		if t, ok := s.tracking[r.Wallpaper.ID]; ok {
			it.State = t.state
			it.Progress = t.progress
		}

		s.items = append(s.items, it)
		s.index[it.Wallpaper.ID] = it
	}
}

func (s *Search) Toggle(id string) {
	s.mu.Lock()
	it, ok := s.index[id]
	if ok {
		it.State = it.State.Toggle()
	}
	s.mu.Unlock()

	if ok {
		s.publish()
	}
}

func (s *Search) SelectAll() {
	s.mu.Lock()
	for _, it := range s.items {
		it.State = it.State.Select()
	}
	s.mu.Unlock()

	s.publish()
}

func (s *Search) DeselectAll() {
	s.mu.Lock()
	for _, it := range s.items {
		it.State = it.State.Deselect()
	}
	s.mu.Unlock()

	s.publish()
}

// Download queues every selected or failed result, in display order.
func (s *Search) Download() {
	s.mu.Lock()
	var reqs []app.DownloadRequest
	previous := map[string]model.ImageState{}
	for _, it := range s.items {
		if !it.State.Downloadable() {
			continue
		}
		previous[it.Wallpaper.ID] = it.State
		it.State = model.Queued
		it.Progress = 0
		s.tracking[it.Wallpaper.ID] = tracked{state: model.Queued}
		reqs = append(reqs, app.DownloadRequest{
			ID:       it.Wallpaper.ID,
			URL:      it.Wallpaper.Path,
			Filename: it.Wallpaper.Filename(),
		})
	}
	s.mu.Unlock()

	if len(reqs) == 0 {
		s.shared.Info("Select the wallpapers to download")
		return
	}
	s.publish()

	batch, err := s.download.Enqueue(reqs)
	if err != nil {
		s.mu.Lock()
		for id, state := range previous {
			delete(s.tracking, id)
			if it, ok := s.index[id]; ok {
				it.State = state
			}
		}
		s.mu.Unlock()

		s.shared.Error(err, "Failed to queue downloads")
		s.publish()
		return
	}

	slog.Debug("Download batch queued", "batch", batch, "count", len(reqs))
}

func (s *Search) OnDownloadProgress(evt app.DownloadProgress) {
	s.update(evt.ID, func(it *tracked) {
		it.state = model.Downloading
		it.progress = evt.Percent
	})
}

func (s *Search) OnDownloadFinished(evt app.DownloadFinished) {
	s.update(evt.ID, func(it *tracked) {
		it.state = model.Downloaded
		it.progress = 100
	})
}

func (s *Search) OnDownloadFailed(evt app.DownloadFailed) {
	s.update(evt.ID, func(it *tracked) {
		it.state = model.Failed
		it.progress = 0
	})
}

func (s *Search) OnDownloadCounters(evt app.DownloadCounters) {
	s.Counters.Set(evt)
}

func (s *Search) update(id string, fn func(*tracked)) {
	s.mu.Lock()
	t := s.tracking[id]
	fn(&t)
	if t.state.Busy() {
		s.tracking[id] = t
	} else {
		delete(s.tracking, id)
	}

	it, ok := s.index[id]
	if ok {
		it.State = t.state
		it.Progress = t.progress
	}
	s.mu.Unlock()

	if ok {
		s.publish()
	}
}

// publish sends a snapshot of the visible results. Snapshots are sent in
// the order they are taken.
func (s *Search) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	ignore := s.ignore.Get()

	s.mu.Lock()
	visible := make([]Item, 0, len(s.items))
	hidden, downloadable := 0, 0
	for _, it := range s.items {
		if it.State.Downloadable() {
			downloadable++
		}
		if ignore && it.State == model.Downloaded {
			hidden++
			continue
		}
		visible = append(visible, *it)
	}
	total := len(s.items)
	s.mu.Unlock()

	s.Results.Notify(visible)
	s.Summary.Set(summary(total, hidden, ignore))
	s.Downloadable.Set(downloadable)
}

func summary(total, hidden int, ignore bool) string {
	if ignore {
		return fmt.Sprintf("%d results (%d hidden)", total, hidden)
	}
	return fmt.Sprintf("%d results", total)
}

// OpenPreview shows the full size image of a result.
func (s *Search) OpenPreview(id string) {
	s.mu.Lock()
	it, ok := s.index[id]
	var params app.PreviewParams
	if ok {
		params = app.PreviewParams{
			Wallpaper: it.Wallpaper,
			Thumbnail: it.Thumbnail,
		}
	}
	s.mu.Unlock()

	if ok {
		s.shared.Navigate.To(params)
	}
}

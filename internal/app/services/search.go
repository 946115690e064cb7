package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/model"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// maxThumbnailFetches bounds the concurrent thumbnail requests of one page.
const maxThumbnailFetches = 8

var (
	// ErrNoMorePages is returned by NextPage when the last page was reached.
	ErrNoMorePages = errors.New("no more pages")
	// ErrPageInFlight is returned by NextPage while the previous page has not
	// arrived yet.
	ErrPageInFlight = errors.New("page already requested")
	// ErrStale is returned when a new search started while a page was
	// being fetched.
	ErrStale = errors.New("search was replaced")
)

type APIKeyProvider interface {
	APIKey() (string, error)
}

type Search struct {
	repo    Repository
	api     app.WallpaperAPI
	library app.Library
	keys    APIKeyProvider
	seed    func() string

	mu         sync.Mutex
	generation int
	// current is the search the received pages belong to.
	current  *model.Search
	page     model.Page
	inFlight bool
}

func NewSearch(
	repo Repository,
	api app.WallpaperAPI,
	library app.Library,
	keys APIKeyProvider,
) *Search {
	return &Search{
		repo:    repo,
		api:     api,
		library: library,
		keys:    keys,
		seed:    newSeed,
	}
}

func (s *Search) LoadSearch() (*model.Search, error) {
	search, err := s.repo.LoadSearch()
	if err != nil {
		return nil, faults.Errorf("loading search: %w", err)
	}
	return search, nil
}

func (s *Search) SaveSearch(search *model.Search) error {
	err := s.repo.SaveSearch(search)
	if err != nil {
		return faults.Errorf("saving search: %w", err)
	}
	return nil
}

// Search starts a new search from the first page with a fresh seed.
// Any page still being fetched for the previous search is discarded.
func (s *Search) Search(ctx context.Context) (app.SearchPage, error) {
	search, err := s.repo.LoadSearch()
	if err != nil {
		return app.SearchPage{}, faults.Errorf("loading search: %w", err)
	}
	search.Restart(s.seed())

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.current = search.Clone()
	s.page = model.Page{}
	s.inFlight = true
	s.mu.Unlock()

	return s.fetch(ctx, gen, search)
}

// NextPage fetches the page after the last one received.
func (s *Search) NextPage(ctx context.Context) (app.SearchPage, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return app.SearchPage{}, ErrPageInFlight
	}
	if !s.page.HasNext() {
		s.mu.Unlock()
		return app.SearchPage{}, ErrNoMorePages
	}
	s.inFlight = true
	gen := s.generation
	search := s.current.Clone()
	search.SetPage(s.page.CurrentPage + 1)
	s.mu.Unlock()

	return s.fetch(ctx, gen, search)
}

// HasNextPage reports if NextPage would fetch something.
func (s *Search) HasNextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.inFlight && s.page.HasNext()
}

func (s *Search) fetch(ctx context.Context, gen int, search *model.Search) (app.SearchPage, error) {
	result, err := s.query(ctx, search)
	if err != nil {
		s.done(gen, nil)
		return app.SearchPage{}, err
	}

	if !s.done(gen, &result.Page) {
		return app.SearchPage{}, ErrStale
	}

	return result, nil
}

// done records the received page. It returns false if the search it
// belongs to was replaced in the meantime.
func (s *Search) done(gen int, page *model.Page) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.inFlight = false
	if page != nil {
		s.page = *page
	}
	return true
}

func (s *Search) query(ctx context.Context, search *model.Search) (app.SearchPage, error) {
	key, err := s.keys.APIKey()
	if err != nil {
		return app.SearchPage{}, err
	}

	settings, err := s.repo.LoadSettings()
	if err != nil {
		return app.SearchPage{}, faults.Errorf("loading settings: %w", err)
	}

	res, err := s.api.Search(ctx, search, key)
	if err != nil {
		return app.SearchPage{}, faults.Errorf("searching page %d: %w", search.Page(), err)
	}

	items := make([]*app.SearchItem, len(res.Wallpapers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxThumbnailFetches)
	for i, w := range res.Wallpapers {
		g.Go(func() error {
			thumb, err := s.api.Fetch(gctx, w.Thumbs.Small)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("Dropping result without thumbnail", "id", w.ID, "error", err)
				return nil
			}

			item := &app.SearchItem{
				Wallpaper:  w,
				Thumbnail:  thumb,
				Downloaded: s.library.Contains(w.Filename()),
			}
			if !item.Downloaded && settings.MatchSimilar() {
				item.SimilarTo = s.similar(w, thumb)
				item.Downloaded = item.SimilarTo != ""
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return app.SearchPage{}, faults.Errorf("fetching thumbnails: %w", err)
	}

	page := app.SearchPage{
		Items: make([]app.SearchItem, 0, len(items)),
		Page:  res.Page,
	}
	for _, it := range items {
		if it == nil {
			page.Dropped++
			continue
		}
		page.Items = append(page.Items, *it)
	}

	return page, nil
}

func (s *Search) similar(w model.Wallpaper, thumb []byte) string {
	img, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		slog.Debug("Could not decode thumbnail", "id", w.ID, "error", err)
		return ""
	}
	name, _ := s.library.Similar(img)
	return name
}

const seedChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newSeed keeps random sorting stable across pages of the same search.
func newSeed() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = seedChars[rand.IntN(len(seedChars))]
	}
	return string(b)
}

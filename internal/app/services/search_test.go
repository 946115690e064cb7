package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/quintans/wallfetch/internal/gateways/repository"
	"github.com/quintans/wallfetch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallpaper(id string) model.Wallpaper {
	return model.Wallpaper{
		ID:     id,
		Path:   "https://w.example/full/wallhaven-" + id + ".jpg",
		Thumbs: model.Thumbs{Small: "https://th.example/small/" + id + ".jpg"},
	}
}

func solidPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newSearchFixture(pages map[int]model.SearchResult, thumbs map[string][]byte, local ...string) (*Search, *fakeAPI, *fakeRepo) {
	api := &fakeAPI{pages: pages, files: thumbs}
	repo := newFakeRepo("/tmp/wallpapers")
	svc := NewSearch(repo, api, newFakeLibrary(local...), fakeKeys{key: "secret"})
	svc.seed = func() string { return "seedyroots" }
	return svc, api, repo
}

func TestSearch_MarksDownloadedAndDropsMissingThumbnails(t *testing.T) {
	a, b, c := wallpaper("a1"), wallpaper("b2"), wallpaper("c3")
	svc, api, _ := newSearchFixture(
		map[int]model.SearchResult{
			1: {Wallpapers: []model.Wallpaper{a, b, c}, Page: model.Page{CurrentPage: 1, LastPage: 1}},
		},
		map[string][]byte{
			a.Thumbs.Small: []byte("a"),
			c.Thumbs.Small: []byte("c"),
		},
		a.Filename(),
	)

	page, err := svc.Search(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Dropped)
	assert.Equal(t, "a1", page.Items[0].Wallpaper.ID)
	assert.True(t, page.Items[0].Downloaded)
	assert.Equal(t, []byte("a"), page.Items[0].Thumbnail)
	assert.Equal(t, "c3", page.Items[1].Wallpaper.ID)
	assert.False(t, page.Items[1].Downloaded)

	assert.Equal(t, []string{"secret"}, api.keys)
}

func TestSearch_RestartsFromFirstPage(t *testing.T) {
	svc, api, repo := newSearchFixture(
		map[int]model.SearchResult{
			1: {Page: model.Page{CurrentPage: 1, LastPage: 1}},
		},
		nil,
	)
	repo.search.SetPage(4)
	repo.search.SetQuery("nature")

	_, err := svc.Search(context.Background())
	require.NoError(t, err)

	require.Len(t, api.searches, 1)
	assert.Contains(t, api.searches[0], "page=1")
	assert.Contains(t, api.searches[0], "seed=seedyroots")
	assert.Contains(t, api.searches[0], "q=nature")
	assert.Equal(t, 4, repo.search.Page())
}

func TestSearch_NextPage(t *testing.T) {
	svc, api, _ := newSearchFixture(
		map[int]model.SearchResult{
			1: {Wallpapers: []model.Wallpaper{wallpaper("a1")}, Page: model.Page{CurrentPage: 1, LastPage: 2}},
			2: {Wallpapers: []model.Wallpaper{wallpaper("b2")}, Page: model.Page{CurrentPage: 2, LastPage: 2}},
		},
		map[string][]byte{
			wallpaper("a1").Thumbs.Small: []byte("a"),
			wallpaper("b2").Thumbs.Small: []byte("b"),
		},
	)

	_, err := svc.NextPage(context.Background())
	require.ErrorIs(t, err, ErrNoMorePages)

	_, err = svc.Search(context.Background())
	require.NoError(t, err)
	assert.True(t, svc.HasNextPage())

	page, err := svc.NextPage(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b2", page.Items[0].Wallpaper.ID)
	assert.Contains(t, api.searches[1], "page=2")
	assert.Contains(t, api.searches[1], "seed=seedyroots")

	assert.False(t, svc.HasNextPage())
	_, err = svc.NextPage(context.Background())
	require.ErrorIs(t, err, ErrNoMorePages)
}

func TestSearch_NewSearchMakesPendingPageStale(t *testing.T) {
	gate := make(chan struct{})
	svc, api, _ := newSearchFixture(
		map[int]model.SearchResult{
			1: {Page: model.Page{CurrentPage: 1, LastPage: 5}},
		},
		nil,
	)
	api.searchGate = gate

	first := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background())
		first <- err
	}()
	require.Eventually(t, func() bool { return api.searchCount() == 1 }, time.Second, time.Millisecond)

	_, err := svc.NextPage(context.Background())
	require.ErrorIs(t, err, ErrPageInFlight)

	second := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background())
		second <- err
	}()
	require.Eventually(t, func() bool { return api.searchCount() == 2 }, time.Second, time.Millisecond)

	close(gate)
	assert.ErrorIs(t, <-first, ErrStale)
	assert.NoError(t, <-second)
	assert.True(t, svc.HasNextPage())
}

func TestSearch_NextPageKeepsTheStartedSearch(t *testing.T) {
	svc, api, _ := newSearchFixture(
		map[int]model.SearchResult{
			1: {Page: model.Page{CurrentPage: 1, LastPage: 2}},
			2: {Page: model.Page{CurrentPage: 2, LastPage: 2}},
		},
		nil,
	)

	search, err := svc.LoadSearch()
	require.NoError(t, err)
	search.SetQuery("lake")
	require.NoError(t, svc.SaveSearch(search))

	_, err = svc.Search(context.Background())
	require.NoError(t, err)

	search.SetQuery("desert")
	require.NoError(t, svc.SaveSearch(search))

	_, err = svc.NextPage(context.Background())
	require.NoError(t, err)
	require.Len(t, api.searches, 2)
	assert.Contains(t, api.searches[1], "q=lake")
	assert.Contains(t, api.searches[1], "page=2")
}

func TestSearch_FilterEditsWhileSearching(t *testing.T) {
	api := &fakeAPI{pages: map[int]model.SearchResult{
		1: {Page: model.Page{CurrentPage: 1, LastPage: 3}},
		2: {Page: model.Page{CurrentPage: 2, LastPage: 3}},
	}}
	db := repository.NewDB(t.TempDir(), "/tmp/wallpapers")
	svc := NewSearch(db, api, newFakeLibrary(), fakeKeys{})

	edited, err := svc.LoadSearch()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			_, _ = svc.Search(context.Background())
			_, _ = svc.NextPage(context.Background())
		}
	}()

	for i := range 50 {
		edited.ToggleResolution(model.Resolution{X: 1920 + i, Y: 1080})
		edited.ToggleRatio(model.Resolution{X: 16 + i, Y: 9})
		require.NoError(t, svc.SaveSearch(edited))
	}
	wg.Wait()

	loaded, err := svc.LoadSearch()
	require.NoError(t, err)
	assert.Len(t, loaded.Resolutions(), 50)
	assert.Len(t, loaded.Ratios(), 50)
	assert.Equal(t, 100, api.searchCount())
}

func TestSearch_MatchSimilar(t *testing.T) {
	red, blue := wallpaper("r1"), wallpaper("b1")
	svc, _, repo := newSearchFixture(
		map[int]model.SearchResult{
			1: {Wallpapers: []model.Wallpaper{red, blue}, Page: model.Page{CurrentPage: 1, LastPage: 1}},
		},
		map[string][]byte{
			red.Thumbs.Small:  solidPNG(t, color.RGBA{R: 255, A: 255}),
			blue.Thumbs.Small: solidPNG(t, color.RGBA{B: 255, A: 255}),
		},
	)

	page, err := svc.Search(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.False(t, page.Items[0].Downloaded, "similarity is off by default")

	repo.settings.SetMatchSimilar(true)

	page, err = svc.Search(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].Downloaded)
	assert.Equal(t, "red.png", page.Items[0].SimilarTo)
	assert.False(t, page.Items[1].Downloaded)
	assert.Empty(t, page.Items[1].SimilarTo)
}

func TestNewSeed(t *testing.T) {
	seed := newSeed()
	assert.Len(t, seed, 6)
	for _, c := range seed {
		assert.Contains(t, seedChars, string(c))
	}
}

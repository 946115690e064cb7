package viewmodel

import (
	"errors"
	"sync"
	"testing"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(id string, downloaded bool) app.SearchItem {
	return app.SearchItem{
		Wallpaper: model.Wallpaper{
			ID:   id,
			Path: "https://w.example/full/wallhaven-" + id + ".jpg",
		},
		Thumbnail:  []byte(id),
		Downloaded: downloaded,
	}
}

type searchFixture struct {
	vm        *Search
	service   *fakeSearchService
	downloads *fakeDownloadService
	ignore    *bind.Bind[bool]
	notes     *[]app.Notify
	results   []Item
}

func newSearchFixture(pages ...app.SearchPage) *searchFixture {
	shared, notes := newShared()
	f := &searchFixture{
		service:   &fakeSearchService{pages: pages},
		downloads: &fakeDownloadService{},
		ignore:    bind.New(false),
		notes:     notes,
	}
	f.vm = NewSearch(shared, f.service, f.downloads, f.ignore)
	f.vm.Results.Listen(func(items []Item) {
		f.results = items
	})
	f.vm.Mount()
	return f
}

func (f *searchFixture) states() map[string]model.ImageState {
	m := map[string]model.ImageState{}
	for _, it := range f.results {
		m[it.Wallpaper.ID] = it.State
	}
	return m
}

func (f *searchFixture) ids() []string {
	var ids []string
	for _, it := range f.results {
		ids = append(ids, it.Wallpaper.ID)
	}
	return ids
}

func TestSearch_ResultsAndHiddenCount(t *testing.T) {
	f := newSearchFixture(app.SearchPage{
		Items: []app.SearchItem{result("a1", false), result("b2", true), result("c3", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	})

	f.vm.Search()

	assert.Equal(t, []string{"a1", "b2", "c3"}, f.ids())
	assert.Equal(t, model.Downloaded, f.states()["b2"])
	assert.Equal(t, "3 results", f.vm.Summary.Get())
	assert.False(t, f.vm.HasMore.Get())

	f.ignore.Set(true)
	assert.Equal(t, []string{"a1", "c3"}, f.ids())
	assert.Equal(t, "3 results (1 hidden)", f.vm.Summary.Get())
}

func TestSearch_SelectionAndDownload(t *testing.T) {
	f := newSearchFixture(app.SearchPage{
		Items: []app.SearchItem{result("a1", false), result("b2", true), result("c3", false), result("d4", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	})
	f.vm.Search()

	f.vm.SelectAll()
	assert.Equal(t, map[string]model.ImageState{
		"a1": model.Selected,
		"b2": model.Downloaded,
		"c3": model.Selected,
		"d4": model.Selected,
	}, f.states())
	assert.Equal(t, 3, f.vm.Downloadable.Get())

	f.vm.Toggle("c3")
	assert.Equal(t, model.Unselected, f.states()["c3"])

	f.vm.Download()
	require.Len(t, f.downloads.reqs, 1)
	require.Len(t, f.downloads.reqs[0], 2)
	assert.Equal(t, app.DownloadRequest{
		ID:       "a1",
		URL:      "https://w.example/full/wallhaven-a1.jpg",
		Filename: "wallhaven-a1.jpg",
	}, f.downloads.reqs[0][0])
	assert.Equal(t, "d4", f.downloads.reqs[0][1].ID)
	assert.Equal(t, model.Queued, f.states()["a1"])
	assert.Equal(t, model.Queued, f.states()["d4"])
	assert.Zero(t, f.vm.Downloadable.Get())

	f.vm.DeselectAll()
	assert.Equal(t, model.Queued, f.states()["a1"], "queued images are not deselected")

	f.vm.OnDownloadProgress(app.DownloadProgress{ID: "a1", Percent: 40})
	assert.Equal(t, model.Downloading, f.states()["a1"])
	assert.InDelta(t, 40, f.results[0].Progress, 0.001)

	f.vm.OnDownloadFinished(app.DownloadFinished{ID: "a1", Filename: "wallhaven-a1.jpg"})
	f.vm.OnDownloadFailed(app.DownloadFailed{ID: "d4", Err: errors.New("boom")})
	assert.Equal(t, model.Downloaded, f.states()["a1"])
	assert.Equal(t, model.Failed, f.states()["d4"])

	f.vm.Toggle("d4")
	assert.Equal(t, model.Selected, f.states()["d4"], "failed images can be selected again")
}

func TestSearch_DownloadRetriesFailed(t *testing.T) {
	f := newSearchFixture(app.SearchPage{
		Items: []app.SearchItem{result("a1", false), result("b2", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	})
	f.vm.Search()
	f.vm.Toggle("b2")
	f.vm.Download()
	f.vm.OnDownloadFailed(app.DownloadFailed{ID: "b2", Err: errors.New("boom")})

	f.vm.Download()
	require.Len(t, f.downloads.reqs, 2)
	require.Len(t, f.downloads.reqs[1], 1)
	assert.Equal(t, "b2", f.downloads.reqs[1][0].ID)
}

func TestSearch_DownloadNothingSelected(t *testing.T) {
	f := newSearchFixture(app.SearchPage{
		Items: []app.SearchItem{result("a1", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	})
	f.vm.Search()

	f.vm.Download()
	assert.Empty(t, f.downloads.reqs)
	require.NotEmpty(t, *f.notes)
	assert.Equal(t, app.NotifyInfo, (*f.notes)[len(*f.notes)-1].Type)
}

func TestSearch_EnqueueFailureRestoresState(t *testing.T) {
	f := newSearchFixture(app.SearchPage{
		Items: []app.SearchItem{result("a1", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	})
	f.vm.Search()
	f.vm.Toggle("a1")
	f.downloads.err = errors.New("disk full")

	f.vm.Download()

	assert.Equal(t, model.Selected, f.states()["a1"])
	require.NotEmpty(t, *f.notes)
	assert.Equal(t, app.NotifyError, (*f.notes)[len(*f.notes)-1].Type)
}

func TestSearch_NextPage(t *testing.T) {
	f := newSearchFixture(
		app.SearchPage{
			Items: []app.SearchItem{result("a1", false), result("b2", false)},
			Page:  model.Page{CurrentPage: 1, LastPage: 2},
		},
		app.SearchPage{
			Items: []app.SearchItem{result("b2", false), result("c3", false)},
			Page:  model.Page{CurrentPage: 2, LastPage: 2},
		},
	)

	f.vm.NextPage()
	assert.Empty(t, f.results, "nothing before the first search")

	f.vm.Search()
	assert.True(t, f.vm.HasMore.Get())

	f.vm.NextPage()
	assert.Equal(t, []string{"a1", "b2", "c3"}, f.ids())
	assert.False(t, f.vm.HasMore.Get())

	f.vm.NextPage()
	assert.Equal(t, []string{"a1", "b2", "c3"}, f.ids())
}

func TestSearch_NewResultsKeepDownloadsInFlight(t *testing.T) {
	page := app.SearchPage{
		Items: []app.SearchItem{result("a1", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	}
	f := newSearchFixture(page)
	f.vm.Search()
	f.vm.Toggle("a1")
	f.vm.Download()
	f.vm.OnDownloadProgress(app.DownloadProgress{ID: "a1", Percent: 10})

	f.vm.Search()
	assert.Equal(t, model.Downloading, f.states()["a1"])

	f.vm.OnDownloadFinished(app.DownloadFinished{ID: "a1"})
	f.vm.Search()
	assert.Equal(t, model.Unselected, f.states()["a1"], "the service decides what is downloaded")
}

func TestSearch_SearchError(t *testing.T) {
	f := newSearchFixture(app.SearchPage{})
	f.service.err = errors.New("unauthorized")

	f.vm.Search()

	require.Len(t, *f.notes, 1)
	assert.Equal(t, app.NotifyError, (*f.notes)[0].Type)
	assert.Contains(t, (*f.notes)[0].Message, "unauthorized")
	assert.False(t, f.vm.Busy.Get())
}

func TestSearch_Filters(t *testing.T) {
	f := newSearchFixture()

	assert.Equal(t, "Any resolution", f.vm.ResolutionLabel.Get())
	assert.Equal(t, "Any ratio", f.vm.RatioLabel.Get())

	f.vm.SetPurity(model.Purity{})
	assert.Equal(t, model.DefaultPurity(), f.vm.Purity.Get())
	require.Len(t, *f.notes, 1)
	assert.Equal(t, app.NotifyWarn, (*f.notes)[0].Type)

	f.vm.SetPurity(model.Purity{Sketchy: true})
	assert.Equal(t, model.Purity{Sketchy: true}, f.service.search.Purity())

	f.vm.SetCategories(model.Categories{})
	assert.Equal(t, model.DefaultCategories(), f.vm.Categories.Get())

	f.vm.ToggleResolution(model.Resolution{X: 1920, Y: 1080})
	f.vm.ToggleResolution(model.Resolution{X: 2560, Y: 1440})
	assert.Equal(t, "1920x1080 +1", f.vm.ResolutionLabel.Get())
	assert.True(t, f.vm.HasResolution(model.Resolution{X: 1920, Y: 1080}))

	f.vm.SetAtLeast(model.Resolution{X: 3840, Y: 2160})
	assert.Equal(t, "At least 3840x2160", f.vm.ResolutionLabel.Get())
	assert.False(t, f.vm.HasResolution(model.Resolution{X: 1920, Y: 1080}))

	f.vm.SetAtLeast(model.Resolution{})
	assert.Equal(t, "Any resolution", f.vm.ResolutionLabel.Get())

	f.vm.ToggleResolution(model.Resolution{X: 1920, Y: 1080})
	f.vm.ClearResolutions()
	assert.Equal(t, "Any resolution", f.vm.ResolutionLabel.Get())
	assert.Empty(t, f.service.search.Resolutions())

	f.vm.ToggleRatio(model.Resolution{X: 16, Y: 9})
	assert.Equal(t, "16x9", f.vm.RatioLabel.Get())
	f.vm.ClearRatios()
	assert.Equal(t, "Any ratio", f.vm.RatioLabel.Get())

	f.vm.SetSorting(model.TopList)
	f.vm.SetTopRange(model.LastWeek)
	f.vm.SetQuery("  mountains ")
	values := f.service.search.Encode()
	assert.Equal(t, "toplist", values.Get("sorting"))
	assert.Equal(t, "1w", values.Get("topRange"))
	assert.Equal(t, "mountains", values.Get("q"))
	assert.Equal(t, "010", values.Get("purity"))
}

func TestSearch_FilterEditsWhileSearching(t *testing.T) {
	f := newSearchFixture(app.SearchPage{
		Items: []app.SearchItem{result("a1", false)},
		Page:  model.Page{CurrentPage: 1, LastPage: 1},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			f.vm.Search()
		}
	}()

	for i := range 50 {
		f.vm.ToggleResolution(model.Resolution{X: 1920 + i, Y: 1080})
		f.vm.ToggleRatio(model.Resolution{X: 16 + i, Y: 9})
	}
	wg.Wait()

	assert.Len(t, f.service.queries, 50)
	search, err := f.service.LoadSearch()
	require.NoError(t, err)
	assert.Len(t, search.Resolutions(), 50)
	assert.Len(t, search.Ratios(), 50)
	assert.True(t, f.vm.HasResolution(model.Resolution{X: 1969, Y: 1080}))
}

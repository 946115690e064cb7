package services

import (
	"context"
	"errors"
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/retry"
	"github.com/quintans/wallfetch/internal/model"
)

type fakeRepo struct {
	mu       sync.Mutex
	search   *model.Search
	settings *model.Settings
	saves    int
}

func newFakeRepo(saveDir string) *fakeRepo {
	return &fakeRepo{
		search:   model.NewSearch(),
		settings: model.NewSettings(saveDir),
	}
}

func (r *fakeRepo) LoadSearch() (*model.Search, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.search.Clone(), nil
}

func (r *fakeRepo) SaveSearch(search *model.Search) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.search = search.Clone()
	return nil
}

func (r *fakeRepo) LoadSettings() (*model.Settings, error) {
	return r.settings, nil
}

func (r *fakeRepo) SaveSettings(settings *model.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	r.saves++
	return nil
}

type fakeAPI struct {
	mu       sync.Mutex
	pages    map[int]model.SearchResult
	searches []string
	keys     []string
	files    map[string][]byte

	// searchGate, when set, holds every Search until it is closed.
	searchGate chan struct{}

	// gate, when set, blocks every Download until it is closed or receives.
	gate      chan struct{}
	running   int
	maxActive int

	// failures makes the first Downloads of a url fail with a retryable
	// error.
	failures map[string]int
	attempts map[string]int
}

func (a *fakeAPI) searchCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.searches)
}

func (a *fakeAPI) Search(_ context.Context, search *model.Search, apiKey string) (model.SearchResult, error) {
	a.mu.Lock()
	a.searches = append(a.searches, search.Encode().Encode())
	a.keys = append(a.keys, apiKey)
	gate := a.searchGate
	a.mu.Unlock()

	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	res, ok := a.pages[search.Page()]
	if !ok {
		return model.SearchResult{}, errors.New("no such page")
	}
	return res, nil
}

func (a *fakeAPI) Fetch(_ context.Context, url string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.files[url]
	if !ok {
		return nil, errors.New("not found: " + url)
	}
	return b, nil
}

func (a *fakeAPI) Download(ctx context.Context, url string, w io.Writer, onProgress func(written, total int64)) error {
	a.mu.Lock()
	a.running++
	a.maxActive = max(a.maxActive, a.running)
	b, ok := a.files[url]
	gate := a.gate
	if a.attempts == nil {
		a.attempts = map[string]int{}
	}
	a.attempts[url]++
	busy := a.attempts[url] <= a.failures[url]
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running--
		a.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if busy {
		_, _ = w.Write([]byte("partial"))
		return errors.New("connection reset")
	}

	if !ok {
		// write something first so there is a partial file to clean up
		_, _ = w.Write([]byte("partial"))
		return retry.NewPermanentError(errors.New("not found: " + url))
	}

	half := len(b) / 2
	if _, err := w.Write(b[:half]); err != nil {
		return err
	}
	onProgress(int64(half), int64(len(b)))
	if _, err := w.Write(b[half:]); err != nil {
		return err
	}
	onProgress(int64(len(b)), int64(len(b)))
	return nil
}

type fakeLibrary struct {
	mu      sync.Mutex
	dir     string
	names   map[string]struct{}
	similar map[string]bool
	scans   int
}

func newFakeLibrary(names ...string) *fakeLibrary {
	l := &fakeLibrary{names: map[string]struct{}{}}
	for _, n := range names {
		l.names[n] = struct{}{}
	}
	return l
}

func (l *fakeLibrary) Scan(dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dir = dir
	l.scans++
	return nil
}

func (l *fakeLibrary) Contains(filename string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.names[filename]
	return ok
}

func (l *fakeLibrary) Add(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if filepath.Dir(path) != filepath.Clean(l.dir) {
		return false
	}
	l.names[filepath.Base(path)] = struct{}{}
	return true
}

func (l *fakeLibrary) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.names)
}

// Similar matches images whose top left pixel is fully red.
func (l *fakeLibrary) Similar(img image.Image) (string, bool) {
	r, g, b, _ := img.At(0, 0).RGBA()
	if r == 0xffff && g == 0 && b == 0 {
		return "red.png", true
	}
	return "", false
}

type fakeBus struct {
	mu       sync.Mutex
	messages []app.Message
}

func (b *fakeBus) DownloadProgress(id string, percent float64) {
	b.publish(app.DownloadProgress{ID: id, Percent: percent})
}

func (b *fakeBus) DownloadFinished(id, filename string) {
	b.publish(app.DownloadFinished{ID: id, Filename: filename})
}

func (b *fakeBus) DownloadFailed(id string, err error) {
	b.publish(app.DownloadFailed{ID: id, Err: err})
}

func (b *fakeBus) DownloadCounters(counters app.DownloadCounters) {
	b.publish(counters)
}

func (b *fakeBus) publish(m app.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, m)
}

func (b *fakeBus) kinds(prefix string) []app.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []app.Message
	for _, m := range b.messages {
		if strings.HasPrefix(m.Kind(), prefix) {
			out = append(out, m)
		}
	}
	return out
}

type fakeKeys struct {
	key string
}

func (k fakeKeys) APIKey() (string, error) {
	return k.key, nil
}

type fakeSecrets struct {
	key string
}

func (s *fakeSecrets) GetAPIKey() (string, error) {
	return s.key, nil
}

func (s *fakeSecrets) SetAPIKey(value string) error {
	s.key = value
	return nil
}

type fakeConcurrency struct {
	n int
}

func (c *fakeConcurrency) SetConcurrency(n int) error {
	c.n = n
	return nil
}

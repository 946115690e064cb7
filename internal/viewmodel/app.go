package viewmodel

import (
	"errors"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/model"
)

type AppService interface {
	LoadData() (model.AppData, error)
	SetAPIKey(key string) error
	SetSaveDir(dir string) (int, error)
	SetIgnoreDownloaded(ignore bool) error
	SetMatchSimilar(match bool) error
	SetConcurrentDownloads(n int) error
}

// App holds the settings shown in the settings tab. IgnoreDownloaded is
// shared with the search results.
type App struct {
	shared              *Shared
	service             AppService
	SaveDir             *bind.Bind[string]
	LibrarySize         *bind.Bind[int]
	APIKey              *bind.Bind[string]
	APIKeyFromEnv       *bind.Bind[bool]
	IgnoreDownloaded    *bind.Bind[bool]
	MatchSimilar        *bind.Bind[bool]
	ConcurrentDownloads *bind.Bind[int]
	Loading             bind.Notifier[app.Loading]
}

func NewApp(shared *Shared, service AppService) *App {
	return &App{
		shared:              shared,
		service:             service,
		SaveDir:             bind.New(""),
		LibrarySize:         bind.New(0),
		APIKey:              bind.New(""),
		APIKeyFromEnv:       bind.New(false),
		IgnoreDownloaded:    bind.New(false),
		MatchSimilar:        bind.New(false),
		ConcurrentDownloads: bind.New(model.DefaultConcurrentDownloads),
		Loading:             bind.NewNotifier[app.Loading](),
	}
}

func (a *App) Mount() {
	data, err := a.service.LoadData()
	if err != nil {
		a.shared.Error(err, "Failed to load settings")
		return
	}

	a.SaveDir.Set(data.SaveDir)
	a.LibrarySize.Set(data.LibrarySize)
	a.APIKey.Set(data.APIKey)
	a.APIKeyFromEnv.Set(data.APIKeyFromEnv)
	a.IgnoreDownloaded.Set(data.IgnoreDownloaded)
	a.MatchSimilar.Set(data.MatchSimilar)
	a.ConcurrentDownloads.Set(data.ConcurrentDownloads)
}

func (a *App) SetSaveDir(dir string) {
	if dir == a.SaveDir.Get() {
		return
	}

	n, err := a.service.SetSaveDir(dir)
	if err != nil {
		a.shared.Error(err, "Failed to change storage directory", "dir", dir)
		a.SaveDir.Notify(a.SaveDir.Get())
		return
	}

	a.SaveDir.Set(dir)
	a.LibrarySize.Set(n)
	a.shared.Success("Found %d images in %s", n, dir)
}

func (a *App) SetAPIKey(key string) {
	if a.APIKeyFromEnv.Get() {
		a.shared.Warn("The API key is set by the environment")
		return
	}

	err := a.service.SetAPIKey(key)
	if err != nil {
		a.shared.Error(err, "Failed to save API key")
		return
	}

	a.APIKey.Set(key)
	if key == "" {
		a.shared.Info("API key removed")
		return
	}
	a.shared.Success("API key saved")
}

func (a *App) SetIgnoreDownloaded(ignore bool) {
	err := a.service.SetIgnoreDownloaded(ignore)
	if err != nil {
		a.shared.Error(err, "Failed to save settings")
		a.IgnoreDownloaded.Notify(a.IgnoreDownloaded.Get())
		return
	}
	a.IgnoreDownloaded.Set(ignore)
}

func (a *App) SetMatchSimilar(match bool) {
	err := a.service.SetMatchSimilar(match)
	if err != nil {
		a.shared.Error(err, "Failed to save settings")
		a.MatchSimilar.Notify(a.MatchSimilar.Get())
		return
	}
	a.MatchSimilar.Set(match)
}

// SetConcurrentDownloads ignores values out of range, keeping the current
// one.
func (a *App) SetConcurrentDownloads(n int) {
	err := a.service.SetConcurrentDownloads(n)
	if errors.Is(err, model.ErrInvalidConcurrency) {
		a.ConcurrentDownloads.Notify(a.ConcurrentDownloads.Get())
		return
	}
	if err != nil {
		a.shared.Error(err, "Failed to change concurrent downloads")
		a.ConcurrentDownloads.Notify(a.ConcurrentDownloads.Get())
		return
	}
	a.ConcurrentDownloads.Set(n)
}

package services

import (
	"os"

	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/model"
)

type Library interface {
	app.Library
	Len() int
}

type App struct {
	repo      Repository
	secrets   app.Secrets
	library   Library
	downloads ConcurrencySetter
	envAPIKey string
}

// NewApp builds the settings service. A non empty envAPIKey takes
// precedence over the key stored in the keyring.
func NewApp(
	repo Repository,
	secrets app.Secrets,
	library Library,
	downloads ConcurrencySetter,
	envAPIKey string,
) *App {
	return &App{
		repo:      repo,
		secrets:   secrets,
		library:   library,
		downloads: downloads,
		envAPIKey: envAPIKey,
	}
}

// Start prepares the storage directory and indexes its files.
func (a *App) Start() error {
	settings, err := a.repo.LoadSettings()
	if err != nil {
		return faults.Errorf("Failed to load settings: %w", err)
	}

	err = a.openLibrary(settings.SaveDir())
	if err != nil {
		return err
	}

	err = a.downloads.SetConcurrency(settings.ConcurrentDownloads())
	if err != nil {
		return faults.Errorf("Failed to set concurrent downloads: %w", err)
	}

	return nil
}

func (a *App) LoadData() (model.AppData, error) {
	settings, err := a.repo.LoadSettings()
	if err != nil {
		return model.AppData{}, faults.Errorf("Failed to load settings: %w", err)
	}

	key, err := a.APIKey()
	if err != nil {
		return model.AppData{}, err
	}

	return model.AppData{
		SaveDir:             settings.SaveDir(),
		IgnoreDownloaded:    settings.IgnoreDownloaded(),
		MatchSimilar:        settings.MatchSimilar(),
		ConcurrentDownloads: settings.ConcurrentDownloads(),
		APIKey:              key,
		APIKeyFromEnv:       a.envAPIKey != "",
		LibrarySize:         a.library.Len(),
	}, nil
}

func (a *App) APIKey() (string, error) {
	if a.envAPIKey != "" {
		return a.envAPIKey, nil
	}

	key, err := a.secrets.GetAPIKey()
	if err != nil {
		return "", faults.Errorf("Failed to retrieve API key: %w", err)
	}
	return key, nil
}

func (a *App) SetAPIKey(key string) error {
	err := a.secrets.SetAPIKey(key)
	if err != nil {
		return faults.Errorf("Failed to set API key: %w", err)
	}
	return nil
}

// SetSaveDir switches the storage directory and re-indexes the library.
// It returns the number of files found.
func (a *App) SetSaveDir(dir string) (int, error) {
	err := a.update(func(s *model.Settings) error {
		return s.SetSaveDir(dir)
	})
	if err != nil {
		return 0, err
	}

	err = a.openLibrary(dir)
	if err != nil {
		return 0, err
	}

	return a.library.Len(), nil
}

func (a *App) SetIgnoreDownloaded(ignore bool) error {
	return a.update(func(s *model.Settings) error {
		s.SetIgnoreDownloaded(ignore)
		return nil
	})
}

func (a *App) SetMatchSimilar(match bool) error {
	return a.update(func(s *model.Settings) error {
		s.SetMatchSimilar(match)
		return nil
	})
}

// SetConcurrentDownloads fails with model.ErrInvalidConcurrency, leaving
// everything unchanged, when n is out of range.
func (a *App) SetConcurrentDownloads(n int) error {
	err := a.update(func(s *model.Settings) error {
		return s.SetConcurrentDownloads(n)
	})
	if err != nil {
		return err
	}

	err = a.downloads.SetConcurrency(n)
	if err != nil {
		return faults.Errorf("Failed to set concurrent downloads: %w", err)
	}
	return nil
}

func (a *App) update(fn func(*model.Settings) error) error {
	settings, err := a.repo.LoadSettings()
	if err != nil {
		return faults.Errorf("Failed to load settings: %w", err)
	}

	err = fn(settings)
	if err != nil {
		return faults.Errorf("Failed to change settings: %w", err)
	}

	err = a.repo.SaveSettings(settings)
	if err != nil {
		return faults.Errorf("Failed to save settings: %w", err)
	}
	return nil
}

func (a *App) openLibrary(dir string) error {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return faults.Errorf("Failed to create storage directory %s: %w", dir, err)
	}

	err = a.library.Scan(dir)
	if err != nil {
		return faults.Errorf("Failed to scan storage directory %s: %w", dir, err)
	}
	return nil
}

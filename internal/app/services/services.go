package services

import "github.com/quintans/wallfetch/internal/model"

type Repository interface {
	LoadSearch() (*model.Search, error)
	SaveSearch(search *model.Search) error
	LoadSettings() (*model.Settings, error)
	SaveSettings(settings *model.Settings) error
}

// ConcurrencySetter is told when the number of parallel downloads changes.
type ConcurrencySetter interface {
	SetConcurrency(n int) error
}

package model

import (
	"errors"

	"github.com/quintans/faults"
)

const (
	DefaultConcurrentDownloads = 5
	MinConcurrentDownloads     = 1
	MaxConcurrentDownloads     = 9
)

var (
	ErrInvalidConcurrency = errors.New("invalid number of concurrent downloads")
	ErrInvalidSaveDir     = errors.New("invalid storage directory")
)

type Settings struct {
	saveDir             string
	ignoreDownloaded    bool
	matchSimilar        bool
	concurrentDownloads int
}

func NewSettings(saveDir string) *Settings {
	return &Settings{
		saveDir:             saveDir,
		ignoreDownloaded:    false,
		matchSimilar:        false,
		concurrentDownloads: DefaultConcurrentDownloads,
	}
}

func (m *Settings) Hydrate(
	saveDir string,
	ignoreDownloaded bool,
	matchSimilar bool,
	concurrentDownloads int,
) {
	m.saveDir = saveDir
	m.ignoreDownloaded = ignoreDownloaded
	m.matchSimilar = matchSimilar
	if err := m.SetConcurrentDownloads(concurrentDownloads); err != nil {
		m.concurrentDownloads = DefaultConcurrentDownloads
	}
}

func (m *Settings) SaveDir() string {
	return m.saveDir
}

func (m *Settings) SetSaveDir(dir string) error {
	if dir == "" {
		return faults.Errorf("%w: empty", ErrInvalidSaveDir)
	}
	m.saveDir = dir
	return nil
}

func (m *Settings) IgnoreDownloaded() bool {
	return m.ignoreDownloaded
}

func (m *Settings) SetIgnoreDownloaded(ignore bool) {
	m.ignoreDownloaded = ignore
}

func (m *Settings) MatchSimilar() bool {
	return m.matchSimilar
}

func (m *Settings) SetMatchSimilar(match bool) {
	m.matchSimilar = match
}

func (m *Settings) ConcurrentDownloads() int {
	return m.concurrentDownloads
}

// SetConcurrentDownloads keeps the current value when n is out of range.
func (m *Settings) SetConcurrentDownloads(n int) error {
	if n < MinConcurrentDownloads || n > MaxConcurrentDownloads {
		return faults.Errorf("%w: %d not in [%d, %d]", ErrInvalidConcurrency, n, MinConcurrentDownloads, MaxConcurrentDownloads)
	}
	m.concurrentDownloads = n
	return nil
}

package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/quintans/wallfetch/internal/model"
)

const (
	searchFile   = "search.json"
	settingsFile = "settings.json"
)

type DB struct {
	mu             sync.Mutex
	dir            string
	defaultSaveDir string
	search         *model.Search
	settings       *model.Settings
}

// NewDB keeps its files under configDir/data. defaultSaveDir is the storage
// directory used until the user picks one.
func NewDB(configDir, defaultSaveDir string) *DB {
	dir := filepath.Join(configDir, "data")
	os.MkdirAll(dir, os.ModePerm)

	return &DB{
		dir:            dir,
		defaultSaveDir: defaultSaveDir,
	}
}

type Search struct {
	Query       string   `json:"query"`
	Purity      string   `json:"purity"`
	Categories  string   `json:"categories"`
	Sorting     string   `json:"sorting"`
	TopRange    string   `json:"topRange"`
	Resolutions []string `json:"resolutions"`
	AtLeast     string   `json:"atLeast,omitempty"`
	Ratios      []string `json:"ratios"`
}

func (d *DB) SaveSearch(search *model.Search) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	atLeast := ""
	if r, ok := search.AtLeast(); ok {
		atLeast = r.String()
	}

	err := d.write(searchFile, Search{
		Query:       search.Query(),
		Purity:      search.Purity().String(),
		Categories:  search.Categories().String(),
		Sorting:     search.Sorting().String(),
		TopRange:    search.TopRange().String(),
		Resolutions: toStrings(search.Resolutions()),
		AtLeast:     atLeast,
		Ratios:      toStrings(search.Ratios()),
	})
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}
	d.search = search.Clone()

	return nil
}

// LoadSearch returns the default search when none was saved yet. Every
// call gets its own copy, so callers on different goroutines never share one.
func (d *DB) LoadSearch() (*model.Search, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.search != nil {
		return d.search.Clone(), nil
	}

	search := model.NewSearch()
	if !d.exists(searchFile) {
		d.search = search
		return search.Clone(), nil
	}

	s := Search{}
	err := d.read(searchFile, &s)
	if err != nil {
		return nil, fmt.Errorf("loading search: %w", err)
	}

	purity, err := model.ParsePurity(s.Purity)
	if err != nil {
		purity = model.DefaultPurity()
	}
	categories, err := model.ParseCategories(s.Categories)
	if err != nil {
		categories = model.DefaultCategories()
	}
	sorting, err := model.ParseSorting(s.Sorting)
	if err != nil {
		sorting = model.DateAdded
	}
	topRange, err := model.ParseTopRange(s.TopRange)
	if err != nil {
		topRange = model.LastMonth
	}
	var atLeast model.Resolution
	if s.AtLeast != "" {
		atLeast, _ = model.ParseResolution(s.AtLeast)
	}

	search.Hydrate(
		s.Query,
		purity,
		categories,
		sorting,
		topRange,
		parseResolutions(s.Resolutions),
		atLeast,
		parseResolutions(s.Ratios),
	)
	d.search = search

	return search.Clone(), nil
}

type Settings struct {
	SaveDir             string `json:"saveDir"`
	IgnoreDownloaded    bool   `json:"ignoreDownloaded"`
	MatchSimilar        bool   `json:"matchSimilar"`
	ConcurrentDownloads int    `json:"concurrentDownloads"`
}

func (d *DB) SaveSettings(settings *model.Settings) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.write(settingsFile, Settings{
		SaveDir:             settings.SaveDir(),
		IgnoreDownloaded:    settings.IgnoreDownloaded(),
		MatchSimilar:        settings.MatchSimilar(),
		ConcurrentDownloads: settings.ConcurrentDownloads(),
	})
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	d.settings = settings

	return nil
}

func (d *DB) LoadSettings() (*model.Settings, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.settings != nil {
		return d.settings, nil
	}

	s := model.NewSettings(d.defaultSaveDir)
	if !d.exists(settingsFile) {
		d.settings = s
		return s, nil
	}

	settings := Settings{}
	err := d.read(settingsFile, &settings)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	saveDir := settings.SaveDir
	if saveDir == "" {
		saveDir = d.defaultSaveDir
	}
	s.Hydrate(
		saveDir,
		settings.IgnoreDownloaded,
		settings.MatchSimilar,
		settings.ConcurrentDownloads,
	)

	d.settings = s

	return d.settings, nil
}

func (d *DB) write(file string, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling data for '%s': %w", file, err)
	}

	err = os.WriteFile(filepath.Join(d.dir, file), b, 0o600)
	if err != nil {
		return fmt.Errorf("writing data for '%s': %w", file, err)
	}

	return nil
}

func (d *DB) exists(file string) bool {
	_, err := os.Stat(filepath.Join(d.dir, file))
	return !errors.Is(err, os.ErrNotExist)
}

func (d *DB) read(file string, data any) error {
	b, err := os.ReadFile(filepath.Join(d.dir, file))
	if err != nil {
		return fmt.Errorf("reading data for '%s': %w", file, err)
	}

	err = json.Unmarshal(b, data)
	if err != nil {
		return fmt.Errorf("unmarshalling data for '%s': %w", file, err)
	}

	return nil
}

func toStrings(rs []model.Resolution) []string {
	s := make([]string, len(rs))
	for i, r := range rs {
		s[i] = r.String()
	}
	return s
}

func parseResolutions(ss []string) []model.Resolution {
	rs := make([]model.Resolution, 0, len(ss))
	for _, s := range ss {
		r, err := model.ParseResolution(s)
		if err != nil {
			continue
		}
		rs = append(rs, r)
	}
	return rs
}

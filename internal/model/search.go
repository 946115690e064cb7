package model

import (
	"errors"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/quintans/faults"
)

var ErrNothingToSearch = errors.New("nothing to search")

type Search struct {
	query       string
	purity      Purity
	categories  Categories
	sorting     Sorting
	topRange    TopRange
	resolutions map[Resolution]struct{}
	atLeast     Resolution
	ratios      map[Resolution]struct{}
	seed        string
	page        int
}

func NewSearch() *Search {
	return &Search{
		purity:      DefaultPurity(),
		categories:  DefaultCategories(),
		sorting:     DateAdded,
		topRange:    LastMonth,
		resolutions: map[Resolution]struct{}{},
		ratios:      map[Resolution]struct{}{},
		page:        1,
	}
}

func (m *Search) Hydrate(
	query string,
	purity Purity,
	categories Categories,
	sorting Sorting,
	topRange TopRange,
	resolutions []Resolution,
	atLeast Resolution,
	ratios []Resolution,
) {
	m.query = query
	m.purity = purity
	m.categories = categories
	m.sorting = sorting
	m.topRange = topRange
	m.resolutions = toSet(resolutions)
	m.ratios = toSet(ratios)
	m.atLeast = atLeast
	if !atLeast.IsZero() {
		clear(m.resolutions)
	}
}

// Clone returns a copy that shares no state with m.
func (m *Search) Clone() *Search {
	c := *m
	c.resolutions = maps.Clone(m.resolutions)
	c.ratios = maps.Clone(m.ratios)
	return &c
}

func (m *Search) Query() string {
	return m.query
}

func (m *Search) SetQuery(query string) {
	m.query = strings.TrimSpace(query)
}

func (m *Search) Purity() Purity {
	return m.purity
}

func (m *Search) SetPurity(purity Purity) error {
	if !purity.Any() {
		return faults.Errorf("%w: at least one purity level must be selected", ErrNothingToSearch)
	}
	m.purity = purity
	return nil
}

func (m *Search) Categories() Categories {
	return m.categories
}

func (m *Search) SetCategories(categories Categories) error {
	if !categories.Any() {
		return faults.Errorf("%w: at least one category must be selected", ErrNothingToSearch)
	}
	m.categories = categories
	return nil
}

func (m *Search) Sorting() Sorting {
	return m.sorting
}

func (m *Search) SetSorting(sorting Sorting) {
	m.sorting = sorting
}

func (m *Search) TopRange() TopRange {
	return m.topRange
}

func (m *Search) SetTopRange(topRange TopRange) {
	m.topRange = topRange
}

// Resolutions returns the selected exact resolutions, sorted.
func (m *Search) Resolutions() []Resolution {
	return sortedSet(m.resolutions)
}

func (m *Search) HasResolution(r Resolution) bool {
	_, ok := m.resolutions[r]
	return ok
}

// ToggleResolution adds or removes an exact resolution. Selecting one leaves
// the minimum resolution mode.
func (m *Search) ToggleResolution(r Resolution) {
	if _, ok := m.resolutions[r]; ok {
		delete(m.resolutions, r)
		return
	}
	m.resolutions[r] = struct{}{}
	m.atLeast = Resolution{}
}

// AtLeast returns the minimum resolution, if set.
func (m *Search) AtLeast() (Resolution, bool) {
	return m.atLeast, !m.atLeast.IsZero()
}

// SetAtLeast switches to the minimum resolution mode, clearing the exact
// resolutions. A zero resolution leaves the mode.
func (m *Search) SetAtLeast(r Resolution) {
	m.atLeast = r
	if !r.IsZero() {
		clear(m.resolutions)
	}
}

func (m *Search) Ratios() []Resolution {
	return sortedSet(m.ratios)
}

func (m *Search) HasRatio(r Resolution) bool {
	_, ok := m.ratios[r]
	return ok
}

func (m *Search) ToggleRatio(r Resolution) {
	if _, ok := m.ratios[r]; ok {
		delete(m.ratios, r)
		return
	}
	m.ratios[r] = struct{}{}
}

func (m *Search) Seed() string {
	return m.seed
}

func (m *Search) Page() int {
	return m.page
}

// Restart goes back to the first page with a new seed.
func (m *Search) Restart(seed string) {
	m.seed = seed
	m.page = 1
}

func (m *Search) SetPage(page int) {
	m.page = max(page, 1)
}

// Encode returns the query parameters understood by the search endpoint.
// Unset values are left out.
func (m *Search) Encode() url.Values {
	v := url.Values{}
	if m.query != "" {
		v.Set("q", m.query)
	}
	if m.page > 0 {
		v.Set("page", strconv.Itoa(m.page))
	}
	v.Set("purity", m.purity.String())
	v.Set("categories", m.categories.String())
	if m.sorting != (Sorting{}) {
		v.Set("sorting", m.sorting.String())
	}
	if m.sorting == TopList && m.topRange != (TopRange{}) {
		v.Set("topRange", m.topRange.String())
	}
	if m.seed != "" {
		v.Set("seed", m.seed)
	}
	if len(m.resolutions) > 0 {
		v.Set("resolutions", join(m.Resolutions()))
	}
	if !m.atLeast.IsZero() {
		v.Set("atleast", m.atLeast.String())
	}
	if len(m.ratios) > 0 {
		v.Set("ratios", join(m.Ratios()))
	}
	return v
}

func toSet(rs []Resolution) map[Resolution]struct{} {
	set := make(map[Resolution]struct{}, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

func sortedSet(set map[Resolution]struct{}) []Resolution {
	return slices.SortedFunc(maps.Keys(set), compareResolution)
}

func join(rs []Resolution) string {
	s := make([]string, len(rs))
	for i, r := range rs {
		s[i] = r.String()
	}
	return strings.Join(s, ",")
}

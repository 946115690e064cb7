package model

import (
	"errors"

	"github.com/quintans/faults"
)

var (
	ErrInvalidSorting  = errors.New("invalid sorting")
	ErrInvalidTopRange = errors.New("invalid top range")
)

type Sorting struct {
	val   string
	label string
}

// String returns the wire value.
func (s Sorting) String() string {
	return s.val
}

func (s Sorting) Label() string {
	return s.label
}

var (
	DateAdded = Sorting{"date_added", "Date Added"}
	Relevance = Sorting{"relevance", "Relevance"}
	Random    = Sorting{"random", "Random"}
	Views     = Sorting{"views", "Views"}
	Favorites = Sorting{"favorites", "Favorites"}
	TopList   = Sorting{"toplist", "Top List"}
)

// Sortings is in display order.
var Sortings = []Sorting{
	DateAdded,
	TopList,
	Relevance,
	Favorites,
	Views,
	Random,
}

// ParseSorting accepts either the wire value or the label.
func ParseSorting(s string) (Sorting, error) {
	for _, v := range Sortings {
		if v.val == s || v.label == s {
			return v, nil
		}
	}
	return Sorting{}, faults.Errorf("%w: %s", ErrInvalidSorting, s)
}

// TopRange is the time window of the top list.
type TopRange struct {
	val   string
	label string
}

func (t TopRange) String() string {
	return t.val
}

func (t TopRange) Label() string {
	return t.label
}

var (
	LastDay         = TopRange{"1d", "Last Day"}
	LastThreeDays   = TopRange{"3d", "Last 3 Days"}
	LastWeek        = TopRange{"1w", "Last Week"}
	LastMonth       = TopRange{"1M", "Last Month"}
	LastThreeMonths = TopRange{"3M", "Last 3 Months"}
	LastSixMonths   = TopRange{"6M", "Last 6 Months"}
	LastYear        = TopRange{"1y", "Last Year"}
)

var TopRanges = []TopRange{
	LastDay,
	LastThreeDays,
	LastWeek,
	LastMonth,
	LastThreeMonths,
	LastSixMonths,
	LastYear,
}

func ParseTopRange(s string) (TopRange, error) {
	for _, v := range TopRanges {
		if v.val == s || v.label == s {
			return v, nil
		}
	}
	return TopRange{}, faults.Errorf("%w: %s", ErrInvalidTopRange, s)
}

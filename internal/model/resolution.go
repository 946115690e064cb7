package model

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/quintans/faults"
)

var ErrInvalidResolution = errors.New("invalid resolution")

// Resolution is a width by height pair. It is also used for aspect ratios.
type Resolution struct {
	X int
	Y int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.X, r.Y)
}

func (r Resolution) IsZero() bool {
	return r.X == 0 && r.Y == 0
}

// Ratio reduces the resolution by the greatest common divisor,
// 1920x1080 becomes 16x9.
func (r Resolution) Ratio() Resolution {
	d := gcd(r.X, r.Y)
	if d == 0 {
		return r
	}
	return Resolution{X: r.X / d, Y: r.Y / d}
}

// CompareRatio orders by the width/height quotient.
func (r Resolution) CompareRatio(o Resolution) int {
	return cmp.Compare(r.X*o.Y, o.X*r.Y)
}

func ParseResolution(s string) (Resolution, error) {
	x, y, ok := strings.Cut(s, "x")
	if !ok {
		return Resolution{}, faults.Errorf("%w: %s", ErrInvalidResolution, s)
	}
	rx, err := strconv.Atoi(x)
	if err != nil || rx <= 0 {
		return Resolution{}, faults.Errorf("%w: %s", ErrInvalidResolution, s)
	}
	ry, err := strconv.Atoi(y)
	if err != nil || ry <= 0 {
		return Resolution{}, faults.Errorf("%w: %s", ErrInvalidResolution, s)
	}
	return Resolution{X: rx, Y: ry}, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

var Resolutions = []Resolution{
	{2560, 1080},
	{3440, 1440},
	{3840, 1600},
	{1280, 720},
	{1600, 900},
	{2560, 1440},
	{1920, 1080},
	{3840, 2160},
	{1280, 800},
	{1600, 1000},
	{1920, 1200},
	{2560, 1600},
	{3840, 2400},
	{1280, 960},
	{1600, 1200},
	{1920, 1440},
	{2560, 1920},
	{3840, 2880},
	{1280, 1024},
	{1600, 1024},
	{1920, 1280},
	{2560, 2048},
}

var Ratios = []Resolution{
	{16, 9},
	{16, 10},
	{21, 9},
	{32, 9},
	{48, 9},
	{9, 16},
	{10, 16},
	{9, 18},
	{1, 1},
	{3, 2},
	{4, 3},
	{5, 4},
}

type ResolutionGroup struct {
	Ratio       Resolution
	Resolutions []Resolution
}

// GroupByRatio groups resolutions by their reduced ratio. Groups are ordered
// by ratio and each group by width then height.
func GroupByRatio(resolutions []Resolution) []ResolutionGroup {
	index := map[Resolution]int{}
	var groups []ResolutionGroup
	for _, r := range resolutions {
		ratio := r.Ratio()
		i, ok := index[ratio]
		if !ok {
			i = len(groups)
			index[ratio] = i
			groups = append(groups, ResolutionGroup{Ratio: ratio})
		}
		groups[i].Resolutions = append(groups[i].Resolutions, r)
	}

	slices.SortFunc(groups, func(a, b ResolutionGroup) int {
		return a.Ratio.CompareRatio(b.Ratio)
	})
	for _, g := range groups {
		slices.SortFunc(g.Resolutions, compareResolution)
	}

	return groups
}

func compareResolution(a, b Resolution) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
}

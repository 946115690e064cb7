package model

import (
	"errors"

	"github.com/quintans/faults"
)

var ErrInvalidFlags = errors.New("invalid flags")

// Purity is the content rating filter. NSFW is only honoured by the API
// when the request carries an API key.
type Purity struct {
	Clean   bool
	Sketchy bool
	NSFW    bool
}

func DefaultPurity() Purity {
	return Purity{Clean: true}
}

// String returns the wire form, e.g. "110".
func (p Purity) String() string {
	return flagsString(p.Clean, p.Sketchy, p.NSFW)
}

func (p Purity) Any() bool {
	return p.Clean || p.Sketchy || p.NSFW
}

func ParsePurity(s string) (Purity, error) {
	f, err := parseFlags(s)
	if err != nil {
		return Purity{}, faults.Errorf("parsing purity: %w", err)
	}
	return Purity{Clean: f[0], Sketchy: f[1], NSFW: f[2]}, nil
}

type Categories struct {
	General bool
	Anime   bool
	People  bool
}

func DefaultCategories() Categories {
	return Categories{General: true, Anime: true, People: true}
}

func (c Categories) String() string {
	return flagsString(c.General, c.Anime, c.People)
}

func (c Categories) Any() bool {
	return c.General || c.Anime || c.People
}

func ParseCategories(s string) (Categories, error) {
	f, err := parseFlags(s)
	if err != nil {
		return Categories{}, faults.Errorf("parsing categories: %w", err)
	}
	return Categories{General: f[0], Anime: f[1], People: f[2]}, nil
}

func flagsString(flags ...bool) string {
	b := make([]byte, len(flags))
	for i, f := range flags {
		b[i] = '0'
		if f {
			b[i] = '1'
		}
	}
	return string(b)
}

// parseFlags reads the first three characters of a bit string. Only '0' and
// '1' are accepted.
func parseFlags(s string) ([3]bool, error) {
	var flags [3]bool
	if len(s) < len(flags) {
		return flags, faults.Errorf("%w: %q is too short", ErrInvalidFlags, s)
	}
	for i := range flags {
		switch s[i] {
		case '0':
		case '1':
			flags[i] = true
		default:
			return flags, faults.Errorf("%w: unexpected %q in %q", ErrInvalidFlags, s[i], s)
		}
	}
	return flags, nil
}

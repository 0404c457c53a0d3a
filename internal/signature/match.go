package signature

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy decides how two located markers are compared.
type Policy int

const (
	// Exact requires byte-identical markers, so zero padding must agree.
	Exact Policy = iota
	// Numeric compares digit runs with leading zeros removed.
	Numeric
)

func (p Policy) String() string {
	if p == Numeric {
		return "numeric"
	}
	return "exact"
}

// ParsePolicy maps a configuration value onto a Policy. Empty selects Exact.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "exact":
		return Exact, nil
	case "numeric":
		return Numeric, nil
	default:
		return Exact, fmt.Errorf("unknown matching policy %q (want exact or numeric)", value)
	}
}

// Normalize lowercases a name without regard to locale.
func Normalize(name string) string {
	// cases.Caser carries state, so one is built per call.
	return cases.Lower(language.Und).String(name)
}

// Extract normalizes name and returns its season and episode markers. It
// reports false unless both are present.
func Extract(name string) (Signature, bool) {
	normalized := Normalize(name)
	season, ok := Locate(Season, normalized)
	if !ok {
		return Signature{}, false
	}
	episode, ok := Locate(Episode, normalized)
	if !ok {
		return Signature{}, false
	}
	return Signature{
		Season:  season.Slice(normalized),
		Episode: episode.Slice(normalized),
	}, true
}

// Matches reports whether both names carry identical season and episode
// markers under the Exact policy.
func Matches(first, second string) Result {
	return Matcher{Policy: Exact}.Match(first, second)
}

// Matcher compares names under a configurable policy. The zero value uses
// Exact.
type Matcher struct {
	Policy Policy
}

// Match compares the signatures of two raw names.
func (m Matcher) Match(first, second string) Result {
	a, ok := Extract(first)
	if !ok {
		return NoMatch
	}
	b, ok := Extract(second)
	if !ok {
		return NoMatch
	}
	if m.Equal(a, b) {
		return Match
	}
	return NoMatch
}

// Equal compares two extracted signatures under the matcher's policy.
func (m Matcher) Equal(a, b Signature) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	if m.Policy == Numeric {
		return sameNumber(a.Season, b.Season) && sameNumber(a.Episode, b.Episode)
	}
	return a.Season == b.Season && a.Episode == b.Episode
}

// sameNumber compares two markers such as "s01" and "s1" by their digit value.
func sameNumber(a, b string) bool {
	if a == "" || b == "" || a[0] != b[0] {
		return false
	}
	return trimZeros(a[1:]) == trimZeros(b[1:])
}

func trimZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

package signature

import (
	"errors"
	"fmt"
	"strings"
)

// Type selects which marker letter to search for.
type Type int

// Marker types. Season looks for 's', Episode for 'e'.
const (
	Season Type = iota
	Episode
)

// Marker returns the lowercase letter introducing the signature.
func (t Type) Marker() byte {
	if t == Episode {
		return 'e'
	}
	return 's'
}

func (t Type) String() string {
	switch t {
	case Season:
		return "season"
	case Episode:
		return "episode"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// ErrInvalidRange reports a range whose start lies after its end.
var ErrInvalidRange = errors.New("invalid signature range")

// Range locates a marker inside a normalized name. Start is the byte offset of
// the marker letter and End is the offset of the last digit that follows it,
// so the marker occupies name[Start:End+1].
type Range struct {
	Start int
	End   int
}

// NewRange validates and builds a Range.
func NewRange(start, end int) (Range, error) {
	if start < 0 || start > end {
		return Range{}, fmt.Errorf("%w: start %d, end %d", ErrInvalidRange, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// mustRange is used by the locator, which only ever derives end from start
// plus a non-negative digit count.
func mustRange(start, end int) Range {
	r, err := NewRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of bytes covered, marker letter included.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// Digits returns the number of digits following the marker letter.
func (r Range) Digits() int {
	return r.End - r.Start
}

// Slice returns the marker substring (e.g. "s04") from the name the range was
// located in.
func (r Range) Slice(name string) string {
	return name[r.Start : r.End+1]
}

// Result is the outcome of comparing two names.
type Result int

// Comparison results. NoMatch is the zero value and also covers names
// without a complete signature.
const (
	NoMatch Result = iota
	Match
)

func (r Result) String() string {
	if r == Match {
		return "match"
	}
	return "no match"
}

// Signature holds the literal season and episode markers of one name, e.g.
// {"s04", "e01"}.
type Signature struct {
	Season  string
	Episode string
}

// String renders the signature the way release names usually spell it.
func (s Signature) String() string {
	return strings.ToUpper(s.Season + s.Episode)
}

// IsZero reports whether no signature was extracted.
func (s Signature) IsZero() bool {
	return s.Season == "" && s.Episode == ""
}

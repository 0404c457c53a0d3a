package signature

import "strings"

// Locate finds the first occurrence of the marker letter for t that is
// directly followed by at least one ASCII digit. The name must already be
// normalized (see Normalize). It reports false when no such occurrence exists.
func Locate(t Type, name string) (Range, bool) {
	chunks := strings.Split(name, string(t.Marker()))

	// offset tracks where the current chunk begins within name.
	offset := 0
	for i, chunk := range chunks {
		if i > 0 {
			if digits := leadingDigits(chunk); digits > 0 {
				marker := offset - 1
				return mustRange(marker, marker+digits), true
			}
		}
		offset += len(chunk) + 1
	}
	return Range{}, false
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

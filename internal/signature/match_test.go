package signature_test

import (
	"testing"

	"subrename/internal/signature"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		want   signature.Result
	}{
		{"identical signatures", "Hellos01e02mov", "Hellos01e02WebSub", signature.Match},
		{"space between markers", "Hellos01e02mov", "Hellos01 e02mov", signature.Match},
		{"second has no markers", "Hellos01e02mov", "HelloWorld", signature.NoMatch},
		{"episode differs", "some.video.file.S04 E01.mp4", "some.video.file.S04E10.srt", signature.NoMatch},
		{"spaced release matches", "some.video.file.S04 E01.mp4", "some.video.file.S04E01.srt", signature.Match},
		{"spaced release matches double digits", "some.video.file.S04 E10.mp4", "some.video.file.S04E10.srt", signature.Match},
		{"padding differs", "S1E1.mkv", "S01E01.srt", signature.NoMatch},
		{"season prefix is not a match", "show.s1e1.mkv", "show.s10e1.srt", signature.NoMatch},
		{"season only", "Hellos01.mp4", "Hellos01.srt", signature.NoMatch},
		{"case insensitive", "SHOW.S02E03.MKV", "show.s02e03.srt", signature.Match},
		{"both empty", "", "", signature.NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := signature.Matches(tt.first, tt.second); got != tt.want {
				t.Fatalf("Matches(%q, %q) = %s, want %s", tt.first, tt.second, got, tt.want)
			}
			if got := signature.Matches(tt.second, tt.first); got != tt.want {
				t.Fatalf("Matches(%q, %q) = %s, want %s (reversed)", tt.second, tt.first, got, tt.want)
			}
		})
	}
}

func TestNumericPolicyIgnoresPadding(t *testing.T) {
	m := signature.Matcher{Policy: signature.Numeric}
	if got := m.Match("S1E1.mkv", "S01E01.srt"); got != signature.Match {
		t.Fatalf("numeric policy: got %s, want match", got)
	}
	if got := m.Match("show.s1e1.mkv", "show.s10e1.srt"); got != signature.NoMatch {
		t.Fatalf("numeric policy must not confuse s1 and s10, got %s", got)
	}
	if got := m.Match("show.s00e00.mkv", "show.s0e0.srt"); got != signature.Match {
		t.Fatalf("numeric policy should treat all-zero runs as zero, got %s", got)
	}
}

func TestExtract(t *testing.T) {
	sig, ok := signature.Extract("Some.Show.S04E01.1080p.mkv")
	if !ok {
		t.Fatal("expected signature")
	}
	if sig.Season != "s04" || sig.Episode != "e01" {
		t.Fatalf("unexpected signature %+v", sig)
	}
	if sig.String() != "S04E01" {
		t.Fatalf("String = %q, want S04E01", sig.String())
	}
	if _, ok := signature.Extract("Some.Show.S04.mkv"); ok {
		t.Fatal("expected no signature without an episode marker")
	}
}

func TestExtractKeepsNonASCIIOpaque(t *testing.T) {
	sig, ok := signature.Extract("Café Crème S01E02.mkv")
	if !ok {
		t.Fatal("expected signature")
	}
	if sig.Season != "s01" || sig.Episode != "e02" {
		t.Fatalf("unexpected signature %+v", sig)
	}
}

func TestParsePolicy(t *testing.T) {
	for value, want := range map[string]signature.Policy{
		"":         signature.Exact,
		"exact":    signature.Exact,
		" Numeric": signature.Numeric,
	} {
		got, err := signature.ParsePolicy(value)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", value, err)
		}
		if got != want {
			t.Fatalf("ParsePolicy(%q) = %s, want %s", value, got, want)
		}
	}
	if _, err := signature.ParsePolicy("fuzzy"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func FuzzMatches(f *testing.F) {
	seeds := [][2]string{
		{"Hellos01e02mov", "Hellos01e02WebSub"},
		{"some.video.file.S04 E01.mp4", "some.video.file.S04E10.srt"},
		{"S1E1.mkv", "S01E01.srt"},
		{"helees01e23", "HELEES01E23.srt"},
		{"", "s01e01"},
	}
	for _, seed := range seeds {
		f.Add(seed[0], seed[1])
	}

	f.Fuzz(func(t *testing.T, a, b string) {
		got := signature.Matches(a, b)
		if again := signature.Matches(a, b); again != got {
			t.Fatalf("non-deterministic result for %q, %q", a, b)
		}
		if reversed := signature.Matches(b, a); reversed != got {
			t.Fatalf("asymmetric result for %q, %q", a, b)
		}
		if _, ok := signature.Extract(a); !ok && got != signature.NoMatch {
			t.Fatalf("%q has no signature but matched %q", a, b)
		}
		if isASCII(a) {
			if upper := signature.Matches(asciiUpper(a), b); upper != got {
				t.Fatalf("case sensitive result for %q, %q", a, b)
			}
		}
	})
}

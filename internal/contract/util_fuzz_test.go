package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateName checks that truncation never grows a name and keeps valid UTF-8.
func FuzzTruncateName(f *testing.F) {
	f.Add("Claims Processing", 10)
	f.Add("Zürich Ledger", 8)
	f.Add("", 0)
	f.Add("abc", -5)

	f.Fuzz(func(t *testing.T, name string, width int) {
		if !utf8.ValidString(name) {
			t.Skip()
		}
		out := TruncateName(name, width)
		if utf8.RuneCountInString(out) > utf8.RuneCountInString(name) {
			t.Fatalf("truncated %q grew to %q", name, out)
		}
		if !utf8.ValidString(out) {
			t.Fatalf("invalid UTF-8 from %q", name)
		}
	})
}

// FuzzIsIdentifier checks that accepted identifiers never carry SQL metacharacters.
func FuzzIsIdentifier(f *testing.F) {
	for _, seed := range []string{"datamart", "x;drop", "1abc", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !IsIdentifier(s) {
			return
		}
		for _, r := range s {
			if r == ';' || r == '"' || r == '\'' || r == ' ' || r == '-' {
				t.Fatalf("identifier %q accepted with %q", s, r)
			}
		}
	})
}

package stringsx

import "strings"

// Splits s at every occurrence of any of the separators. Empty fields between adjacent separators
// are kept, but a separator at the very end doesn't produce a final empty field.
func SplitMulti(s string, seps []string) []string {
	out := make([]string, 0, 8)

	var i int
	for j := 0; j < len(s); j++ {
		for _, sep := range seps {
			if sep == "" || !strings.HasPrefix(s[j:], sep) {
				continue
			}
			out = append(out, s[i:j])
			j += len(sep) - 1
			i = j + 1
			break
		}
	}
	if i < len(s) {
		out = append(out, s[i:])
	}

	return out
}

// Every character of chars is a separator.
func SplitChars(s, chars string) []string {
	seps := make([]string, 0, len(chars))
	for _, r := range chars {
		seps = append(seps, string(r))
	}
	return SplitMulti(s, seps)
}

package match

import "strings"

// minWordLen filters tokens for the text-matching tier; short words like
// "the" or "app" match everything and nothing.
const minWordLen = 4

// searchWords tokenizes a free-text key into usable words: punctuation
// stripped, lowercased, shorter-than-threshold tokens dropped.
func searchWords(key string) []string {
	var out []string
	for _, w := range splitWords(key) {
		if len(w) >= minWordLen {
			out = append(out, w)
		}
	}
	return out
}

// splitWords breaks s on anything that is not a letter or digit.
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		}
		return true
	})
}

// hasWord reports whether any field contains word as an exact token.
func hasWord(word string, fields ...string) bool {
	for _, f := range fields {
		for _, w := range splitWords(f) {
			if w == word {
				return true
			}
		}
	}
	return false
}

// containsFold reports case-insensitive substring containment across fields.
func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

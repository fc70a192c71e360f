package textutil

import "strings"

// SanitizeFileName strips characters that are unsafe in filenames. Path
// separators, colons, and asterisks become dashes; the remaining reserved
// characters are dropped. Surrounding whitespace is trimmed.
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*':
			return '-'
		case '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	return strings.TrimSpace(cleaned)
}

// SanitizeToken lowers a string into a filesystem-safe token: letters and
// digits pass through lowercased, hyphens and underscores are kept, anything
// else becomes an underscore. Empty input yields "unknown".
func SanitizeToken(value string) string {
	token := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, strings.TrimSpace(value))
	token = strings.Trim(token, "_-")
	if token == "" {
		return "unknown"
	}
	return token
}

package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var resolutionDigitsPattern = regexp.MustCompile(`(?i)^\d{3,4}p$`)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// CanonicalResolution maps a raw resolution token to canonical form: 4k and
// 4K become 2160p, digit forms are lowercased. Empty stays empty.
func CanonicalResolution(token string) string {
	if strings.EqualFold(token, "4k") {
		return "2160p"
	}
	return strings.ToLower(token)
}

// ResolutionForHeight maps a probed pixel height to the canonical resolution
// token, or "" below the supported thresholds.
func ResolutionForHeight(height int) string {
	switch {
	case height >= 2160:
		return "2160p"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 480:
		return "480p"
	default:
		return ""
	}
}

// Rebuild assembles the canonical directory name from tokens and the
// resolved year: Title Year Resolution Language, with special markers
// repositioned directly after the resolution. Title tokens equal to the
// final year are dropped so the year appears exactly once.
func Rebuild(t Tokens, year string, vocab *Vocabulary) string {
	title := t.Title
	if year != "" {
		var kept []string
		for _, tok := range strings.Fields(title) {
			if tok != year {
				kept = append(kept, tok)
			}
		}
		title = strings.Join(kept, " ")
	}

	parts := make([]string, 0, 4)
	if title != "" {
		parts = append(parts, title)
	}
	if year != "" {
		parts = append(parts, year)
	}
	if t.Resolution != "" {
		parts = append(parts, CanonicalResolution(t.Resolution))
	}
	if t.Language != "" {
		parts = append(parts, t.Language)
	}

	name := standardize(strings.Join(parts, " "), vocab)
	return repositionSpecialTags(name)
}

// standardize normalizes an assembled name token by token: pure digit tokens
// stay untouched, 4k becomes 2160p, resolution tokens are lowercased, and
// language tokens take their vocabulary casing. Remaining title tokens keep
// any casing the input supplied; only fully lowercase words gain a capital.
func standardize(name string, vocab *Vocabulary) string {
	tokens := strings.Fields(name)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch {
		case isDigits(tok):
			out = append(out, tok)
		case strings.EqualFold(tok, "4k"):
			out = append(out, "2160p")
		case resolutionDigitsPattern.MatchString(tok):
			out = append(out, strings.ToLower(tok))
		default:
			if canonical, ok := vocab.Canonical(tok); ok {
				out = append(out, canonical)
			} else {
				out = append(out, capitalizeToken(tok))
			}
		}
	}
	return strings.Join(out, " ")
}

// capitalizeToken uppercases the first letter of a token that carries no
// casing signal of its own. Tokens with any uppercase letter, or starting
// with a digit or punctuation, are preserved verbatim.
func capitalizeToken(tok string) string {
	first, _ := utf8.DecodeRuneInString(tok)
	if !unicode.IsLower(first) {
		return tok
	}
	for _, r := range tok {
		if unicode.IsUpper(r) {
			return tok
		}
	}
	return titleCaser.String(tok)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// BaseTitle strips year, resolution, and language tokens from a final name,
// leaving the grouping key used for duplicate detection.
func BaseTitle(name string, vocab *Vocabulary) string {
	base := yearPattern.ReplaceAllString(name, "")
	base = resolutionPattern.ReplaceAllString(base, "")
	for _, entry := range vocab.Languages() {
		base = vocab.strip(base, entry)
	}
	return strings.Join(strings.Fields(base), " ")
}

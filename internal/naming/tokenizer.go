package naming

import (
	"regexp"
	"strings"
)

var (
	yearPattern         = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	wrappedYearPattern  = regexp.MustCompile(`\((\d{4})\)`)
	resolutionPattern   = regexp.MustCompile(`(?i)\b(\d{3,4}p|4k)\b`)
	blurayPattern       = regexp.MustCompile(`(?i)\bblu-?ray\b`)
	audioQualityPattern = regexp.MustCompile(`\b(?:2|4|5|6|7)\.1\b`)
	separatorPattern    = regexp.MustCompile(`[._]+`)
	abbreviationPattern = regexp.MustCompile(`\b(?:[A-Za-z]{1,3}\.){1,}[A-Za-z]{1,3}\.?\b`)
	prefixPattern       = regexp.MustCompile(`^[^-]+\s-\s`)
)

// dotPlaceholder shields abbreviation dots from separator collapsing.
const dotPlaceholder = "\x00"

// Tokens is the semantic decomposition of a single directory name. It is a
// value type; the canonicalizer rebuilds the final name from it without
// consulting the raw input again.
type Tokens struct {
	// Title is the residual title text after classified tokens are removed.
	// Special markers such as IMAX or HDR stay embedded here; they are
	// repositioned during reassembly.
	Title string
	// Years holds every word-bounded 19xx/20xx token in order of appearance.
	Years []string
	// Resolution is the first resolution token with its original casing,
	// or "" when the name carries none.
	Resolution string
	// Language is the canonical vocabulary spelling, or "" when absent.
	Language string
}

// Tokenize splits a raw directory name into semantic tokens. Years are
// collected from the raw name before any cleanup so separator styles and
// wrapped years cannot hide them. The title is scrubbed of the classified
// tokens, release noise (BluRay, audio-channel tags), and scene-style
// dot/underscore separators, with dots inside abbreviations preserved.
func Tokenize(raw string, vocab *Vocabulary) Tokens {
	t := Tokens{}
	work := strings.TrimSpace(raw)

	for _, match := range yearPattern.FindAllStringSubmatch(work, -1) {
		t.Years = append(t.Years, match[1])
	}

	t.Language = vocab.Match(work)
	if t.Language != "" {
		work = vocab.strip(work, t.Language)
	}

	if loc := resolutionPattern.FindStringIndex(work); loc != nil {
		t.Resolution = work[loc[0]:loc[1]]
		token := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t.Resolution) + `\b`)
		work = token.ReplaceAllString(work, "")
	}

	work = wrappedYearPattern.ReplaceAllString(work, "$1")
	work = blurayPattern.ReplaceAllString(work, "")
	work = audioQualityPattern.ReplaceAllString(work, "")

	work = abbreviationPattern.ReplaceAllStringFunc(work, func(m string) string {
		return strings.ReplaceAll(m, ".", dotPlaceholder)
	})
	work = separatorPattern.ReplaceAllString(work, " ")
	work = strings.ReplaceAll(work, dotPlaceholder, ".")

	t.Title = strings.Join(strings.Fields(work), " ")
	return t
}

// FindResolution returns the first resolution token in name with its
// original casing, or "" when absent.
func FindResolution(name string) string {
	return resolutionPattern.FindString(name)
}

// FindYear returns the first year token in name, or "" when absent.
func FindYear(name string) string {
	return yearPattern.FindString(name)
}

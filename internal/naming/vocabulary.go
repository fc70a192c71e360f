package naming

import (
	"regexp"
	"strings"
)

// Vocabulary is the set of canonical language spellings recognized in
// directory names. Matching is whole-word and case-insensitive; canonical
// casing always comes from the vocabulary entry, never from the input.
type Vocabulary struct {
	canonical []string
	patterns  []*regexp.Regexp
}

// NewVocabulary compiles a vocabulary from the configured language list.
// Blank entries are dropped.
func NewVocabulary(languages []string) *Vocabulary {
	v := &Vocabulary{}
	for _, entry := range languages {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		v.canonical = append(v.canonical, trimmed)
		v.patterns = append(v.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(trimmed)+`\b`))
	}
	return v
}

// Languages returns the canonical spellings in vocabulary order.
func (v *Vocabulary) Languages() []string {
	out := make([]string, len(v.canonical))
	copy(out, v.canonical)
	return out
}

// Match returns the canonical spelling of the first vocabulary entry that
// appears as a whole word in name, or "" when none match.
func (v *Vocabulary) Match(name string) string {
	for i, pattern := range v.patterns {
		if pattern.MatchString(name) {
			return v.canonical[i]
		}
	}
	return ""
}

// Canonical maps a single token to its canonical spelling by case-insensitive
// equality. The second return reports whether the token is in the vocabulary.
func (v *Vocabulary) Canonical(token string) (string, bool) {
	for _, entry := range v.canonical {
		if strings.EqualFold(token, entry) {
			return entry, true
		}
	}
	return "", false
}

// strip removes every whole-word occurrence of the given canonical entry.
func (v *Vocabulary) strip(name, canonical string) string {
	for i, entry := range v.canonical {
		if entry == canonical {
			return v.patterns[i].ReplaceAllString(name, "")
		}
	}
	return name
}

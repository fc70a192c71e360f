package naming

import (
	"regexp"
	"strings"
)

var resolutionTokenPattern = regexp.MustCompile(`(?i)^(\d{3,4}p|4k)$`)

// specialTags records the first occurrence of each special marker with the
// casing it had in the input. The AI-upscale group is atomic: all three
// words or none.
type specialTags struct {
	imax string
	hdr  string
	ai   []string
}

func (s specialTags) empty() bool {
	return s.imax == "" && s.hdr == "" && len(s.ai) == 0
}

// sequence returns the markers in their canonical order after the
// resolution token: IMAX, HDR, then the AI-upscale group.
func (s specialTags) sequence() []string {
	var seq []string
	if s.imax != "" {
		seq = append(seq, s.imax)
	}
	if s.hdr != "" {
		seq = append(seq, s.hdr)
	}
	return append(seq, s.ai...)
}

func isAIGroup(tokens []string, i int) bool {
	return i+2 < len(tokens) &&
		strings.EqualFold(tokens[i], "ai") &&
		strings.EqualFold(tokens[i+1], "upscaled") &&
		strings.EqualFold(tokens[i+2], "60fps")
}

func extractSpecialTags(tokens []string) specialTags {
	var tags specialTags
	for i := 0; i < len(tokens); {
		switch {
		case tags.imax == "" && strings.EqualFold(tokens[i], "imax"):
			tags.imax = tokens[i]
			i++
		case tags.hdr == "" && strings.EqualFold(tokens[i], "hdr"):
			tags.hdr = tokens[i]
			i++
		case len(tags.ai) == 0 && isAIGroup(tokens, i):
			tags.ai = []string{tokens[i], tokens[i+1], tokens[i+2]}
			i += 3
		default:
			i++
		}
	}
	return tags
}

// removeSpecialTags drops the first occurrence of each marker, keeping any
// repeats so duplicate detection still sees them.
func removeSpecialTags(tokens []string) []string {
	var cleaned []string
	var removedIMAX, removedHDR, removedAI bool
	for j := 0; j < len(tokens); {
		switch {
		case !removedAI && isAIGroup(tokens, j):
			removedAI = true
			j += 3
		case !removedIMAX && strings.EqualFold(tokens[j], "imax"):
			removedIMAX = true
			j++
		case !removedHDR && strings.EqualFold(tokens[j], "hdr"):
			removedHDR = true
			j++
		default:
			cleaned = append(cleaned, tokens[j])
			j++
		}
	}
	return cleaned
}

func findResolutionIndex(tokens []string) int {
	for i, tok := range tokens {
		if resolutionTokenPattern.MatchString(tok) {
			return i
		}
	}
	return -1
}

func sequenceInPlace(tokens []string, resIndex int, expected []string) bool {
	rest := tokens[resIndex+1:]
	if len(rest) < len(expected) {
		return false
	}
	for i, want := range expected {
		if !strings.EqualFold(rest[i], want) {
			return false
		}
	}
	return true
}

// repositionSpecialTags moves IMAX, HDR, and the AI-upscale group so they sit
// immediately after the resolution token, in that order, preserving the
// casing each marker had. Names without a resolution token are left alone,
// as are names where the markers are already in place.
func repositionSpecialTags(name string) string {
	tokens := strings.Fields(name)
	resIndex := findResolutionIndex(tokens)
	if resIndex < 0 {
		return name
	}
	tags := extractSpecialTags(tokens)
	if tags.empty() {
		return name
	}
	expected := tags.sequence()
	if sequenceInPlace(tokens, resIndex, expected) {
		return name
	}
	cleaned := removeSpecialTags(tokens)
	resIndex = findResolutionIndex(cleaned)
	if resIndex < 0 {
		return name
	}
	rebuilt := make([]string, 0, len(cleaned)+len(expected))
	rebuilt = append(rebuilt, cleaned[:resIndex+1]...)
	rebuilt = append(rebuilt, expected...)
	rebuilt = append(rebuilt, cleaned[resIndex+1:]...)
	return strings.Join(rebuilt, " ")
}

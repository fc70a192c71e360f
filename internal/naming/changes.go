package naming

import (
	"regexp"
	"slices"
	"strings"
)

var prefixSplitPattern = regexp.MustCompile(`^[^-]+\s-\s(.+)$`)

// Change tags attached to rename records. They describe what the rename
// accomplished; they never gate correctness.
const (
	ChangeAddPrefix         = "Add Prefix"
	ChangeAddYear           = "Add Year"
	ChangeCorrectYear       = "Correct Year"
	ChangeAddResolution     = "Add Resolution"
	ChangeCorrectResolution = "Correct Resolution"
	ChangeRemoveDuplicates  = "Remove Duplicate Tokens"
	ChangeReorderTokens     = "Reorder Tokens"
	ChangeStandardizeCasing = "Standardize Casing"
	ChangeNormalizeFormat   = "Normalize Format"
)

// DetectChanges classifies the difference between an old and a new directory
// name as an ordered list of tags. A nil result means the rename is not
// worth performing.
func DetectChanges(oldName, newName string) []string {
	if oldName == newName {
		return nil
	}
	oldNorm := strings.Join(strings.Fields(oldName), " ")
	newNorm := strings.Join(strings.Fields(newName), " ")
	if oldNorm == newNorm {
		return []string{ChangeNormalizeFormat}
	}

	var tags []string

	if prefixPattern.MatchString(newName) && !prefixPattern.MatchString(oldName) {
		tags = append(tags, ChangeAddPrefix)
	}

	oldYear := yearPattern.FindString(oldName)
	newYear := yearPattern.FindString(newName)
	switch {
	case newYear != "" && oldYear == "":
		tags = append(tags, ChangeAddYear)
	case newYear != "" && oldYear != "" && newYear != oldYear:
		tags = append(tags, ChangeCorrectYear)
	}

	oldRes := resolutionPattern.FindString(oldName)
	newRes := resolutionPattern.FindString(newName)
	switch {
	case newRes != "" && oldRes == "":
		tags = append(tags, ChangeAddResolution)
	case newRes != "" && oldRes != "" && !strings.EqualFold(newRes, oldRes):
		tags = append(tags, ChangeCorrectResolution)
	}

	oldTokens := strings.Fields(stripPrefix(oldName))
	newTokens := strings.Fields(stripPrefix(newName))

	if hasDuplicateTokens(oldTokens) && !hasDuplicateTokens(newTokens) {
		tags = append(tags, ChangeRemoveDuplicates)
	}
	if tokensReordered(oldTokens, newTokens) {
		tags = append(tags, ChangeReorderTokens)
	}
	if casingChanged(oldTokens, newTokens) {
		tags = append(tags, ChangeStandardizeCasing)
	}

	if len(tags) == 0 {
		if oldNorm != newNorm {
			return []string{ChangeNormalizeFormat}
		}
		return nil
	}
	return tags
}

// FormatChanges renders tags the way progress output and reports show them.
func FormatChanges(tags []string) string {
	return strings.Join(tags, " + ")
}

// stripPrefix drops a leading "X - " collection prefix when present.
func stripPrefix(name string) string {
	if m := prefixSplitPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

func hasDuplicateTokens(tokens []string) bool {
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

func lowered(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.ToLower(tok)
	}
	return out
}

// tokensReordered reports whether the two names carry the same tokens in a
// different order, ignoring case.
func tokensReordered(oldTokens, newTokens []string) bool {
	lo := lowered(oldTokens)
	ln := lowered(newTokens)
	if slices.Equal(lo, ln) {
		return false
	}
	slices.Sort(lo)
	slices.Sort(ln)
	return slices.Equal(lo, ln)
}

// casingChanged reports whether only token casing differs.
func casingChanged(oldTokens, newTokens []string) bool {
	return slices.Equal(lowered(oldTokens), lowered(newTokens)) &&
		!slices.Equal(oldTokens, newTokens)
}

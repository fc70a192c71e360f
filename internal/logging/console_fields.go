package logging

import (
	"log/slog"
	"strings"
)

type infoField struct {
	label string
	value string
}

const infoAttrLimit = 8

var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	"old_name",
	"new_name",
	"changes",
	"reason",
	"title",
	"year",
	"year_source",
	"resolution",
	"resolution_source",
	"language",
	"status",
	"error_message",
	FieldErrorHint,
	// Run summary fields
	"directories_scanned",
	"directories_renamed",
	"directories_skipped",
	"directories_failed",
	"subtitles_synced",
	"duplicate_groups",
	"lookups",
	"lookup_cache_hits",
	"elapsed",
	"reverted_now",
	"already_reverted",
	"missing",
	"conflicts",
}

// selectInfoFields returns formatted info-level fields and a count of hidden entries.
// limit=0 means no limit. includeDebug controls whether debug-only keys are allowed.
func selectInfoFields(attrs []kv, limit int, includeDebug bool) ([]infoField, int) {
	if len(attrs) == 0 {
		return nil, 0
	}
	if limit < 0 {
		limit = 0
	}
	used := make([]bool, len(attrs))
	formatted := make([]string, len(attrs))
	formattedSet := make([]bool, len(attrs))
	ensureValue := func(idx int) string {
		if !formattedSet[idx] {
			formatted[idx] = formatValueForKey(attrs[idx].key, attrs[idx].value)
			formattedSet[idx] = true
		}
		return formatted[idx]
	}
	result := make([]infoField, 0, infoAttrLimit)
	hidden := 0

	for _, key := range infoHighlightKeys {
		if limit > 0 && len(result) >= limit {
			break
		}
		for idx, attr := range attrs {
			if used[idx] || attr.key != key {
				continue
			}
			used[idx] = true
			if skipInfoKey(attr.key) {
				break
			}
			if !includeDebug && isDebugOnlyKey(attr.key) {
				hidden++
				break
			}
			val := ensureValue(idx)
			if !includeDebug && shouldHideInfoValue(attr.key, val) {
				hidden++
				break
			}
			result = append(result, infoField{label: displayLabel(attr.key), value: val})
			break
		}
	}

	for idx, attr := range attrs {
		if used[idx] {
			continue
		}
		used[idx] = true
		if skipInfoKey(attr.key) {
			continue
		}
		if !includeDebug && isDebugOnlyKey(attr.key) {
			hidden++
			continue
		}
		val := ensureValue(idx)
		if !includeDebug && shouldHideInfoValue(attr.key, val) {
			hidden++
			continue
		}
		if limit <= 0 || len(result) < limit {
			result = append(result, infoField{label: displayLabel(attr.key), value: val})
		} else if limit > 0 {
			hidden++
		}
	}

	return result, hidden
}

// formatValueForKey applies smart formatting based on the key name.
func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()

	if isDurationKey(key) && v.Kind() == slog.KindDuration {
		return formatDurationHuman(v.Duration())
	}

	if v.Kind() == slog.KindBool {
		if v.Bool() {
			return "yes"
		}
		return "no"
	}

	value := formatValue(v)
	if key == "error" || key == "error_message" {
		value = truncateErrorValue(value)
	}
	return value
}

// isDurationKey returns true if the key represents a duration.
func isDurationKey(key string) bool {
	return strings.HasSuffix(key, "_duration") ||
		strings.HasSuffix(key, "_elapsed") ||
		strings.HasSuffix(key, "_latency") ||
		key == "elapsed" ||
		key == "duration" ||
		key == "backoff"
}

func truncateErrorValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	const maxLen = 200
	if len(value) > maxLen {
		value = value[:maxLen] + "…"
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldDirectory, FieldStage, FieldComponent:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	if key == "" {
		return true
	}
	switch key {
	case FieldRunID,
		"query",
		"year_filter",
		"candidates",
		"cache_hit",
		"probe_file",
		"height",
		"attempt":
		return true
	}
	if strings.HasSuffix(key, "_id") {
		return true
	}
	if strings.HasPrefix(key, "tmdb") || strings.HasPrefix(key, "ffprobe") {
		return true
	}
	if strings.Contains(key, "_path") || strings.Contains(key, "_dir") {
		return true
	}
	return false
}

func shouldHideInfoValue(key, value string) bool {
	switch key {
	case "error_message", "error", "changes", "old_name", "new_name":
		return false
	}
	return len(value) > 120
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldRoot:
		return "Root"
	case "old_name":
		return "From"
	case "new_name":
		return "To"
	case "changes":
		return "Changes"
	case "reason":
		return "Reason"
	case "title":
		return "Title"
	case "year":
		return "Year"
	case "year_source":
		return "Year Source"
	case "resolution":
		return "Resolution"
	case "resolution_source":
		return "Resolution Source"
	case "language":
		return "Language"
	case "status":
		return "Status"
	case "elapsed":
		return "Elapsed"
	case "directories_scanned":
		return "Scanned"
	case "directories_renamed":
		return "Renamed"
	case "directories_skipped":
		return "Skipped"
	case "directories_failed":
		return "Failed"
	case "subtitles_synced":
		return "Subtitles"
	case "duplicate_groups":
		return "Duplicates"
	case "lookups":
		return "Lookups"
	case "lookup_cache_hits":
		return "Cache Hits"
	case "reverted_now":
		return "Reverted"
	case "already_reverted":
		return "Already Reverted"
	case "missing":
		return "Missing"
	case "conflicts":
		return "Conflicts"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return strings.ToUpper(key[:1]) + strings.ToLower(key[1:])
	}
	for i, part := range parts {
		parts[i] = capitalizeASCII(part)
	}
	return strings.Join(parts, " ")
}

func capitalizeASCII(value string) string {
	switch len(value) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(value)
	default:
		lower := strings.ToLower(value)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}

func infoSummaryKey(component, directory string, attrs []kv) string {
	directory = strings.TrimSpace(directory)
	if directory == "" {
		if root := attrValue(attrs, FieldRoot); root != "" {
			directory = "root:" + root
		} else if component != "" {
			directory = component
		}
	}
	return directory
}

func attrValue(attrs []kv, key string) string {
	for _, kv := range attrs {
		if kv.key == key {
			return attrString(kv.value)
		}
	}
	return ""
}

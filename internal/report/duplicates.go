package report

import (
	"slices"
	"strings"
	"time"

	"marquee/internal/naming"
)

// DuplicateRecord is one directory's membership in a duplicate group.
type DuplicateRecord struct {
	InputRoot  string `json:"input_root"`
	OldName    string `json:"old_name"`
	NewName    string `json:"new_name"`
	Resolution string `json:"resolution"`
	Language   string `json:"language"`
}

// DuplicateReport maps base titles to the records that share them. Only
// groups with more than one record and more than one distinct
// (resolution, language) combination are kept: same-edition copies are not
// duplicates worth flagging.
type DuplicateReport struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	Duplicates  map[string][]DuplicateRecord `json:"duplicates"`
}

// Duplicates derives the duplicate-group view from a rename report. Roots
// are visited in sorted order so record order is deterministic.
func Duplicates(r *Report, vocab *naming.Vocabulary) *DuplicateReport {
	groups := make(map[string][]DuplicateRecord)

	rootKeys := make([]string, 0, len(r.InputDirs))
	for rootKey := range r.InputDirs {
		rootKeys = append(rootKeys, rootKey)
	}
	slices.Sort(rootKeys)
	for _, rootKey := range rootKeys {
		for _, record := range r.InputDirs[rootKey].DirectoriesModified {
			base := naming.BaseTitle(record.NewName, vocab)
			if base == "" {
				continue
			}

			resolution := naming.FindResolution(record.NewName)
			if strings.EqualFold(resolution, "4k") {
				resolution = "2160p"
			}

			groups[base] = append(groups[base], DuplicateRecord{
				InputRoot:  rootKey,
				OldName:    record.OldName,
				NewName:    record.NewName,
				Resolution: resolution,
				Language:   vocab.Match(record.NewName),
			})
		}
	}

	filtered := make(map[string][]DuplicateRecord)
	for title, records := range groups {
		if len(records) < 2 {
			continue
		}
		combos := make(map[[2]string]struct{}, len(records))
		for _, record := range records {
			combos[[2]string{record.Resolution, record.Language}] = struct{}{}
		}
		if len(combos) > 1 {
			filtered[title] = records
		}
	}

	return &DuplicateReport{GeneratedAt: time.Now(), Duplicates: filtered}
}

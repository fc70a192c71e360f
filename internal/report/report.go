// Package report defines the rename report written after every run: the
// record of every directory and file rename, detailed enough for the
// reverter to restore the previous names byte for byte.
package report

import (
	"time"
)

// Canonical report filenames under the reports directory.
const (
	RenameReportName    = "movies_renaming_report.json"
	DuplicateReportName = "duplicate_movies_report.json"
)

// Reasons attached to file rename records.
const (
	ReasonSyncVideo    = "Sync Video With Directory"
	ReasonSyncSubtitle = "Sync Subtitle With Video"
)

// Report is the top-level rename report, keyed by input root.
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	InputDirs   map[string]*RootReport `json:"input_dirs"`
}

// RootReport collects the modifications under a single input root.
type RootReport struct {
	DirectoriesModified []DirectoryRecord `json:"directories_modified"`
	VideoFilesRenamed   []FileRecord      `json:"video_files_renamed"`
}

// DirectoryRecord describes one directory rename.
type DirectoryRecord struct {
	OldName string   `json:"old_name"`
	NewName string   `json:"new_name"`
	Changes []string `json:"changes"`
}

// FileRecord describes one file rename performed inside a renamed directory.
type FileRecord struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	Reason  string `json:"reason"`
}

// New returns an empty report.
func New() *Report {
	return &Report{InputDirs: make(map[string]*RootReport)}
}

// Root returns the per-root section for key, creating it when absent.
func (r *Report) Root(key string) *RootReport {
	if r.InputDirs == nil {
		r.InputDirs = make(map[string]*RootReport)
	}
	root, ok := r.InputDirs[key]
	if !ok {
		root = &RootReport{
			DirectoriesModified: []DirectoryRecord{},
			VideoFilesRenamed:   []FileRecord{},
		}
		r.InputDirs[key] = root
	}
	return root
}

// AddDirectory appends a directory rename record under root.
func (r *Report) AddDirectory(root string, record DirectoryRecord) {
	section := r.Root(root)
	section.DirectoriesModified = append(section.DirectoriesModified, record)
}

// AddFile appends a file rename record under root.
func (r *Report) AddFile(root string, record FileRecord) {
	section := r.Root(root)
	section.VideoFilesRenamed = append(section.VideoFilesRenamed, record)
}

// RenameCount returns the number of directory renames across all roots.
func (r *Report) RenameCount() int {
	total := 0
	for _, root := range r.InputDirs {
		total += len(root.DirectoriesModified)
	}
	return total
}

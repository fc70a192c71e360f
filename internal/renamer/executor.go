package renamer

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"marquee/internal/logging"
	"marquee/internal/report"
	"marquee/internal/services"
)

// videoExtensions lists the companion-sync video suffixes. The prober has its
// own configured list; companion sync is only about keeping a directory's
// main file aligned with the directory name.
var videoExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".m4v": {}, ".webm": {},
	".ts": {}, ".flv": {}, ".mpg": {}, ".mpeg": {}, ".wmv": {}, ".m2ts": {},
}

// execute renames a directory and keeps its main video and subtitle files in
// sync with the new name. In dry-run mode nothing is touched but the records
// that a real run would produce are still returned.
func (r *Renamer) execute(root, oldName, newName string) ([]report.FileRecord, error) {
	oldPath := filepath.Join(root, oldName)
	newPath := filepath.Join(root, newName)

	if _, err := os.Lstat(newPath); err == nil {
		return nil, services.Wrap(services.ErrValidation, "renamer", "rename directory", "destination already exists: "+newName, nil)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, services.Wrap(services.ErrExternalTool, "renamer", "rename directory", "stat destination", err)
	}

	if r.dryRun {
		records, _ := r.planCompanionSync(oldPath, oldName, newName)
		return records, nil
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "renamer", "rename directory", "rename "+oldName, err)
	}

	records, err := r.planCompanionSync(newPath, oldName, newName)
	if err != nil {
		// The directory rename already happened; companion listing failures
		// only cost the sync, never the rename.
		r.logger.Warn("companion scan failed", logging.String("dir", newPath), logging.Error(err))
		return nil, nil
	}

	synced := records[:0]
	for _, record := range records {
		src := filepath.Join(newPath, record.OldName)
		dst := filepath.Join(newPath, record.NewName)
		if _, err := os.Lstat(dst); err == nil {
			r.logger.Warn("companion destination already exists, skipping",
				logging.String("path", dst))
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			r.logger.Warn("companion rename failed",
				logging.String("from", src),
				logging.String("to", dst),
				logging.Error(err))
			continue
		}
		synced = append(synced, record)
	}
	return synced, nil
}

// planCompanionSync finds the files that should follow a directory rename: a
// single video whose stem matches the old directory name, plus its same-stem
// subtitle. Ambiguous directories (several matching videos) sync nothing.
func (r *Renamer) planCompanionSync(dirPath, oldName, newName string) ([]report.FileRecord, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var videos, subtitles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem, ext := splitStem(entry.Name())
		if stem != oldName {
			continue
		}
		if _, ok := videoExtensions[strings.ToLower(ext)]; ok {
			videos = append(videos, entry.Name())
		} else if strings.EqualFold(ext, ".srt") {
			subtitles = append(subtitles, entry.Name())
		}
	}
	if len(videos) != 1 {
		return nil, nil
	}
	sort.Strings(subtitles)

	_, videoExt := splitStem(videos[0])
	records := []report.FileRecord{{
		OldName: videos[0],
		NewName: newName + videoExt,
		Reason:  report.ReasonSyncVideo,
	}}
	for _, subtitle := range subtitles {
		_, subtitleExt := splitStem(subtitle)
		records = append(records, report.FileRecord{
			OldName: subtitle,
			NewName: newName + subtitleExt,
			Reason:  report.ReasonSyncSubtitle,
		})
	}
	return records, nil
}

func splitStem(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

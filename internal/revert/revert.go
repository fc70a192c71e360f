// Package revert replays a rename report backwards, restoring the directory
// and file names recorded before a run.
//
// File records are processed before directory records: a synced video or
// subtitle is renamed back inside its still-renamed directory, then the
// directory record restores the directory itself. Every operation is gated
// on existence checks so a partially reverted report can be replayed safely.
package revert

import (
	"log/slog"
	"os"
	"path/filepath"

	"marquee/internal/logging"
	"marquee/internal/report"
)

// Counters aggregates the outcome of a revert run.
type Counters struct {
	Expected        int
	RevertedNow     int
	AlreadyReverted int
	Missing         int
	Conflicts       int
}

// VerifiedTotal counts operations whose end state matches the report's
// before-state, whether this run restored them or a previous one did.
func (c Counters) VerifiedTotal() int {
	return c.RevertedNow + c.AlreadyReverted
}

// OK reports whether every expected operation is verified.
func (c Counters) OK() bool {
	return c.VerifiedTotal() == c.Expected
}

// Engine reverts renames recorded in a report.
type Engine struct {
	logger *slog.Logger
	dryRun bool
}

// NewEngine builds an Engine. In dry-run mode renames are logged and counted
// but never performed. A nil logger disables logging.
func NewEngine(logger *slog.Logger, dryRun bool) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{logger: logger, dryRun: dryRun}
}

// Run replays the report backwards and returns the aggregate counters.
func (e *Engine) Run(rep *report.Report) Counters {
	var counters Counters

	for rootKey, section := range rep.InputDirs {
		baseDir := filepath.FromSlash(rootKey)
		counters.Expected += len(section.VideoFilesRenamed) + len(section.DirectoriesModified)

		for _, file := range section.VideoFilesRenamed {
			e.revertFile(baseDir, file, section.DirectoriesModified, &counters)
		}
		for _, dir := range section.DirectoriesModified {
			e.revertDirectory(baseDir, dir, &counters)
		}
	}

	return counters
}

// revertFile locates a file record among its candidate locations. Files
// inside a not-yet-reverted directory revert in place; the directory record
// restores the directory afterwards.
func (e *Engine) revertFile(baseDir string, file report.FileRecord, dirs []report.DirectoryRecord, counters *Counters) {
	if file.OldName == "" || file.NewName == "" {
		return
	}

	for _, dir := range dirs {
		if dir.OldName == "" || dir.NewName == "" {
			continue
		}

		src := filepath.Join(baseDir, dir.NewName, file.NewName)
		dst := filepath.Join(baseDir, dir.NewName, file.OldName)
		if exists(src) || exists(dst) {
			e.safeRename(src, dst, counters)
			return
		}

		src = filepath.Join(baseDir, dir.OldName, file.NewName)
		dst = filepath.Join(baseDir, dir.OldName, file.OldName)
		if exists(src) || exists(dst) {
			e.safeRename(src, dst, counters)
			return
		}
	}

	src := filepath.Join(baseDir, file.NewName)
	dst := filepath.Join(baseDir, file.OldName)
	if exists(src) || exists(dst) {
		e.safeRename(src, dst, counters)
		return
	}

	counters.Missing++
	e.logger.Warn("unresolved file entry", logging.String("name", file.NewName))
}

func (e *Engine) revertDirectory(baseDir string, dir report.DirectoryRecord, counters *Counters) {
	if dir.OldName == "" || dir.NewName == "" {
		return
	}
	src := filepath.Join(baseDir, dir.NewName)
	dst := filepath.Join(baseDir, dir.OldName)
	e.safeRename(src, dst, counters)
}

// safeRename restores dst from src with conflict detection. Source missing
// with destination present means a previous run already reverted the entry.
func (e *Engine) safeRename(src, dst string, counters *Counters) {
	if !exists(src) {
		if exists(dst) {
			counters.AlreadyReverted++
			return
		}
		counters.Missing++
		e.logger.Warn("source not found", logging.String("path", src))
		return
	}

	if exists(dst) {
		counters.Conflicts++
		e.logger.Warn("destination already exists", logging.String("path", dst))
		return
	}

	if e.dryRun {
		counters.RevertedNow++
		e.logger.Info("would revert", logging.String("from", src), logging.String("to", dst))
		return
	}

	if err := os.Rename(src, dst); err != nil {
		e.logger.Error("revert failed", logging.String("from", src), logging.String("to", dst), logging.Error(err))
		return
	}
	counters.RevertedNow++
	e.logger.Info("reverted", logging.String("from", src), logging.String("to", dst))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

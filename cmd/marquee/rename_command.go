package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"marquee/internal/config"
	"marquee/internal/fileutil"
	"marquee/internal/history"
	"marquee/internal/logging"
	"marquee/internal/metadata"
	"marquee/internal/metadata/tmdb"
	"marquee/internal/naming"
	"marquee/internal/notifications"
	"marquee/internal/probe"
	"marquee/internal/renamer"
	"marquee/internal/report"
	"marquee/internal/services"
	"marquee/internal/textutil"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename [roots...]",
		Short: "Normalize movie directory names under the library roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, ctx, args, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview renames without touching the filesystem")
	return cmd
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [roots...]",
		Short: "Preview renames without touching the filesystem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, ctx, args, true)
		},
	}
}

func runRename(cmd *cobra.Command, ctx *commandContext, args []string, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	roots, err := resolveRoots(cfg, args)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	runCtx := services.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logger)

	// Stamped reports and the run log accumulate one file per invocation.
	logging.CleanupOldFiles(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "*.log",
			Exclude: []string{filepath.Join(cfg.Paths.LogDir, "marquee.log")}},
		logging.RetentionTarget{Dir: cfg.Paths.ReportDir, Pattern: "*-*.json"},
	)

	if !dryRun {
		lock := flock.New(filepath.Join(cfg.Paths.StateDir, "marquee.lock"))
		ok, lockErr := lock.TryLock()
		if lockErr != nil {
			return fmt.Errorf("acquire instance lock: %w", lockErr)
		}
		if !ok {
			return errors.New("another marquee instance is already running")
		}
		defer func() { _ = lock.Unlock() }()
	}

	vocab := naming.NewVocabulary(cfg.Naming.Languages)

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return fmt.Errorf("build tmdb client: %w", err)
	}

	// The history store doubles as the persistent search cache. Losing it
	// costs caching and the run ledger, never the run itself.
	searchOpts := []metadata.SearchOption{}
	store, storeErr := history.Open(cfg)
	if storeErr != nil {
		logger.Warn("history store unavailable", logging.Error(storeErr))
	} else {
		defer func() { _ = store.Close() }()
		searchOpts = append(searchOpts, metadata.WithLookupCache(history.NewLookupCache(store, 0)))
	}

	resolver := metadata.NewResolver(metadata.NewSearch(client, searchOpts...), logger)
	prober := probe.New(cfg.FFprobeBinary(), cfg.Naming.VideoExtensions, logger)
	ignore, err := renamer.CompileIgnorePattern(cfg.Naming.IgnoreDirs)
	if err != nil {
		return err
	}

	engine := renamer.New(vocab, resolver, prober,
		renamer.WithLogger(logger),
		renamer.WithIgnorePattern(ignore),
		renamer.WithDryRun(dryRun),
	)

	notifier := notifications.NewService(cfg)

	started := time.Now()
	rep, summary, runErr := engine.Run(runCtx, roots)
	finished := time.Now()
	if runErr != nil {
		if !dryRun {
			if err := notifier.NotifyError(runCtx, runErr, "rename run"); err != nil {
				logger.Warn("send notification", logging.Error(err))
			}
		}
		return runErr
	}
	rep.GeneratedAt = finished

	reportPath := ""
	if !dryRun {
		reportPath = filepath.Join(cfg.Paths.ReportDir, report.RenameReportName)
		if err := writeReports(cfg, vocab, rep, runID, reportPath); err != nil {
			// Renames already happened; a failed report write must be loud
			// but never rolls anything back.
			logger.Error("write reports", logging.Error(err))
		}
	}

	if store != nil && storeErr == nil {
		run := &history.Run{
			RunID:      runID,
			StartedAt:  started,
			FinishedAt: finished,
			DryRun:     dryRun,
			Roots:      roots,
			Scanned:    summary.Scanned,
			Renamed:    summary.Renamed,
			Skipped:    summary.Skipped,
			Failed:     summary.Failed,
			ReportPath: reportPath,
		}
		if err := store.RecordRun(runCtx, run); err != nil {
			logger.Warn("record run", logging.Error(err))
		}
	}

	if !dryRun {
		if err := notifier.NotifyRunCompleted(runCtx, summary.Renamed, summary.Skipped, summary.Failed, finished.Sub(started)); err != nil {
			logger.Warn("send notification", logging.Error(err))
		}
	}

	printRunSummary(cmd, rep, summary, dryRun, finished.Sub(started))
	return nil
}

func resolveRoots(cfg *config.Config, args []string) ([]string, error) {
	raw := args
	if len(raw) == 0 {
		raw = cfg.Paths.RootDirs
	}
	if len(raw) == 0 {
		return nil, errors.New("no library roots: pass them as arguments or set paths.root_dirs in the config")
	}
	roots := make([]string, 0, len(raw))
	for _, root := range raw {
		expanded, err := config.ExpandPath(strings.TrimSpace(root))
		if err != nil {
			return nil, err
		}
		roots = append(roots, expanded)
	}
	return roots, nil
}

// writeReports persists the rename and duplicate reports plus run-stamped
// copies for later revert or audit.
func writeReports(cfg *config.Config, vocab *naming.Vocabulary, rep *report.Report, runID, reportPath string) error {
	if err := report.Write(reportPath, rep); err != nil {
		return err
	}
	stamped := stampedReportName(report.RenameReportName, runID)
	if err := fileutil.CopyFile(reportPath, filepath.Join(cfg.Paths.ReportDir, stamped)); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}

	dup := report.Duplicates(rep, vocab)
	dupPath := filepath.Join(cfg.Paths.ReportDir, report.DuplicateReportName)
	if err := report.Write(dupPath, dup); err != nil {
		return err
	}
	stamped = stampedReportName(report.DuplicateReportName, runID)
	if err := fileutil.CopyFile(dupPath, filepath.Join(cfg.Paths.ReportDir, stamped)); err != nil {
		return fmt.Errorf("copy duplicate report: %w", err)
	}
	return nil
}

func stampedReportName(base, runID string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + textutil.SanitizeToken(runID) + ext
}

func printRunSummary(cmd *cobra.Command, rep *report.Report, summary renamer.Summary, dryRun bool, elapsed time.Duration) {
	out := cmd.OutOrStdout()

	roots := make([]string, 0, len(rep.InputDirs))
	for root := range rep.InputDirs {
		roots = append(roots, root)
	}
	slices.Sort(roots)
	for _, root := range roots {
		section := rep.InputDirs[root]
		if len(section.DirectoriesModified) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s\n", root)
		rows := make([][]string, 0, len(section.DirectoriesModified))
		for _, record := range section.DirectoriesModified {
			rows = append(rows, []string{record.OldName, record.NewName, naming.FormatChanges(record.Changes)})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Old Name", "New Name", "Changes"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft},
		))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"Scanned", "Renamed", "Skipped", "Failed", "Dry Run", "Elapsed"},
		[][]string{{
			strconv.Itoa(summary.Scanned),
			strconv.Itoa(summary.Renamed),
			strconv.Itoa(summary.Skipped),
			strconv.Itoa(summary.Failed),
			yesNo(dryRun),
			elapsed.Round(time.Millisecond).String(),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight},
	))
}

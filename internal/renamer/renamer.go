// Package renamer orchestrates the rename pipeline: scan roots, tokenize
// directory names, reconcile years against metadata, probe missing
// resolutions, rebuild canonical names, and execute renames with companion
// subtitle sync. Directories are processed strictly sequentially; each one is
// its own failure boundary.
package renamer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"marquee/internal/logging"
	"marquee/internal/metadata"
	"marquee/internal/naming"
	"marquee/internal/report"
	"marquee/internal/services"
	"marquee/internal/textutil"
)

// YearResolver decides the authoritative release year for a title.
type YearResolver interface {
	Resolve(ctx context.Context, title string, years []string) metadata.ResolvedYear
}

// ResolutionProber supplies a resolution token for directories whose names
// carry none. An empty string means no resolution could be determined.
type ResolutionProber interface {
	Resolution(ctx context.Context, dir string) string
}

// Summary aggregates per-run counts.
type Summary struct {
	Scanned int
	Renamed int
	Skipped int
	Failed  int
}

// Renamer runs the pipeline over library roots.
type Renamer struct {
	vocab    *naming.Vocabulary
	resolver YearResolver
	prober   ResolutionProber
	ignore   *regexp.Regexp
	logger   *slog.Logger
	dryRun   bool
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithIgnorePattern skips immediate subdirectories whose names match the
// pattern (extras, featurettes and similar).
func WithIgnorePattern(pattern *regexp.Regexp) Option {
	return func(r *Renamer) {
		r.ignore = pattern
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renamer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDryRun previews renames without touching the filesystem. The returned
// report still carries every would-be record.
func WithDryRun(dryRun bool) Option {
	return func(r *Renamer) {
		r.dryRun = dryRun
	}
}

// New builds a Renamer. Resolver and prober are required; the zero ignore
// pattern skips nothing.
func New(vocab *naming.Vocabulary, resolver YearResolver, prober ResolutionProber, opts ...Option) *Renamer {
	r := &Renamer{
		vocab:    vocab,
		resolver: resolver,
		prober:   prober,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CompileIgnorePattern compiles a case-insensitive ignore pattern.
func CompileIgnorePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "renamer", "compile ignore pattern", "invalid ignore_dirs pattern", err)
	}
	return re, nil
}

// Run processes every root sequentially and returns the rename report with
// aggregate counts. A root that cannot be listed is logged and skipped; Run
// fails only when every root fails.
func (r *Renamer) Run(ctx context.Context, roots []string) (*report.Report, Summary, error) {
	rep := report.New()
	var summary Summary

	failedRoots := 0
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			failedRoots++
			r.logger.Error("cannot list root", logging.String("root", root), logging.Error(err))
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return rep, summary, err
			}
			if !entry.IsDir() {
				continue
			}
			r.processDirectory(ctx, rep, &summary, root, entry.Name())
		}
	}

	if len(roots) > 0 && failedRoots == len(roots) {
		return rep, summary, services.Wrap(services.ErrNotFound, "renamer", "scan roots", "no library root could be listed", nil)
	}
	return rep, summary, nil
}

func (r *Renamer) processDirectory(ctx context.Context, rep *report.Report, summary *Summary, root, name string) {
	summary.Scanned++

	if r.ignore != nil && r.ignore.MatchString(name) {
		summary.Skipped++
		r.logger.Debug("ignored directory", logging.String("name", name))
		return
	}

	tokens := naming.Tokenize(name, r.vocab)
	if tokens.Title == "" {
		summary.Skipped++
		r.logger.Warn("empty title after stripping, skipping", logging.String("name", name))
		return
	}

	resolved := r.resolver.Resolve(ctx, tokens.Title, tokens.Years)
	if tokens.Resolution == "" && r.prober != nil {
		tokens.Resolution = r.prober.Resolution(ctx, filepath.Join(root, name))
	}

	newName := textutil.SanitizeFileName(naming.Rebuild(tokens, resolved.Value, r.vocab))
	if newName == "" || newName == name {
		summary.Skipped++
		r.logger.Debug("already canonical", logging.String("name", name))
		return
	}

	changes := naming.DetectChanges(name, newName)
	if len(changes) == 0 {
		summary.Skipped++
		return
	}

	fileRecords, err := r.execute(root, name, newName)
	if err != nil {
		summary.Failed++
		r.logger.Error("rename failed",
			logging.String("root", root),
			logging.String("old", name),
			logging.String("new", newName),
			logging.Error(err))
		return
	}

	summary.Renamed++
	rep.AddDirectory(root, report.DirectoryRecord{OldName: name, NewName: newName, Changes: changes})
	for _, record := range fileRecords {
		rep.AddFile(root, record)
	}

	r.logger.Info("renamed",
		logging.String("old", name),
		logging.String("new", newName),
		logging.String("changes", naming.FormatChanges(changes)))
}

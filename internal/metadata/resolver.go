package metadata

import (
	"context"
	"log/slog"
	"strconv"

	"marquee/internal/logging"
)

// Source records where a resolved year came from.
type Source string

const (
	// SourceMetadata marks a year confirmed or supplied by TMDB.
	SourceMetadata Source = "metadata"
	// SourceFilename marks a year kept from the directory name.
	SourceFilename Source = "filename"
	// SourceNone marks the absence of any usable year.
	SourceNone Source = "none"
)

// ResolvedYear is the resolver's best-effort answer: an optional four-digit
// year plus its provenance.
type ResolvedYear struct {
	Value  string
	Source Source
}

// Resolver applies the year disambiguation policy on top of Search. It never
// returns an error: lookup failures degrade to the filename year when one
// exists, otherwise to no year at all.
type Resolver struct {
	search *Search
	logger *slog.Logger
}

// NewResolver builds a Resolver. A nil logger disables logging.
func NewResolver(search *Search, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{search: search, logger: logger}
}

// Resolve decides the authoritative release year for a title given the year
// tokens found in the directory name, in order of appearance.
func (r *Resolver) Resolve(ctx context.Context, title string, years []string) ResolvedYear {
	switch len(years) {
	case 0:
		return r.resolveWithoutHint(ctx, title)
	case 1:
		return r.resolveSingleYear(ctx, title, years[0])
	default:
		return r.resolveAmbiguous(ctx, title, years)
	}
}

// resolveWithoutHint accepts the top unfiltered candidate verbatim.
func (r *Resolver) resolveWithoutHint(ctx context.Context, title string) ResolvedYear {
	if top := r.topCandidate(ctx, title); top != "" {
		return ResolvedYear{Value: top, Source: SourceMetadata}
	}
	return ResolvedYear{Source: SourceNone}
}

// resolveSingleYear keeps the existing year unless TMDB both disagrees and
// confirms its own candidate with an exact filtered match.
func (r *Resolver) resolveSingleYear(ctx context.Context, title, existing string) ResolvedYear {
	if r.confirmYear(ctx, title, existing) {
		return ResolvedYear{Value: existing, Source: SourceMetadata}
	}
	if top := r.topCandidate(ctx, title); top != "" && top != existing && r.confirmYear(ctx, title, top) {
		r.logger.Info("correcting year from metadata",
			logging.String("title", title),
			logging.String("existing", existing),
			logging.String("resolved", top))
		return ResolvedYear{Value: top, Source: SourceMetadata}
	}
	return ResolvedYear{Value: existing, Source: SourceFilename}
}

// resolveAmbiguous handles names with several year-like tokens, such as
// sequels whose number reads like a year. The first token is the fallback;
// a metadata year is adopted only when it matches one of the existing tokens
// or survives an exact filtered confirmation.
func (r *Resolver) resolveAmbiguous(ctx context.Context, title string, years []string) ResolvedYear {
	fallback := ResolvedYear{Value: years[0], Source: SourceFilename}

	top := r.topCandidate(ctx, title)
	if top == "" {
		return fallback
	}
	for _, existing := range years {
		if top == existing {
			return ResolvedYear{Value: top, Source: SourceMetadata}
		}
	}
	if r.confirmYear(ctx, title, top) {
		return ResolvedYear{Value: top, Source: SourceMetadata}
	}
	return fallback
}

// topCandidate returns the top unfiltered candidate year, or "" when the
// search fails or the best match has no release date.
func (r *Resolver) topCandidate(ctx context.Context, title string) string {
	candidates, err := r.search.CandidateYears(ctx, title, 0)
	if err != nil {
		r.logger.Debug("tmdb lookup failed", logging.String("title", title), logging.Error(err))
		return ""
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// confirmYear reports whether a filtered search for the given year returns a
// candidate with exactly that year.
func (r *Resolver) confirmYear(ctx context.Context, title, year string) bool {
	filter, err := strconv.Atoi(year)
	if err != nil || filter <= 0 {
		return false
	}
	candidates, lookupErr := r.search.CandidateYears(ctx, title, filter)
	if lookupErr != nil {
		r.logger.Debug("tmdb lookup failed", logging.String("title", title), logging.Error(lookupErr))
		return false
	}
	for _, candidate := range candidates {
		if candidate == year {
			return true
		}
	}
	return false
}

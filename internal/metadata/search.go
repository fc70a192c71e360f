package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"marquee/internal/metadata/tmdb"
)

// LookupCache is the persistent tier behind the in-memory search cache.
// Implementations decide their own admission policy (TTL); a miss is not an
// error.
type LookupCache interface {
	GetCandidates(ctx context.Context, query string, yearFilter int) ([]string, bool, error)
	PutCandidates(ctx context.Context, query string, yearFilter int, years []string) error
}

type searchCacheEntry struct {
	years   []string
	expires time.Time
}

// Search performs TMDB movie searches with caching and rate limiting.
// Candidate years are returned in TMDB ranking order; a result without a
// release date contributes an empty string so ranking positions are stable.
type Search struct {
	client    tmdb.Searcher
	persist   LookupCache
	cache     map[string]searchCacheEntry
	cacheTTL  time.Duration
	rateLimit time.Duration

	mu         sync.Mutex
	lastLookup time.Time
}

// SearchOption configures a Search.
type SearchOption func(*Search)

// WithLookupCache attaches a persistent lookup-cache tier.
func WithLookupCache(cache LookupCache) SearchOption {
	return func(s *Search) {
		s.persist = cache
	}
}

// WithRateLimit overrides the minimum delay between remote lookups.
func WithRateLimit(d time.Duration) SearchOption {
	return func(s *Search) {
		s.rateLimit = d
	}
}

// WithCacheTTL overrides the in-memory cache lifetime.
func WithCacheTTL(d time.Duration) SearchOption {
	return func(s *Search) {
		s.cacheTTL = d
	}
}

// NewSearch wraps a TMDB searcher with caching and rate limiting.
func NewSearch(client tmdb.Searcher, opts ...SearchOption) *Search {
	s := &Search{
		client:     client,
		cache:      make(map[string]searchCacheEntry),
		cacheTTL:   10 * time.Minute,
		rateLimit:  250 * time.Millisecond,
		lastLookup: time.Unix(0, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CandidateYears returns the release years of the search results for title,
// in ranking order. A positive yearFilter narrows the remote search to that
// primary release year.
func (s *Search) CandidateYears(ctx context.Context, title string, yearFilter int) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("tmdb client unavailable")
	}

	query := strings.TrimSpace(title)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	opts := tmdb.SearchOptions{Year: yearFilter}
	key := fmt.Sprintf("%s|%s", strings.ToLower(query), opts.CacheKey())
	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		years := entry.years
		s.mu.Unlock()
		return years, nil
	}
	s.mu.Unlock()

	if s.persist != nil {
		if years, ok, err := s.persist.GetCandidates(ctx, query, yearFilter); err == nil && ok {
			s.remember(key, years)
			return years, nil
		}
	}

	s.mu.Lock()
	wait := s.rateLimit - now.Sub(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()

	resp, err := s.client.SearchMovieWithOptions(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	years := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		years = append(years, result.Year())
	}

	s.remember(key, years)
	if s.persist != nil {
		// Best effort; a failed persistent write never fails the lookup.
		_ = s.persist.PutCandidates(ctx, query, yearFilter, years)
	}
	return years, nil
}

func (s *Search) remember(key string, years []string) {
	s.mu.Lock()
	if s.cache != nil {
		s.cache[key] = searchCacheEntry{years: years, expires: time.Now().Add(s.cacheTTL)}
	}
	s.mu.Unlock()
}

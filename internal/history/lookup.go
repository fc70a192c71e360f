package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// defaultLookupTTL bounds how long cached TMDB candidate lists are trusted.
const defaultLookupTTL = 7 * 24 * time.Hour

// LookupCache is the persistent tier of the TMDB search cache. It satisfies
// the metadata package's LookupCache interface.
type LookupCache struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time
}

// NewLookupCache wraps a store as a TTL-bounded lookup cache. A non-positive
// ttl selects the default.
func NewLookupCache(store *Store, ttl time.Duration) *LookupCache {
	if ttl <= 0 {
		ttl = defaultLookupTTL
	}
	return &LookupCache{store: store, ttl: ttl, now: time.Now}
}

// GetCandidates returns the cached candidate years for a query, if present
// and fresh. Stale rows are treated as misses and removed.
func (c *LookupCache) GetCandidates(ctx context.Context, query string, yearFilter int) ([]string, bool, error) {
	var (
		payload  string
		cachedAt string
	)
	err := c.store.db.QueryRowContext(
		ctx,
		`SELECT candidate_years, cached_at FROM lookup_cache WHERE query = ? AND year_filter = ?`,
		query, yearFilter,
	).Scan(&payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read lookup cache: %w", err)
	}

	stamp, err := time.Parse(time.RFC3339Nano, cachedAt)
	if err != nil || c.now().Sub(stamp) > c.ttl {
		_, _ = c.store.db.ExecContext(
			ctx,
			`DELETE FROM lookup_cache WHERE query = ? AND year_filter = ?`,
			query, yearFilter,
		)
		return nil, false, nil
	}

	// Empty strings mark candidates without release dates; the JSON round
	// trip must keep them so ranking positions stay stable.
	var years []string
	if err := json.Unmarshal([]byte(payload), &years); err != nil {
		return nil, false, fmt.Errorf("parse cached candidates: %w", err)
	}
	return years, true, nil
}

// PutCandidates stores or refreshes the candidate years for a query.
func (c *LookupCache) PutCandidates(ctx context.Context, query string, yearFilter int, years []string) error {
	payload, err := json.Marshal(years)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}
	_, err = c.store.db.ExecContext(
		ctx,
		`INSERT INTO lookup_cache (query, year_filter, candidate_years, cached_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(query, year_filter) DO UPDATE SET
             candidate_years = excluded.candidate_years,
             cached_at = excluded.cached_at`,
		query, yearFilter, string(payload), c.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write lookup cache: %w", err)
	}
	return nil
}

package metadata_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"marquee/internal/metadata"
	"marquee/internal/metadata/tmdb"
)

type fakeSearcher struct {
	responses map[string][]string
	calls     int
	err       error
}

func (f *fakeSearcher) SearchMovieWithOptions(ctx context.Context, query string, opts tmdb.SearchOptions) (*tmdb.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	key := fmt.Sprintf("%s|%d", query, opts.Year)
	years := f.responses[key]
	resp := &tmdb.Response{}
	for _, year := range years {
		result := tmdb.Result{}
		if year != "" {
			result.ReleaseDate = year + "-06-01"
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

func (f *fakeSearcher) GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.Result, error) {
	return nil, errors.New("not implemented")
}

type fakeLookupCache struct {
	entries map[string][]string
	puts    int
}

func cacheKey(query string, yearFilter int) string {
	return fmt.Sprintf("%s|%d", query, yearFilter)
}

func (f *fakeLookupCache) GetCandidates(ctx context.Context, query string, yearFilter int) ([]string, bool, error) {
	years, ok := f.entries[cacheKey(query, yearFilter)]
	return years, ok, nil
}

func (f *fakeLookupCache) PutCandidates(ctx context.Context, query string, yearFilter int, years []string) error {
	if f.entries == nil {
		f.entries = make(map[string][]string)
	}
	f.entries[cacheKey(query, yearFilter)] = years
	f.puts++
	return nil
}

func newSearch(client tmdb.Searcher, opts ...metadata.SearchOption) *metadata.Search {
	opts = append([]metadata.SearchOption{metadata.WithRateLimit(0)}, opts...)
	return metadata.NewSearch(client, opts...)
}

func TestCandidateYearsCachesInMemory(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{"The Matrix|0": {"1999"}}}
	search := newSearch(client)

	for i := 0; i < 3; i++ {
		years, err := search.CandidateYears(context.Background(), "The Matrix", 0)
		if err != nil {
			t.Fatalf("CandidateYears returned error: %v", err)
		}
		if len(years) != 1 || years[0] != "1999" {
			t.Fatalf("unexpected candidates: %v", years)
		}
	}
	if client.calls != 1 {
		t.Fatalf("expected a single remote call, got %d", client.calls)
	}
}

func TestCandidateYearsUsesPersistentCache(t *testing.T) {
	client := &fakeSearcher{}
	persist := &fakeLookupCache{entries: map[string][]string{cacheKey("Movie", 0): {"2020"}}}
	search := newSearch(client, metadata.WithLookupCache(persist))

	years, err := search.CandidateYears(context.Background(), "Movie", 0)
	if err != nil {
		t.Fatalf("CandidateYears returned error: %v", err)
	}
	if len(years) != 1 || years[0] != "2020" {
		t.Fatalf("unexpected candidates: %v", years)
	}
	if client.calls != 0 {
		t.Fatalf("expected no remote calls on persistent hit, got %d", client.calls)
	}
}

func TestCandidateYearsWritesPersistentCache(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{"Movie|0": {"2020", ""}}}
	persist := &fakeLookupCache{}
	search := newSearch(client, metadata.WithLookupCache(persist))

	if _, err := search.CandidateYears(context.Background(), "Movie", 0); err != nil {
		t.Fatalf("CandidateYears returned error: %v", err)
	}
	if persist.puts != 1 {
		t.Fatalf("expected one persistent write, got %d", persist.puts)
	}
	if years := persist.entries[cacheKey("Movie", 0)]; len(years) != 2 || years[0] != "2020" || years[1] != "" {
		t.Fatalf("unexpected persisted candidates: %v", years)
	}
}

func TestCandidateYearsRejectsEmptyQuery(t *testing.T) {
	search := newSearch(&fakeSearcher{})
	if _, err := search.CandidateYears(context.Background(), "  ", 0); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestResolveNoYearsAdoptsTopCandidate(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{"The Matrix|0": {"1999", "2003"}}}
	resolver := metadata.NewResolver(newSearch(client), nil)

	got := resolver.Resolve(context.Background(), "The Matrix", nil)
	if got.Value != "1999" || got.Source != metadata.SourceMetadata {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolveNoYearsNoResults(t *testing.T) {
	resolver := metadata.NewResolver(newSearch(&fakeSearcher{}), nil)

	got := resolver.Resolve(context.Background(), "Unknown Movie", nil)
	if got.Value != "" || got.Source != metadata.SourceNone {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolveKeepsConfirmedExistingYear(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{
		"Movie|1999": {"1999"},
		"Movie|0":    {"2003"},
	}}
	resolver := metadata.NewResolver(newSearch(client), nil)

	got := resolver.Resolve(context.Background(), "Movie", []string{"1999"})
	if got.Value != "1999" || got.Source != metadata.SourceMetadata {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolveCorrectsUnconfirmedYear(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{
		"Movie|2019": {},
		"Movie|0":    {"2020"},
		"Movie|2020": {"2020"},
	}}
	resolver := metadata.NewResolver(newSearch(client), nil)

	got := resolver.Resolve(context.Background(), "Movie", []string{"2019"})
	if got.Value != "2020" || got.Source != metadata.SourceMetadata {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolveKeepsExistingWhenNothingConfirms(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{
		"Movie|2019": {},
		"Movie|0":    {"2020"},
		"Movie|2020": {},
	}}
	resolver := metadata.NewResolver(newSearch(client), nil)

	got := resolver.Resolve(context.Background(), "Movie", []string{"2019"})
	if got.Value != "2019" || got.Source != metadata.SourceFilename {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolveProtectsSequelYears(t *testing.T) {
	client := &fakeSearcher{responses: map[string][]string{
		"2001 A Space Odyssey|0": {"1968"},
	}}
	resolver := metadata.NewResolver(newSearch(client), nil)

	got := resolver.Resolve(context.Background(), "2001 A Space Odyssey", []string{"2001", "1968"})
	if got.Value != "1968" || got.Source != metadata.SourceMetadata {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolveAmbiguousFallsBackOnLookupFailure(t *testing.T) {
	client := &fakeSearcher{err: errors.New("network down")}
	resolver := metadata.NewResolver(newSearch(client), nil)

	got := resolver.Resolve(context.Background(), "Movie", []string{"1984", "2021"})
	if got.Value != "1984" || got.Source != metadata.SourceFilename {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

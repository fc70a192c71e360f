package naming_test

import (
	"reflect"
	"testing"

	"marquee/internal/naming"
)

func defaultVocabulary() *naming.Vocabulary {
	return naming.NewVocabulary([]string{"Dual", "Dublado", "English", "Legendado", "Nacional"})
}

func TestTokenizeSceneStyleName(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("the.matrix.1999.1080p.dual", vocab)
	if tokens.Title != "the matrix 1999" {
		t.Fatalf("unexpected title: %q", tokens.Title)
	}
	if !reflect.DeepEqual(tokens.Years, []string{"1999"}) {
		t.Fatalf("unexpected years: %v", tokens.Years)
	}
	if tokens.Resolution != "1080p" {
		t.Fatalf("unexpected resolution: %q", tokens.Resolution)
	}
	if tokens.Language != "Dual" {
		t.Fatalf("expected canonical language casing, got %q", tokens.Language)
	}
}

func TestTokenizeWrappedYearAndRawFourK(t *testing.T) {
	tokens := naming.Tokenize("Movie (2020) 4K", defaultVocabulary())
	if tokens.Title != "Movie 2020" {
		t.Fatalf("unexpected title: %q", tokens.Title)
	}
	if tokens.Resolution != "4K" {
		t.Fatalf("expected raw 4K token preserved, got %q", tokens.Resolution)
	}
	if !reflect.DeepEqual(tokens.Years, []string{"2020"}) {
		t.Fatalf("unexpected years: %v", tokens.Years)
	}
}

func TestTokenizeCollectsEveryYear(t *testing.T) {
	tokens := naming.Tokenize("Movie 1984 Remaster 2021 1080p", defaultVocabulary())
	if !reflect.DeepEqual(tokens.Years, []string{"1984", "2021"}) {
		t.Fatalf("unexpected years: %v", tokens.Years)
	}
}

func TestTokenizeProtectsAbbreviationDots(t *testing.T) {
	tokens := naming.Tokenize("S.W.A.T 2017 1080p", defaultVocabulary())
	if tokens.Title != "S.W.A.T 2017" {
		t.Fatalf("expected abbreviation dots preserved, got %q", tokens.Title)
	}
}

func TestTokenizeStripsReleaseNoise(t *testing.T) {
	tokens := naming.Tokenize("Movie.5.1.BluRay.2009.1080p", defaultVocabulary())
	if tokens.Title != "Movie 2009" {
		t.Fatalf("expected noise tokens stripped, got %q", tokens.Title)
	}
	if tokens.Resolution != "1080p" {
		t.Fatalf("unexpected resolution: %q", tokens.Resolution)
	}
}

func TestTokenizeEmptyTitleAfterStripping(t *testing.T) {
	tokens := naming.Tokenize("1080p Dual", defaultVocabulary())
	if tokens.Title != "" {
		t.Fatalf("expected empty title, got %q", tokens.Title)
	}
}

func TestRebuildCanonicalOrder(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("the.matrix.1999.1080p.dual", vocab)
	got := naming.Rebuild(tokens, "1999", vocab)
	if got != "The Matrix 1999 1080p Dual" {
		t.Fatalf("unexpected final name: %q", got)
	}
}

func TestRebuildMapsFourKToCanonical(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("Movie (2020) 4K", vocab)
	got := naming.Rebuild(tokens, "2020", vocab)
	if got != "Movie 2020 2160p" {
		t.Fatalf("unexpected final name: %q", got)
	}
}

func TestRebuildProtectsSequelNumber(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("Movie Part 2 1999", vocab)
	got := naming.Rebuild(tokens, "1999", vocab)
	if got != "Movie Part 2 1999" {
		t.Fatalf("sequel number must survive, got %q", got)
	}
}

func TestRebuildRepositionsSpecialTokens(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("Movie HDR 2020 1080p IMAX", vocab)
	got := naming.Rebuild(tokens, "2020", vocab)
	if got != "Movie 2020 1080p IMAX HDR" {
		t.Fatalf("unexpected special token order: %q", got)
	}
}

func TestRebuildKeepsAtomicUpscaleGroup(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("movie.2020.1080p.AI.Upscaled.60FPS", vocab)
	got := naming.Rebuild(tokens, "2020", vocab)
	if got != "Movie 2020 1080p AI Upscaled 60FPS" {
		t.Fatalf("unexpected final name: %q", got)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	vocab := defaultVocabulary()
	inputs := []string{
		"the.matrix.1999.1080p.dual",
		"Movie (2020) 4K",
		"Movie Part 2 1999",
		"Movie HDR 2020 1080p IMAX",
		"movie.2020.1080p.AI.Upscaled.60FPS",
		"Plain Title",
		"Movie 2020 2160p Dual",
	}

	rebuild := func(name string) string {
		tokens := naming.Tokenize(name, vocab)
		year := ""
		if len(tokens.Years) > 0 {
			year = tokens.Years[0]
		}
		return naming.Rebuild(tokens, year, vocab)
	}

	for _, input := range inputs {
		once := rebuild(input)
		twice := rebuild(once)
		if once != twice {
			t.Fatalf("pipeline not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestRebuildAlreadyCanonicalIsNoOp(t *testing.T) {
	vocab := defaultVocabulary()

	tokens := naming.Tokenize("Movie 2020 2160p Dual", vocab)
	got := naming.Rebuild(tokens, "2020", vocab)
	if got != "Movie 2020 2160p Dual" {
		t.Fatalf("expected no-op, got %q", got)
	}
	if naming.DetectChanges("Movie 2020 2160p Dual", got) != nil {
		t.Fatal("expected no detected changes for identical names")
	}
}

func TestCanonicalResolution(t *testing.T) {
	cases := map[string]string{
		"4K":    "2160p",
		"4k":    "2160p",
		"1080P": "1080p",
		"720p":  "720p",
		"":      "",
	}
	for input, want := range cases {
		if got := naming.CanonicalResolution(input); got != want {
			t.Fatalf("CanonicalResolution(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResolutionForHeight(t *testing.T) {
	cases := []struct {
		height int
		want   string
	}{
		{2160, "2160p"},
		{3000, "2160p"},
		{1080, "1080p"},
		{1079, "720p"},
		{720, "720p"},
		{480, "480p"},
		{479, ""},
	}
	for _, tc := range cases {
		if got := naming.ResolutionForHeight(tc.height); got != tc.want {
			t.Fatalf("ResolutionForHeight(%d) = %q, want %q", tc.height, got, tc.want)
		}
	}
}

func TestDetectChanges(t *testing.T) {
	cases := []struct {
		name    string
		oldName string
		newName string
		want    []string
	}{
		{
			name:    "identical",
			oldName: "Movie 2020 1080p",
			newName: "Movie 2020 1080p",
			want:    nil,
		},
		{
			name:    "whitespace only",
			oldName: "Movie  2020   1080p",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeNormalizeFormat},
		},
		{
			name:    "year added",
			oldName: "Movie 1080p",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeAddYear},
		},
		{
			name:    "year corrected",
			oldName: "Movie 2019 1080p",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeCorrectYear},
		},
		{
			name:    "resolution added",
			oldName: "Movie 2020",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeAddResolution},
		},
		{
			name:    "resolution corrected",
			oldName: "Movie 2020 4K",
			newName: "Movie 2020 2160p",
			want:    []string{naming.ChangeCorrectResolution},
		},
		{
			name:    "prefix added",
			oldName: "Movie 2020 1080p",
			newName: "Collection - Movie 2020 1080p",
			want:    []string{naming.ChangeAddPrefix},
		},
		{
			name:    "duplicates removed",
			oldName: "Movie Movie 2020 1080p",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeRemoveDuplicates},
		},
		{
			name:    "tokens reordered",
			oldName: "Movie 1080p 2020",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeReorderTokens},
		},
		{
			name:    "casing standardized",
			oldName: "Movie 2020 1080P",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeStandardizeCasing},
		},
		{
			name:    "fallback normalize",
			oldName: "Movie 2020 1080p Extra",
			newName: "Movie 2020 1080p",
			want:    []string{naming.ChangeNormalizeFormat},
		},
	}

	for _, tc := range cases {
		got := naming.DetectChanges(tc.oldName, tc.newName)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: DetectChanges(%q, %q) = %v, want %v", tc.name, tc.oldName, tc.newName, got, tc.want)
		}
	}
}

func TestFormatChanges(t *testing.T) {
	got := naming.FormatChanges([]string{naming.ChangeAddYear, naming.ChangeAddResolution})
	if got != "Add Year + Add Resolution" {
		t.Fatalf("unexpected formatting: %q", got)
	}
}

func TestBaseTitle(t *testing.T) {
	vocab := defaultVocabulary()
	if got := naming.BaseTitle("The Matrix 1999 1080p Dual", vocab); got != "The Matrix" {
		t.Fatalf("unexpected base title: %q", got)
	}
	if got := naming.BaseTitle("Movie 2160p", vocab); got != "Movie" {
		t.Fatalf("unexpected base title: %q", got)
	}
}

func TestVocabularyMatch(t *testing.T) {
	vocab := defaultVocabulary()
	if got := vocab.Match("some.movie.legendado.1080p"); got != "Legendado" {
		t.Fatalf("unexpected match: %q", got)
	}
	if got := vocab.Match("some movie"); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
	if canonical, ok := vocab.Canonical("DUBLADO"); !ok || canonical != "Dublado" {
		t.Fatalf("unexpected canonical mapping: %q %v", canonical, ok)
	}
}

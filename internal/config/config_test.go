package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/config"
)

func TestLoadDefaultConfigUsesEnvTMDBKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantReports := filepath.Join(tempHome, ".local", "share", "marquee", "reports")
	if cfg.Paths.ReportDir != wantReports {
		t.Fatalf("unexpected report dir: got %q want %q", cfg.Paths.ReportDir, wantReports)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, ".local", "share", "marquee") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != config.Default().TMDB.BaseURL {
		t.Fatalf("unexpected TMDB base url: %q", cfg.TMDB.BaseURL)
	}
	if len(cfg.Naming.Languages) == 0 {
		t.Fatal("expected default language vocabulary")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`root_dirs = ["` + filepath.Join(dir, "movies") + `", ""]`,
		"[tmdb]",
		`api_key = "from-file"`,
		"[naming]",
		`languages = ["dual", "Dual", " English "]`,
		`video_extensions = ["MKV", ".mp4"]`,
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.TMDB.APIKey != "from-file" {
		t.Fatalf("unexpected api key: %q", cfg.TMDB.APIKey)
	}
	if len(cfg.Paths.RootDirs) != 1 {
		t.Fatalf("expected blank root pruned, got %v", cfg.Paths.RootDirs)
	}
	if got := cfg.Naming.Languages; len(got) != 2 || got[0] != "dual" || got[1] != "English" {
		t.Fatalf("unexpected language normalization: %v", got)
	}
	if got := cfg.Naming.VideoExtensions; len(got) != 2 || got[0] != ".mkv" || got[1] != ".mp4" {
		t.Fatalf("unexpected extension normalization: %v", got)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("HOME", t.TempDir())

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error when tmdb.api_key is absent")
	}
}

func TestLoadRejectsInvalidIgnorePattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[tmdb]",
		`api_key = "key"`,
		"[naming]",
		`ignore_dirs = "("`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for invalid ignore_dirs pattern")
	}
}

func TestFFprobeBinaryOverride(t *testing.T) {
	cfg := config.Default()
	if cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected default ffprobe binary: %q", cfg.FFprobeBinary())
	}
	cfg.Probing.FFprobeBinary = "/opt/ffmpeg/bin/ffprobe"
	if cfg.FFprobeBinary() != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("expected override, got %q", cfg.FFprobeBinary())
	}
}

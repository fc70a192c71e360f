package probe_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"marquee/internal/probe"
)

var videoExtensions = []string{".mkv", ".mp4", ".avi"}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("payload"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func stubFFprobe(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write stub ffprobe: %v", err)
	}
	return path
}

func TestResolutionFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie.2160p.mkv")

	binary := stubFFprobe(t, "exit 1")
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), dir); got != "2160p" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolutionFromFFprobeHeight(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie.mkv")

	binary := stubFFprobe(t, `echo '{"streams":[{"codec_type":"video","height":1080}]}'`)
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), dir); got != "1080p" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolutionOnlyFirstVideoConsulted(t *testing.T) {
	dir := t.TempDir()
	// Sorted order puts the unprobeable file first; the prober must not
	// fall through to the second file's filename token.
	writeFile(t, dir, "a-movie.mkv")
	writeFile(t, dir, "b-movie.1080p.mkv")

	binary := stubFFprobe(t, "exit 1")
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), dir); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

func TestResolutionSkipsNonVideoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cover.jpg")
	writeFile(t, dir, "movie.720P.mp4")

	binary := stubFFprobe(t, "exit 1")
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), dir); got != "720P" {
		t.Fatalf("expected filename casing preserved, got %q", got)
	}
}

func TestResolutionEmptyDirectory(t *testing.T) {
	binary := stubFFprobe(t, "exit 1")
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), t.TempDir()); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

func TestResolutionMissingDirectory(t *testing.T) {
	binary := stubFFprobe(t, "exit 1")
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), filepath.Join(t.TempDir(), "absent")); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

func TestResolutionBelowThreshold(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie.mkv")

	binary := stubFFprobe(t, `echo '{"streams":[{"codec_type":"video","height":360}]}'`)
	prober := probe.New(binary, videoExtensions, nil)

	if got := prober.Resolution(context.Background(), dir); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

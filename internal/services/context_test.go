package services_test

import (
	"context"
	"testing"

	"marquee/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "resolve")
	ctx = services.WithDirectory(ctx, "The Matrix 1999 1080p")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "resolve" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if dir, ok := services.DirectoryFromContext(ctx); !ok || dir != "The Matrix 1999 1080p" {
		t.Fatalf("unexpected directory: %v %v", dir, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}

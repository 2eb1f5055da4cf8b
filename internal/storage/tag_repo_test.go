package storage

import (
	"context"
	"testing"
)

func TestTagRepo_ReplaceTags(t *testing.T) {
	db := newTestDB(t)
	imageRepo := NewImageRepo(db)
	repo := NewTagRepo(db)
	ctx := context.Background()

	if err := imageRepo.UpsertPending(ctx, testImage("img-1")); err != nil {
		t.Fatalf("UpsertPending() error = %v", err)
	}

	first := []TagRecord{
		{Tag: "cat", Confidence: 0.9},
		{Tag: "animal", Confidence: 0.7},
		{Tag: "pet", Confidence: 0.5},
	}
	if err := repo.ReplaceTags(ctx, "img-1", first); err != nil {
		t.Fatalf("ReplaceTags() error = %v", err)
	}

	got, err := repo.ListByImage(ctx, "img-1")
	if err != nil {
		t.Fatalf("ListByImage() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByImage() returned %d tags, want 3", len(got))
	}
	if got[0].Tag != "cat" {
		t.Errorf("first tag = %q, want cat (highest confidence first)", got[0].Tag)
	}

	// Replacement fully swaps the set, no duplicates left behind
	second := []TagRecord{
		{Tag: "dog", Confidence: 0.8},
		{Tag: "animal", Confidence: 0.6},
	}
	if err := repo.ReplaceTags(ctx, "img-1", second); err != nil {
		t.Fatalf("ReplaceTags() error = %v", err)
	}

	got, err = repo.ListByImage(ctx, "img-1")
	if err != nil {
		t.Fatalf("ListByImage() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByImage() after replace returned %d tags, want 2", len(got))
	}
	for _, tag := range got {
		if tag.Tag == "cat" || tag.Tag == "pet" {
			t.Errorf("stale tag %q survived replacement", tag.Tag)
		}
	}

	// Empty slice clears the set
	if err := repo.ReplaceTags(ctx, "img-1", nil); err != nil {
		t.Fatalf("ReplaceTags(nil) error = %v", err)
	}
	got, err = repo.ListByImage(ctx, "img-1")
	if err != nil {
		t.Fatalf("ListByImage() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByImage() after clear returned %d tags, want 0", len(got))
	}
}

func TestTagRepo_ReplaceTags_MissingImage(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepo(db)
	ctx := context.Background()

	// FK enforcement rejects tags for an unknown image
	err := repo.ReplaceTags(ctx, "missing", []TagRecord{{Tag: "cat", Confidence: 0.9}})
	if err == nil {
		t.Error("ReplaceTags() for unknown image expected error, got nil")
	}
}

func TestTagRepo_ListByImages(t *testing.T) {
	db := newTestDB(t)
	imageRepo := NewImageRepo(db)
	repo := NewTagRepo(db)
	ctx := context.Background()

	for _, uuid := range []string{"img-1", "img-2", "img-3"} {
		if err := imageRepo.UpsertPending(ctx, testImage(uuid)); err != nil {
			t.Fatalf("UpsertPending(%s) error = %v", uuid, err)
		}
	}
	if err := repo.ReplaceTags(ctx, "img-1", []TagRecord{{Tag: "cat", Confidence: 0.9}}); err != nil {
		t.Fatalf("ReplaceTags() error = %v", err)
	}
	if err := repo.ReplaceTags(ctx, "img-2", []TagRecord{
		{Tag: "dog", Confidence: 0.8},
		{Tag: "animal", Confidence: 0.6},
	}); err != nil {
		t.Fatalf("ReplaceTags() error = %v", err)
	}

	got, err := repo.ListByImages(ctx, []string{"img-1", "img-2", "img-3"})
	if err != nil {
		t.Fatalf("ListByImages() error = %v", err)
	}

	if len(got["img-1"]) != 1 {
		t.Errorf("img-1 tags = %d, want 1", len(got["img-1"]))
	}
	if len(got["img-2"]) != 2 {
		t.Errorf("img-2 tags = %d, want 2", len(got["img-2"]))
	}
	if _, ok := got["img-3"]; ok {
		t.Error("img-3 has no tags and must be absent from the map")
	}

	empty, err := repo.ListByImages(ctx, nil)
	if err != nil {
		t.Fatalf("ListByImages(nil) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByImages(nil) returned %d entries, want 0", len(empty))
	}
}

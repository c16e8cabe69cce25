package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/trackdesk/trackdesk/internal/domain"
)

func TestDB_GetOrCreateTag_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, err := db.GetOrCreateTag(ctx, "ambient")
	if err != nil {
		t.Fatalf("GetOrCreateTag failed: %v", err)
	}
	second, err := db.GetOrCreateTag(ctx, "ambient")
	if err != nil {
		t.Fatalf("GetOrCreateTag failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Expected same tag ID, got %d and %d", first.ID, second.ID)
	}
}

func TestDB_CreateTag_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.CreateTag(ctx, "rough"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	_, err := db.CreateTag(ctx, "rough")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
}

func TestDB_AttachTag_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Tagged Track"}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	tag, err := db.CreateTag(ctx, "vocal")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	if err := db.AttachTag(ctx, track.ID, tag.ID); err != nil {
		t.Fatalf("AttachTag failed: %v", err)
	}
	err = db.AttachTag(ctx, track.ID, tag.ID)
	if !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("Expected ErrAlreadyAttached, got %v", err)
	}

	tags, err := db.ListTagsForTrack(ctx, track.ID)
	if err != nil {
		t.Fatalf("ListTagsForTrack failed: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("Expected 1 tag, got %d", len(tags))
	}
}

func TestDB_DetachTag(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Untag Me"}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	tag, err := db.CreateTag(ctx, "temp")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := db.AttachTag(ctx, track.ID, tag.ID); err != nil {
		t.Fatalf("AttachTag failed: %v", err)
	}

	if err := db.DetachTag(ctx, track.ID, tag.ID); err != nil {
		t.Fatalf("DetachTag failed: %v", err)
	}

	// Detaching again reports not found.
	err = db.DetachTag(ctx, track.ID, tag.ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}

	// The tag itself is untouched.
	if _, err := db.GetTagByID(ctx, tag.ID); err != nil {
		t.Errorf("Expected tag to survive detach, got %v", err)
	}
}

func TestDB_UpdateTagName_Conflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tag, err := db.CreateTag(ctx, "draft")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if _, err := db.CreateTag(ctx, "final"); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	err = db.UpdateTagName(ctx, tag.ID, "final")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
}

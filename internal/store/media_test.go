package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/trackdesk/trackdesk/internal/domain"
)

func TestDB_Media_Unattached(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	media := &domain.Media{Name: "loops.zip", FilePath: "/files/loops.zip", FileType: "zip"}
	if err := db.CreateMedia(ctx, media); err != nil {
		t.Fatalf("CreateMedia failed: %v", err)
	}

	got, err := db.GetMediaByID(ctx, media.ID)
	if err != nil {
		t.Fatalf("GetMediaByID failed: %v", err)
	}
	if got.TrackID != nil {
		t.Errorf("Expected nil track_id, got %v", *got.TrackID)
	}

	all, err := db.ListMedia(ctx)
	if err != nil {
		t.Fatalf("ListMedia failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 media, got %d", len(all))
	}
}

func TestDB_UpdateMediaFields_Reattach(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Host"}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	media := &domain.Media{Name: "stems.zip", FilePath: "/files/stems.zip", FileType: "zip"}
	if err := db.CreateMedia(ctx, media); err != nil {
		t.Fatalf("CreateMedia failed: %v", err)
	}

	err := db.UpdateMediaFields(ctx, media.ID, map[string]interface{}{"track_id": track.ID, "name": "stems-v2.zip"})
	if err != nil {
		t.Fatalf("UpdateMediaFields failed: %v", err)
	}

	got, err := db.GetMediaByID(ctx, media.ID)
	if err != nil {
		t.Fatalf("GetMediaByID failed: %v", err)
	}
	if got.TrackID == nil || *got.TrackID != track.ID {
		t.Errorf("Expected track_id %d, got %v", track.ID, got.TrackID)
	}
	if got.Name != "stems-v2.zip" {
		t.Errorf("Expected renamed media, got %q", got.Name)
	}

	forTrack, err := db.ListMediaForTrack(ctx, track.ID)
	if err != nil {
		t.Fatalf("ListMediaForTrack failed: %v", err)
	}
	if len(forTrack) != 1 {
		t.Errorf("Expected 1 media for track, got %d", len(forTrack))
	}
}

func TestDB_DeleteMedia_Missing(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteMedia(context.Background(), 777)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}

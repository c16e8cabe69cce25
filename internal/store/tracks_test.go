package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/trackdesk/trackdesk/internal/domain"
)

func TestDB_CreateTrack_DefaultStatusAndHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Demo A"}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	if track.ID == 0 {
		t.Error("Expected track ID to be set")
	}
	if track.Status != domain.TrackStatusIdea {
		t.Errorf("Expected default status %q, got %q", domain.TrackStatusIdea, track.Status)
	}

	history, err := db.ListHistoryForTrack(ctx, track.ID)
	if err != nil {
		t.Fatalf("ListHistoryForTrack failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(history))
	}
	if history[0].OldStatus != nil {
		t.Errorf("Expected nil old_status, got %v", *history[0].OldStatus)
	}
	if history[0].NewStatus != "idea" {
		t.Errorf("Expected new_status 'idea', got %q", history[0].NewStatus)
	}
	if history[0].Notes == nil || *history[0].Notes != "Track created" {
		t.Errorf("Expected creation note, got %v", history[0].Notes)
	}
}

func TestDB_UpdateTrackFields_StatusChange(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Status Track"}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}

	note := "vocals tracked"
	err := db.UpdateTrackFields(ctx, track.ID, map[string]interface{}{"status": "recording"}, &note)
	if err != nil {
		t.Fatalf("UpdateTrackFields failed: %v", err)
	}

	history, err := db.ListHistoryForTrack(ctx, track.ID)
	if err != nil {
		t.Fatalf("ListHistoryForTrack failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(history))
	}
	// Most recent first
	if history[0].OldStatus == nil || *history[0].OldStatus != "idea" {
		t.Errorf("Expected old_status 'idea', got %v", history[0].OldStatus)
	}
	if history[0].NewStatus != "recording" {
		t.Errorf("Expected new_status 'recording', got %q", history[0].NewStatus)
	}
	if history[0].Notes == nil || *history[0].Notes != note {
		t.Errorf("Expected note %q, got %v", note, history[0].Notes)
	}

	updated, err := db.GetTrackByID(ctx, track.ID)
	if err != nil {
		t.Fatalf("GetTrackByID failed: %v", err)
	}
	if updated.Status != domain.TrackStatusRecording {
		t.Errorf("Expected status 'recording', got %q", updated.Status)
	}
}

func TestDB_UpdateTrackFields_SameStatusNoHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Stable Track", Status: domain.TrackStatusMixing}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}

	err := db.UpdateTrackFields(ctx, track.ID, map[string]interface{}{"status": "mixing", "name": "Stable Track v2"}, nil)
	if err != nil {
		t.Fatalf("UpdateTrackFields failed: %v", err)
	}

	history, err := db.ListHistoryForTrack(ctx, track.ID)
	if err != nil {
		t.Fatalf("ListHistoryForTrack failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected only the creation entry, got %d entries", len(history))
	}

	updated, _ := db.GetTrackByID(ctx, track.ID)
	if updated.Name != "Stable Track v2" {
		t.Errorf("Expected renamed track, got %q", updated.Name)
	}
}

func TestDB_UpdateTrackFields_UnknownColumn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	track := &domain.Track{Name: "Guarded Track"}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}

	err := db.UpdateTrackFields(ctx, track.ID, map[string]interface{}{"file_path": "/tmp/x"}, nil)
	if err == nil {
		t.Error("Expected error for non-allow-listed column")
	}
}

func TestDB_UpdateTrackFields_MissingTrack(t *testing.T) {
	db := setupTestDB(t)

	err := db.UpdateTrackFields(context.Background(), 9999, map[string]interface{}{"name": "nope"}, nil)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}

func seedLibrary(t *testing.T, db *DB) (vocalTag *domain.Tag, tracks map[string]*domain.Track) {
	t.Helper()
	ctx := context.Background()

	nova, err := db.CreateArtist(ctx, "Nova Waves")
	if err != nil {
		t.Fatalf("CreateArtist failed: %v", err)
	}
	echo, err := db.CreateArtist(ctx, "Echo Chamber")
	if err != nil {
		t.Fatalf("CreateArtist failed: %v", err)
	}

	vocalTag, err = db.CreateTag(ctx, "vocal")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	tracks = make(map[string]*domain.Track)
	for _, tc := range []struct {
		name   string
		artist *int64
		status domain.TrackStatus
		tagged bool
	}{
		{"Midnight Mix", &nova.ID, domain.TrackStatusMixing, true},
		{"Morning Mix", &echo.ID, domain.TrackStatusMixing, false},
		{"Loose Idea", nil, domain.TrackStatusIdea, false},
	} {
		track := &domain.Track{Name: tc.name, ArtistID: tc.artist, Status: tc.status}
		if err := db.CreateTrack(ctx, track); err != nil {
			t.Fatalf("CreateTrack %q failed: %v", tc.name, err)
		}
		if tc.tagged {
			if err := db.AttachTag(ctx, track.ID, vocalTag.ID); err != nil {
				t.Fatalf("AttachTag failed: %v", err)
			}
		}
		tracks[tc.name] = track
	}
	return vocalTag, tracks
}

func TestDB_ListTracks_Filters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedLibrary(t, db)

	// Status and tag filters combine with AND semantics.
	rows, err := db.ListTracks(ctx, TrackFilter{Status: "mixing", Tag: "vocal"})
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Midnight Mix" {
		t.Errorf("Expected only 'Midnight Mix', got %d rows", len(rows))
	}

	// Artist substring match.
	rows, err = db.ListTracks(ctx, TrackFilter{Artist: "nova"})
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ArtistName == nil || *rows[0].ArtistName != "Nova Waves" {
		t.Errorf("Expected one track by Nova Waves, got %d rows", len(rows))
	}

	// Free-text search hits artistless tracks on their own name.
	rows, err = db.ListTracks(ctx, TrackFilter{Search: "loose"})
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Loose Idea" {
		t.Errorf("Expected 'Loose Idea', got %d rows", len(rows))
	}

	// Free-text search also matches on artist name.
	rows, err = db.ListTracks(ctx, TrackFilter{Search: "echo"})
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Morning Mix" {
		t.Errorf("Expected 'Morning Mix', got %d rows", len(rows))
	}

	// No filters returns everything.
	rows, err = db.ListTracks(ctx, TrackFilter{})
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("Expected 3 tracks, got %d", len(rows))
	}
}

func TestDB_ListTracks_Sorting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedLibrary(t, db)

	rows, err := db.ListTracks(ctx, TrackFilter{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("ListTracks failed: %v", err)
	}
	if len(rows) != 3 || rows[0].Name != "Loose Idea" {
		t.Errorf("Expected 'Loose Idea' first with name asc, got %q", rows[0].Name)
	}

	// Unrecognized sort field falls back to updated_at instead of erroring.
	rows, err = db.ListTracks(ctx, TrackFilter{SortBy: "drop table"})
	if err != nil {
		t.Fatalf("ListTracks with bogus sort failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("Expected 3 tracks, got %d", len(rows))
	}
}

func TestDB_TagNamesByTrack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, tracks := seedLibrary(t, db)

	tagged := tracks["Midnight Mix"]
	names, err := db.TagNamesByTrack(ctx, []int64{tagged.ID, tracks["Loose Idea"].ID})
	if err != nil {
		t.Fatalf("TagNamesByTrack failed: %v", err)
	}
	if len(names[tagged.ID]) != 1 || names[tagged.ID][0] != "vocal" {
		t.Errorf("Expected ['vocal'], got %v", names[tagged.ID])
	}
	if len(names[tracks["Loose Idea"].ID]) != 0 {
		t.Errorf("Expected no tags for untagged track, got %v", names[tracks["Loose Idea"].ID])
	}

	names, err = db.TagNamesByTrack(ctx, nil)
	if err != nil {
		t.Fatalf("TagNamesByTrack with no ids failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected empty map, got %v", names)
	}
}

func TestDB_DeleteTrack_Cascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	artist, err := db.CreateArtist(ctx, "Kept Artist")
	if err != nil {
		t.Fatalf("CreateArtist failed: %v", err)
	}
	tag, err := db.CreateTag(ctx, "kept-tag")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	track := &domain.Track{Name: "Doomed", ArtistID: &artist.ID}
	if err := db.CreateTrack(ctx, track); err != nil {
		t.Fatalf("CreateTrack failed: %v", err)
	}
	if err := db.AttachTag(ctx, track.ID, tag.ID); err != nil {
		t.Fatalf("AttachTag failed: %v", err)
	}
	link := &domain.Link{TrackID: track.ID, LinkType: "spotify", LinkURL: "https://example.com/t"}
	if err := db.CreateLink(ctx, link); err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}
	media := &domain.Media{TrackID: &track.ID, Name: "rough.wav"}
	if err := db.CreateMedia(ctx, media); err != nil {
		t.Fatalf("CreateMedia failed: %v", err)
	}

	if err := db.DeleteTrack(ctx, track.ID); err != nil {
		t.Fatalf("DeleteTrack failed: %v", err)
	}

	links, _ := db.ListLinksForTrack(ctx, track.ID)
	if len(links) != 0 {
		t.Errorf("Expected links to cascade, got %d", len(links))
	}
	history, _ := db.ListHistoryForTrack(ctx, track.ID)
	if len(history) != 0 {
		t.Errorf("Expected history to cascade, got %d", len(history))
	}
	medias, _ := db.ListMediaForTrack(ctx, track.ID)
	if len(medias) != 0 {
		t.Errorf("Expected media to cascade, got %d", len(medias))
	}
	tags, _ := db.ListTagsForTrack(ctx, track.ID)
	if len(tags) != 0 {
		t.Errorf("Expected tag associations to cascade, got %d", len(tags))
	}

	// Reference entities survive the cascade.
	if _, err := db.GetArtistByID(ctx, artist.ID); err != nil {
		t.Errorf("Expected artist to survive, got %v", err)
	}
	if _, err := db.GetTagByID(ctx, tag.ID); err != nil {
		t.Errorf("Expected tag to survive, got %v", err)
	}
}

func TestDB_DeleteTrack_Missing(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteTrack(context.Background(), 4242)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}

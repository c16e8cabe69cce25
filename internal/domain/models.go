package domain

import (
	"strings"
	"time"
)

// TrackStatus represents where a track sits in the production workflow
type TrackStatus string

const (
	TrackStatusIdea      TrackStatus = "idea"
	TrackStatusDemo      TrackStatus = "demo"
	TrackStatusRecording TrackStatus = "recording"
	TrackStatusMixing    TrackStatus = "mixing"
	TrackStatusMastering TrackStatus = "mastering"
	TrackStatusReleased  TrackStatus = "released"
)

// WorkflowStatuses lists the known statuses in workflow order. The status
// column itself is free-form text; this ordering is used for stats output.
var WorkflowStatuses = []TrackStatus{
	TrackStatusIdea,
	TrackStatusDemo,
	TrackStatusRecording,
	TrackStatusMixing,
	TrackStatusMastering,
	TrackStatusReleased,
}

// Track is a music project being produced
type Track struct {
	ID        int64       `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	ArtistID  *int64      `json:"artist_id" db:"artist_id"`
	Status    TrackStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// Normalize ensures the track data is consistent before it is stored.
func (t *Track) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	if t.Status == "" {
		t.Status = TrackStatusIdea
	}
}

// Artist is a reference entity owned independently of its tracks
type Artist struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Tag labels tracks through a many-to-many association
type Tag struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Link is an external reference (streaming URL, reference mix, ...) owned by
// one track and deleted with it
type Link struct {
	ID          int64     `json:"id" db:"id"`
	TrackID     int64     `json:"track_id" db:"track_id"`
	LinkType    string    `json:"link_type" db:"link_type"`
	LinkURL     string    `json:"link_url" db:"link_url"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Media is an attached file record. The track reference is optional; media
// with a track is deleted together with it.
type Media struct {
	ID        int64     `json:"id" db:"id"`
	TrackID   *int64    `json:"track_id" db:"track_id"`
	Name      string    `json:"name" db:"name"`
	FilePath  string    `json:"file_path" db:"file_path"`
	FileType  string    `json:"file_type" db:"file_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StatusHistory is one immutable entry in a track's status audit trail.
// OldStatus is nil exactly once per track, on the creation entry.
type StatusHistory struct {
	ID        int64     `json:"id" db:"id"`
	TrackID   int64     `json:"track_id" db:"track_id"`
	OldStatus *string   `json:"old_status" db:"old_status"`
	NewStatus string    `json:"new_status" db:"new_status"`
	Notes     *string   `json:"notes" db:"notes"`
	ChangedAt time.Time `json:"changed_at" db:"changed_at"`
}

// Stats summarizes the library for the dashboard
type Stats struct {
	TotalTracks    int            `json:"total_tracks"`
	TotalArtists   int            `json:"total_artists"`
	TotalTags      int            `json:"total_tags"`
	TracksByStatus map[string]int `json:"tracks_by_status"`
}

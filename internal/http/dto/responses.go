package dto

import (
	"time"

	"github.com/trackdesk/trackdesk/internal/domain"
)

// FormatTime renders every API timestamp in one fixed ISO-8601 form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type ArtistResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewArtistResponse(a *domain.Artist) *ArtistResponse {
	return &ArtistResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: FormatTime(a.CreatedAt),
		UpdatedAt: FormatTime(a.UpdatedAt),
	}
}

type TagResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewTagResponse(t *domain.Tag) *TagResponse {
	return &TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: FormatTime(t.CreatedAt),
		UpdatedAt: FormatTime(t.UpdatedAt),
	}
}

type LinkResponse struct {
	ID          int64  `json:"id"`
	TrackID     int64  `json:"track_id"`
	LinkType    string `json:"link_type"`
	LinkURL     string `json:"link_url"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewLinkResponse(l *domain.Link) *LinkResponse {
	return &LinkResponse{
		ID:          l.ID,
		TrackID:     l.TrackID,
		LinkType:    l.LinkType,
		LinkURL:     l.LinkURL,
		Description: l.Description,
		CreatedAt:   FormatTime(l.CreatedAt),
		UpdatedAt:   FormatTime(l.UpdatedAt),
	}
}

type MediaResponse struct {
	ID        int64  `json:"id"`
	TrackID   *int64 `json:"track_id"`
	Name      string `json:"name"`
	FilePath  string `json:"file_path"`
	FileType  string `json:"file_type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewMediaResponse(m *domain.Media) *MediaResponse {
	return &MediaResponse{
		ID:        m.ID,
		TrackID:   m.TrackID,
		Name:      m.Name,
		FilePath:  m.FilePath,
		FileType:  m.FileType,
		CreatedAt: FormatTime(m.CreatedAt),
		UpdatedAt: FormatTime(m.UpdatedAt),
	}
}

type StatusHistoryResponse struct {
	ID        int64   `json:"id"`
	TrackID   int64   `json:"track_id"`
	OldStatus *string `json:"old_status"`
	NewStatus string  `json:"new_status"`
	Notes     *string `json:"notes"`
	ChangedAt string  `json:"changed_at"`
}

func NewStatusHistoryResponse(h *domain.StatusHistory) *StatusHistoryResponse {
	return &StatusHistoryResponse{
		ID:        h.ID,
		TrackID:   h.TrackID,
		OldStatus: h.OldStatus,
		NewStatus: h.NewStatus,
		Notes:     h.Notes,
		ChangedAt: FormatTime(h.ChangedAt),
	}
}

// TrackResponse is the full representation with nested related entities.
type TrackResponse struct {
	ID            int64                    `json:"id"`
	Name          string                   `json:"name"`
	ArtistID      *int64                   `json:"artist_id"`
	Artist        *ArtistResponse          `json:"artist"`
	Status        string                   `json:"status"`
	Tags          []*TagResponse           `json:"tags"`
	Links         []*LinkResponse          `json:"links"`
	StatusHistory []*StatusHistoryResponse `json:"status_history"`
	MediaFiles    []*MediaResponse         `json:"media_files"`
	CreatedAt     string                   `json:"created_at"`
	UpdatedAt     string                   `json:"updated_at"`
}

func NewTrackResponse(t *domain.Track, artist *domain.Artist, tags []*domain.Tag, links []*domain.Link, history []*domain.StatusHistory, media []*domain.Media) *TrackResponse {
	resp := &TrackResponse{
		ID:            t.ID,
		Name:          t.Name,
		ArtistID:      t.ArtistID,
		Status:        string(t.Status),
		Tags:          make([]*TagResponse, 0, len(tags)),
		Links:         make([]*LinkResponse, 0, len(links)),
		StatusHistory: make([]*StatusHistoryResponse, 0, len(history)),
		MediaFiles:    make([]*MediaResponse, 0, len(media)),
		CreatedAt:     FormatTime(t.CreatedAt),
		UpdatedAt:     FormatTime(t.UpdatedAt),
	}
	if artist != nil {
		resp.Artist = NewArtistResponse(artist)
	}
	for _, tag := range tags {
		resp.Tags = append(resp.Tags, NewTagResponse(tag))
	}
	for _, link := range links {
		resp.Links = append(resp.Links, NewLinkResponse(link))
	}
	for _, h := range history {
		resp.StatusHistory = append(resp.StatusHistory, NewStatusHistoryResponse(h))
	}
	for _, m := range media {
		resp.MediaFiles = append(resp.MediaFiles, NewMediaResponse(m))
	}
	return resp
}

// TrackSummary is the flattened listing representation: related collections
// collapse to scalars and the heavy nested objects are dropped.
type TrackSummary struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	ArtistID   *int64   `json:"artist_id"`
	ArtistName *string  `json:"artist_name"`
	Status     string   `json:"status"`
	TagNames   []string `json:"tag_names"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

func NewTrackSummary(t *domain.Track, artistName *string, tagNames []string) *TrackSummary {
	if tagNames == nil {
		tagNames = []string{}
	}
	return &TrackSummary{
		ID:         t.ID,
		Name:       t.Name,
		ArtistID:   t.ArtistID,
		ArtistName: artistName,
		Status:     string(t.Status),
		TagNames:   tagNames,
		CreatedAt:  FormatTime(t.CreatedAt),
		UpdatedAt:  FormatTime(t.UpdatedAt),
	}
}

package dto

import (
	"net/url"
	"strings"

	"github.com/go-playground/form/v4"

	"github.com/trackdesk/trackdesk/internal/store"
)

type LinkPayload struct {
	LinkType    string `json:"link_type"`
	LinkURL     string `json:"link_url"`
	Description string `json:"description"`
}

type TrackCreateRequest struct {
	Name       string        `json:"name"`
	ArtistID   *int64        `json:"artist_id"`
	ArtistName *string       `json:"artist_name"`
	Status     *string       `json:"status"`
	Tags       []string      `json:"tags"`
	Links      []LinkPayload `json:"links"`
}

func (r *TrackCreateRequest) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	for _, l := range r.Links {
		if strings.TrimSpace(l.LinkURL) == "" {
			errs = append(errs, ValidationError{Field: "links", Message: "link_url is required"})
			break
		}
	}

	return errs
}

type TrackUpdateRequest struct {
	Name       *string `json:"name"`
	ArtistID   *int64  `json:"artist_id"`
	ArtistName *string `json:"artist_name"`
	Status     *string `json:"status"`
	StatusNote *string `json:"status_note"`
}

func (r *TrackUpdateRequest) Validate() []ValidationError {
	var errs []ValidationError

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.Status != nil && strings.TrimSpace(*r.Status) == "" {
		errs = append(errs, ValidationError{Field: "status", Message: "cannot be empty"})
	}

	return errs
}

// ToUpdates maps the set fields onto allow-listed track columns. Artist
// resolution (artist_name lookup-or-create) stays with the handler.
func (r *TrackUpdateRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})

	if r.Name != nil {
		updates["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}

	return updates
}

var queryDecoder = form.NewDecoder()

// TrackListQuery carries the listing and search filters from the query
// string. Q is the /search spelling of the free-text filter.
type TrackListQuery struct {
	Status    string `form:"status"`
	Artist    string `form:"artist"`
	Tag       string `form:"tag"`
	Search    string `form:"search"`
	Q         string `form:"q"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Simple    bool   `form:"simple"`
}

func ParseTrackListQuery(values url.Values) (*TrackListQuery, error) {
	q := &TrackListQuery{}
	if err := queryDecoder.Decode(q, values); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *TrackListQuery) Filter() store.TrackFilter {
	search := q.Search
	if q.Q != "" {
		search = q.Q
	}
	return store.TrackFilter{
		Status:    q.Status,
		Artist:    q.Artist,
		Tag:       q.Tag,
		Search:    search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
}

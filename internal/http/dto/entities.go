package dto

import (
	"encoding/json"
	"strings"
)

// NullableID is an optional reference field that distinguishes an absent
// key from an explicit JSON null. Set means the key was present; Valid
// means it carried a value rather than null.
type NullableID struct {
	Set   bool
	Valid bool
	Value int64
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns the id, or nil when the field was absent or null.
func (n *NullableID) Ptr() *int64 {
	if !n.Set || !n.Valid {
		return nil
	}
	return &n.Value
}

// NameRequest covers artist and tag create/rename bodies.
type NameRequest struct {
	Name string `json:"name"`
}

func (r *NameRequest) Validate() []ValidationError {
	if strings.TrimSpace(r.Name) == "" {
		return []ValidationError{{Field: "name", Message: "is required"}}
	}
	return nil
}

// TagAttachRequest accepts either spelling the frontend uses.
type TagAttachRequest struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
}

// Resolve returns the tag name, preferring tag_name over name.
func (r *TagAttachRequest) Resolve() string {
	if name := strings.TrimSpace(r.TagName); name != "" {
		return name
	}
	return strings.TrimSpace(r.Name)
}

type LinkCreateRequest struct {
	LinkType    string `json:"link_type"`
	LinkURL     string `json:"link_url"`
	Description string `json:"description"`
}

func (r *LinkCreateRequest) Validate() []ValidationError {
	if strings.TrimSpace(r.LinkURL) == "" {
		return []ValidationError{{Field: "link_url", Message: "is required"}}
	}
	return nil
}

type LinkUpdateRequest struct {
	LinkType    *string `json:"link_type"`
	LinkURL     *string `json:"link_url"`
	Description *string `json:"description"`
}

func (r *LinkUpdateRequest) Validate() []ValidationError {
	if r.LinkURL != nil && strings.TrimSpace(*r.LinkURL) == "" {
		return []ValidationError{{Field: "link_url", Message: "cannot be empty"}}
	}
	return nil
}

func (r *LinkUpdateRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})

	if r.LinkType != nil {
		updates["link_type"] = *r.LinkType
	}
	if r.LinkURL != nil {
		updates["link_url"] = *r.LinkURL
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}

	return updates
}

type MediaCreateRequest struct {
	Name     string `json:"name"`
	TrackID  *int64 `json:"track_id"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

func (r *MediaCreateRequest) Validate() []ValidationError {
	if strings.TrimSpace(r.Name) == "" {
		return []ValidationError{{Field: "name", Message: "is required"}}
	}
	return nil
}

type MediaUpdateRequest struct {
	Name     *string    `json:"name"`
	TrackID  NullableID `json:"track_id"`
	FilePath *string    `json:"file_path"`
	FileType *string    `json:"file_type"`
}

func (r *MediaUpdateRequest) Validate() []ValidationError {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return []ValidationError{{Field: "name", Message: "cannot be empty"}}
	}
	return nil
}

func (r *MediaUpdateRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})

	if r.Name != nil {
		updates["name"] = strings.TrimSpace(*r.Name)
	}
	if r.TrackID.Set {
		// Explicit null detaches the media from its track.
		if r.TrackID.Valid {
			updates["track_id"] = r.TrackID.Value
		} else {
			updates["track_id"] = nil
		}
	}
	if r.FilePath != nil {
		updates["file_path"] = *r.FilePath
	}
	if r.FileType != nil {
		updates["file_type"] = *r.FileType
	}

	return updates
}

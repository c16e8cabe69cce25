package httpapp

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/trackdesk/trackdesk/internal/domain"
	"github.com/trackdesk/trackdesk/internal/http/dto"
)

// errUnknownTrack marks a media request referencing a track_id that does not
// exist, so it maps to a 400 instead of a foreign-key failure.
var errUnknownTrack = errors.New("unknown track_id")

func (h *Handler) checkTrackRef(r *http.Request, trackID *int64) error {
	if trackID == nil {
		return nil
	}
	if _, err := h.Store.GetTrackByID(r.Context(), *trackID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errUnknownTrack
		}
		return err
	}
	return nil
}

func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	medias, err := h.Store.ListMedia(r.Context())
	if err != nil {
		h.Logger.Error("list media", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list media")
		return
	}

	out := make([]*dto.MediaResponse, 0, len(medias))
	for _, m := range medias {
		out = append(out, dto.NewMediaResponse(m))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	media, err := h.Store.GetMediaByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		h.Logger.Error("get media", "media_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load media")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewMediaResponse(media))
}

func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var req dto.MediaCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	if err := h.checkTrackRef(r, req.TrackID); err != nil {
		if errors.Is(err, errUnknownTrack) {
			respondError(w, http.StatusBadRequest, "unknown track_id")
			return
		}
		h.Logger.Error("check track ref", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create media")
		return
	}

	media := &domain.Media{
		TrackID:  req.TrackID,
		Name:     strings.TrimSpace(req.Name),
		FilePath: req.FilePath,
		FileType: req.FileType,
	}
	if err := h.Store.CreateMedia(r.Context(), media); err != nil {
		h.Logger.Error("create media", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create media")
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewMediaResponse(media))
}

func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	var req dto.MediaUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	// Only a real id needs verifying; an explicit null detaches.
	if err := h.checkTrackRef(r, req.TrackID.Ptr()); err != nil {
		if errors.Is(err, errUnknownTrack) {
			respondError(w, http.StatusBadRequest, "unknown track_id")
			return
		}
		h.Logger.Error("check track ref", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update media")
		return
	}

	ctx := r.Context()
	err = h.Store.UpdateMediaFields(ctx, id, req.ToUpdates())
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		h.Logger.Error("update media", "media_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update media")
		return
	}

	media, err := h.Store.GetMediaByID(ctx, id)
	if err != nil {
		h.Logger.Error("load updated media", "media_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load media")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewMediaResponse(media))
}

func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	err = h.Store.DeleteMedia(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		h.Logger.Error("delete media", "media_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete media")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

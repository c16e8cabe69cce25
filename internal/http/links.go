package httpapp

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trackdesk/trackdesk/internal/domain"
	"github.com/trackdesk/trackdesk/internal/http/dto"
)

// trackExists answers 404 and returns false when the track is missing.
func (h *Handler) trackExists(w http.ResponseWriter, r *http.Request, trackID int64) bool {
	if _, err := h.Store.GetTrackByID(r.Context(), trackID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "track not found")
		} else {
			h.Logger.Error("get track", "track_id", trackID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load track")
		}
		return false
	}
	return true
}

func (h *Handler) ListTrackLinks(w http.ResponseWriter, r *http.Request) {
	trackID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}
	if !h.trackExists(w, r, trackID) {
		return
	}

	links, err := h.Store.ListLinksForTrack(r.Context(), trackID)
	if err != nil {
		h.Logger.Error("list links", "track_id", trackID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list links")
		return
	}

	out := make([]*dto.LinkResponse, 0, len(links))
	for _, link := range links {
		out = append(out, dto.NewLinkResponse(link))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateTrackLink(w http.ResponseWriter, r *http.Request) {
	trackID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	var req dto.LinkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	if !h.trackExists(w, r, trackID) {
		return
	}

	link := &domain.Link{
		TrackID:     trackID,
		LinkType:    req.LinkType,
		LinkURL:     req.LinkURL,
		Description: req.Description,
	}
	if err := h.Store.CreateLink(r.Context(), link); err != nil {
		h.Logger.Error("create link", "track_id", trackID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create link")
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewLinkResponse(link))
}

func (h *Handler) UpdateTrackLink(w http.ResponseWriter, r *http.Request) {
	trackID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}
	linkID, err := urlID(r, "linkID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	var req dto.LinkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	ctx := r.Context()
	err = h.Store.UpdateLinkFields(ctx, trackID, linkID, req.ToUpdates())
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "link not found")
		return
	}
	if err != nil {
		h.Logger.Error("update link", "track_id", trackID, "link_id", linkID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update link")
		return
	}

	link, err := h.Store.GetLinkForTrack(ctx, trackID, linkID)
	if err != nil {
		h.Logger.Error("load updated link", "track_id", trackID, "link_id", linkID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load link")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLinkResponse(link))
}

func (h *Handler) DeleteTrackLink(w http.ResponseWriter, r *http.Request) {
	trackID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}
	linkID, err := urlID(r, "linkID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	err = h.Store.DeleteLinkForTrack(r.Context(), trackID, linkID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "link not found")
		return
	}
	if err != nil {
		h.Logger.Error("delete link", "track_id", trackID, "link_id", linkID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

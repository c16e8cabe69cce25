package httpapp

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trackdesk/trackdesk/internal/http/dto"
	"github.com/trackdesk/trackdesk/internal/store"
)

func (h *Handler) AttachTrackTag(w http.ResponseWriter, r *http.Request) {
	trackID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	var req dto.TagAttachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	name := req.Resolve()
	if name == "" {
		respondError(w, http.StatusBadRequest, "tag_name is required")
		return
	}

	ctx := r.Context()
	var tagResp *dto.TagResponse

	err = h.Store.RunInTx(ctx, func(tx *store.DB) error {
		if _, err := tx.GetTrackByID(ctx, trackID); err != nil {
			return err
		}
		tag, err := tx.GetOrCreateTag(ctx, name)
		if err != nil {
			return err
		}
		tagResp = dto.NewTagResponse(tag)
		return tx.AttachTag(ctx, trackID, tag.ID)
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "track not found")
		return
	}
	if errors.Is(err, store.ErrAlreadyAttached) {
		respondConflict(w, "tag already attached to track", tagResp)
		return
	}
	if err != nil {
		h.Logger.Error("attach tag", "track_id", trackID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to attach tag")
		return
	}

	respondJSON(w, http.StatusCreated, tagResp)
}

func (h *Handler) DetachTrackTag(w http.ResponseWriter, r *http.Request) {
	trackID, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}
	tagID, err := urlID(r, "tagID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	err = h.Store.DetachTag(r.Context(), trackID, tagID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "tag not attached to track")
		return
	}
	if err != nil {
		h.Logger.Error("detach tag", "track_id", trackID, "tag_id", tagID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to detach tag")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "tag detached"})
}

package httpapp

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/trackdesk/trackdesk/internal/http/dto"
	"github.com/trackdesk/trackdesk/internal/store"
)

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Store.ListTags(r.Context())
	if err != nil {
		h.Logger.Error("list tags", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list tags")
		return
	}

	out := make([]*dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, dto.NewTagResponse(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	tag, err := h.Store.GetTagByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "tag not found")
		return
	}
	if err != nil {
		h.Logger.Error("get tag", "tag_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load tag")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewTagResponse(tag))
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req dto.NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	ctx := r.Context()
	name := strings.TrimSpace(req.Name)

	tag, err := h.Store.CreateTag(ctx, name)
	if errors.Is(err, store.ErrDuplicateName) {
		existing, lookupErr := h.Store.GetTagByName(ctx, name)
		if lookupErr != nil || existing == nil {
			h.Logger.Error("lookup conflicting tag", "name", name, "error", lookupErr)
			respondError(w, http.StatusInternalServerError, "failed to create tag")
			return
		}
		respondConflict(w, "tag already exists", dto.NewTagResponse(existing))
		return
	}
	if err != nil {
		h.Logger.Error("create tag", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create tag")
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewTagResponse(tag))
}

func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req dto.NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	ctx := r.Context()
	name := strings.TrimSpace(req.Name)

	err = h.Store.UpdateTagName(ctx, id, name)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "tag not found")
		return
	}
	if errors.Is(err, store.ErrDuplicateName) {
		existing, lookupErr := h.Store.GetTagByName(ctx, name)
		if lookupErr != nil || existing == nil {
			h.Logger.Error("lookup conflicting tag", "name", name, "error", lookupErr)
			respondError(w, http.StatusInternalServerError, "failed to update tag")
			return
		}
		respondConflict(w, "tag already exists", dto.NewTagResponse(existing))
		return
	}
	if err != nil {
		h.Logger.Error("update tag", "tag_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update tag")
		return
	}

	tag, err := h.Store.GetTagByID(ctx, id)
	if err != nil {
		h.Logger.Error("load updated tag", "tag_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load tag")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewTagResponse(tag))
}

func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	err = h.Store.DeleteTag(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "tag not found")
		return
	}
	if err != nil {
		h.Logger.Error("delete tag", "tag_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

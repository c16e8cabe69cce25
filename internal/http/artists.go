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

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Store.ListArtists(r.Context())
	if err != nil {
		h.Logger.Error("list artists", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list artists")
		return
	}

	out := make([]*dto.ArtistResponse, 0, len(artists))
	for _, a := range artists {
		out = append(out, dto.NewArtistResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid artist id")
		return
	}

	artist, err := h.Store.GetArtistByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "artist not found")
		return
	}
	if err != nil {
		h.Logger.Error("get artist", "artist_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load artist")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewArtistResponse(artist))
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
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

	artist, err := h.Store.CreateArtist(ctx, name)
	if errors.Is(err, store.ErrDuplicateName) {
		existing, lookupErr := h.Store.GetArtistByName(ctx, name)
		if lookupErr != nil || existing == nil {
			h.Logger.Error("lookup conflicting artist", "name", name, "error", lookupErr)
			respondError(w, http.StatusInternalServerError, "failed to create artist")
			return
		}
		respondConflict(w, "artist already exists", dto.NewArtistResponse(existing))
		return
	}
	if err != nil {
		h.Logger.Error("create artist", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create artist")
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewArtistResponse(artist))
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid artist id")
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

	err = h.Store.UpdateArtistName(ctx, id, name)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "artist not found")
		return
	}
	if errors.Is(err, store.ErrDuplicateName) {
		existing, lookupErr := h.Store.GetArtistByName(ctx, name)
		if lookupErr != nil || existing == nil {
			h.Logger.Error("lookup conflicting artist", "name", name, "error", lookupErr)
			respondError(w, http.StatusInternalServerError, "failed to update artist")
			return
		}
		respondConflict(w, "artist already exists", dto.NewArtistResponse(existing))
		return
	}
	if err != nil {
		h.Logger.Error("update artist", "artist_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update artist")
		return
	}

	artist, err := h.Store.GetArtistByID(ctx, id)
	if err != nil {
		h.Logger.Error("load updated artist", "artist_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load artist")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewArtistResponse(artist))
}

func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid artist id")
		return
	}

	err = h.Store.DeleteArtist(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "artist not found")
		return
	}
	if err != nil {
		h.Logger.Error("delete artist", "artist_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete artist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

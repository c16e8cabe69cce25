package httpapp

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/trackdesk/trackdesk/internal/domain"
	"github.com/trackdesk/trackdesk/internal/http/dto"
	"github.com/trackdesk/trackdesk/internal/store"
)

// errUnknownArtist marks a request referencing an artist_id that no longer
// exists, so it maps to a 400 instead of a 500.
var errUnknownArtist = errors.New("unknown artist_id")

func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseTrackListQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}
	h.renderTrackList(w, r, q.Filter(), q.Simple)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseTrackListQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}
	h.renderTrackList(w, r, q.Filter(), q.Simple)
}

func (h *Handler) renderTrackList(w http.ResponseWriter, r *http.Request, filter store.TrackFilter, simple bool) {
	ctx := r.Context()

	rows, err := h.Store.ListTracks(ctx, filter)
	if err != nil {
		h.Logger.Error("list tracks", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list tracks")
		return
	}

	if simple {
		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		tagNames, err := h.Store.TagNamesByTrack(ctx, ids)
		if err != nil {
			h.Logger.Error("list track tags", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to list tracks")
			return
		}

		out := make([]*dto.TrackSummary, 0, len(rows))
		for _, row := range rows {
			out = append(out, dto.NewTrackSummary(&row.Track, row.ArtistName, tagNames[row.ID]))
		}
		respondJSON(w, http.StatusOK, out)
		return
	}

	out := make([]*dto.TrackResponse, 0, len(rows))
	for _, row := range rows {
		resp, err := h.trackResponse(ctx, h.Store, row.ID)
		if err != nil {
			h.Logger.Error("load track", "track_id", row.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to list tracks")
			return
		}
		out = append(out, resp)
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	resp, err := h.trackResponse(r.Context(), h.Store, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "track not found")
		return
	}
	if err != nil {
		h.Logger.Error("get track", "track_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load track")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateTrack(w http.ResponseWriter, r *http.Request) {
	var req dto.TrackCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	ctx := r.Context()
	var trackID int64

	err := h.Store.RunInTx(ctx, func(tx *store.DB) error {
		track := &domain.Track{Name: strings.TrimSpace(req.Name)}
		if req.Status != nil {
			track.Status = domain.TrackStatus(*req.Status)
		}

		if req.ArtistName != nil && strings.TrimSpace(*req.ArtistName) != "" {
			artist, err := tx.GetOrCreateArtist(ctx, strings.TrimSpace(*req.ArtistName))
			if err != nil {
				return err
			}
			track.ArtistID = &artist.ID
		} else if req.ArtistID != nil {
			if _, err := tx.GetArtistByID(ctx, *req.ArtistID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return errUnknownArtist
				}
				return err
			}
			track.ArtistID = req.ArtistID
		}

		if err := tx.CreateTrack(ctx, track); err != nil {
			return err
		}

		for _, name := range req.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			tag, err := tx.GetOrCreateTag(ctx, name)
			if err != nil {
				return err
			}
			// Repeated names in the payload collapse to one association.
			if err := tx.AttachTag(ctx, track.ID, tag.ID); err != nil && !errors.Is(err, store.ErrAlreadyAttached) {
				return err
			}
		}

		for _, lp := range req.Links {
			link := &domain.Link{
				TrackID:     track.ID,
				LinkType:    lp.LinkType,
				LinkURL:     lp.LinkURL,
				Description: lp.Description,
			}
			if err := tx.CreateLink(ctx, link); err != nil {
				return err
			}
		}

		trackID = track.ID
		return nil
	})
	if errors.Is(err, errUnknownArtist) {
		respondError(w, http.StatusBadRequest, "unknown artist_id")
		return
	}
	if err != nil {
		h.Logger.Error("create track", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create track")
		return
	}

	resp, err := h.trackResponse(ctx, h.Store, trackID)
	if err != nil {
		h.Logger.Error("load created track", "track_id", trackID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load track")
		return
	}
	h.Logger.WithTrack(trackID, resp.Name).Info("track created", "status", resp.Status)
	respondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	var req dto.TrackUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	ctx := r.Context()

	err = h.Store.RunInTx(ctx, func(tx *store.DB) error {
		updates := req.ToUpdates()

		if req.ArtistName != nil {
			name := strings.TrimSpace(*req.ArtistName)
			if name == "" {
				// Explicit empty artist_name detaches the artist.
				updates["artist_id"] = nil
			} else {
				artist, err := tx.GetOrCreateArtist(ctx, name)
				if err != nil {
					return err
				}
				updates["artist_id"] = artist.ID
			}
		} else if req.ArtistID != nil {
			if _, err := tx.GetArtistByID(ctx, *req.ArtistID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return errUnknownArtist
				}
				return err
			}
			updates["artist_id"] = *req.ArtistID
		}

		return tx.UpdateTrackFields(ctx, id, updates, req.StatusNote)
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "track not found")
		return
	}
	if errors.Is(err, errUnknownArtist) {
		respondError(w, http.StatusBadRequest, "unknown artist_id")
		return
	}
	if err != nil {
		h.Logger.Error("update track", "track_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update track")
		return
	}

	resp, err := h.trackResponse(ctx, h.Store, id)
	if err != nil {
		h.Logger.Error("load updated track", "track_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load track")
		return
	}
	h.Logger.WithTrack(id, resp.Name).Info("track updated", "status", resp.Status)
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	err = h.Store.DeleteTrack(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "track not found")
		return
	}
	if err != nil {
		h.Logger.Error("delete track", "track_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete track")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTrackHistory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	ctx := r.Context()
	if _, err := h.Store.GetTrackByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "track not found")
			return
		}
		h.Logger.Error("get track", "track_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load track")
		return
	}

	history, err := h.Store.ListHistoryForTrack(ctx, id)
	if err != nil {
		h.Logger.Error("list history", "track_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	out := make([]*dto.StatusHistoryResponse, 0, len(history))
	for _, entry := range history {
		out = append(out, dto.NewStatusHistoryResponse(entry))
	}
	respondJSON(w, http.StatusOK, out)
}

package httpapp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trackdesk/trackdesk/internal/domain"
	"github.com/trackdesk/trackdesk/internal/http/dto"
	"github.com/trackdesk/trackdesk/internal/logger"
	"github.com/trackdesk/trackdesk/internal/store"
)

type Handler struct {
	Store  *store.DB
	Logger *logger.Logger
}

func NewHandler(db *store.DB, log *logger.Logger) *Handler {
	return &Handler{
		Store:  db,
		Logger: log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/stats", h.Stats)
		r.Get("/search", h.Search)

		r.Route("/tracks", func(r chi.Router) {
			r.Get("/", h.ListTracks)
			r.Post("/", h.CreateTrack)
			r.Get("/{id}", h.GetTrack)
			r.Put("/{id}", h.UpdateTrack)
			r.Delete("/{id}", h.DeleteTrack)
			r.Get("/{id}/history", h.GetTrackHistory)
			r.Post("/{id}/tags", h.AttachTrackTag)
			r.Delete("/{id}/tags/{tagID}", h.DetachTrackTag)
			r.Get("/{id}/links", h.ListTrackLinks)
			r.Post("/{id}/links", h.CreateTrackLink)
			r.Put("/{id}/links/{linkID}", h.UpdateTrackLink)
			r.Delete("/{id}/links/{linkID}", h.DeleteTrackLink)
		})

		r.Route("/artists", func(r chi.Router) {
			r.Get("/", h.ListArtists)
			r.Post("/", h.CreateArtist)
			r.Get("/{id}", h.GetArtist)
			r.Put("/{id}", h.UpdateArtist)
			r.Delete("/{id}", h.DeleteArtist)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.ListTags)
			r.Post("/", h.CreateTag)
			r.Get("/{id}", h.GetTag)
			r.Put("/{id}", h.UpdateTag)
			r.Delete("/{id}", h.DeleteTag)
		})

		r.Route("/medias", func(r chi.Router) {
			r.Get("/", h.ListMedia)
			r.Post("/", h.CreateMedia)
			r.Get("/{id}", h.GetMedia)
			r.Put("/{id}", h.UpdateMedia)
			r.Delete("/{id}", h.DeleteMedia)
		})
	})
}

// urlID parses a numeric chi URL parameter.
func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// trackResponse assembles the full representation for one track.
func (h *Handler) trackResponse(ctx context.Context, db *store.DB, id int64) (*dto.TrackResponse, error) {
	track, err := db.GetTrackByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var artist *domain.Artist
	if track.ArtistID != nil {
		a, err := db.GetArtistByID(ctx, *track.ArtistID)
		if err != nil {
			return nil, err
		}
		artist = a
	}

	tags, err := db.ListTagsForTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	links, err := db.ListLinksForTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := db.ListHistoryForTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	media, err := db.ListMediaForTrack(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewTrackResponse(track, artist, tags, links, history, media), nil
}

package store

import (
	"context"

	"github.com/trackdesk/trackdesk/internal/domain"
)

// GetStats counts tracks, artists and tags and groups tracks by status.
func (db *DB) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		TracksByStatus: make(map[string]int, len(domain.WorkflowStatuses)),
	}
	// Known workflow statuses always appear, even with zero tracks.
	for _, s := range domain.WorkflowStatuses {
		stats.TracksByStatus[string(s)] = 0
	}

	var totals struct {
		Tracks  int `db:"tracks"`
		Artists int `db:"artists"`
		Tags    int `db:"tags"`
	}
	err := db.GetContext(ctx, &totals, `SELECT
		(SELECT COUNT(*) FROM tracks) AS tracks,
		(SELECT COUNT(*) FROM artists) AS artists,
		(SELECT COUNT(*) FROM tags) AS tags`)
	if err != nil {
		return nil, err
	}
	stats.TotalTracks = totals.Tracks
	stats.TotalArtists = totals.Artists
	stats.TotalTags = totals.Tags

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM tracks GROUP BY status`); err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.TracksByStatus[r.Status] = r.Count
	}

	return stats, nil
}

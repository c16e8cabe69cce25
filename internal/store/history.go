package store

import (
	"context"
	"fmt"
	"time"

	"github.com/trackdesk/trackdesk/internal/domain"
)

// appendStatusHistory writes one immutable audit entry. Nothing in the store
// updates or deletes individual entries; they only disappear with the track.
func (db *DB) appendStatusHistory(ctx context.Context, trackID int64, oldStatus *string, newStatus string, notes *string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO status_history (track_id, old_status, new_status, notes, changed_at) VALUES (?, ?, ?, ?, ?)`,
		trackID, oldStatus, newStatus, notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record status change for track %d: %w", trackID, err)
	}
	return nil
}

// ListHistoryForTrack returns the audit trail, most recent change first.
func (db *DB) ListHistoryForTrack(ctx context.Context, trackID int64) ([]*domain.StatusHistory, error) {
	var entries []*domain.StatusHistory
	err := db.SelectContext(ctx, &entries, `
		SELECT * FROM status_history
		WHERE track_id = ?
		ORDER BY changed_at DESC, id DESC`, trackID)
	return entries, err
}

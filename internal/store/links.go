package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/trackdesk/trackdesk/internal/domain"
)

var linkColumns = map[string]bool{
	"link_type":   true,
	"link_url":    true,
	"description": true,
}

func (db *DB) CreateLink(ctx context.Context, link *domain.Link) error {
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now

	res, err := db.ExecContext(ctx,
		`INSERT INTO links (track_id, link_type, link_url, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		link.TrackID, link.LinkType, link.LinkURL, link.Description, now, now)
	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	link.ID = id
	return nil
}

// GetLinkForTrack scopes the lookup to the owning track, so a link id under
// the wrong track reads as not found.
func (db *DB) GetLinkForTrack(ctx context.Context, trackID, linkID int64) (*domain.Link, error) {
	var link domain.Link
	err := db.GetContext(ctx, &link, `SELECT * FROM links WHERE id = ? AND track_id = ?`, linkID, trackID)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (db *DB) ListLinksForTrack(ctx context.Context, trackID int64) ([]*domain.Link, error) {
	var links []*domain.Link
	err := db.SelectContext(ctx, &links, `SELECT * FROM links WHERE track_id = ? ORDER BY created_at ASC, id ASC`, trackID)
	return links, err
}

func (db *DB) UpdateLinkFields(ctx context.Context, trackID, linkID int64, updates map[string]interface{}) error {
	for col := range updates {
		if !linkColumns[col] {
			return fmt.Errorf("invalid column name: %s", col)
		}
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+3)
	for col, val := range updates {
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC(), linkID, trackID)

	query := fmt.Sprintf("UPDATE links SET %s WHERE id = ? AND track_id = ?", strings.Join(setClauses, ", "))

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (db *DB) DeleteLinkForTrack(ctx context.Context, trackID, linkID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM links WHERE id = ? AND track_id = ?`, linkID, trackID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

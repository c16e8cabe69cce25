package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/trackdesk/trackdesk/internal/domain"
)

var mediaColumns = map[string]bool{
	"track_id":  true,
	"name":      true,
	"file_path": true,
	"file_type": true,
}

func (db *DB) CreateMedia(ctx context.Context, media *domain.Media) error {
	now := time.Now().UTC()
	media.CreatedAt = now
	media.UpdatedAt = now

	res, err := db.ExecContext(ctx,
		`INSERT INTO medias (track_id, name, file_path, file_type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		media.TrackID, media.Name, media.FilePath, media.FileType, now, now)
	if err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	media.ID = id
	return nil
}

func (db *DB) GetMediaByID(ctx context.Context, id int64) (*domain.Media, error) {
	var media domain.Media
	err := db.GetContext(ctx, &media, `SELECT * FROM medias WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (db *DB) ListMedia(ctx context.Context) ([]*domain.Media, error) {
	var medias []*domain.Media
	err := db.SelectContext(ctx, &medias, `SELECT * FROM medias ORDER BY created_at DESC, id DESC`)
	return medias, err
}

func (db *DB) ListMediaForTrack(ctx context.Context, trackID int64) ([]*domain.Media, error) {
	var medias []*domain.Media
	err := db.SelectContext(ctx, &medias, `SELECT * FROM medias WHERE track_id = ? ORDER BY created_at ASC, id ASC`, trackID)
	return medias, err
}

func (db *DB) UpdateMediaFields(ctx context.Context, id int64, updates map[string]interface{}) error {
	for col := range updates {
		if !mediaColumns[col] {
			return fmt.Errorf("invalid column name: %s", col)
		}
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+2)
	for col, val := range updates {
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE medias SET %s WHERE id = ?", strings.Join(setClauses, ", "))

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", err)
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

func (db *DB) DeleteMedia(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM medias WHERE id = ?`, id)
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

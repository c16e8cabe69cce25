package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/trackdesk/trackdesk/internal/domain"
)

func (db *DB) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		`INSERT INTO tags (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Tag{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func (db *DB) GetTagByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	err := db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByName returns (nil, nil) when no tag has that exact name.
func (db *DB) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE name = ?`, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreateTag mirrors GetOrCreateArtist: insert through the unique index,
// then read back whichever row won.
func (db *DB) GetOrCreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO tags (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now); err != nil {
		return nil, fmt.Errorf("failed to ensure tag %q: %w", name, err)
	}

	var tag domain.Tag
	if err := db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE name = ?`, name); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (db *DB) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := db.SelectContext(ctx, &tags, `SELECT * FROM tags ORDER BY name ASC`)
	return tags, err
}

func (db *DB) UpdateTagName(ctx context.Context, id int64, name string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), id)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
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

func (db *DB) DeleteTag(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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

// AttachTag associates a tag with a track. Attaching an already-attached tag
// is reported as ErrAlreadyAttached so the API can answer with a conflict.
func (db *DB) AttachTag(ctx context.Context, trackID, tagID int64) error {
	res, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO track_tags (track_id, tag_id, created_at) VALUES (?, ?, ?)`,
		trackID, tagID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to attach tag %d to track %d: %w", tagID, trackID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAlreadyAttached
	}
	return nil
}

// DetachTag removes the association; sql.ErrNoRows means it never existed.
func (db *DB) DetachTag(ctx context.Context, trackID, tagID int64) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM track_tags WHERE track_id = ? AND tag_id = ?`, trackID, tagID)
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

func (db *DB) ListTagsForTrack(ctx context.Context, trackID int64) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := db.SelectContext(ctx, &tags, `
		SELECT g.* FROM tags g
		JOIN track_tags tt ON tt.tag_id = g.id
		WHERE tt.track_id = ?
		ORDER BY g.name ASC`, trackID)
	return tags, err
}

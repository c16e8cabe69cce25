package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/trackdesk/trackdesk/internal/domain"
)

func (db *DB) CreateArtist(ctx context.Context, name string) (*domain.Artist, error) {
	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		`INSERT INTO artists (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Artist{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func (db *DB) GetArtistByID(ctx context.Context, id int64) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.GetContext(ctx, &artist, `SELECT * FROM artists WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetArtistByName returns (nil, nil) when no artist has that exact name.
func (db *DB) GetArtistByName(ctx context.Context, name string) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.GetContext(ctx, &artist, `SELECT * FROM artists WHERE name = ?`, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetOrCreateArtist returns the artist with the given name, creating it if
// absent. The insert goes through the unique index (INSERT OR IGNORE), so a
// concurrent duplicate create degrades to a lookup instead of racing.
func (db *DB) GetOrCreateArtist(ctx context.Context, name string) (*domain.Artist, error) {
	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO artists (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, now, now); err != nil {
		return nil, fmt.Errorf("failed to ensure artist %q: %w", name, err)
	}

	var artist domain.Artist
	if err := db.GetContext(ctx, &artist, `SELECT * FROM artists WHERE name = ?`, name); err != nil {
		return nil, err
	}
	return &artist, nil
}

func (db *DB) ListArtists(ctx context.Context) ([]*domain.Artist, error) {
	var artists []*domain.Artist
	err := db.SelectContext(ctx, &artists, `SELECT * FROM artists ORDER BY name ASC`)
	return artists, err
}

func (db *DB) UpdateArtistName(ctx context.Context, id int64, name string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE artists SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), id)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
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

// DeleteArtist removes the artist; referencing tracks keep existing but
// their artist_id is nulled out by the foreign key action.
func (db *DB) DeleteArtist(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
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

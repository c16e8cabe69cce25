package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trackdesk/trackdesk/internal/domain"
)

// TrackFilter narrows and orders track listings. All filters are conjunctive.
type TrackFilter struct {
	Status    string // exact match
	Artist    string // case-insensitive substring on artist name
	Tag       string // exact tag name through the association
	Search    string // case-insensitive substring on track OR artist name
	SortBy    string // falls back to updated_at when unrecognized
	SortOrder string // asc or desc, default desc
}

// sortColumns is the allow-list for caller-specified ordering.
var sortColumns = map[string]string{
	"name":       "t.name",
	"status":     "t.status",
	"created_at": "t.created_at",
	"updated_at": "t.updated_at",
}

// trackColumns callers may touch through partial updates.
var trackColumns = map[string]bool{
	"name":      true,
	"artist_id": true,
	"status":    true,
}

// TrackRow is a track joined with its artist's name for listings.
type TrackRow struct {
	domain.Track
	ArtistName *string `db:"artist_name"`
}

func (db *DB) CreateTrack(ctx context.Context, track *domain.Track) error {
	track.Normalize()

	now := time.Now().UTC()
	track.CreatedAt = now
	track.UpdatedAt = now

	res, err := db.ExecContext(ctx,
		`INSERT INTO tracks (name, artist_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		track.Name, track.ArtistID, track.Status, now, now)
	if err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	track.ID = id

	// Every track starts its audit trail with a creation entry.
	note := "Track created"
	return db.appendStatusHistory(ctx, id, nil, string(track.Status), &note)
}

func (db *DB) GetTrackByID(ctx context.Context, id int64) (*domain.Track, error) {
	var track domain.Track
	err := db.GetContext(ctx, &track, `SELECT * FROM tracks WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (db *DB) ListTracks(ctx context.Context, f TrackFilter) ([]*TrackRow, error) {
	query := `SELECT t.*, a.name AS artist_name
		FROM tracks t
		LEFT JOIN artists a ON a.id = t.artist_id`

	var where []string
	var args []interface{}

	if f.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, f.Status)
	}
	if f.Artist != "" {
		where = append(where, "a.name LIKE ?")
		args = append(args, "%"+f.Artist+"%")
	}
	if f.Tag != "" {
		where = append(where, `t.id IN (
			SELECT tt.track_id FROM track_tags tt
			JOIN tags g ON g.id = tt.tag_id
			WHERE g.name = ?)`)
		args = append(args, f.Tag)
	}
	if f.Search != "" {
		// LEFT JOIN keeps artistless tracks matchable on their own name.
		where = append(where, "(t.name LIKE ? OR a.name LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "t.updated_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", col, dir)

	var rows []*TrackRow
	err := db.SelectContext(ctx, &rows, query, args...)
	return rows, err
}

// TagNamesByTrack returns each listed track's tag names in one query.
func (db *DB) TagNamesByTrack(ctx context.Context, trackIDs []int64) (map[int64][]string, error) {
	names := make(map[int64][]string, len(trackIDs))
	if len(trackIDs) == 0 {
		return names, nil
	}

	query, args, err := sqlx.In(`
		SELECT tt.track_id, g.name FROM track_tags tt
		JOIN tags g ON g.id = tt.tag_id
		WHERE tt.track_id IN (?)
		ORDER BY g.name ASC`, trackIDs)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		TrackID int64  `db:"track_id"`
		Name    string `db:"name"`
	}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	for _, r := range rows {
		names[r.TrackID] = append(names[r.TrackID], r.Name)
	}
	return names, nil
}

// UpdateTrackFields applies an allow-listed partial update. When the update
// carries a status different from the stored one, a status-history entry is
// appended in the same statement batch; callers wanting atomicity run this
// inside RunInTx. An update that repeats the current status writes no entry.
func (db *DB) UpdateTrackFields(ctx context.Context, id int64, updates map[string]interface{}, statusNote *string) error {
	for col := range updates {
		if !trackColumns[col] {
			return fmt.Errorf("invalid column name: %s", col)
		}
	}

	var current string
	if err := db.GetContext(ctx, &current, `SELECT status FROM tracks WHERE id = ?`, id); err != nil {
		return err
	}

	if raw, ok := updates["status"]; ok {
		newStatus := fmt.Sprint(raw)
		if newStatus == current {
			delete(updates, "status")
		} else if err := db.appendStatusHistory(ctx, id, &current, newStatus, statusNote); err != nil {
			return err
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

	query := fmt.Sprintf("UPDATE tracks SET %s WHERE id = ?", strings.Join(setClauses, ", "))

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
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

// DeleteTrack removes the track; links, history, media and tag associations
// go with it through the cascading foreign keys.
func (db *DB) DeleteTrack(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id)
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

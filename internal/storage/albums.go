package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateAlbum inserts a new album for a trip.
func (r *Repository) CreateAlbum(ctx context.Context, userID, itineraryID int, name string) (*Album, error) {
	const q = `
		INSERT INTO albums (user_id, itinerary_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, itinerary_id, name, created_at
	`

	var a Album
	err := r.q.QueryRow(ctx, q, userID, itineraryID, name).Scan(
		&a.ID, &a.UserID, &a.ItineraryID, &a.Name, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting album for itinerary %d: %w", itineraryID, err)
	}
	return &a, nil
}

// ListAlbums returns a trip's albums for the owner, newest first.
func (r *Repository) ListAlbums(ctx context.Context, userID, itineraryID int) ([]*Album, error) {
	const q = `
		SELECT id, user_id, itinerary_id, name, created_at
		FROM albums
		WHERE user_id = $1 AND itinerary_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, q, userID, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("querying albums for itinerary %d: %w", itineraryID, err)
	}
	defer rows.Close()

	var results []*Album
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.UserID, &a.ItineraryID, &a.Name, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning album row: %w", err)
		}
		results = append(results, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating album rows: %w", err)
	}

	return results, nil
}

// RenameAlbum updates an album's name; a nil name keeps the current one.
// Returns nil, nil when the album does not exist for this user.
func (r *Repository) RenameAlbum(ctx context.Context, id, userID int, name *string) (*Album, error) {
	const q = `
		UPDATE albums
		SET name = COALESCE($3, name)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, itinerary_id, name, created_at
	`

	var a Album
	err := r.q.QueryRow(ctx, q, id, userID, name).Scan(
		&a.ID, &a.UserID, &a.ItineraryID, &a.Name, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("renaming album %d: %w", id, err)
	}
	return &a, nil
}

// DeleteAlbum removes an album. Its photos stay, detached to no album
// (the photos.album_id foreign key is ON DELETE SET NULL).
func (r *Repository) DeleteAlbum(ctx context.Context, id, userID int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM albums WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("deleting album %d: %w", id, err)
	}
	return nil
}

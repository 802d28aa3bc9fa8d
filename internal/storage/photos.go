package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const photoColumns = `id, itinerary_id, user_id, filename, title, caption, taken_at, location, tags, album_id, created_at`

// InsertPhoto records an uploaded photo and its metadata.
func (r *Repository) InsertPhoto(ctx context.Context, itineraryID, userID int, filename string, meta PhotoMetaUpdate) (*Photo, error) {
	tagsJSON, err := marshalTags(meta.Tags)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO photos (itinerary_id, user_id, filename, title, caption, taken_at, location, tags, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, photoColumns)

	p, err := r.scanPhoto(r.q.QueryRow(ctx, q,
		itineraryID, userID, filename, meta.Title, meta.Caption, meta.TakenAt, meta.Location, tagsJSON, meta.AlbumID,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting photo for itinerary %d: %w", itineraryID, err)
	}
	return p, nil
}

// ListPhotos returns an itinerary's photos for the owner, newest first.
func (r *Repository) ListPhotos(ctx context.Context, itineraryID, userID int) ([]*Photo, error) {
	q := fmt.Sprintf(`SELECT %s FROM photos WHERE itinerary_id = $1 AND user_id = $2 ORDER BY created_at DESC`, photoColumns)

	rows, err := r.q.Query(ctx, q, itineraryID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying photos for itinerary %d: %w", itineraryID, err)
	}
	defer rows.Close()

	var results []*Photo
	for rows.Next() {
		p, err := r.scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photo rows: %w", err)
	}

	return results, nil
}

// GetPhoto returns the photo by id scoped to its owner, or nil, nil when absent.
func (r *Repository) GetPhoto(ctx context.Context, id, userID int) (*Photo, error) {
	q := fmt.Sprintf(`SELECT %s FROM photos WHERE id = $1 AND user_id = $2`, photoColumns)

	p, err := r.scanPhoto(r.q.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// UpdatePhotoMeta updates photo metadata; nil fields keep their current value.
// Returns nil, nil when the photo does not exist for this user.
func (r *Repository) UpdatePhotoMeta(ctx context.Context, id, userID int, meta PhotoMetaUpdate) (*Photo, error) {
	tagsJSON, err := marshalTags(meta.Tags)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE photos
		SET title    = COALESCE($3, title),
		    caption  = COALESCE($4, caption),
		    taken_at = COALESCE($5, taken_at),
		    location = COALESCE($6, location),
		    tags     = COALESCE($7, tags),
		    album_id = COALESCE($8, album_id)
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, photoColumns)

	p, err := r.scanPhoto(r.q.QueryRow(ctx, q, id, userID, meta.Title, meta.Caption, meta.TakenAt, meta.Location, tagsJSON, meta.AlbumID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// DeletePhoto removes a photo record.
func (r *Repository) DeletePhoto(ctx context.Context, id, userID int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("deleting photo %d: %w", id, err)
	}
	return nil
}

func (r *Repository) scanPhoto(row pgx.Row) (*Photo, error) {
	var p Photo
	var tagsJSON []byte

	err := row.Scan(
		&p.ID, &p.ItineraryID, &p.UserID, &p.Filename,
		&p.Title, &p.Caption, &p.TakenAt, &p.Location, &tagsJSON, &p.AlbumID,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err // callers translate to not-found
		}
		return nil, fmt.Errorf("scanning photo row: %w", err)
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags for photo %d: %w", p.ID, err)
		}
	}

	return &p, nil
}

// marshalTags returns nil for an absent tag list so COALESCE keeps the
// current value, and JSON otherwise.
func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshaling tags: %w", err)
	}
	return b, nil
}

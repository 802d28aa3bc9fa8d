package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tripforge/tripforge/internal/plan"
)

const itineraryColumns = `id, user_id, destination, budget, duration_days, interests, plan_json, is_public, share_code, created_at, updated_at`

// CreateItinerary inserts a new itinerary with its plan document.
func (r *Repository) CreateItinerary(ctx context.Context, userID int, req plan.TripRequest, p plan.Plan) (*Itinerary, error) {
	interestsJSON, err := json.Marshal(req.Interests)
	if err != nil {
		return nil, fmt.Errorf("marshaling interests: %w", err)
	}
	planJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan for %s: %w", req.Destination, err)
	}

	q := fmt.Sprintf(`
		INSERT INTO itineraries (user_id, destination, budget, duration_days, interests, plan_json)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, itineraryColumns)

	return r.scanItinerary(r.q.QueryRow(ctx, q, userID, req.Destination, req.Budget, req.DurationDays, interestsJSON, planJSON))
}

// ListItineraries returns the user's itineraries, newest first.
func (r *Repository) ListItineraries(ctx context.Context, userID int) ([]*Itinerary, error) {
	q := fmt.Sprintf(`SELECT %s FROM itineraries WHERE user_id = $1 ORDER BY created_at DESC`, itineraryColumns)

	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying itineraries for user %d: %w", userID, err)
	}
	defer rows.Close()

	var results []*Itinerary
	for rows.Next() {
		it, err := r.scanItinerary(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating itinerary rows: %w", err)
	}

	return results, nil
}

// GetItinerary returns the itinerary by id scoped to its owner.
// Returns nil, nil when not found.
func (r *Repository) GetItinerary(ctx context.Context, id, userID int) (*Itinerary, error) {
	q := fmt.Sprintf(`SELECT %s FROM itineraries WHERE id = $1 AND user_id = $2`, itineraryColumns)

	it, err := r.scanItinerary(r.q.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// GetSharedItinerary returns a public itinerary by share code.
// Returns nil, nil when the code is unknown or the itinerary is private.
func (r *Repository) GetSharedItinerary(ctx context.Context, code string) (*Itinerary, error) {
	q := fmt.Sprintf(`SELECT %s FROM itineraries WHERE share_code = $1 AND is_public`, itineraryColumns)

	it, err := r.scanItinerary(r.q.QueryRow(ctx, q, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// UpdatePlan replaces the plan document of an itinerary.
// Returns nil, nil when the itinerary does not exist for this user.
func (r *Repository) UpdatePlan(ctx context.Context, id, userID int, p plan.Plan) (*Itinerary, error) {
	planJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan for itinerary %d: %w", id, err)
	}

	q := fmt.Sprintf(`
		UPDATE itineraries
		SET plan_json = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, itineraryColumns)

	it, err := r.scanItinerary(r.q.QueryRow(ctx, q, id, userID, planJSON))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// ShareItinerary marks an itinerary public under the given share code.
// Returns false when the itinerary does not exist for this user.
func (r *Repository) ShareItinerary(ctx context.Context, id, userID int, code string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE itineraries SET is_public = TRUE, share_code = $3 WHERE id = $1 AND user_id = $2`, id, userID, code)
	if err != nil {
		return false, fmt.Errorf("sharing itinerary %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteItinerary removes an itinerary (photos and albums cascade).
func (r *Repository) DeleteItinerary(ctx context.Context, id, userID int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM itineraries WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("deleting itinerary %d: %w", id, err)
	}
	return nil
}

func (r *Repository) scanItinerary(row pgx.Row) (*Itinerary, error) {
	var it Itinerary
	var interestsJSON, planJSON []byte

	err := row.Scan(
		&it.ID, &it.UserID, &it.Destination, &it.Budget, &it.DurationDays,
		&interestsJSON, &planJSON, &it.IsPublic, &it.ShareCode,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err // callers translate to not-found
		}
		return nil, fmt.Errorf("scanning itinerary row: %w", err)
	}

	if err := json.Unmarshal(interestsJSON, &it.Interests); err != nil {
		return nil, fmt.Errorf("unmarshaling interests for itinerary %d: %w", it.ID, err)
	}
	if err := json.Unmarshal(planJSON, &it.Plan); err != nil {
		return nil, fmt.Errorf("unmarshaling plan for itinerary %d: %w", it.ID, err)
	}

	return &it, nil
}

package storage

import (
	"time"

	"github.com/tripforge/tripforge/internal/plan"
)

// User is a registered account.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Itinerary is a stored trip with its plan document.
type Itinerary struct {
	ID           int       `json:"id"`
	UserID       int       `json:"-"`
	Destination  string    `json:"destination"`
	Budget       string    `json:"budget"`
	DurationDays int       `json:"durationDays"`
	Interests    []string  `json:"interests"`
	Plan         plan.Plan `json:"plan"`
	IsPublic     bool      `json:"isPublic"`
	ShareCode    *string   `json:"shareCode"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Photo is an uploaded trip photo. Filename is the storage key in the
// configured media store, not a user-facing URL.
type Photo struct {
	ID          int       `json:"id"`
	ItineraryID int       `json:"itineraryId"`
	UserID      int       `json:"-"`
	Filename    string    `json:"filename"`
	Title       *string   `json:"title"`
	Caption     *string   `json:"caption"`
	TakenAt     *string   `json:"takenAt"`
	Location    *string   `json:"location"`
	Tags        []string  `json:"tags"`
	AlbumID     *int      `json:"albumId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Album groups photos within a trip.
type Album struct {
	ID          int       `json:"id"`
	UserID      int       `json:"-"`
	ItineraryID int       `json:"itineraryId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PhotoMetaUpdate carries the optional fields of a photo metadata update.
// Nil fields keep their current value.
type PhotoMetaUpdate struct {
	Title    *string
	Caption  *string
	TakenAt  *string
	Location *string
	Tags     []string
	AlbumID  *int
}

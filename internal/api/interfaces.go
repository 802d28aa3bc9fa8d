package api

import (
	"context"

	"github.com/tripforge/tripforge/internal/plan"
	"github.com/tripforge/tripforge/internal/storage"
)

// UserStore defines the user operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*storage.User, error)
	GetUserByEmail(ctx context.Context, email string) (*storage.User, error)
	GetUserByID(ctx context.Context, id int) (*storage.User, error)
	UserExists(ctx context.Context, email, username string) (bool, error)
	EmailInUse(ctx context.Context, email string, excludeID int) (bool, error)
	UsernameInUse(ctx context.Context, username string, excludeID int) (bool, error)
	UpdateUserProfile(ctx context.Context, id int, username, email *string) (*storage.User, error)
	UpdateUserPassword(ctx context.Context, id int, passwordHash string) error
	UpdateUserAvatar(ctx context.Context, id int, avatar string) error
}

// ItineraryStore defines the itinerary operations needed by handlers.
type ItineraryStore interface {
	CreateItinerary(ctx context.Context, userID int, req plan.TripRequest, p plan.Plan) (*storage.Itinerary, error)
	ListItineraries(ctx context.Context, userID int) ([]*storage.Itinerary, error)
	GetItinerary(ctx context.Context, id, userID int) (*storage.Itinerary, error)
	GetSharedItinerary(ctx context.Context, code string) (*storage.Itinerary, error)
	UpdatePlan(ctx context.Context, id, userID int, p plan.Plan) (*storage.Itinerary, error)
	ShareItinerary(ctx context.Context, id, userID int, code string) (bool, error)
	DeleteItinerary(ctx context.Context, id, userID int) error
}

// PhotoStore defines the photo operations needed by handlers.
type PhotoStore interface {
	InsertPhoto(ctx context.Context, itineraryID, userID int, filename string, meta storage.PhotoMetaUpdate) (*storage.Photo, error)
	ListPhotos(ctx context.Context, itineraryID, userID int) ([]*storage.Photo, error)
	GetPhoto(ctx context.Context, id, userID int) (*storage.Photo, error)
	UpdatePhotoMeta(ctx context.Context, id, userID int, meta storage.PhotoMetaUpdate) (*storage.Photo, error)
	DeletePhoto(ctx context.Context, id, userID int) error
}

// AlbumStore defines the album operations needed by handlers.
type AlbumStore interface {
	CreateAlbum(ctx context.Context, userID, itineraryID int, name string) (*storage.Album, error)
	ListAlbums(ctx context.Context, userID, itineraryID int) ([]*storage.Album, error)
	RenameAlbum(ctx context.Context, id, userID int, name *string) (*storage.Album, error)
	DeleteAlbum(ctx context.Context, id, userID int) error
}

// ItineraryCache defines the cache operations needed by handlers.
type ItineraryCache interface {
	Get(ctx context.Context, key string) (*storage.Itinerary, error)
	Set(ctx context.Context, key string, it *storage.Itinerary) error
	Delete(ctx context.Context, keys ...string) error
}

// PlanGenerator produces a plan for a trip request. Implementations are total:
// they fall back internally and never fail.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req plan.TripRequest) plan.Plan
}

// PlanEditor applies a free-text edit to a plan. Implementations are total.
type PlanEditor interface {
	ApplyEdit(ctx context.Context, message string, current plan.Plan) plan.Plan
}

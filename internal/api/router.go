package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/tripforge/tripforge/internal/auth"
	"github.com/tripforge/tripforge/internal/metrics"
)

// RouterConfig carries the router-level wiring that is not a handler
// dependency.
type RouterConfig struct {
	Tokens *auth.Manager
	DB     dbPinger
	Redis  redisPinger
	Log    *slog.Logger

	// UploadsDir, when set, is served read-only under /uploads/ for
	// disk-backed media.
	UploadsDir string
}

// NewRouter builds and returns the Chi router with all routes configured.
// Health, metrics, auth entry points and shared itineraries are public;
// everything else requires a bearer token. Rate limiting is applied
// globally: 60 requests per minute per IP.
func NewRouter(h *Handlers, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(cfg.DB, cfg.Redis, cfg.Log))
	r.Handle("/metrics", metrics.Handler())

	r.Post("/api/v1/auth/register", h.Register)
	r.Post("/api/v1/auth/login", h.Login)
	r.Get("/api/v1/itineraries/shared/{code}", h.GetSharedItinerary)

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Handle("/uploads/*", fs)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Tokens))

		r.Get("/api/v1/auth/me", h.Me)
		r.Put("/api/v1/auth/me", h.UpdateMe)
		r.Put("/api/v1/auth/me/password", h.UpdatePassword)
		r.Put("/api/v1/auth/me/avatar", h.UpdateAvatar)

		r.Post("/api/v1/itineraries", h.CreateItinerary)
		r.Get("/api/v1/itineraries", h.ListItineraries)
		r.Get("/api/v1/itineraries/{id}", h.GetItinerary)
		r.Put("/api/v1/itineraries/{id}", h.UpdateItinerary)
		r.Delete("/api/v1/itineraries/{id}", h.DeleteItinerary)
		r.Get("/api/v1/itineraries/{id}/detail", h.GetItineraryDetail)
		r.Post("/api/v1/itineraries/{id}/share", h.ShareItinerary)
		r.Post("/api/v1/itineraries/{id}/edit", h.EditItinerary)

		r.Get("/api/v1/itineraries/{id}/photos", h.ListPhotos)
		r.Post("/api/v1/itineraries/{id}/photos", h.UploadPhoto)
		r.Put("/api/v1/photos/{photoID}", h.UpdatePhoto)
		r.Delete("/api/v1/photos/{photoID}", h.DeletePhoto)

		r.Get("/api/v1/itineraries/{id}/albums", h.ListAlbums)
		r.Post("/api/v1/itineraries/{id}/albums", h.CreateAlbum)
		r.Put("/api/v1/albums/{albumID}", h.RenameAlbum)
		r.Delete("/api/v1/albums/{albumID}", h.DeleteAlbum)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)

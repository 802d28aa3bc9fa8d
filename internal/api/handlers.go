package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tripforge/tripforge/internal/auth"
	"github.com/tripforge/tripforge/internal/media"
)

// Deps collects the dependencies for all HTTP handlers.
type Deps struct {
	Users       UserStore
	Itineraries ItineraryStore
	Photos      PhotoStore
	Albums      AlbumStore
	Cache       ItineraryCache
	Generator   PlanGenerator
	Editor      PlanEditor
	Media       media.Store
	Tokens      *auth.Manager
	Log         *slog.Logger
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	users       UserStore
	itineraries ItineraryStore
	photos      PhotoStore
	albums      AlbumStore
	cache       ItineraryCache
	generator   PlanGenerator
	editor      PlanEditor
	media       media.Store
	tokens      *auth.Manager
	log         *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		users:       d.Users,
		itineraries: d.Itineraries,
		photos:      d.Photos,
		albums:      d.Albums,
		cache:       d.Cache,
		generator:   d.Generator,
		editor:      d.Editor,
		media:       d.Media,
		tokens:      d.Tokens,
		log:         d.Log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, capping it at 1 MiB.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// idParam parses the named chi URL parameter as a positive integer.
func idParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// userID extracts the authenticated user from the request context.
// Routes behind the auth middleware always have one; this guards misuse.
func (h *Handlers) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
	}
	return id, ok
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
// Returns 200 if both ping, 503 otherwise.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tripforge/tripforge/internal/cache"
	"github.com/tripforge/tripforge/internal/plan"
	"github.com/tripforge/tripforge/internal/storage"
)

const (
	minTripDays = 1
	maxTripDays = 30
)

type createItineraryRequest struct {
	Destination  string   `json:"destination"`
	Budget       string   `json:"budget"`
	DurationDays int      `json:"durationDays"`
	Interests    []string `json:"interests"`
}

func (req *createItineraryRequest) validate() string {
	req.Destination = strings.TrimSpace(req.Destination)
	req.Budget = strings.TrimSpace(req.Budget)
	switch {
	case len(req.Destination) < 2:
		return "destination must be at least 2 characters"
	case req.Budget == "":
		return "budget is required"
	case req.DurationDays < minTripDays || req.DurationDays > maxTripDays:
		return "durationDays must be between 1 and 30"
	case len(req.Interests) == 0:
		return "at least one interest is required"
	}
	return ""
}

// CreateItinerary handles POST /api/v1/itineraries.
// Plan generation is total: the generator falls back internally, so a
// valid request always produces a stored itinerary.
func (h *Handlers) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	trip := plan.TripRequest{
		Destination:  req.Destination,
		Budget:       req.Budget,
		DurationDays: req.DurationDays,
		Interests:    req.Interests,
	}

	p := h.generator.GeneratePlan(r.Context(), trip)
	if p.DurationDays == 0 {
		p.DurationDays = len(p.Days)
	}

	it, err := h.itineraries.CreateItinerary(r.Context(), userID, trip, p)
	if err != nil {
		h.log.Error("create itinerary failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.Info("itinerary created", "userID", userID, "itineraryID", it.ID, "destination", it.Destination)
	writeJSON(w, http.StatusCreated, it)
}

// ListItineraries handles GET /api/v1/itineraries.
func (h *Handlers) ListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.itineraries.ListItineraries(r.Context(), userID)
	if err != nil {
		h.log.Error("list itineraries failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []*storage.Itinerary{}
	}

	writeJSON(w, http.StatusOK, items)
}

// GetItinerary handles GET /api/v1/itineraries/{id}.
// Cache hit → return. DB hit → cache + return. Neither → 404.
func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	key := cache.ItineraryKey(userID, id)
	cached, err := h.cache.Get(r.Context(), key)
	if err != nil {
		h.log.Error("cache get failed", "key", key, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	it, err := h.itineraries.GetItinerary(r.Context(), id, userID)
	if err != nil {
		h.log.Error("get itinerary failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	if err := h.cache.Set(r.Context(), key, it); err != nil {
		h.log.Warn("cache set failed after db hit", "key", key, "err", err)
	}

	writeJSON(w, http.StatusOK, it)
}

type updatePlanRequest struct {
	Plan *plan.Plan `json:"plan"`
}

// UpdateItinerary handles PUT /api/v1/itineraries/{id}.
func (h *Handlers) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var req updatePlanRequest
	if err := decodeJSON(r, &req); err != nil || req.Plan == nil {
		writeError(w, http.StatusBadRequest, "plan is required")
		return
	}

	it, err := h.itineraries.UpdatePlan(r.Context(), id, userID, *req.Plan)
	if err != nil {
		h.log.Error("update itinerary failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	h.invalidate(r, it, userID)
	writeJSON(w, http.StatusOK, it)
}

// DeleteItinerary handles DELETE /api/v1/itineraries/{id}.
func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	it, err := h.itineraries.GetItinerary(r.Context(), id, userID)
	if err != nil {
		h.log.Error("delete itinerary: lookup failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	if err := h.itineraries.DeleteItinerary(r.Context(), id, userID); err != nil {
		h.log.Error("delete itinerary failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.invalidate(r, it, userID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ShareItinerary handles POST /api/v1/itineraries/{id}/share.
// Generates a short code, marks the itinerary public and returns the code.
func (h *Handlers) ShareItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	code := newShareCode()
	shared, err := h.itineraries.ShareItinerary(r.Context(), id, userID, code)
	if err != nil {
		h.log.Error("share itinerary failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !shared {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	if err := h.cache.Delete(r.Context(), cache.ItineraryKey(userID, id)); err != nil {
		h.log.Warn("cache delete failed after share", "itineraryID", id, "err", err)
	}

	h.log.Info("itinerary shared", "itineraryID", id, "shareCode", code)
	writeJSON(w, http.StatusOK, map[string]string{"shareCode": code})
}

// GetSharedItinerary handles GET /api/v1/itineraries/shared/{code}.
// Unauthenticated: only itineraries marked public resolve.
func (h *Handlers) GetSharedItinerary(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "share code is required")
		return
	}

	key := cache.ShareKey(code)
	cached, err := h.cache.Get(r.Context(), key)
	if err != nil {
		h.log.Error("cache get failed", "key", key, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	it, err := h.itineraries.GetSharedItinerary(r.Context(), code)
	if err != nil {
		h.log.Error("get shared itinerary failed", "code", code, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "shared itinerary not found")
		return
	}

	if err := h.cache.Set(r.Context(), key, it); err != nil {
		h.log.Warn("cache set failed after db hit", "key", key, "err", err)
	}

	writeJSON(w, http.StatusOK, it)
}

type editItineraryRequest struct {
	Message string     `json:"message"`
	Plan    *plan.Plan `json:"plan"`
}

// EditItinerary handles POST /api/v1/itineraries/{id}/edit.
// Editing is total: the editor chain always yields a plan, which is
// persisted before responding.
func (h *Handlers) EditItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var req editItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.Plan == nil {
		writeError(w, http.StatusBadRequest, "plan is required")
		return
	}

	edited := h.editor.ApplyEdit(r.Context(), req.Message, *req.Plan)

	it, err := h.itineraries.UpdatePlan(r.Context(), id, userID, edited)
	if err != nil {
		h.log.Error("edit itinerary: persist failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	h.invalidate(r, it, userID)
	writeJSON(w, http.StatusOK, map[string]any{"plan": edited})
}

type itineraryDetailResponse struct {
	Itinerary *storage.Itinerary `json:"itinerary"`
	Photos    []photoResponse    `json:"photos"`
	Albums    []*storage.Album   `json:"albums"`
}

// GetItineraryDetail handles GET /api/v1/itineraries/{id}/detail.
// Fans out the itinerary, photo and album lookups concurrently.
func (h *Handlers) GetItineraryDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var (
		it     *storage.Itinerary
		photos []*storage.Photo
		albums []*storage.Album
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		it, err = h.itineraries.GetItinerary(ctx, id, userID)
		return err
	})
	g.Go(func() error {
		var err error
		photos, err = h.photos.ListPhotos(ctx, id, userID)
		return err
	})
	g.Go(func() error {
		var err error
		albums, err = h.albums.ListAlbums(ctx, userID, id)
		return err
	})

	if err := g.Wait(); err != nil {
		h.log.Error("itinerary detail failed", "itineraryID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}
	if albums == nil {
		albums = []*storage.Album{}
	}

	writeJSON(w, http.StatusOK, itineraryDetailResponse{
		Itinerary: it,
		Photos:    h.photoResponses(r.Context(), photos),
		Albums:    albums,
	})
}

// invalidate drops the cache entries touched by a mutation of it.
func (h *Handlers) invalidate(r *http.Request, it *storage.Itinerary, userID int) {
	keys := []string{cache.ItineraryKey(userID, it.ID)}
	if it.ShareCode != nil {
		keys = append(keys, cache.ShareKey(*it.ShareCode))
	}
	if err := h.cache.Delete(r.Context(), keys...); err != nil {
		h.log.Warn("cache invalidation failed", "itineraryID", it.ID, "err", err)
	}
}

// newShareCode returns an 8-character lowercase hex code.
func newShareCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

package api

import (
	"net/http"
	"strings"

	"github.com/tripforge/tripforge/internal/storage"
)

type albumRequest struct {
	Name string `json:"name"`
}

// ListAlbums handles GET /api/v1/itineraries/{id}/albums.
func (h *Handlers) ListAlbums(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	itineraryID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	albums, err := h.albums.ListAlbums(r.Context(), userID, itineraryID)
	if err != nil {
		h.log.Error("list albums failed", "itineraryID", itineraryID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if albums == nil {
		albums = []*storage.Album{}
	}

	writeJSON(w, http.StatusOK, albums)
}

// CreateAlbum handles POST /api/v1/itineraries/{id}/albums.
func (h *Handlers) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	itineraryID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var req albumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "album name is required")
		return
	}

	it, err := h.itineraries.GetItinerary(r.Context(), itineraryID, userID)
	if err != nil {
		h.log.Error("create album: itinerary lookup failed", "itineraryID", itineraryID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	album, err := h.albums.CreateAlbum(r.Context(), userID, itineraryID, req.Name)
	if err != nil {
		h.log.Error("create album failed", "itineraryID", itineraryID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, album)
}

// RenameAlbum handles PUT /api/v1/albums/{albumID}.
func (h *Handlers) RenameAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "albumID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	var req albumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "album name is required")
		return
	}

	album, err := h.albums.RenameAlbum(r.Context(), id, userID, &req.Name)
	if err != nil {
		h.log.Error("rename album failed", "albumID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if album == nil {
		writeError(w, http.StatusNotFound, "album not found")
		return
	}

	writeJSON(w, http.StatusOK, album)
}

// DeleteAlbum handles DELETE /api/v1/albums/{albumID}.
// Photos in the album are kept; their album reference is cleared by the
// foreign key.
func (h *Handlers) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "albumID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	if err := h.albums.DeleteAlbum(r.Context(), id, userID); err != nil {
		h.log.Error("delete album failed", "albumID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

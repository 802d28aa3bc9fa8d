package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/tripforge/tripforge/internal/storage"
)

// maxUploadBytes caps a single photo upload at 16 MiB.
const maxUploadBytes = 16 << 20

// photoResponse adds the resolved media URL to a stored photo.
type photoResponse struct {
	*storage.Photo
	URL string `json:"url"`
}

// photoResponses resolves download URLs for a photo list. URL resolution
// failures degrade to an empty URL rather than failing the request.
func (h *Handlers) photoResponses(ctx context.Context, photos []*storage.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		url, err := h.media.URL(ctx, p.Filename)
		if err != nil {
			h.log.Warn("resolving media url failed", "key", p.Filename, "err", err)
		}
		out = append(out, photoResponse{Photo: p, URL: url})
	}
	return out
}

// ListPhotos handles GET /api/v1/itineraries/{id}/photos.
func (h *Handlers) ListPhotos(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	itineraryID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	photos, err := h.photos.ListPhotos(r.Context(), itineraryID, userID)
	if err != nil {
		h.log.Error("list photos failed", "itineraryID", itineraryID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, h.photoResponses(r.Context(), photos))
}

// UploadPhoto handles POST /api/v1/itineraries/{id}/photos.
// Expects multipart form data with the file under "photo"; title, caption,
// takenAt, location, tags (comma-separated) and albumId ride along as fields.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	itineraryID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	// Ownership check up front so an upload for a foreign trip never
	// writes a blob.
	it, err := h.itineraries.GetItinerary(r.Context(), itineraryID, userID)
	if err != nil {
		h.log.Error("upload photo: itinerary lookup failed", "itineraryID", itineraryID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	key, err := h.media.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.log.Error("upload photo: save blob failed", "filename", header.Filename, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	meta := photoMetaFromForm(r)
	photo, err := h.photos.InsertPhoto(r.Context(), itineraryID, userID, key, meta)
	if err != nil {
		h.log.Error("upload photo: insert failed", "itineraryID", itineraryID, "err", err)
		if derr := h.media.Delete(r.Context(), key); derr != nil {
			h.log.Warn("upload photo: orphan blob cleanup failed", "key", key, "err", derr)
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	url, err := h.media.URL(r.Context(), key)
	if err != nil {
		h.log.Warn("resolving media url failed", "key", key, "err", err)
	}

	h.log.Info("photo uploaded", "itineraryID", itineraryID, "photoID", photo.ID)
	writeJSON(w, http.StatusCreated, photoResponse{Photo: photo, URL: url})
}

type updatePhotoRequest struct {
	Title    *string  `json:"title"`
	Caption  *string  `json:"caption"`
	TakenAt  *string  `json:"takenAt"`
	Location *string  `json:"location"`
	Tags     []string `json:"tags"`
	AlbumID  *int     `json:"albumId"`
}

// UpdatePhoto handles PUT /api/v1/photos/{photoID}.
func (h *Handlers) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	photoID, ok := idParam(r, "photoID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	var req updatePhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	photo, err := h.photos.UpdatePhotoMeta(r.Context(), photoID, userID, storage.PhotoMetaUpdate{
		Title:    req.Title,
		Caption:  req.Caption,
		TakenAt:  req.TakenAt,
		Location: req.Location,
		Tags:     req.Tags,
		AlbumID:  req.AlbumID,
	})
	if err != nil {
		h.log.Error("update photo failed", "photoID", photoID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if photo == nil {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}

	url, err := h.media.URL(r.Context(), photo.Filename)
	if err != nil {
		h.log.Warn("resolving media url failed", "key", photo.Filename, "err", err)
	}

	writeJSON(w, http.StatusOK, photoResponse{Photo: photo, URL: url})
}

// DeletePhoto handles DELETE /api/v1/photos/{photoID}.
// The blob delete is best-effort; the row is the source of truth.
func (h *Handlers) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	photoID, ok := idParam(r, "photoID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	photo, err := h.photos.GetPhoto(r.Context(), photoID, userID)
	if err != nil {
		h.log.Error("delete photo: lookup failed", "photoID", photoID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if photo == nil {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}

	if err := h.photos.DeletePhoto(r.Context(), photoID, userID); err != nil {
		h.log.Error("delete photo failed", "photoID", photoID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.media.Delete(r.Context(), photo.Filename); err != nil {
		h.log.Warn("delete photo: blob delete failed", "key", photo.Filename, "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// photoMetaFromForm reads optional photo metadata from multipart form fields.
func photoMetaFromForm(r *http.Request) storage.PhotoMetaUpdate {
	var meta storage.PhotoMetaUpdate
	meta.Title = formValue(r, "title")
	meta.Caption = formValue(r, "caption")
	meta.TakenAt = formValue(r, "takenAt")
	meta.Location = formValue(r, "location")

	if raw := r.FormValue("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				meta.Tags = append(meta.Tags, t)
			}
		}
	}
	if raw := r.FormValue("albumId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			meta.AlbumID = &id
		}
	}
	return meta
}

func formValue(r *http.Request, name string) *string {
	if v := strings.TrimSpace(r.FormValue(name)); v != "" {
		return &v
	}
	return nil
}

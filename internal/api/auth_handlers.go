package api

import (
	"net/http"
	"strings"

	"github.com/tripforge/tripforge/internal/auth"
	"github.com/tripforge/tripforge/internal/storage"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  *storage.User `json:"user"`
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case len(req.Username) < 3:
		writeError(w, http.StatusBadRequest, "username must be at least 3 characters")
		return
	case !validEmail(req.Email):
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < 6:
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	exists, err := h.users.UserExists(r.Context(), req.Email, req.Username)
	if err != nil {
		h.log.Error("register: user lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if exists {
		writeError(w, http.StatusBadRequest, "email or username already in use")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("register: password hash failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		h.log.Error("register: create user failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.tokens.Mint(user.ID)
	if err != nil {
		h.log.Error("register: token mint failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.Info("user registered", "userID", user.ID)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("login: user lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		// Burn a bcrypt round so unknown emails cost the same as bad passwords.
		auth.HashDummy()
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Mint(user.ID)
	if err != nil {
		h.log.Error("login: token mint failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me handles GET /api/v1/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		h.log.Error("me: user lookup failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UpdateMe handles PUT /api/v1/auth/me.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == nil && req.Email == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if len(trimmed) < 3 {
			writeError(w, http.StatusBadRequest, "username must be at least 3 characters")
			return
		}
		req.Username = &trimmed

		inUse, err := h.users.UsernameInUse(r.Context(), trimmed, userID)
		if err != nil {
			h.log.Error("update profile: username lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if inUse {
			writeError(w, http.StatusBadRequest, "username already in use")
			return
		}
	}

	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validEmail(lowered) {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		req.Email = &lowered

		inUse, err := h.users.EmailInUse(r.Context(), lowered, userID)
		if err != nil {
			h.log.Error("update profile: email lookup failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if inUse {
			writeError(w, http.StatusBadRequest, "email already in use")
			return
		}
	}

	user, err := h.users.UpdateUserProfile(r.Context(), userID, req.Username, req.Email)
	if err != nil {
		h.log.Error("update profile failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdatePassword handles PUT /api/v1/auth/me/password.
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		h.log.Error("update password: user lookup failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		writeError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.log.Error("update password: hash failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.users.UpdateUserPassword(r.Context(), userID, hash); err != nil {
		h.log.Error("update password failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateAvatar handles PUT /api/v1/auth/me/avatar.
func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req updateAvatarRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Avatar == "" {
		writeError(w, http.StatusBadRequest, "avatar is required")
		return
	}

	if err := h.users.UpdateUserAvatar(r.Context(), userID, req.Avatar); err != nil {
		h.log.Error("update avatar failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

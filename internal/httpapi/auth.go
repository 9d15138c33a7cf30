package httpapi

import (
	"errors"
	"net/http"

	"matchday/internal/models"
	"matchday/internal/store"
)

type linkRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type profileRequest struct {
	Username string `json:"username"`
}

type meResponse struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
	IsAdmin bool            `json:"is_admin"`
}

func (s *Server) handleRequestLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.identity.RequestLink(r.Context(), req.Email); err != nil {
		writeErrorWithFallback(w, r, err, "failed to send sign-in link")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := s.identity.Verify(r.Context(), req.Email, req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	user, err := s.identity.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := s.profiles.Get(r.Context(), userID)
	if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		writeError(w, r, err)
		return
	}

	isAdmin, err := s.claims.IsAdmin(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: user, Profile: profile, IsAdmin: isAdmin})
}

func (s *Server) handleMyVenues(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	venues, err := s.claims.UserVenues(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Venues []*models.Venue `json:"venues"`
	}{Venues: venues})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	profile, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := s.profiles.Create(r.Context(), userID, req.Username)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to save")
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleUsernameAvailability(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing username parameter"})
		return
	}

	available, err := s.profiles.UsernameAvailable(r.Context(), username)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Username  string `json:"username"`
		Available bool   `json:"available"`
	}{Username: username, Available: available})
}

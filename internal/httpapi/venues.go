package httpapi

import (
	"net/http"

	"matchday/internal/models"
)

type showingRequest struct {
	Status models.ShowingStatus `json:"status"`
	Note   string               `json:"note"`
}

type claimRequest struct {
	BusinessName  string `json:"business_name"`
	BusinessEmail string `json:"business_email"`
	BusinessPhone string `json:"business_phone"`
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if venues == nil {
		venues = []*models.Venue{}
	}

	writeJSON(w, http.StatusOK, struct {
		Venues []*models.Venue `json:"venues"`
	}{Venues: venues})
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := s.venues.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleVenueShowings(w http.ResponseWriter, r *http.Request) {
	showings, err := s.showings.ListForVenue(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if showings == nil {
		showings = []*models.Showing{}
	}

	writeJSON(w, http.StatusOK, struct {
		Showings []*models.Showing `json:"showings"`
	}{Showings: showings})
}

func (s *Server) handleSetShowing(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req showingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.showings.SetShowing(r.Context(), userID, r.PathValue("matchID"), r.PathValue("id"), req.Status, req.Note)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to save")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFileClaim(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req claimRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	info := models.BusinessInfo{
		Name:  req.BusinessName,
		Email: req.BusinessEmail,
		Phone: req.BusinessPhone,
	}
	claim, err := s.claims.FileClaim(r.Context(), userID, r.PathValue("id"), info)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to submit claim")
		return
	}

	writeJSON(w, http.StatusCreated, claim)
}

// handleMyClaim returns the caller's latest claim for the venue, or a null
// claim when none was filed.
func (s *Server) handleMyClaim(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	claim, err := s.claims.ClaimStatusFor(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Claim *models.VenueClaim `json:"claim"`
	}{Claim: claim})
}

package httpapi

import (
	"net/http"

	"matchday/internal/models"
)

type resolveRequest struct {
	Action models.ReportAction `json:"action"`
}

func (s *Server) handlePendingClaims(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	claims, err := s.claims.PendingClaims(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if claims == nil {
		claims = []*models.VenueClaim{}
	}

	writeJSON(w, http.StatusOK, struct {
		Claims []*models.VenueClaim `json:"claims"`
	}{Claims: claims})
}

func (s *Server) handleApproveClaim(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	claim, err := s.claims.Approve(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to approve claim")
		return
	}

	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) handleRejectClaim(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	claim, err := s.claims.Reject(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to reject claim")
		return
	}

	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) handleVenueAdmins(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	admins, err := s.claims.VenueAdmins(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if admins == nil {
		admins = []*models.VenueAdmin{}
	}

	writeJSON(w, http.StatusOK, struct {
		Admins []*models.VenueAdmin `json:"admins"`
	}{Admins: admins})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	stats, err := s.claims.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePendingReports(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	reports, err := s.moderation.PendingReports(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}

	writeJSON(w, http.StatusOK, struct {
		Reports []*models.Report `json:"reports"`
	}{Reports: reports})
}

func (s *Server) handleResolveReport(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.moderation.ResolveReport(r.Context(), userID, r.PathValue("id"), req.Action); err != nil {
		writeErrorWithFallback(w, r, err, "failed to resolve report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

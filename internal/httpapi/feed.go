package httpapi

import (
	"net/http"
	"strconv"

	"matchday/internal/models"
)

type postUpdateRequest struct {
	Message string `json:"message"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit parameter"})
			return
		}
		limit = n
	}

	updates, err := s.feed.RankedUpdates(r.Context(), r.PathValue("matchID"), r.PathValue("venueID"), s.viewer(r), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updates == nil {
		updates = []*models.RankedUpdate{}
	}

	writeJSON(w, http.StatusOK, struct {
		Updates []*models.RankedUpdate `json:"updates"`
	}{Updates: updates})
}

func (s *Server) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req postUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	update, err := s.feed.PostUpdate(r.Context(), r.PathValue("matchID"), r.PathValue("venueID"), userID, req.Message)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to post update")
		return
	}

	writeJSON(w, http.StatusCreated, update)
}

func (s *Server) handleToggleUpvote(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	res, err := s.feed.ToggleUpvote(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to save")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteUpdate(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	if err := s.feed.DeleteUpdate(r.Context(), userID, r.PathValue("id")); err != nil {
		writeErrorWithFallback(w, r, err, "failed to delete update")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFileReport(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req reportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := s.moderation.FileReport(r.Context(), r.PathValue("id"), userID, req.Reason)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to submit report")
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

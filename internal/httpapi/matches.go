package httpapi

import (
	"net/http"

	"matchday/internal/models"
)

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matches.ListUpcoming(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []*models.Match{}
	}

	writeJSON(w, http.StatusOK, struct {
		Matches []*models.Match `json:"matches"`
	}{Matches: matches})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.matches.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleMatchResults(w http.ResponseWriter, r *http.Request) {
	res, err := s.results.ForMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMatchShowings(w http.ResponseWriter, r *http.Request) {
	showings, err := s.showings.ListForMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if showings == nil {
		showings = []*models.ShowingWithVenue{}
	}

	writeJSON(w, http.StatusOK, struct {
		Showings []*models.ShowingWithVenue `json:"showings"`
	}{Showings: showings})
}

type goingResponse struct {
	Count   int  `json:"count"`
	Going   bool `json:"going"`
	Created bool `json:"created,omitempty"`
}

func (s *Server) handleGetGoing(w http.ResponseWriter, r *http.Request) {
	matchID, venueID := r.PathValue("matchID"), r.PathValue("venueID")

	resp := goingResponse{Count: s.going.CountGoing(r.Context(), matchID, venueID)}
	if userID := s.viewer(r); userID != "" {
		resp.Going = s.going.HasGone(r.Context(), matchID, venueID, userID)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkGoing(w http.ResponseWriter, r *http.Request) {
	userID, r, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	res, err := s.going.MarkGoing(r.Context(), r.PathValue("matchID"), r.PathValue("venueID"), userID)
	if err != nil {
		writeErrorWithFallback(w, r, err, "failed to save")
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, goingResponse{Count: res.Count, Going: true, Created: res.Created})
}

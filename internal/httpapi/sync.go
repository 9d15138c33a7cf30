package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"matchday/internal/fixtures"
	"matchday/internal/logging"
)

type syncResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type syncFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleSyncMatches runs one fixture sync. It is meant for a scheduler and is
// guarded by a shared secret; without one configured the trigger is off.
func (s *Server) handleSyncMatches(w http.ResponseWriter, r *http.Request) {
	if s.syncSecret == "" || s.sync == nil {
		writeJSON(w, http.StatusServiceUnavailable, syncFailure{Error: "sync trigger disabled"})
		return
	}

	token := extractToken(r)
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.syncSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, syncFailure{Error: "unauthorized"})
		return
	}

	res, err := s.sync.Run(r.Context())
	if err != nil {
		msg := "sync failed"
		if errors.Is(err, fixtures.ErrMissingAPIKey) {
			msg = "API key missing"
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("fixture sync failed")
		writeJSON(w, http.StatusInternalServerError, syncFailure{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{Success: true, Count: res.Count, Message: res.Message})
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"matchday/internal/app"
	"matchday/internal/app/going"
	"matchday/internal/app/identity"
	"matchday/internal/app/results"
	"matchday/internal/fixtures"
	"matchday/internal/logging"
	"matchday/internal/models"
	"matchday/internal/store"
)

// IdentityService describes passwordless sign-in and session checks.
type IdentityService interface {
	RequestLink(ctx context.Context, email string) error
	Verify(ctx context.Context, email, token string) (*identity.Session, error)
	Authenticate(ctx context.Context, sessionToken string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// VenueService exposes the venue directory.
type VenueService interface {
	List(ctx context.Context) ([]*models.Venue, error)
	Get(ctx context.Context, id string) (*models.Venue, error)
}

// MatchService exposes the match catalog.
type MatchService interface {
	ListUpcoming(ctx context.Context, query string) ([]*models.Match, error)
	Get(ctx context.Context, id string) (*models.Match, error)
}

// ShowingService manages per-venue showing declarations.
type ShowingService interface {
	SetShowing(ctx context.Context, callerID, matchID, venueID string, status models.ShowingStatus, note string) error
	ListForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error)
	ListForVenue(ctx context.Context, venueID string) ([]*models.Showing, error)
}

// GoingService tracks attendance.
type GoingService interface {
	CountGoing(ctx context.Context, matchID, venueID string) int
	HasGone(ctx context.Context, matchID, venueID, userID string) bool
	MarkGoing(ctx context.Context, matchID, venueID, userID string) (*going.Result, error)
}

// FeedService manages the live update feed and upvotes.
type FeedService interface {
	PostUpdate(ctx context.Context, matchID, venueID, userID, message string) (*models.Update, error)
	RankedUpdates(ctx context.Context, matchID, venueID, viewerID string, limit int) ([]*models.RankedUpdate, error)
	DeleteUpdate(ctx context.Context, callerID, updateID string) error
	ToggleUpvote(ctx context.Context, updateID, userID string) (*models.UpvoteResult, error)
}

// ProfileService manages usernames.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Create(ctx context.Context, userID, username string) (*models.Profile, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

// ClaimService handles venue ownership claims and admin membership.
type ClaimService interface {
	FileClaim(ctx context.Context, userID, venueID string, info models.BusinessInfo) (*models.VenueClaim, error)
	Approve(ctx context.Context, reviewerID, claimID string) (*models.VenueClaim, error)
	Reject(ctx context.Context, reviewerID, claimID string) (*models.VenueClaim, error)
	ClaimStatusFor(ctx context.Context, userID, venueID string) (*models.VenueClaim, error)
	PendingClaims(ctx context.Context, callerID string) ([]*models.VenueClaim, error)
	VenueAdmins(ctx context.Context, callerID string) ([]*models.VenueAdmin, error)
	UserVenues(ctx context.Context, userID string) ([]*models.Venue, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Stats(ctx context.Context, callerID string) (*models.AdminStats, error)
}

// ModerationService handles update reports.
type ModerationService interface {
	FileReport(ctx context.Context, updateID, reportedBy, reason string) (*models.Report, error)
	ResolveReport(ctx context.Context, reviewerID, reportID string, action models.ReportAction) error
	PendingReports(ctx context.Context, callerID string) ([]*models.Report, error)
}

// ResultsService builds the per-match venue view.
type ResultsService interface {
	ForMatch(ctx context.Context, matchID string) (*results.MatchResults, error)
}

// SyncRunner runs one fixture sync.
type SyncRunner interface {
	Run(ctx context.Context) (*fixtures.Result, error)
}

// Services groups the application services the API depends on.
type Services struct {
	Identity   IdentityService
	Venues     VenueService
	Matches    MatchService
	Showings   ShowingService
	Going      GoingService
	Feed       FeedService
	Profiles   ProfileService
	Claims     ClaimService
	Moderation ModerationService
	Results    ResultsService
	Sync       SyncRunner
}

// Server wires HTTP handlers to application services.
type Server struct {
	identity   IdentityService
	venues     VenueService
	matches    MatchService
	showings   ShowingService
	going      GoingService
	feed       FeedService
	profiles   ProfileService
	claims     ClaimService
	moderation ModerationService
	results    ResultsService
	sync       SyncRunner
	syncSecret string
}

// New constructs a Server. An empty syncSecret disables the sync trigger.
func New(svc Services, syncSecret string) *Server {
	return &Server{
		identity:   svc.Identity,
		venues:     svc.Venues,
		matches:    svc.Matches,
		showings:   svc.Showings,
		going:      svc.Going,
		feed:       svc.Feed,
		profiles:   svc.Profiles,
		claims:     svc.Claims,
		moderation: svc.Moderation,
		results:    svc.Results,
		sync:       svc.Sync,
		syncSecret: syncSecret,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Sign-in and profile
	mux.HandleFunc("POST /api/v1/auth/magic-link", s.handleRequestLink)
	mux.HandleFunc("POST /api/v1/auth/verify", s.handleVerify)
	mux.HandleFunc("GET /api/v1/me", s.handleMe)
	mux.HandleFunc("GET /api/v1/me/venues", s.handleMyVenues)
	mux.HandleFunc("GET /api/v1/profile", s.handleGetProfile)
	mux.HandleFunc("POST /api/v1/profile", s.handleCreateProfile)
	mux.HandleFunc("GET /api/v1/profiles/availability", s.handleUsernameAvailability)

	// Matches
	mux.HandleFunc("GET /api/v1/matches", s.handleListMatches)
	mux.HandleFunc("GET /api/v1/matches/{id}", s.handleGetMatch)
	mux.HandleFunc("GET /api/v1/matches/{id}/results", s.handleMatchResults)
	mux.HandleFunc("GET /api/v1/matches/{id}/showings", s.handleMatchShowings)

	// Attendance and the live feed
	mux.HandleFunc("GET /api/v1/matches/{matchID}/venues/{venueID}/going", s.handleGetGoing)
	mux.HandleFunc("POST /api/v1/matches/{matchID}/venues/{venueID}/going", s.handleMarkGoing)
	mux.HandleFunc("GET /api/v1/matches/{matchID}/venues/{venueID}/updates", s.handleListUpdates)
	mux.HandleFunc("POST /api/v1/matches/{matchID}/venues/{venueID}/updates", s.handlePostUpdate)
	mux.HandleFunc("POST /api/v1/updates/{id}/upvote", s.handleToggleUpvote)
	mux.HandleFunc("POST /api/v1/updates/{id}/reports", s.handleFileReport)
	mux.HandleFunc("DELETE /api/v1/updates/{id}", s.handleDeleteUpdate)

	// Venues
	mux.HandleFunc("GET /api/v1/venues", s.handleListVenues)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)
	mux.HandleFunc("GET /api/v1/venues/{id}/showings", s.handleVenueShowings)
	mux.HandleFunc("PUT /api/v1/venues/{id}/showings/{matchID}", s.handleSetShowing)
	mux.HandleFunc("POST /api/v1/venues/{id}/claims", s.handleFileClaim)
	mux.HandleFunc("GET /api/v1/venues/{id}/claims/me", s.handleMyClaim)

	// Admin
	mux.HandleFunc("GET /api/v1/admin/claims", s.handlePendingClaims)
	mux.HandleFunc("POST /api/v1/admin/claims/{id}/approve", s.handleApproveClaim)
	mux.HandleFunc("POST /api/v1/admin/claims/{id}/reject", s.handleRejectClaim)
	mux.HandleFunc("GET /api/v1/admin/venue-admins", s.handleVenueAdmins)
	mux.HandleFunc("GET /api/v1/admin/stats", s.handleAdminStats)
	mux.HandleFunc("GET /api/v1/admin/reports", s.handlePendingReports)
	mux.HandleFunc("POST /api/v1/admin/reports/{id}/resolve", s.handleResolveReport)

	mux.HandleFunc("GET /api/sync-matches", s.handleSyncMatches)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// authenticate resolves the bearer token to a user id and tags the request
// context with it. On failure it writes a 401 and returns false.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, *http.Request, bool) {
	token := extractToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid token"})
		return "", r, false
	}
	userID, err := s.identity.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return "", r, false
	}
	return userID, r.WithContext(logging.WithUserID(r.Context(), userID)), true
}

// viewer returns the signed-in user id, or "" for anonymous requests. Bad
// tokens are treated as anonymous.
func (s *Server) viewer(r *http.Request) string {
	token := extractToken(r)
	if token == "" {
		return ""
	}
	userID, err := s.identity.Authenticate(r.Context(), token)
	if err != nil {
		return ""
	}
	return userID
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorWithFallback(w, r, err, "internal server error")
}

// writeErrorWithFallback maps service errors onto status codes. Unclassified
// errors are logged and answered with fallback so backend detail never leaks.
func writeErrorWithFallback(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var status int
	switch {
	case errors.Is(err, app.ErrUnauthenticated), errors.Is(err, store.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, app.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, app.ErrUsernameRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, app.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrMatchNotFound),
		errors.Is(err, store.ErrUpdateNotFound),
		errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrClaimNotFound),
		errors.Is(err, store.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrUsernameTaken),
		errors.Is(err, store.ErrProfileExists),
		errors.Is(err, store.ErrClaimNotPending),
		errors.Is(err, store.ErrReportNotPending):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled):
		// client navigated away; nobody is listening
		return
	default:
		logging.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func extractToken(r *http.Request) string {
	return parseBearerToken(r.Header.Get("Authorization"))
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

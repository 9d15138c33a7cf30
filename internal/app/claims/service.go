package claims

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"matchday/internal/app"
	"matchday/internal/logging"
	"matchday/internal/models"
)

// Store defines persistence operations for venue claims and admin rosters
type Store interface {
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	InsertClaim(ctx context.Context, venueID, userID string, info models.BusinessInfo) (*models.VenueClaim, error)
	LatestClaim(ctx context.Context, userID, venueID string) (*models.VenueClaim, error)
	PendingClaims(ctx context.Context) ([]*models.VenueClaim, error)
	ApproveClaim(ctx context.Context, claimID, reviewerID string) (*models.VenueClaim, error)
	RejectClaim(ctx context.Context, claimID, reviewerID string) (*models.VenueClaim, error)

	IsAdmin(ctx context.Context, userID string) (bool, error)
	IsVenueAdmin(ctx context.Context, userID, venueID string) (bool, error)
	ListVenueAdmins(ctx context.Context) ([]*models.VenueAdmin, error)
	VenuesManagedBy(ctx context.Context, userID string) ([]*models.Venue, error)

	CountVenues(ctx context.Context) (int, error)
	CountClaims(ctx context.Context) (int, error)
	CountVenueAdmins(ctx context.Context) (int, error)
	CountShowings(ctx context.Context) (int, error)
}

// Service runs the venue claim workflow and platform admin checks
type Service interface {
	FileClaim(ctx context.Context, userID, venueID string, info models.BusinessInfo) (*models.VenueClaim, error)
	Approve(ctx context.Context, reviewerID, claimID string) (*models.VenueClaim, error)
	Reject(ctx context.Context, reviewerID, claimID string) (*models.VenueClaim, error)
	ClaimStatusFor(ctx context.Context, userID, venueID string) (*models.VenueClaim, error)
	PendingClaims(ctx context.Context, callerID string) ([]*models.VenueClaim, error)
	VenueAdmins(ctx context.Context, callerID string) ([]*models.VenueAdmin, error)
	UserVenues(ctx context.Context, userID string) ([]*models.Venue, error)
	IsVenueAdmin(ctx context.Context, userID, venueID string) (bool, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Stats(ctx context.Context, callerID string) (*models.AdminStats, error)
}

type service struct {
	store Store
}

// New constructs a claims Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) FileClaim(ctx context.Context, userID, venueID string, info models.BusinessInfo) (*models.VenueClaim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}

	info.Name = strings.TrimSpace(info.Name)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	if info.Name == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: business name and email are required", app.ErrInvalidInput)
	}

	venue, err := s.store.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !venue.Claimable {
		return nil, fmt.Errorf("%w: venue cannot be claimed", app.ErrInvalidInput)
	}

	return s.store.InsertClaim(ctx, venueID, userID, info)
}

func (s *service) Approve(ctx context.Context, reviewerID, claimID string) (*models.VenueClaim, error) {
	if err := s.requireAdmin(ctx, reviewerID); err != nil {
		return nil, err
	}
	return s.store.ApproveClaim(ctx, claimID, reviewerID)
}

func (s *service) Reject(ctx context.Context, reviewerID, claimID string) (*models.VenueClaim, error) {
	if err := s.requireAdmin(ctx, reviewerID); err != nil {
		return nil, err
	}
	return s.store.RejectClaim(ctx, claimID, reviewerID)
}

// ClaimStatusFor returns the user's latest claim on the venue, or nil.
func (s *service) ClaimStatusFor(ctx context.Context, userID, venueID string) (*models.VenueClaim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}
	return s.store.LatestClaim(ctx, userID, venueID)
}

func (s *service) PendingClaims(ctx context.Context, callerID string) ([]*models.VenueClaim, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.store.PendingClaims(ctx)
}

func (s *service) VenueAdmins(ctx context.Context, callerID string) ([]*models.VenueAdmin, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.store.ListVenueAdmins(ctx)
}

func (s *service) UserVenues(ctx context.Context, userID string) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}
	return s.store.VenuesManagedBy(ctx, userID)
}

func (s *service) IsVenueAdmin(ctx context.Context, userID, venueID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.store.IsVenueAdmin(ctx, userID, venueID)
}

func (s *service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.store.IsAdmin(ctx, userID)
}

// Stats fetches the dashboard totals concurrently. A failed count reads as zero.
func (s *service) Stats(ctx context.Context, callerID string) (*models.AdminStats, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	var stats models.AdminStats
	counts := []struct {
		name string
		dst  *int
		fn   func(context.Context) (int, error)
	}{
		{"venues", &stats.TotalVenues, s.store.CountVenues},
		{"claims", &stats.TotalClaims, s.store.CountClaims},
		{"venue_admins", &stats.TotalAdmins, s.store.CountVenueAdmins},
		{"showings", &stats.TotalShowings, s.store.CountShowings},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := c.fn(gctx)
			if err != nil {
				logging.WithContext(ctx).Warn().Err(err).Str("count", c.name).Msg("admin stat failed")
				return nil
			}
			*c.dst = n
			return nil
		})
	}
	_ = g.Wait()

	return &stats, nil
}

func (s *service) requireAdmin(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return app.ErrUnauthenticated
	}
	ok, err := s.store.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return app.ErrForbidden
	}
	return nil
}

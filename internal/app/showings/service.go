package showings

import (
	"context"
	"fmt"
	"strings"

	"matchday/internal/app"
	"matchday/internal/models"
)

// Store defines persistence operations for the showing registry
type Store interface {
	IsVenueAdmin(ctx context.Context, userID, venueID string) (bool, error)
	UpsertShowing(ctx context.Context, matchID, venueID string, status models.ShowingStatus, note string) error
	ListShowingsForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error)
	ListShowingsForVenue(ctx context.Context, venueID string) ([]*models.Showing, error)
}

// Service manages which venues broadcast which matches
type Service interface {
	SetShowing(ctx context.Context, callerID, matchID, venueID string, status models.ShowingStatus, note string) error
	ListForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error)
	ListForVenue(ctx context.Context, venueID string) ([]*models.Showing, error)
}

type service struct {
	store Store
}

// New constructs a showings Service
func New(store Store) Service {
	return &service{store: store}
}

// SetShowing records a venue admin's decision for a match. Last write wins.
func (s *service) SetShowing(ctx context.Context, callerID, matchID, venueID string, status models.ShowingStatus, note string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if callerID == "" {
		return app.ErrUnauthenticated
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status must be showing or not_showing", app.ErrInvalidInput)
	}

	ok, err := s.store.IsVenueAdmin(ctx, callerID, venueID)
	if err != nil {
		return err
	}
	if !ok {
		return app.ErrForbidden
	}

	return s.store.UpsertShowing(ctx, matchID, venueID, status, strings.TrimSpace(note))
}

func (s *service) ListForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShowingsForMatch(ctx, matchID)
}

func (s *service) ListForVenue(ctx context.Context, venueID string) ([]*models.Showing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShowingsForVenue(ctx, venueID)
}

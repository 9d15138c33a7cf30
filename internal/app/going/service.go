package going

import (
	"context"
	"errors"

	"matchday/internal/app"
	"matchday/internal/logging"
	"matchday/internal/models"
	"matchday/internal/store"
)

// Store defines persistence operations for the attendance ledger
type Store interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	CountGoing(ctx context.Context, matchID, venueID string) (int, error)
	HasGone(ctx context.Context, matchID, venueID, userID string) (bool, error)
	MarkGoing(ctx context.Context, matchID, venueID, userID string) (bool, error)
}

// Result reports the ledger state after a mark.
type Result struct {
	Created bool `json:"created"`
	Count   int  `json:"count"`
}

// Service tracks who is going to watch a match where
type Service interface {
	// CountGoing never fails; lookup errors count as zero.
	CountGoing(ctx context.Context, matchID, venueID string) int
	// HasGone treats lookup errors as not going.
	HasGone(ctx context.Context, matchID, venueID, userID string) bool
	MarkGoing(ctx context.Context, matchID, venueID, userID string) (*Result, error)
}

type service struct {
	store Store
}

// New constructs a going Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) CountGoing(ctx context.Context, matchID, venueID string) int {
	n, err := s.store.CountGoing(ctx, matchID, venueID)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).
			Str("match_id", matchID).
			Str("venue_id", venueID).
			Msg("count going failed")
		return 0
	}
	return n
}

func (s *service) HasGone(ctx context.Context, matchID, venueID, userID string) bool {
	if userID == "" {
		return false
	}
	gone, err := s.store.HasGone(ctx, matchID, venueID, userID)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).
			Str("match_id", matchID).
			Str("venue_id", venueID).
			Msg("going check failed, treating as not going")
		return false
	}
	return gone
}

func (s *service) MarkGoing(ctx context.Context, matchID, venueID, userID string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}

	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, app.ErrUsernameRequired
		}
		return nil, err
	}

	created, err := s.store.MarkGoing(ctx, matchID, venueID, userID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Created: created,
		Count:   s.CountGoing(ctx, matchID, venueID),
	}, nil
}

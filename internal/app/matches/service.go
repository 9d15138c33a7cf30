package matches

import (
	"context"
	"time"

	"matchday/internal/models"
)

const (
	upcomingWindow = 30 * 24 * time.Hour
	upcomingLimit  = 20
)

// Store defines persistence operations for the match catalog
type Store interface {
	ListUpcomingMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
}

// Service exposes the match catalog
type Service interface {
	// ListUpcoming returns up to 20 upcoming matches in the next 30 days,
	// optionally narrowed to a team name.
	ListUpcoming(ctx context.Context, query string) ([]*models.Match, error)
	Get(ctx context.Context, id string) (*models.Match, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a matches Service
func New(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) ListUpcoming(ctx context.Context, query string) ([]*models.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	return s.store.ListUpcomingMatches(ctx, models.MatchFilter{
		From:  now,
		To:    now.Add(upcomingWindow),
		Team:  query,
		Limit: upcomingLimit,
	})
}

func (s *service) Get(ctx context.Context, id string) (*models.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetMatch(ctx, id)
}

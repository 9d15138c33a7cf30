package venues

import (
	"context"

	"matchday/internal/models"
)

// Store defines persistence operations for the venue directory
type Store interface {
	ListVenues(ctx context.Context) ([]*models.Venue, error)
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
}

// Service exposes the venue directory
type Service interface {
	List(ctx context.Context) ([]*models.Venue, error)
	Get(ctx context.Context, id string) (*models.Venue, error)
}

type service struct {
	store Store
}

// New constructs a venues Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListVenues(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, id)
}

package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"matchday/internal/app"
	"matchday/internal/logging"
	"matchday/internal/models"
	"matchday/internal/store"
)

const (
	// MaxMessageLength caps an update in characters.
	MaxMessageLength = 280

	defaultLimit = 50
	maxLimit     = 100
)

// Store defines persistence operations for live updates and upvotes
type Store interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	InsertUpdate(ctx context.Context, matchID, venueID, userID, message string) (*models.Update, error)
	ListUpdates(ctx context.Context, matchID, venueID string, limit int) ([]*models.Update, error)
	DeleteUpdate(ctx context.Context, id string) error
	ToggleUpvote(ctx context.Context, updateID, userID string) (*models.UpvoteResult, error)
	UpvoteCounts(ctx context.Context, updateIDs []string) (map[string]int, error)
	UpvotedByUser(ctx context.Context, userID string, updateIDs []string) (map[string]bool, error)
}

// Service coordinates the live update feed
type Service interface {
	PostUpdate(ctx context.Context, matchID, venueID, userID, message string) (*models.Update, error)
	ListUpdates(ctx context.Context, matchID, venueID string, limit int) ([]*models.Update, error)
	// RankedUpdates decorates the feed with upvotes, most upvoted first.
	RankedUpdates(ctx context.Context, matchID, venueID, viewerID string, limit int) ([]*models.RankedUpdate, error)
	DeleteUpdate(ctx context.Context, callerID, updateID string) error

	ToggleUpvote(ctx context.Context, updateID, userID string) (*models.UpvoteResult, error)
	CountsForUpdates(ctx context.Context, updateIDs []string) (map[string]int, error)
	UpvotedByUser(ctx context.Context, userID string, updateIDs []string) map[string]bool
}

type service struct {
	store Store
}

// New constructs a feed Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) PostUpdate(ctx context.Context, matchID, venueID, userID, message string) (*models.Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", app.ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, fmt.Errorf("%w: message must be at most %d characters", app.ErrInvalidInput, MaxMessageLength)
	}

	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, app.ErrUsernameRequired
		}
		return nil, err
	}

	return s.store.InsertUpdate(ctx, matchID, venueID, userID, message)
}

func (s *service) ListUpdates(ctx context.Context, matchID, venueID string, limit int) ([]*models.Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUpdates(ctx, matchID, venueID, clampLimit(limit))
}

func (s *service) RankedUpdates(ctx context.Context, matchID, venueID, viewerID string, limit int) ([]*models.RankedUpdate, error) {
	updates, err := s.ListUpdates(ctx, matchID, venueID, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}

	counts, err := s.CountsForUpdates(ctx, ids)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).Msg("upvote counts failed")
		counts = map[string]int{}
	}
	upvoted := s.UpvotedByUser(ctx, viewerID, ids)

	ranked := make([]*models.RankedUpdate, 0, len(updates))
	for _, u := range updates {
		ranked = append(ranked, &models.RankedUpdate{
			Update:  *u,
			Upvotes: counts[u.ID],
			Upvoted: upvoted[u.ID],
		})
	}
	SortByUpvotes(ranked)

	return ranked, nil
}

func (s *service) DeleteUpdate(ctx context.Context, callerID, updateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if callerID == "" {
		return app.ErrUnauthenticated
	}

	ok, err := s.store.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return app.ErrForbidden
	}

	return s.store.DeleteUpdate(ctx, updateID)
}

func (s *service) ToggleUpvote(ctx context.Context, updateID, userID string) (*models.UpvoteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}
	return s.store.ToggleUpvote(ctx, updateID, userID)
}

func (s *service) CountsForUpdates(ctx context.Context, updateIDs []string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpvoteCounts(ctx, updateIDs)
}

// UpvotedByUser fails open: a lookup error yields an empty set.
func (s *service) UpvotedByUser(ctx context.Context, userID string, updateIDs []string) map[string]bool {
	if userID == "" || len(updateIDs) == 0 {
		return map[string]bool{}
	}
	upvoted, err := s.store.UpvotedByUser(ctx, userID, updateIDs)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).Msg("upvoted lookup failed, treating as none")
		return map[string]bool{}
	}
	return upvoted
}

// SortByUpvotes orders updates by upvotes, then newest first.
func SortByUpvotes(updates []*models.RankedUpdate) {
	sort.SliceStable(updates, func(i, j int) bool {
		if updates[i].Upvotes != updates[j].Upvotes {
			return updates[i].Upvotes > updates[j].Upvotes
		}
		return updates[i].CreatedAt.After(updates[j].CreatedAt)
	})
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

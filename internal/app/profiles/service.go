package profiles

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"matchday/internal/app"
	"matchday/internal/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Store defines persistence operations for profiles
type Store interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, userID, username string) (*models.Profile, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// Service manages user profiles. Usernames cannot change once chosen.
type Service interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Create(ctx context.Context, userID, username string) (*models.Profile, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

type service struct {
	store Store
}

// New constructs a profiles Service
func New(store Store) Service {
	return &service{store: store}
}

// ValidateUsername enforces length and character rules.
func ValidateUsername(username string) error {
	if n := len(username); n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", app.ErrInvalidInput, minUsernameLength, maxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username may only contain letters, numbers and underscores", app.ErrInvalidInput)
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}
	return s.store.GetProfile(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID, username string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}

	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	return s.store.CreateProfile(ctx, userID, username)
}

func (s *service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	taken, err := s.store.UsernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

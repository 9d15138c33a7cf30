package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"matchday/internal/models"
)

// GetProfile returns the profile for a user.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, bars_visited, reputation_score, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Username, &p.BarsVisited, &p.ReputationScore, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return &p, nil
}

// CreateProfile claims a username for the user.
func (s *Store) CreateProfile(ctx context.Context, userID, username string) (*models.Profile, error) {
	p := models.Profile{UserID: userID, Username: username}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (user_id, username)
		VALUES ($1, $2)
		RETURNING bars_visited, reputation_score, created_at, updated_at
	`, userID, username).Scan(&p.BarsVisited, &p.ReputationScore, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "profiles_pkey" {
				return nil, ErrProfileExists
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return &p, nil
}

// UsernameTaken reports whether a profile already uses the username.
func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM profiles WHERE username = $1
		)
	`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

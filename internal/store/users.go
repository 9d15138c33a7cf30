package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"matchday/internal/models"
)

// CreateLoginLink stores a bcrypt hash of the one-time token for the email.
func (s *Store) CreateLoginLink(ctx context.Context, email, token string, expiresAt time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO login_links (id, email, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), email, string(hash), expiresAt); err != nil {
		return fmt.Errorf("insert login link: %w", err)
	}
	return nil
}

// ConsumeLoginLink validates the token against the newest unused link for the
// email, marks it used and returns the user, creating one on first login.
func (s *Store) ConsumeLoginLink(ctx context.Context, email, token string, now time.Time) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var (
		linkID string
		hash   string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, token_hash
		FROM login_links
		WHERE email = $1 AND used_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`, email, now).Scan(&linkID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLoginLinkInvalid
		}
		return nil, fmt.Errorf("lookup login link: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return nil, ErrLoginLinkInvalid
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE login_links SET used_at = $2 WHERE id = $1
	`, linkID, now); err != nil {
		return nil, fmt.Errorf("mark login link used: %w", err)
	}

	var user models.User
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at
	`, uuid.NewString(), email).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return &user, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"matchday/internal/models"
)

const claimColumns = `c.id, c.venue_id, c.user_id, c.business_name, c.business_email, c.business_phone,
	c.status, c.created_at, c.reviewed_at, c.reviewed_by`

func scanClaim(row rowScanner, extra ...any) (*models.VenueClaim, error) {
	var (
		c          models.VenueClaim
		status     string
		reviewedAt sql.NullTime
		reviewedBy sql.NullString
	)
	dest := []any{&c.ID, &c.VenueID, &c.UserID, &c.Business.Name, &c.Business.Email, &c.Business.Phone,
		&status, &c.CreatedAt, &reviewedAt, &reviewedBy}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	c.Status = models.ClaimStatus(status)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		c.ReviewedAt = &t
	}
	c.ReviewedBy = stringPtr(reviewedBy)
	return &c, nil
}

// InsertClaim records a pending claim on a venue.
func (s *Store) InsertClaim(ctx context.Context, venueID, userID string, info models.BusinessInfo) (*models.VenueClaim, error) {
	c := models.VenueClaim{
		ID:       uuid.NewString(),
		VenueID:  venueID,
		UserID:   userID,
		Business: info,
		Status:   models.ClaimStatusPending,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO venue_claims (id, venue_id, user_id, business_name, business_email, business_phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING created_at
	`, c.ID, venueID, userID, info.Name, info.Email, info.Phone).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert claim: %w", err)
	}
	return &c, nil
}

// LatestClaim returns the user's most recent claim for the venue, or nil.
func (s *Store) LatestClaim(ctx context.Context, userID, venueID string) (*models.VenueClaim, error) {
	query := `
		SELECT ` + claimColumns + `
		FROM venue_claims c
		WHERE c.user_id = $1 AND c.venue_id = $2
		ORDER BY c.created_at DESC
		LIMIT 1
	`

	c, err := scanClaim(s.db.QueryRowContext(ctx, query, userID, venueID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest claim: %w", err)
	}
	return c, nil
}

// PendingClaims lists claims awaiting review, newest first, with venue details.
func (s *Store) PendingClaims(ctx context.Context) ([]*models.VenueClaim, error) {
	query := `
		SELECT ` + claimColumns + `, v.name, v.neighborhood
		FROM venue_claims c
		JOIN venues v ON v.id = c.venue_id
		WHERE c.status = 'pending'
		ORDER BY c.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select pending claims: %w", err)
	}
	defer rows.Close()

	var claims []*models.VenueClaim
	for rows.Next() {
		var venueName, neighborhood string
		c, err := scanClaim(rows, &venueName, &neighborhood)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		c.VenueName = venueName
		c.VenueNeighborhood = neighborhood
		claims = append(claims, c)
	}

	return claims, rows.Err()
}

// ApproveClaim moves a pending claim to approved and grants the claimant
// venue admin rights in one transaction.
func (s *Store) ApproveClaim(ctx context.Context, claimID, reviewerID string) (*models.VenueClaim, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	c, err := reviewClaimTx(ctx, tx, claimID, reviewerID, models.ClaimStatusApproved)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO venue_admins (venue_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (venue_id, user_id) DO NOTHING
	`, c.VenueID, c.UserID); err != nil {
		return nil, fmt.Errorf("insert venue admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return c, nil
}

// RejectClaim moves a pending claim to rejected.
func (s *Store) RejectClaim(ctx context.Context, claimID, reviewerID string) (*models.VenueClaim, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	c, err := reviewClaimTx(ctx, tx, claimID, reviewerID, models.ClaimStatusRejected)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return c, nil
}

func reviewClaimTx(ctx context.Context, tx *sql.Tx, claimID, reviewerID string, status models.ClaimStatus) (*models.VenueClaim, error) {
	query := `
		UPDATE venue_claims c
		SET status = $2, reviewed_at = NOW(), reviewed_by = $3
		WHERE c.id = $1 AND c.status = 'pending'
		RETURNING ` + claimColumns

	c, err := scanClaim(tx.QueryRowContext(ctx, query, claimID, string(status), reviewerID))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review claim: %w", err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM venue_claims WHERE id = $1)
	`, claimID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check claim: %w", err)
	}
	if !exists {
		return nil, ErrClaimNotFound
	}
	return nil, ErrClaimNotPending
}

// CountClaims returns the number of claims ever filed.
func (s *Store) CountClaims(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM venue_claims`)
}

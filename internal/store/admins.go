package store

import (
	"context"
	"fmt"

	"matchday/internal/models"
)

// IsAdmin reports whether the user is a platform administrator.
func (s *Store) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM admins WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return exists, nil
}

// GrantAdmin adds a platform administrator.
func (s *Store) GrantAdmin(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// IsVenueAdmin reports whether the user manages the venue.
func (s *Store) IsVenueAdmin(ctx context.Context, userID, venueID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM venue_admins
			WHERE user_id = $1 AND venue_id = $2
		)
	`, userID, venueID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check venue admin: %w", err)
	}
	return exists, nil
}

// ListVenueAdmins returns the full venue admin roster, newest grant first.
func (s *Store) ListVenueAdmins(ctx context.Context) ([]*models.VenueAdmin, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT va.venue_id, va.user_id, va.added_at, v.name, v.neighborhood
		FROM venue_admins va
		JOIN venues v ON v.id = va.venue_id
		ORDER BY va.added_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select venue admins: %w", err)
	}
	defer rows.Close()

	var admins []*models.VenueAdmin
	for rows.Next() {
		var a models.VenueAdmin
		if err := rows.Scan(&a.VenueID, &a.UserID, &a.AddedAt, &a.VenueName, &a.VenueNeighborhood); err != nil {
			return nil, fmt.Errorf("scan venue admin: %w", err)
		}
		admins = append(admins, &a)
	}

	return admins, rows.Err()
}

// VenuesManagedBy returns the venues the user administers.
func (s *Store) VenuesManagedBy(ctx context.Context, userID string) ([]*models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.neighborhood, v.bar_type, v.club_name, v.address, v.claimable, v.created_at
		FROM venue_admins va
		JOIN venues v ON v.id = va.venue_id
		WHERE va.user_id = $1
		ORDER BY v.name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select managed venues: %w", err)
	}
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}

	return venues, rows.Err()
}

// CountVenues returns the number of venues.
func (s *Store) CountVenues(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM venues`)
}

// CountVenueAdmins returns the number of venue admin grants.
func (s *Store) CountVenueAdmins(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM venue_admins`)
}

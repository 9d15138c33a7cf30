package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"matchday/internal/models"
)

const venueColumns = `id, name, neighborhood, bar_type, club_name, address, claimable, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*models.Venue, error) {
	var (
		v        models.Venue
		barType  string
		clubName sql.NullString
		address  sql.NullString
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Neighborhood, &barType, &clubName, &address, &v.Claimable, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.BarType = models.BarType(barType)
	v.ClubName = stringPtr(clubName)
	v.Address = stringPtr(address)
	return &v, nil
}

// ListVenues returns every venue ordered by name.
func (s *Store) ListVenues(ctx context.Context) ([]*models.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
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

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE id = $1
	`

	v, err := scanVenue(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("select venue: %w", err)
	}
	return v, nil
}

// EnsureVenue inserts the venue if its id is not present yet. Existing rows are left alone.
func (s *Store) EnsureVenue(ctx context.Context, v *models.Venue) (bool, error) {
	var clubName, address sql.NullString
	if v.ClubName != nil {
		clubName = nullString(*v.ClubName)
	}
	if v.Address != nil {
		address = nullString(*v.Address)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO venues (id, name, neighborhood, bar_type, club_name, address, claimable)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, v.ID, v.Name, v.Neighborhood, string(v.BarType), clubName, address, v.Claimable)
	if err != nil {
		return false, fmt.Errorf("insert venue: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"matchday/internal/models"
)

// UpsertShowing records a venue's broadcast decision; the last write wins.
func (s *Store) UpsertShowing(ctx context.Context, matchID, venueID string, status models.ShowingStatus, note string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO showings (match_id, venue_id, status, note, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (match_id, venue_id) DO UPDATE SET
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			updated_at = NOW()
	`, matchID, venueID, string(status), nullString(note)); err != nil {
		return fmt.Errorf("upsert showing: %w", err)
	}
	return nil
}

// ListShowingsForMatch returns every showing for a match joined with its venue.
func (s *Store) ListShowingsForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error) {
	query := `
		SELECT s.match_id, s.venue_id, s.status, s.note, s.updated_at,
		       v.id, v.name, v.neighborhood, v.bar_type, v.club_name, v.address, v.claimable, v.created_at
		FROM showings s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.match_id = $1
		ORDER BY v.name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("select showings: %w", err)
	}
	defer rows.Close()

	var showings []*models.ShowingWithVenue
	for rows.Next() {
		var (
			sh       models.ShowingWithVenue
			v        models.Venue
			status   string
			note     sql.NullString
			barType  string
			clubName sql.NullString
			address  sql.NullString
		)
		if err := rows.Scan(&sh.MatchID, &sh.VenueID, &status, &note, &sh.UpdatedAt,
			&v.ID, &v.Name, &v.Neighborhood, &barType, &clubName, &address, &v.Claimable, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan showing: %w", err)
		}
		sh.Status = models.ShowingStatus(status)
		sh.Note = stringPtr(note)
		v.BarType = models.BarType(barType)
		v.ClubName = stringPtr(clubName)
		v.Address = stringPtr(address)
		sh.Venue = &v
		showings = append(showings, &sh)
	}

	return showings, rows.Err()
}

// ListShowingsForVenue returns the showing declarations a venue has made.
func (s *Store) ListShowingsForVenue(ctx context.Context, venueID string) ([]*models.Showing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, venue_id, status, note, updated_at
		FROM showings
		WHERE venue_id = $1
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("select venue showings: %w", err)
	}
	defer rows.Close()

	var showings []*models.Showing
	for rows.Next() {
		var (
			sh     models.Showing
			status string
			note   sql.NullString
		)
		if err := rows.Scan(&sh.MatchID, &sh.VenueID, &status, &note, &sh.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan showing: %w", err)
		}
		sh.Status = models.ShowingStatus(status)
		sh.Note = stringPtr(note)
		showings = append(showings, &sh)
	}

	return showings, rows.Err()
}

// CountShowings returns the number of showing rows.
func (s *Store) CountShowings(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM showings`)
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"matchday/internal/models"
)

// InsertUpdate stores a new live update and returns it with the poster's username.
func (s *Store) InsertUpdate(ctx context.Context, matchID, venueID, userID, message string) (*models.Update, error) {
	u := models.Update{
		ID:      uuid.NewString(),
		MatchID: matchID,
		VenueID: venueID,
		UserID:  userID,
		Message: message,
	}

	err := s.db.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO updates (id, match_id, venue_id, user_id, message)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING user_id, created_at
		)
		SELECT p.username, i.created_at
		FROM inserted i
		JOIN profiles p ON p.user_id = i.user_id
	`, u.ID, matchID, venueID, userID, message).Scan(&u.Username, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert update: %w", err)
	}
	return &u, nil
}

// ListUpdates returns the newest updates for a match at a venue.
func (s *Store) ListUpdates(ctx context.Context, matchID, venueID string, limit int) ([]*models.Update, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.match_id, u.venue_id, u.user_id, p.username, u.message, u.created_at
		FROM updates u
		JOIN profiles p ON p.user_id = u.user_id
		WHERE u.match_id = $1 AND u.venue_id = $2
		ORDER BY u.created_at DESC
		LIMIT $3
	`, matchID, venueID, limit)
	if err != nil {
		return nil, fmt.Errorf("select updates: %w", err)
	}
	defer rows.Close()

	return scanUpdates(rows)
}

// LatestUpdatesPerVenue returns up to perVenue of the most recent updates for
// each venue showing activity for the match.
func (s *Store) LatestUpdatesPerVenue(ctx context.Context, matchID string, perVenue int) (map[string][]*models.Update, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_id, venue_id, user_id, username, message, created_at
		FROM (
			SELECT u.id, u.match_id, u.venue_id, u.user_id, p.username, u.message, u.created_at,
			       ROW_NUMBER() OVER (PARTITION BY u.venue_id ORDER BY u.created_at DESC) AS rn
			FROM updates u
			JOIN profiles p ON p.user_id = u.user_id
			WHERE u.match_id = $1
		) ranked
		WHERE rn <= $2
		ORDER BY venue_id, created_at DESC
	`, matchID, perVenue)
	if err != nil {
		return nil, fmt.Errorf("select update previews: %w", err)
	}
	defer rows.Close()

	updates, err := scanUpdates(rows)
	if err != nil {
		return nil, err
	}

	byVenue := make(map[string][]*models.Update)
	for _, u := range updates {
		byVenue[u.VenueID] = append(byVenue[u.VenueID], u)
	}
	return byVenue, nil
}

// GetUpdate retrieves a single update.
func (s *Store) GetUpdate(ctx context.Context, id string) (*models.Update, error) {
	var u models.Update
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.match_id, u.venue_id, u.user_id, COALESCE(p.username, ''), u.message, u.created_at
		FROM updates u
		LEFT JOIN profiles p ON p.user_id = u.user_id
		WHERE u.id = $1
	`, id).Scan(&u.ID, &u.MatchID, &u.VenueID, &u.UserID, &u.Username, &u.Message, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUpdateNotFound
		}
		return nil, fmt.Errorf("select update: %w", err)
	}
	return &u, nil
}

// DeleteUpdate removes an update. Upvotes cascade and reports keep a null reference.
func (s *Store) DeleteUpdate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM updates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrUpdateNotFound
	}
	return nil
}

func scanUpdates(rows *sql.Rows) ([]*models.Update, error) {
	var updates []*models.Update
	for rows.Next() {
		var u models.Update
		if err := rows.Scan(&u.ID, &u.MatchID, &u.VenueID, &u.UserID, &u.Username, &u.Message, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan update: %w", err)
		}
		updates = append(updates, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate updates: %w", err)
	}
	return updates, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CountGoing returns how many users marked going for the match at the venue.
func (s *Store) CountGoing(ctx context.Context, matchID, venueID string) (int, error) {
	return s.count(ctx, `
		SELECT COUNT(*)
		FROM going
		WHERE match_id = $1 AND venue_id = $2
	`, matchID, venueID)
}

// HasGone reports whether the user already marked going for the match at the venue.
func (s *Store) HasGone(ctx context.Context, matchID, venueID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM going
			WHERE match_id = $1 AND venue_id = $2 AND user_id = $3
		)
	`, matchID, venueID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check going: %w", err)
	}
	return exists, nil
}

// MarkGoing inserts the going row if absent and bumps the profile's bars_visited
// when a row was created. It returns whether the row is new.
func (s *Store) MarkGoing(ctx context.Context, matchID, venueID, userID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO going (id, match_id, venue_id, user_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id, venue_id, user_id) DO NOTHING
	`, uuid.NewString(), matchID, venueID, userID)
	if err != nil {
		return false, fmt.Errorf("insert going: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if n > 0 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE profiles
			SET bars_visited = bars_visited + 1, updated_at = NOW()
			WHERE user_id = $1
		`, userID); err != nil {
			return false, fmt.Errorf("bump bars visited: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return n > 0, nil
}

// GoingCountsByVenue returns going totals for a match keyed by venue id.
func (s *Store) GoingCountsByVenue(ctx context.Context, matchID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT venue_id, COUNT(*)
		FROM going
		WHERE match_id = $1
		GROUP BY venue_id
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("select going counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			venueID string
			n       int
		)
		if err := rows.Scan(&venueID, &n); err != nil {
			return nil, fmt.Errorf("scan going count: %w", err)
		}
		counts[venueID] = n
	}

	return counts, rows.Err()
}

package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"matchday/internal/models"
)

// ToggleUpvote flips the user's upvote on an update. One statement either
// deletes the existing row or inserts a new one, and the count is re-read in
// the same transaction.
func (s *Store) ToggleUpvote(ctx context.Context, updateID, userID string) (*models.UpvoteResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var result models.UpvoteResult
	err = tx.QueryRowContext(ctx, `
		WITH removed AS (
			DELETE FROM update_upvotes
			WHERE update_id = $1 AND user_id = $2
			RETURNING 1
		), added AS (
			INSERT INTO update_upvotes (update_id, user_id)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM removed)
			ON CONFLICT (update_id, user_id) DO NOTHING
			RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM added)
	`, updateID, userID).Scan(&result.Upvoted)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUpdateNotFound
		}
		return nil, fmt.Errorf("toggle upvote: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM update_upvotes
		WHERE update_id = $1
	`, updateID).Scan(&result.Count); err != nil {
		return nil, fmt.Errorf("count upvotes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return &result, nil
}

// UpvoteCounts returns a count for every requested update id, zero when none.
func (s *Store) UpvoteCounts(ctx context.Context, updateIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(updateIDs))
	for _, id := range updateIDs {
		counts[id] = 0
	}
	if len(updateIDs) == 0 {
		return counts, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT update_id, COUNT(*)
		FROM update_upvotes
		WHERE update_id = ANY($1)
		GROUP BY update_id
	`, pq.Array(updateIDs))
	if err != nil {
		return nil, fmt.Errorf("select upvote counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan upvote count: %w", err)
		}
		counts[id] = n
	}

	return counts, rows.Err()
}

// UpvotedByUser returns the subset of update ids the user has upvoted.
func (s *Store) UpvotedByUser(ctx context.Context, userID string, updateIDs []string) (map[string]bool, error) {
	upvoted := make(map[string]bool)
	if userID == "" || len(updateIDs) == 0 {
		return upvoted, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT update_id
		FROM update_upvotes
		WHERE user_id = $1 AND update_id = ANY($2)
	`, userID, pq.Array(updateIDs))
	if err != nil {
		return nil, fmt.Errorf("select upvoted: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan upvoted: %w", err)
		}
		upvoted[id] = true
	}

	return upvoted, rows.Err()
}

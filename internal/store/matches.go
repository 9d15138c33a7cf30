package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"matchday/internal/models"
)

const matchColumns = `id, league, home_team, away_team, home_team_crest, away_team_crest, kickoff_time, status`

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m         models.Match
		homeCrest sql.NullString
		awayCrest sql.NullString
		status    string
	)
	if err := row.Scan(&m.ID, &m.League, &m.HomeTeam, &m.AwayTeam, &homeCrest, &awayCrest, &m.KickoffTime, &status); err != nil {
		return nil, err
	}
	m.HomeTeamCrest = stringPtr(homeCrest)
	m.AwayTeamCrest = stringPtr(awayCrest)
	m.Status = models.MatchStatus(status)
	return &m, nil
}

// ListUpcomingMatches returns upcoming matches kicking off inside the filter window, earliest first.
func (s *Store) ListUpcomingMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	clauses := []string{"status = 'upcoming'"}
	var args []any

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		clauses = append(clauses, fmt.Sprintf("kickoff_time >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		clauses = append(clauses, fmt.Sprintf("kickoff_time <= $%d", len(args)))
	}
	if team := strings.TrimSpace(filter.Team); team != "" {
		args = append(args, "%"+team+"%")
		clauses = append(clauses, fmt.Sprintf("(home_team ILIKE $%d OR away_team ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + matchColumns + ` FROM matches WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY kickoff_time ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// GetMatch retrieves a single match by ID.
func (s *Store) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE id = $1
	`

	m, err := scanMatch(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("select match: %w", err)
	}
	return m, nil
}

// UpsertMatches writes the fixtures in a single transaction keyed on id.
// Mutable fields are overwritten; a match that already left upcoming keeps its status.
func (s *Store) UpsertMatches(ctx context.Context, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, m := range matches {
		var homeCrest, awayCrest sql.NullString
		if m.HomeTeamCrest != nil {
			homeCrest = nullString(*m.HomeTeamCrest)
		}
		if m.AwayTeamCrest != nil {
			awayCrest = nullString(*m.AwayTeamCrest)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO matches (id, league, home_team, away_team, home_team_crest, away_team_crest, kickoff_time, status, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			ON CONFLICT (id) DO UPDATE SET
				league = EXCLUDED.league,
				home_team = EXCLUDED.home_team,
				away_team = EXCLUDED.away_team,
				home_team_crest = EXCLUDED.home_team_crest,
				away_team_crest = EXCLUDED.away_team_crest,
				kickoff_time = EXCLUDED.kickoff_time,
				status = CASE WHEN matches.status = 'upcoming' THEN EXCLUDED.status ELSE matches.status END,
				updated_at = NOW()
		`, m.ID, m.League, m.HomeTeam, m.AwayTeam, homeCrest, awayCrest, m.KickoffTime, string(m.Status)); err != nil {
			return fmt.Errorf("upsert match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// FinishStaleMatches marks upcoming matches whose kickoff has passed as finished.
func (s *Store) FinishStaleMatches(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE matches
		SET status = 'finished', updated_at = NOW()
		WHERE status = 'upcoming' AND kickoff_time < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("finish stale matches: %w", err)
	}
	return res.RowsAffected()
}

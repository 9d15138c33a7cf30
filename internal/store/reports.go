package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"matchday/internal/models"
)

// InsertReport flags an update for moderation.
func (s *Store) InsertReport(ctx context.Context, updateID, reportedBy, reason string) (*models.Report, error) {
	id := updateID
	r := models.Report{
		ID:         uuid.NewString(),
		UpdateID:   &id,
		ReportedBy: reportedBy,
		Reason:     reason,
		Status:     models.ReportStatusPending,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reports (id, update_id, reported_by, reason, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING created_at
	`, r.ID, updateID, reportedBy, reason).Scan(&r.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUpdateNotFound
		}
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return &r, nil
}

// PendingReports lists reports awaiting review, newest first, with the
// reported update when it still exists.
func (s *Store) PendingReports(ctx context.Context) ([]*models.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.update_id, r.reported_by, r.reason, r.status, r.created_at,
		       u.id, u.match_id, u.venue_id, u.user_id, p.username, u.message, u.created_at
		FROM reports r
		LEFT JOIN updates u ON u.id = r.update_id
		LEFT JOIN profiles p ON p.user_id = u.user_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select pending reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		var (
			r            models.Report
			reportUpdate sql.NullString
			status       string
			uID          sql.NullString
			uMatch       sql.NullString
			uVenue       sql.NullString
			uUser        sql.NullString
			uName        sql.NullString
			uMessage     sql.NullString
			uCreated     sql.NullTime
		)
		if err := rows.Scan(&r.ID, &reportUpdate, &r.ReportedBy, &r.Reason, &status, &r.CreatedAt,
			&uID, &uMatch, &uVenue, &uUser, &uName, &uMessage, &uCreated); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.Status = models.ReportStatus(status)
		r.UpdateID = stringPtr(reportUpdate)
		if uID.Valid {
			r.Update = &models.Update{
				ID:        uID.String,
				MatchID:   uMatch.String,
				VenueID:   uVenue.String,
				UserID:    uUser.String,
				Username:  uName.String,
				Message:   uMessage.String,
				CreatedAt: uCreated.Time,
			}
		} else {
			r.UpdateRemoved = true
		}
		reports = append(reports, &r)
	}

	return reports, rows.Err()
}

// ResolveReport closes a pending report. The delete action also removes the
// reported update in the same transaction.
func (s *Store) ResolveReport(ctx context.Context, reportID, reviewerID string, action models.ReportAction) error {
	status := models.ReportStatusDismissed
	if action == models.ReportActionDelete {
		status = models.ReportStatusReviewed
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

	var updateID sql.NullString
	err = tx.QueryRowContext(ctx, `
		UPDATE reports
		SET status = $2, reviewed_at = NOW(), reviewed_by = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING update_id
	`, reportID, string(status), reviewerID).Scan(&updateID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("resolve report: %w", err)
		}
		var exists bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM reports WHERE id = $1)
		`, reportID).Scan(&exists); err != nil {
			return fmt.Errorf("check report: %w", err)
		}
		if !exists {
			return ErrReportNotFound
		}
		return ErrReportNotPending
	}

	if action == models.ReportActionDelete && updateID.Valid {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM updates WHERE id = $1
		`, updateID.String); err != nil {
			return fmt.Errorf("delete reported update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

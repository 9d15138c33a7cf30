package moderation

import (
	"context"
	"fmt"
	"strings"

	"matchday/internal/app"
	"matchday/internal/models"
)

// Store defines persistence operations for content reports
type Store interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	GetUpdate(ctx context.Context, id string) (*models.Update, error)
	InsertReport(ctx context.Context, updateID, reportedBy, reason string) (*models.Report, error)
	PendingReports(ctx context.Context) ([]*models.Report, error)
	ResolveReport(ctx context.Context, reportID, reviewerID string, action models.ReportAction) error
}

// Service runs the report and review workflow
type Service interface {
	FileReport(ctx context.Context, updateID, reportedBy, reason string) (*models.Report, error)
	ResolveReport(ctx context.Context, reviewerID, reportID string, action models.ReportAction) error
	PendingReports(ctx context.Context, callerID string) ([]*models.Report, error)
}

type service struct {
	store Store
}

// New constructs a moderation Service
func New(store Store) Service {
	return &service{store: store}
}

// FileReport flags an update. Repeat reports and self reports are accepted.
func (s *service) FileReport(ctx context.Context, updateID, reportedBy, reason string) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if reportedBy == "" {
		return nil, app.ErrUnauthenticated
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", app.ErrInvalidInput)
	}

	if _, err := s.store.GetUpdate(ctx, updateID); err != nil {
		return nil, err
	}

	return s.store.InsertReport(ctx, updateID, reportedBy, reason)
}

func (s *service) ResolveReport(ctx context.Context, reviewerID, reportID string, action models.ReportAction) error {
	if err := s.requireAdmin(ctx, reviewerID); err != nil {
		return err
	}
	if action != models.ReportActionDismiss && action != models.ReportActionDelete {
		return fmt.Errorf("%w: action must be dismiss or delete", app.ErrInvalidInput)
	}
	return s.store.ResolveReport(ctx, reportID, reviewerID, action)
}

func (s *service) PendingReports(ctx context.Context, callerID string) ([]*models.Report, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.store.PendingReports(ctx)
}

func (s *service) requireAdmin(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return app.ErrUnauthenticated
	}
	ok, err := s.store.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return app.ErrForbidden
	}
	return nil
}

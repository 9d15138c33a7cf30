package models

import "time"

// ReportStatus tracks moderation of a report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusDismissed ReportStatus = "dismissed"
	ReportStatusReviewed  ReportStatus = "reviewed" // Target update was deleted
)

// ReportAction is the admin's decision on a pending report.
type ReportAction string

const (
	ReportActionDismiss ReportAction = "dismiss"
	ReportActionDelete  ReportAction = "delete"
)

// Report flags an update for moderation.
type Report struct {
	ID         string       `json:"id"`
	UpdateID   *string      `json:"update_id,omitempty"` // Nil once the update is removed
	ReportedBy string       `json:"reported_by"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty"`
	ReviewedBy *string      `json:"reviewed_by,omitempty"`

	Update        *Update `json:"update,omitempty"`
	UpdateRemoved bool    `json:"update_removed"`
}

package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrVenueNotFound indicates the requested venue does not exist.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrMatchNotFound indicates the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrUpdateNotFound indicates the update was never posted or was removed.
	ErrUpdateNotFound = errors.New("update not found")
	// ErrProfileNotFound indicates the user has not picked a username yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUsernameTaken signals the username belongs to another profile.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrProfileExists signals the user already has a profile.
	ErrProfileExists = errors.New("profile already exists")
	// ErrClaimNotFound indicates the claim id is unknown.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrClaimNotPending indicates the claim was already reviewed.
	ErrClaimNotPending = errors.New("claim is not pending")
	// ErrReportNotFound indicates the report id is unknown.
	ErrReportNotFound = errors.New("report not found")
	// ErrReportNotPending indicates the report was already resolved.
	ErrReportNotPending = errors.New("report is not pending")
	// ErrUnauthorized indicates the session refers to no known user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLoginLinkInvalid covers unknown, used and expired login links.
	ErrLoginLinkInvalid = errors.New("login link is invalid or expired")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

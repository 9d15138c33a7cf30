package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"matchday/internal/models"
)

var claimRowColumns = []string{"id", "venue_id", "user_id", "business_name", "business_email", "business_phone",
	"status", "created_at", "reviewed_at", "reviewed_by"}

func TestApproveClaimGrantsVenueAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE venue_claims c`)).
		WithArgs("claim-1", "approved", "admin-1").
		WillReturnRows(sqlmock.NewRows(claimRowColumns).
			AddRow("claim-1", "red-lion", "owner-1", "Red Lion LLC", "owner@redlion.nyc", "", "approved", now, now, "admin-1"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO venue_admins (venue_id, user_id)`)).
		WithArgs("red-lion", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	claim, err := s.ApproveClaim(context.Background(), "claim-1", "admin-1")
	if err != nil {
		t.Fatalf("ApproveClaim returned error: %v", err)
	}
	if claim.Status != models.ClaimStatusApproved {
		t.Fatalf("expected approved, got %s", claim.Status)
	}
	if claim.ReviewedBy == nil || *claim.ReviewedBy != "admin-1" {
		t.Fatalf("expected reviewer to be recorded, got %v", claim.ReviewedBy)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApproveClaimAlreadyReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE venue_claims c`)).
		WithArgs("claim-1", "approved", "admin-1").
		WillReturnRows(sqlmock.NewRows(claimRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM venue_claims WHERE id = $1)`)).
		WithArgs("claim-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	if _, err := s.ApproveClaim(context.Background(), "claim-1", "admin-1"); !errors.Is(err, ErrClaimNotPending) {
		t.Fatalf("expected ErrClaimNotPending, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRejectClaimUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE venue_claims c`)).
		WithArgs("missing", "rejected", "admin-1").
		WillReturnRows(sqlmock.NewRows(claimRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM venue_claims WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	if _, err := s.RejectClaim(context.Background(), "missing", "admin-1"); !errors.Is(err, ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLatestClaimNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY c.created_at DESC LIMIT 1`)).
		WithArgs("user-1", "legends").
		WillReturnRows(sqlmock.NewRows(claimRowColumns))

	claim, err := s.LatestClaim(context.Background(), "user-1", "legends")
	if err != nil {
		t.Fatalf("LatestClaim returned error: %v", err)
	}
	if claim != nil {
		t.Fatalf("expected no claim, got %+v", claim)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertClaimPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO venue_claims`)).
		WithArgs(sqlmock.AnyArg(), "legends", "user-1", "Legends Bar", "hi@legends.nyc", "212-555-0100").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	claim, err := s.InsertClaim(context.Background(), "legends", "user-1", models.BusinessInfo{
		Name:  "Legends Bar",
		Email: "hi@legends.nyc",
		Phone: "212-555-0100",
	})
	if err != nil {
		t.Fatalf("InsertClaim returned error: %v", err)
	}
	if claim.Status != models.ClaimStatusPending || claim.ID == "" {
		t.Fatalf("unexpected claim %+v", claim)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

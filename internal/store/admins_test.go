package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestIsVenueAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM venue_admins`)).
		WithArgs("user-1", "legends").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.IsVenueAdmin(context.Background(), "user-1", "legends")
	if err != nil {
		t.Fatalf("IsVenueAdmin returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected venue admin")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsAdminWrapsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM admins`)).
		WithArgs("user-1").
		WillReturnError(boom)

	if _, err := s.IsAdmin(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGrantAdminIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id) DO NOTHING`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.GrantAdmin(context.Background(), "user-1"); err != nil {
		t.Fatalf("GrantAdmin returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVenuesManagedBy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "neighborhood", "bar_type", "club_name", "address", "claimable", "created_at"}).
		AddRow("red-lion", "The Red Lion", "East Village", "club", "Liverpool", nil, true, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE va.user_id = $1`)).
		WithArgs("user-1").
		WillReturnRows(rows)

	venues, err := s.VenuesManagedBy(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("VenuesManagedBy returned error: %v", err)
	}
	if len(venues) != 1 || venues[0].ID != "red-lion" {
		t.Fatalf("unexpected venues: %#v", venues)
	}
	if venues[0].ClubName == nil || *venues[0].ClubName != "Liverpool" {
		t.Fatalf("expected club name, got %v", venues[0].ClubName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListVenueAdmins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM venue_admins va`)).
		WillReturnRows(sqlmock.NewRows([]string{"venue_id", "user_id", "added_at", "name", "neighborhood"}).
			AddRow("legends", "user-1", now, "Legends", "Midtown"))

	admins, err := s.ListVenueAdmins(context.Background())
	if err != nil {
		t.Fatalf("ListVenueAdmins returned error: %v", err)
	}
	if len(admins) != 1 || admins[0].VenueName != "Legends" {
		t.Fatalf("unexpected admins: %#v", admins)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"matchday/internal/models"
)

func TestUpsertShowingEmptyNoteStoredAsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (match_id, venue_id) DO UPDATE SET`)).
		WithArgs("epl-1", "red-lion", "showing", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpsertShowing(context.Background(), "epl-1", "red-lion", models.ShowingStatusShowing, ""); err != nil {
		t.Fatalf("UpsertShowing returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListShowingsForMatchJoinsVenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN venues v ON v.id = s.venue_id`)).
		WithArgs("epl-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"match_id", "venue_id", "status", "note", "updated_at",
			"id", "name", "neighborhood", "bar_type", "club_name", "address", "claimable", "created_at",
		}).AddRow("epl-1", "red-lion", "showing", "Sound on", now,
			"red-lion", "The Red Lion", "East Village", "club", "Liverpool", nil, true, now))

	showings, err := s.ListShowingsForMatch(context.Background(), "epl-1")
	if err != nil {
		t.Fatalf("ListShowingsForMatch returned error: %v", err)
	}
	if len(showings) != 1 {
		t.Fatalf("expected 1 showing, got %d", len(showings))
	}
	sh := showings[0]
	if sh.Venue == nil || sh.Venue.Name != "The Red Lion" {
		t.Fatalf("expected joined venue, got %+v", sh.Venue)
	}
	if sh.Note == nil || *sh.Note != "Sound on" {
		t.Fatalf("expected note, got %v", sh.Note)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

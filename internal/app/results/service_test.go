package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/internal/models"
)

type stubStore struct {
	venues     []*models.Venue
	showings   []*models.ShowingWithVenue
	going      map[string]int
	previews   map[string][]*models.Update
	upvotes    map[string]int
	venuesErr  error
	goingErr   error
	previewErr error
	upvoteErr  error
}

func (s *stubStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	return &models.Match{ID: id, HomeTeam: "Arsenal", AwayTeam: "Chelsea"}, nil
}

func (s *stubStore) ListVenues(ctx context.Context) ([]*models.Venue, error) {
	return s.venues, s.venuesErr
}

func (s *stubStore) ListShowingsForMatch(ctx context.Context, matchID string) ([]*models.ShowingWithVenue, error) {
	return s.showings, nil
}

func (s *stubStore) GoingCountsByVenue(ctx context.Context, matchID string) (map[string]int, error) {
	return s.going, s.goingErr
}

func (s *stubStore) LatestUpdatesPerVenue(ctx context.Context, matchID string, perVenue int) (map[string][]*models.Update, error) {
	return s.previews, s.previewErr
}

func (s *stubStore) UpvoteCounts(ctx context.Context, updateIDs []string) (map[string]int, error) {
	return s.upvotes, s.upvoteErr
}

func venue(id, name string) *models.Venue {
	return &models.Venue{ID: id, Name: name}
}

func showing(venueID string, status models.ShowingStatus) *models.ShowingWithVenue {
	return &models.ShowingWithVenue{Showing: models.Showing{MatchID: "epl-1", VenueID: venueID, Status: status}}
}

func newStubStore() *stubStore {
	now := time.Now()
	return &stubStore{
		venues: []*models.Venue{
			venue("a", "Alpha"),
			venue("b", "Bravo"),
			venue("c", "Charlie"),
			venue("d", "Delta"),
		},
		showings: []*models.ShowingWithVenue{
			showing("b", models.ShowingStatusNotShowing),
			showing("c", models.ShowingStatusShowing),
			showing("d", models.ShowingStatusShowing),
		},
		going: map[string]int{"c": 5},
		previews: map[string][]*models.Update{
			"c": {
				{ID: "u-new", VenueID: "c", CreatedAt: now},
				{ID: "u-old", VenueID: "c", CreatedAt: now.Add(-time.Minute)},
			},
		},
		upvotes: map[string]int{"u-new": 0, "u-old": 2},
	}
}

func venueIDs(rows []*VenueRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Venue.ID)
	}
	return ids
}

func TestForMatchRanksShowingFirst(t *testing.T) {
	res, err := New(newStubStore()).ForMatch(context.Background(), "epl-1")
	require.NoError(t, err)

	assert.Equal(t, "epl-1", res.Match.ID)
	assert.Equal(t, []string{"c", "d", "b", "a"}, venueIDs(res.Venues))
	assert.Equal(t, "showing", res.Venues[0].Status)
	assert.Equal(t, "not_showing", res.Venues[2].Status)
	assert.Equal(t, StatusUnknown, res.Venues[3].Status)
	assert.Equal(t, 5, res.Venues[0].GoingCount)
	assert.Equal(t, 0, res.Venues[1].GoingCount)

	previews := res.Venues[0].Previews
	require.Len(t, previews, 2)
	assert.Equal(t, "u-old", previews[0].ID)
	assert.Equal(t, 2, previews[0].Upvotes)
}

func TestForMatchDegradesSecondaryReads(t *testing.T) {
	st := newStubStore()
	st.goingErr = errors.New("db down")
	st.previewErr = errors.New("db down")

	res, err := New(st).ForMatch(context.Background(), "epl-1")
	require.NoError(t, err)
	require.Len(t, res.Venues, 4)
	for _, row := range res.Venues {
		assert.Zero(t, row.GoingCount)
		assert.Empty(t, row.Previews)
	}
}

func TestForMatchUpvoteFailureKeepsRecencyOrder(t *testing.T) {
	st := newStubStore()
	st.upvoteErr = errors.New("db down")

	res, err := New(st).ForMatch(context.Background(), "epl-1")
	require.NoError(t, err)
	assert.Equal(t, "u-new", res.Venues[0].Previews[0].ID)
}

func TestForMatchVenueFailurePropagates(t *testing.T) {
	st := newStubStore()
	st.venuesErr = errors.New("db down")

	_, err := New(st).ForMatch(context.Background(), "epl-1")
	assert.Error(t, err)
}

func TestSortRowsStable(t *testing.T) {
	rows := []*VenueRow{
		{Venue: venue("x", "X"), Status: StatusUnknown},
		{Venue: venue("y", "Y"), Status: "showing"},
		{Venue: venue("z", "Z"), Status: StatusUnknown},
		{Venue: venue("w", "W"), Status: "showing"},
	}
	SortRows(rows)
	assert.Equal(t, []string{"y", "w", "x", "z"}, venueIDs(rows))
}

package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/internal/app"
	"matchday/internal/models"
	"matchday/internal/store"
)

type stubStore struct {
	hasProfile bool
	admin      bool
	inserted   []string
	lastLimit  int
	deleted    string
	updates    []*models.Update
	counts     map[string]int
	upvoted    map[string]bool
	upvotedErr error
}

func (s *stubStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if !s.hasProfile {
		return nil, store.ErrProfileNotFound
	}
	return &models.Profile{UserID: userID, Username: "kopite"}, nil
}

func (s *stubStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.admin, nil
}

func (s *stubStore) InsertUpdate(ctx context.Context, matchID, venueID, userID, message string) (*models.Update, error) {
	s.inserted = append(s.inserted, message)
	return &models.Update{ID: "u1", MatchID: matchID, VenueID: venueID, UserID: userID, Username: "kopite", Message: message}, nil
}

func (s *stubStore) ListUpdates(ctx context.Context, matchID, venueID string, limit int) ([]*models.Update, error) {
	s.lastLimit = limit
	return s.updates, nil
}

func (s *stubStore) DeleteUpdate(ctx context.Context, id string) error {
	s.deleted = id
	return nil
}

func (s *stubStore) ToggleUpvote(ctx context.Context, updateID, userID string) (*models.UpvoteResult, error) {
	return &models.UpvoteResult{Upvoted: true, Count: 1}, nil
}

func (s *stubStore) UpvoteCounts(ctx context.Context, updateIDs []string) (map[string]int, error) {
	return s.counts, nil
}

func (s *stubStore) UpvotedByUser(ctx context.Context, userID string, updateIDs []string) (map[string]bool, error) {
	return s.upvoted, s.upvotedErr
}

func TestPostUpdate(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		hasProfile bool
		message    string
		wantErr    error
	}{
		{name: "posts trimmed message", userID: "user-1", hasProfile: true, message: "  Packed!  "},
		{name: "anonymous", message: "hi", hasProfile: true, wantErr: app.ErrUnauthenticated},
		{name: "no username", userID: "user-1", message: "hi", wantErr: app.ErrUsernameRequired},
		{name: "blank", userID: "user-1", hasProfile: true, message: "   ", wantErr: app.ErrInvalidInput},
		{name: "too long", userID: "user-1", hasProfile: true, message: strings.Repeat("a", MaxMessageLength+1), wantErr: app.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			st := &stubStore{hasProfile: tc.hasProfile}
			u, err := New(st).PostUpdate(context.Background(), "epl-1", "red-lion", tc.userID, tc.message)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, st.inserted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Packed!", u.Message)
			assert.Equal(t, []string{"Packed!"}, st.inserted)
		})
	}
}

func TestListUpdatesClampsLimit(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	_, err := svc.ListUpdates(context.Background(), "epl-1", "red-lion", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, st.lastLimit)

	_, err = svc.ListUpdates(context.Background(), "epl-1", "red-lion", 500)
	require.NoError(t, err)
	assert.Equal(t, 100, st.lastLimit)
}

func TestRankedUpdatesOrdersByUpvotesThenRecency(t *testing.T) {
	now := time.Now()
	st := &stubStore{
		updates: []*models.Update{
			{ID: "new", CreatedAt: now},
			{ID: "mid", CreatedAt: now.Add(-time.Minute)},
			{ID: "old", CreatedAt: now.Add(-2 * time.Minute)},
		},
		counts:  map[string]int{"new": 0, "mid": 3, "old": 3},
		upvoted: map[string]bool{"old": true},
	}

	ranked, err := New(st).RankedUpdates(context.Background(), "epl-1", "red-lion", "viewer", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "mid", ranked[0].ID)
	assert.Equal(t, "old", ranked[1].ID)
	assert.True(t, ranked[1].Upvoted)
	assert.Equal(t, "new", ranked[2].ID)
}

func TestUpvotedByUserFailsOpen(t *testing.T) {
	st := &stubStore{upvotedErr: errors.New("db down"), upvoted: map[string]bool{"a": true}}

	got := New(st).UpvotedByUser(context.Background(), "user-1", []string{"a"})
	assert.Empty(t, got)
}

func TestDeleteUpdateAdminOnly(t *testing.T) {
	st := &stubStore{}
	err := New(st).DeleteUpdate(context.Background(), "user-1", "u1")
	assert.ErrorIs(t, err, app.ErrForbidden)
	assert.Empty(t, st.deleted)

	st.admin = true
	require.NoError(t, New(st).DeleteUpdate(context.Background(), "admin-1", "u1"))
	assert.Equal(t, "u1", st.deleted)
}

func TestToggleUpvoteRequiresUser(t *testing.T) {
	_, err := New(&stubStore{}).ToggleUpvote(context.Background(), "u1", "")
	assert.ErrorIs(t, err, app.ErrUnauthenticated)
}

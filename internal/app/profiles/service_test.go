package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/internal/app"
	"matchday/internal/models"
	"matchday/internal/store"
)

type stubStore struct {
	taken   map[string]bool
	created []string
}

func (s *stubStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return nil, store.ErrProfileNotFound
}

func (s *stubStore) CreateProfile(ctx context.Context, userID, username string) (*models.Profile, error) {
	if s.taken[username] {
		return nil, store.ErrUsernameTaken
	}
	s.created = append(s.created, username)
	return &models.Profile{UserID: userID, Username: username}, nil
}

func (s *stubStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.taken[username], nil
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"abc", true},
		{"gooner_1886", true},
		{"ab", false},
		{"a_very_long_username_x", false},
		{"bad name", false},
		{"émile", false},
		{"ABCdef_123", true},
	}

	for _, tc := range tests {
		err := ValidateUsername(tc.username)
		if tc.valid {
			assert.NoError(t, err, tc.username)
		} else {
			assert.ErrorIs(t, err, app.ErrInvalidInput, tc.username)
		}
	}
}

func TestCreateProfile(t *testing.T) {
	st := &stubStore{taken: map[string]bool{"kopite": true}}
	svc := New(st)

	p, err := svc.Create(context.Background(), "user-1", " gooner ")
	require.NoError(t, err)
	assert.Equal(t, "gooner", p.Username)

	_, err = svc.Create(context.Background(), "user-2", "kopite")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	_, err = svc.Create(context.Background(), "", "newbie")
	assert.ErrorIs(t, err, app.ErrUnauthenticated)

	assert.Equal(t, []string{"gooner"}, st.created)
}

func TestUsernameAvailable(t *testing.T) {
	svc := New(&stubStore{taken: map[string]bool{"kopite": true}})

	ok, err := svc.UsernameAvailable(context.Background(), "kopite")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.UsernameAvailable(context.Background(), "toffee")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.UsernameAvailable(context.Background(), "no")
	assert.ErrorIs(t, err, app.ErrInvalidInput)
}

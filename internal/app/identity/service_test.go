package identity

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/internal/app"
	"matchday/internal/auth"
	"matchday/internal/models"
	"matchday/internal/store"
)

type stubStore struct {
	email     string
	token     string
	expiresAt time.Time
	used      bool
}

func (s *stubStore) CreateLoginLink(ctx context.Context, email, token string, expiresAt time.Time) error {
	s.email, s.token, s.expiresAt, s.used = email, token, expiresAt, false
	return nil
}

func (s *stubStore) ConsumeLoginLink(ctx context.Context, email, token string, now time.Time) (*models.User, error) {
	if s.used || email != s.email || token != s.token || !now.Before(s.expiresAt) {
		return nil, store.ErrLoginLinkInvalid
	}
	s.used = true
	return &models.User{ID: "user-1", Email: email}, nil
}

func (s *stubStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id != "user-1" {
		return nil, store.ErrUnauthorized
	}
	return &models.User{ID: id, Email: s.email}, nil
}

type recordingMailer struct {
	link string
}

func (m *recordingMailer) SendLoginLink(ctx context.Context, email, link string) error {
	m.link = link
	return nil
}

func TestSignInRoundTrip(t *testing.T) {
	st := &stubStore{}
	mailer := &recordingMailer{}
	svc := New(st, auth.NewTokenManager("secret", time.Hour), mailer, "https://matchday.nyc/auth/callback")
	ctx := context.Background()

	require.NoError(t, svc.RequestLink(ctx, "  Fan@Example.com "))
	assert.Equal(t, "fan@example.com", st.email)
	require.True(t, strings.HasPrefix(mailer.link, "https://matchday.nyc/auth/callback?"))

	parsed, err := url.Parse(mailer.link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	session, err := svc.Verify(ctx, "fan@example.com", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.User.ID)

	userID, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = svc.Verify(ctx, "fan@example.com", token)
	assert.ErrorIs(t, err, app.ErrUnauthenticated)
}

func TestRequestLinkRequiresEmail(t *testing.T) {
	svc := New(&stubStore{}, auth.NewTokenManager("secret", time.Hour), nil, "http://localhost")
	assert.ErrorIs(t, svc.RequestLink(context.Background(), " "), app.ErrInvalidInput)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := New(&stubStore{}, auth.NewTokenManager("secret", time.Hour), nil, "http://localhost")

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, app.ErrUnauthenticated)

	_, err = svc.Authenticate(context.Background(), "junk")
	assert.ErrorIs(t, err, app.ErrUnauthenticated)
}

func TestCurrentUserUnknown(t *testing.T) {
	svc := New(&stubStore{}, auth.NewTokenManager("secret", time.Hour), nil, "http://localhost")

	_, err := svc.CurrentUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, app.ErrUnauthenticated)
}

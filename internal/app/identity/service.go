package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"matchday/internal/app"
	"matchday/internal/auth"
	"matchday/internal/logging"
	"matchday/internal/models"
	"matchday/internal/store"
)

// LinkTTL bounds how long an emailed sign-in link can be used.
const LinkTTL = 15 * time.Minute

// Store defines persistence operations for passwordless sign-in
type Store interface {
	CreateLoginLink(ctx context.Context, email, token string, expiresAt time.Time) error
	ConsumeLoginLink(ctx context.Context, email, token string, now time.Time) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Mailer delivers sign-in links.
type Mailer interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

// LogMailer writes links to the application log instead of sending mail.
type LogMailer struct{}

// SendLoginLink logs the link for local development.
func (LogMailer) SendLoginLink(ctx context.Context, email, link string) error {
	logging.WithContext(ctx).Info().Str("email", email).Str("link", link).Msg("login link issued")
	return nil
}

// Session is returned after a successful sign-in.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Service handles sign-in and session checks
type Service interface {
	RequestLink(ctx context.Context, email string) error
	Verify(ctx context.Context, email, token string) (*Session, error)
	// Authenticate resolves a session token to a user id.
	Authenticate(ctx context.Context, sessionToken string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type service struct {
	store   Store
	tokens  *auth.TokenManager
	mailer  Mailer
	linkURL string
	now     func() time.Time
}

// New constructs an identity Service. linkURL is the page that completes sign-in.
func New(store Store, tokens *auth.TokenManager, mailer Mailer, linkURL string) Service {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &service{
		store:   store,
		tokens:  tokens,
		mailer:  mailer,
		linkURL: linkURL,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) RequestLink(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is required", app.ErrInvalidInput)
	}

	token, err := auth.NewLinkToken()
	if err != nil {
		return fmt.Errorf("create token: %w", err)
	}

	if err := s.store.CreateLoginLink(ctx, email, token, s.now().Add(LinkTTL)); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("email", email)
	params.Set("token", token)

	return s.mailer.SendLoginLink(ctx, email, s.linkURL+"?"+params.Encode())
}

func (s *service) Verify(ctx context.Context, email, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	if email == "" || token == "" {
		return nil, app.ErrUnauthenticated
	}

	user, err := s.store.ConsumeLoginLink(ctx, email, token, s.now())
	if err != nil {
		if errors.Is(err, store.ErrLoginLinkInvalid) {
			return nil, app.ErrUnauthenticated
		}
		return nil, err
	}

	sessionToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: sessionToken, User: user}, nil
}

func (s *service) Authenticate(ctx context.Context, sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", app.ErrUnauthenticated
	}
	userID, err := s.tokens.Verify(sessionToken)
	if err != nil {
		return "", app.ErrUnauthenticated
	}
	return userID, nil
}

func (s *service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, app.ErrUnauthenticated
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUnauthorized) {
			return nil, app.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

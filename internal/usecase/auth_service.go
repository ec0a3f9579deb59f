package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/id"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 24 * time.Hour
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Token     string         `json:"token"`
	User      user.Principal `json:"user"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// AuthService issues opaque session tokens kept in the in-process store.
// Sessions do not survive a restart.
type AuthService struct {
	users    user.Repository
	sessions *cache.Store
	ids      id.Generator
	ttl      time.Duration
	validate *validator.Validate
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(users user.Repository, sessions *cache.Store, ids id.Generator, ttl time.Duration, validate *validator.Validate, logger *logging.Logger) *AuthService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		ids:      ids,
		ttl:      ttl,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	if err := validateStruct(ctx, s.validate, in); err != nil {
		return Session{}, err
	}

	creds, ok, err := s.users.CredentialsByEmail(ctx, in.Email)
	if err != nil {
		return Session{}, fmt.Errorf("load credentials: %w", err)
	}
	if !ok || !creds.Matches(in.Password) {
		return Session{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := s.ids.NewID()
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}
	session := Session{
		Token:     token,
		User:      creds.Principal(),
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	s.sessions.SetTTL(ctx, sessionKeyPrefix+token, session, s.ttl)

	s.logger.InfoContext(ctx, "user logged in", "user_id", creds.ID, "role", creds.Role)
	return session, nil
}

// VerifyAccessToken resolves a bearer token to its principal.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing session token", ErrUnauthorized)
	}
	value, ok := s.sessions.Get(ctx, sessionKeyPrefix+token)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: session expired or unknown", ErrUnauthorized)
	}
	session, ok := value.(Session)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: malformed session", ErrUnauthorized)
	}
	return session.User, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	s.sessions.Delete(ctx, sessionKeyPrefix+token)
}

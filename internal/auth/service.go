// Package auth implements user registration, credential verification, and
// the session lifecycle (issue, validate, revoke).
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/Sudisha-pv/feedback-service/internal/metrics"
	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt silently truncates input after 72 bytes.
	maxPasswordLen = 72
	tokenBytes     = 32
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service issues and validates sessions and manages user credentials.
// The cache is optional; pass nil to validate against storage only.
type Service struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	cache    domain.SessionCache
	clock    clockwork.Clock
	ttl      time.Duration

	adminUsername string
	adminPassword string
}

func NewService(users domain.UserRepository, sessions domain.SessionRepository, cache domain.SessionCache, clock clockwork.Clock, ttl time.Duration, adminUsername, adminPassword string) *Service {
	return &Service{
		users:         users,
		sessions:      sessions,
		cache:         cache,
		clock:         clock,
		ttl:           ttl,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Register creates a user after validating the input. Uniqueness is checked
// per field, username first, so the conflict message names the right field.
func (s *Service) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	userID, err := s.register(ctx, username, email, password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return uuid.Nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return userID, nil
}

func (s *Service) register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	if username == "" || email == "" || password == "" {
		return uuid.Nil, apperrors.ValidationError("Missing required fields: username, email, and password are required")
	}
	if len(password) < minPasswordLen {
		return uuid.Nil, apperrors.ValidationError("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLen {
		return uuid.Nil, apperrors.ValidationError("Password must be at most 72 characters long")
	}
	if !emailPattern.MatchString(email) {
		return uuid.Nil, apperrors.ValidationError("Invalid email format")
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return uuid.Nil, apperrors.InternalError("registration failed", err)
	}
	if taken {
		return uuid.Nil, apperrors.ConflictError("Username already exists")
	}

	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return uuid.Nil, apperrors.InternalError("registration failed", err)
	}
	if taken {
		return uuid.Nil, apperrors.ConflictError("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, apperrors.InternalError("registration failed", err)
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	// The pre-checks race with concurrent registrations; the unique
	// constraints can still fire here.
	if errors.Is(err, domain.ErrUsernameTaken) {
		return uuid.Nil, apperrors.ConflictError("Username already exists")
	}
	if errors.Is(err, domain.ErrEmailTaken) {
		return uuid.Nil, apperrors.ConflictError("Email already exists")
	}
	if err != nil {
		return uuid.Nil, apperrors.InternalError("registration failed", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", user.ID, "username", username)
	return user.ID, nil
}

// Login verifies credentials and issues a user session token. The error is
// identical whether the username is unknown or the password is wrong.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.UnauthorizedError("Invalid credentials")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", apperrors.UnauthorizedError("Invalid credentials")
	}
	if err != nil {
		return "", apperrors.InternalError("login failed", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("user", "failure").Inc()
		return "", apperrors.UnauthorizedError("Invalid credentials")
	}

	session, err := s.issue(ctx, &user.ID, false)
	if err != nil {
		return "", apperrors.InternalError("login failed", err)
	}

	metrics.LoginsTotal.WithLabelValues("user", "success").Inc()
	slog.InfoContext(ctx, "User logged in", "user_id", user.ID, "username", username)
	return session.Token, nil
}

// AdminLogin verifies the static admin credentials and issues an admin
// session. Admin sessions are not tied to a users row.
func (s *Service) AdminLogin(ctx context.Context, username, password string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword))
	if usernameOK&passwordOK != 1 {
		metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return "", apperrors.UnauthorizedError("Invalid admin credentials")
	}

	session, err := s.issue(ctx, nil, true)
	if err != nil {
		return "", apperrors.InternalError("admin login failed", err)
	}

	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	slog.InfoContext(ctx, "Admin logged in")
	return session.Token, nil
}

// Validate resolves a token to the identity it carries. It returns
// domain.ErrSessionNotFound for an empty, unknown, or expired token;
// callers decide the HTTP status. Expired sessions are not deleted here.
func (s *Service) Validate(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	now := s.clock.Now()

	if s.cache != nil {
		session, ok, err := s.cache.Get(ctx, token)
		switch {
		case err != nil:
			metrics.SessionCacheOps.WithLabelValues("error").Inc()
			slog.WarnContext(ctx, "Session cache read failed, falling back to storage", "error", err)
		case ok:
			metrics.SessionCacheOps.WithLabelValues("hit").Inc()
			if session.Expired(now) {
				return domain.Identity{}, domain.ErrSessionNotFound
			}
			return domain.Identity{UserID: session.UserID, IsAdmin: session.IsAdmin}, nil
		default:
			metrics.SessionCacheOps.WithLabelValues("miss").Inc()
		}
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Identity{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.Expired(now) {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	s.cacheSession(ctx, session)
	return domain.Identity{UserID: session.UserID, IsAdmin: session.IsAdmin}, nil
}

// Logout revokes a session. Revoking an unknown (or already revoked)
// token fails rather than silently succeeding.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ValidationError("No session token provided")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, token); err != nil {
			slog.WarnContext(ctx, "Failed to evict session from cache", "error", err)
		}
	}

	deleted, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return apperrors.InternalError("logout failed", err)
	}
	if !deleted {
		return apperrors.ValidationError("Invalid session token")
	}

	return nil
}

func (s *Service) issue(ctx context.Context, userID *uuid.UUID, isAdmin bool) (*domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.cacheSession(ctx, session)
	return session, nil
}

// cacheSession writes through to the cache best-effort; a cache failure
// never fails the operation.
func (s *Service) cacheSession(ctx context.Context, session *domain.Session) {
	if s.cache == nil {
		return
	}

	remaining := session.ExpiresAt.Sub(s.clock.Now())
	if remaining <= 0 {
		return
	}

	if err := s.cache.Set(ctx, session, remaining); err != nil {
		slog.WarnContext(ctx, "Failed to cache session", "error", err)
	}
}

// generateToken returns a high-entropy URL-safe bearer token.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

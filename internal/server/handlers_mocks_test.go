package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sudisha-pv/feedback-service/internal/config"
	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// --- Mock implementations ---

type mockAuthService struct {
	registerFn   func(ctx context.Context, username, email, password string) (uuid.UUID, error)
	loginFn      func(ctx context.Context, username, password string) (string, error)
	adminLoginFn func(ctx context.Context, username, password string) (string, error)
	validateFn   func(ctx context.Context, token string) (domain.Identity, error)
	logoutFn     func(ctx context.Context, token string) error
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, email, password)
	}
	return uuid.Nil, errors.New("not implemented")
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return "", errors.New("not implemented")
}

func (m *mockAuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if m.adminLoginFn != nil {
		return m.adminLoginFn(ctx, username, password)
	}
	return "", errors.New("not implemented")
}

func (m *mockAuthService) Validate(ctx context.Context, token string) (domain.Identity, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	return domain.Identity{}, domain.ErrSessionNotFound
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

type mockFeedbackService struct {
	submitFn func(ctx context.Context, userID uuid.UUID, rating int, comment string) (*domain.Feedback, error)
	listFn   func(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error)
}

func (m *mockFeedbackService) Submit(ctx context.Context, userID uuid.UUID, rating int, comment string) (*domain.Feedback, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, userID, rating, comment)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFeedbackService) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []domain.FeedbackEntry{}, nil
}

type mockStatsService struct {
	dashboardFn func(ctx context.Context) (domain.DashboardStats, error)
}

func (m *mockStatsService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return domain.DashboardStats{}, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()

	srv := &Server{
		echo:      echo.New(),
		config:    &config.Config{Port: "8080"},
		auth:      &mockAuthService{},
		feedback:  &mockFeedbackService{},
		stats:     &mockStatsService{},
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withAuth(auth authService) func(*Server) {
	return func(s *Server) { s.auth = auth }
}

func withFeedback(feedback feedbackService) func(*Server) {
	return func(s *Server) { s.feedback = feedback }
}

func withStats(stats statsService) func(*Server) {
	return func(s *Server) { s.stats = stats }
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) { s.healthChecks = checks }
}

// userIdentity returns a validate function accepting exactly one token.
func userIdentity(token string, userID uuid.UUID) func(context.Context, string) (domain.Identity, error) {
	return func(_ context.Context, got string) (domain.Identity, error) {
		if got != token {
			return domain.Identity{}, domain.ErrSessionNotFound
		}
		return domain.Identity{UserID: &userID}, nil
	}
}

func adminIdentity(token string) func(context.Context, string) (domain.Identity, error) {
	return func(_ context.Context, got string) (domain.Identity, error) {
		if got != token {
			return domain.Identity{}, domain.ErrSessionNotFound
		}
		return domain.Identity{IsAdmin: true}, nil
	}
}

func doJSON(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

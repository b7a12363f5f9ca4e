// Package server exposes the JSON API over echo.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sudisha-pv/feedback-service/internal/config"
	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type authService interface {
	Register(ctx context.Context, username, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, username, password string) (string, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
	Validate(ctx context.Context, token string) (domain.Identity, error)
	Logout(ctx context.Context, token string) error
}

type feedbackService interface {
	Submit(ctx context.Context, userID uuid.UUID, rating int, comment string) (*domain.Feedback, error)
	List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error)
}

type statsService interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	auth     authService
	feedback feedbackService
	stats    statsService

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, auth authService, feedback feedbackService, stats statsService, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		auth:         auth,
		feedback:     feedback,
		stats:        stats,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

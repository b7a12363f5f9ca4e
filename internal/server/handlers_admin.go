package server

import (
	"fmt"
	"net/http"

	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/labstack/echo/v4"
)

func (s *Server) registerAdminRoutes() {
	s.echo.GET("/api/admin/stats", s.handleDashboardStats)
}

func (s *Server) handleDashboardStats(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := s.auth.Validate(ctx, c.QueryParam("session_token"))
	if err != nil || !identity.IsAdmin {
		return apperrors.ForbiddenError("Unauthorized: Admin access required")
	}

	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return err
	}

	response := map[string]any{
		"success": true,
		"stats":   stats,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

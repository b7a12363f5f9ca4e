package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/labstack/echo/v4"
)

type submitFeedbackRequest struct {
	SessionToken string `json:"session_token"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

func (s *Server) registerFeedbackRoutes() {
	s.echo.POST("/api/feedback", s.handleSubmitFeedback)
	s.echo.GET("/api/feedback", s.handleListFeedback)
}

func (s *Server) handleSubmitFeedback(c echo.Context) error {
	ctx := c.Request().Context()

	var req submitFeedbackRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	identity, err := s.auth.Validate(ctx, req.SessionToken)
	if err != nil {
		return apperrors.UnauthorizedError("Unauthorized: Please login")
	}
	if identity.IsAdmin {
		return apperrors.ForbiddenError("Admins cannot submit feedback")
	}
	if identity.UserID == nil {
		return apperrors.InternalError("session carries no user", nil)
	}

	entry, err := s.feedback.Submit(ctx, *identity.UserID, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	response := map[string]any{
		"success":     true,
		"message":     "Feedback submitted successfully",
		"feedback_id": entry.ID,
		"sentiment":   entry.Sentiment,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListFeedback(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := s.auth.Validate(ctx, c.QueryParam("session_token"))
	if err != nil || !identity.IsAdmin {
		return apperrors.ForbiddenError("Unauthorized: Admin access required")
	}

	entries, err := s.feedback.List(ctx, filterFromQuery(c))
	if err != nil {
		return err
	}

	response := map[string]any{
		"success":  true,
		"feedback": entries,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// filterFromQuery reads the optional sentiment, rating, and search query
// parameters. An unparseable or zero rating is ignored rather than
// rejected.
func filterFromQuery(c echo.Context) domain.FeedbackFilter {
	var filter domain.FeedbackFilter

	if v := c.QueryParam("sentiment"); v != "" {
		sentiment := domain.Sentiment(v)
		filter.Sentiment = &sentiment
	}
	if v := c.QueryParam("rating"); v != "" {
		if rating, err := strconv.Atoi(v); err == nil && rating != 0 {
			filter.Rating = &rating
		}
	}
	filter.Search = c.QueryParam("search")

	return filter
}

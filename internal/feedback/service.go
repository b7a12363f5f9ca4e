// Package feedback implements feedback submission and the admin-facing
// feedback queries.
package feedback

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/Sudisha-pv/feedback-service/internal/metrics"
	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/google/uuid"
)

const (
	minRating = 1
	maxRating = 5
)

type Service struct {
	feedback   domain.FeedbackRepository
	classifier domain.Classifier
}

func NewService(feedback domain.FeedbackRepository, classifier domain.Classifier) *Service {
	return &Service{feedback: feedback, classifier: classifier}
}

// Submit stores a feedback entry for the given user and classifies its
// sentiment. Classification is best-effort: the entry is persisted first,
// and a failure to attach the label never fails the submission.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, rating int, comment string) (*domain.Feedback, error) {
	comment = strings.TrimSpace(comment)

	var problems []string
	if rating < minRating || rating > maxRating {
		problems = append(problems, "Rating must be between 1 and 5")
	}
	if comment == "" {
		problems = append(problems, "Comment cannot be empty")
	}
	if len(problems) > 0 {
		return nil, apperrors.ValidationError(strings.Join(problems, "; "))
	}

	entry, err := s.feedback.Create(ctx, userID, rating, comment)
	if err != nil {
		return nil, apperrors.InternalError("failed to submit feedback", err)
	}

	start := time.Now()
	sentiment := s.classifier.Classify(comment)
	metrics.SentimentClassifyDuration.Observe(time.Since(start).Seconds())

	metrics.FeedbackSubmittedTotal.WithLabelValues(string(sentiment)).Inc()
	if err := s.feedback.SetSentiment(ctx, entry.ID, sentiment); err != nil {
		slog.WarnContext(ctx, "Failed to store feedback sentiment",
			"feedback_id", entry.ID, "error", err)
	} else {
		entry.Sentiment = &sentiment
	}

	slog.InfoContext(ctx, "Feedback submitted",
		"feedback_id", entry.ID, "user_id", userID, "rating", rating)
	return entry, nil
}

// List returns feedback entries matching the filter, newest first, each
// joined with the submitting user's username.
func (s *Service) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
	entries, err := s.feedback.List(ctx, filter)
	if err != nil {
		return nil, apperrors.InternalError("failed to query feedback", err)
	}
	return entries, nil
}

// Package stats aggregates dashboard metrics over users and feedback.
package stats

import (
	"context"
	"math"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
)

type Reporter struct {
	users    domain.UserRepository
	feedback domain.FeedbackRepository
}

func NewReporter(users domain.UserRepository, feedback domain.FeedbackRepository) *Reporter {
	return &Reporter{users: users, feedback: feedback}
}

// Dashboard computes the admin dashboard snapshot. The sentiment
// distribution always carries all three labels, and the average rating is
// rounded to two decimals (0.0 when there is no feedback).
func (r *Reporter) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	totalUsers, err := r.users.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, apperrors.InternalError("failed to compute dashboard stats", err)
	}

	totalFeedback, err := r.feedback.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, apperrors.InternalError("failed to compute dashboard stats", err)
	}

	distribution, err := r.feedback.CountBySentiment(ctx)
	if err != nil {
		return domain.DashboardStats{}, apperrors.InternalError("failed to compute dashboard stats", err)
	}

	avg, err := r.feedback.AverageRating(ctx)
	if err != nil {
		return domain.DashboardStats{}, apperrors.InternalError("failed to compute dashboard stats", err)
	}

	return domain.DashboardStats{
		TotalUsers:            totalUsers,
		TotalFeedback:         totalFeedback,
		SentimentDistribution: distribution,
		AverageRating:         math.Round(avg*100) / 100,
	}, nil
}

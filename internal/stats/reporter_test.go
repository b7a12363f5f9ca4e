package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	countFn func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(context.Context, string, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) UsernameExists(context.Context, string) (bool, error) { return false, nil }

func (m *mockUserRepo) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockFeedbackRepo struct {
	countFn            func(ctx context.Context) (int64, error)
	countBySentimentFn func(ctx context.Context) (domain.SentimentDistribution, error)
	averageRatingFn    func(ctx context.Context) (float64, error)
}

func (m *mockFeedbackRepo) Create(context.Context, uuid.UUID, int, string) (*domain.Feedback, error) {
	return nil, errors.New("not implemented")
}

func (m *mockFeedbackRepo) SetSentiment(context.Context, uuid.UUID, domain.Sentiment) error {
	return nil
}

func (m *mockFeedbackRepo) List(context.Context, domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockFeedbackRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockFeedbackRepo) CountBySentiment(ctx context.Context) (domain.SentimentDistribution, error) {
	if m.countBySentimentFn != nil {
		return m.countBySentimentFn(ctx)
	}
	return domain.SentimentDistribution{}, nil
}

func (m *mockFeedbackRepo) AverageRating(ctx context.Context) (float64, error) {
	if m.averageRatingFn != nil {
		return m.averageRatingFn(ctx)
	}
	return 0, nil
}

func TestDashboard(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(context.Context) (int64, error) { return 12, nil },
	}
	feedback := &mockFeedbackRepo{
		countFn: func(context.Context) (int64, error) { return 7, nil },
		countBySentimentFn: func(context.Context) (domain.SentimentDistribution, error) {
			return domain.SentimentDistribution{Positive: 4, Negative: 1, Neutral: 2}, nil
		},
		averageRatingFn: func(context.Context) (float64, error) { return 3.857142857, nil },
	}

	got, err := NewReporter(users, feedback).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), got.TotalUsers)
	assert.Equal(t, int64(7), got.TotalFeedback)
	assert.Equal(t, domain.SentimentDistribution{Positive: 4, Negative: 1, Neutral: 2}, got.SentimentDistribution)
	assert.Equal(t, 3.86, got.AverageRating, "average is rounded to two decimals")
}

func TestDashboardEmpty(t *testing.T) {
	got, err := NewReporter(&mockUserRepo{}, &mockFeedbackRepo{}).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.TotalUsers)
	assert.Zero(t, got.TotalFeedback)
	assert.Equal(t, domain.SentimentDistribution{}, got.SentimentDistribution)
	assert.Equal(t, 0.0, got.AverageRating)
}

func TestDashboardPropagatesFailures(t *testing.T) {
	feedback := &mockFeedbackRepo{
		countFn: func(context.Context) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}

	_, err := NewReporter(&mockUserRepo{}, feedback).Dashboard(context.Background())

	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeInternal, structured.Type)
}

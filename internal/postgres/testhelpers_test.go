package postgres

import (
	"context"
	"testing"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// createTestUser inserts a user with a throwaway password hash.
func createTestUser(t *testing.T, pool *pgxpool.Pool, username, email string) *domain.User {
	t.Helper()

	repo := NewUserRepo(pool)
	user, err := repo.Create(context.Background(), username, email, "$2a$10$testhashtesthashtesthash")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)

	return user
}

// createTestFeedback inserts a feedback row and attaches the given sentiment.
func createTestFeedback(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, rating int, comment string, sentiment domain.Sentiment) *domain.Feedback {
	t.Helper()

	repo := NewFeedbackRepo(pool)
	ctx := context.Background()

	entry, err := repo.Create(ctx, userID, rating, comment)
	require.NoError(t, err)

	require.NoError(t, repo.SetSentiment(ctx, entry.ID, sentiment))
	entry.Sentiment = &sentiment

	return entry
}

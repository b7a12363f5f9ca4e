package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func (r *FeedbackRepo) Create(ctx context.Context, userID uuid.UUID, rating int, comment string) (*domain.Feedback, error) {
	var fb domain.Feedback
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (user_id, rating, comment)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, rating, comment, sentiment, created_at
	`, userID, rating, comment).Scan(
		&fb.ID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.Sentiment, &fb.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &fb, nil
}

func (r *FeedbackRepo) SetSentiment(ctx context.Context, feedbackID uuid.UUID, sentiment domain.Sentiment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE feedback SET sentiment = $1 WHERE id = $2
	`, string(sentiment), feedbackID)
	if err != nil {
		return fmt.Errorf("failed to set sentiment: %w", err)
	}
	return nil
}

// List returns feedback joined with the submitting user's username,
// newest first. Filter fields combine with AND.
func (r *FeedbackRepo) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT f.id, f.user_id, u.username, f.rating, f.comment, f.sentiment, f.created_at
		FROM feedback f
		JOIN users u ON f.user_id = u.id
	`)

	var conds []string
	var args []any

	if filter.Sentiment != nil {
		args = append(args, string(*filter.Sentiment))
		conds = append(conds, fmt.Sprintf("f.sentiment = $%d", len(args)))
	}
	if filter.Rating != nil {
		args = append(args, *filter.Rating)
		conds = append(conds, fmt.Sprintf("f.rating = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(f.comment ILIKE $%d OR u.username ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY f.created_at DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.FeedbackEntry, 0)
	for rows.Next() {
		var e domain.FeedbackEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Rating, &e.Comment, &e.Sentiment, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}

	return entries, nil
}

func (r *FeedbackRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return count, nil
}

func (r *FeedbackRepo) CountBySentiment(ctx context.Context) (domain.SentimentDistribution, error) {
	var dist domain.SentimentDistribution

	rows, err := r.pool.Query(ctx, `
		SELECT sentiment, COUNT(*)
		FROM feedback
		WHERE sentiment IS NOT NULL
		GROUP BY sentiment
	`)
	if err != nil {
		return dist, fmt.Errorf("failed to count sentiments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sentiment string
		var count int64
		if err := rows.Scan(&sentiment, &count); err != nil {
			return dist, fmt.Errorf("failed to scan sentiment count: %w", err)
		}
		switch domain.Sentiment(sentiment) {
		case domain.SentimentPositive:
			dist.Positive = count
		case domain.SentimentNegative:
			dist.Negative = count
		case domain.SentimentNeutral:
			dist.Neutral = count
		}
	}
	if err := rows.Err(); err != nil {
		return dist, fmt.Errorf("failed to read sentiment counts: %w", err)
	}

	return dist, nil
}

// AverageRating returns the unrounded mean rating, or 0 when no feedback exists.
func (r *FeedbackRepo) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(AVG(rating), 0) FROM feedback`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}

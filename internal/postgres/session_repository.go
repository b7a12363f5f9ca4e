package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, token, is_admin, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.ID, session.UserID, session.Token, session.IsAdmin, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, token, is_admin, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`, token).Scan(
		&session.ID, &session.UserID, &session.Token, &session.IsAdmin,
		&session.CreatedAt, &session.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return &session, nil
}

func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

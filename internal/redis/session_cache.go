package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionCache stores sessions keyed by token with a per-entry TTL equal
// to the session's remaining lifetime, so expired entries evict themselves
// without a sweep.
type SessionCache struct {
	rdb *goredis.Client
}

func NewSessionCache(rdb *goredis.Client) *SessionCache {
	return &SessionCache{rdb: rdb}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (c *SessionCache) Get(ctx context.Context, token string) (*domain.Session, bool, error) {
	payload, err := c.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// Corrupt entry: drop it and fall back to the database.
		_ = c.rdb.Del(ctx, sessionKey(token)).Err()
		return nil, false, nil
	}

	return &session, true, nil
}

func (c *SessionCache) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := c.rdb.Set(ctx, sessionKey(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, token string) error {
	if err := c.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to evict cached session: %w", err)
	}
	return nil
}

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Model types ---

// Sentiment is the coarse polarity label attached to feedback text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Session is an opaque bearer credential. A session is either user-scoped
// (UserID set, IsAdmin false) or admin-scoped (UserID nil, IsAdmin true).
// The sessions table enforces this with a CHECK constraint; in code only
// the auth service constructs sessions.
type Session struct {
	ID        uuid.UUID  `db:"id"`
	UserID    *uuid.UUID `db:"user_id"`
	Token     string     `db:"token"`
	IsAdmin   bool       `db:"is_admin"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt time.Time  `db:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type Feedback struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Rating    int        `db:"rating"`
	Comment   string     `db:"comment"`
	Sentiment *Sentiment `db:"sentiment"`
	CreatedAt time.Time  `db:"created_at"`
}

// FeedbackEntry is a feedback row joined with the submitting user's
// username at read time.
type FeedbackEntry struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	Sentiment *Sentiment `json:"sentiment"`
	CreatedAt time.Time  `json:"created_at"`
}

// FeedbackFilter narrows a feedback query. Fields combine with AND;
// zero values mean "no constraint".
type FeedbackFilter struct {
	Sentiment *Sentiment
	Rating    *int
	Search    string
}

// Identity is the scope carried by a validated session token.
type Identity struct {
	UserID  *uuid.UUID
	IsAdmin bool
}

type SentimentDistribution struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

type DashboardStats struct {
	TotalUsers            int64                 `json:"total_users"`
	TotalFeedback         int64                 `json:"total_feedback"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	AverageRating         float64               `json:"average_rating"`
}

// --- Interfaces ---

// UserRepository abstracts user persistence.
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SessionRepository abstracts session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	// DeleteByToken removes the session row and reports whether a row matched.
	DeleteByToken(ctx context.Context, token string) (bool, error)
}

// FeedbackRepository abstracts feedback persistence and aggregation.
type FeedbackRepository interface {
	Create(ctx context.Context, userID uuid.UUID, rating int, comment string) (*Feedback, error)
	SetSentiment(ctx context.Context, feedbackID uuid.UUID, sentiment Sentiment) error
	List(ctx context.Context, filter FeedbackFilter) ([]FeedbackEntry, error)
	Count(ctx context.Context) (int64, error)
	CountBySentiment(ctx context.Context) (SentimentDistribution, error)
	AverageRating(ctx context.Context) (float64, error)
}

// SessionCache is an optional expiring cache in front of the sessions
// table. Get returns ok=false on a miss; a miss is not an error.
type SessionCache interface {
	Get(ctx context.Context, token string) (*Session, bool, error)
	Set(ctx context.Context, session *Session, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// Classifier labels feedback text. Implementations never return an error:
// internal failures map to SentimentNeutral.
type Classifier interface {
	Classify(text string) Sentiment
}

package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/Sudisha-pv/feedback-service/internal/domain"
	apperrors "github.com/Sudisha-pv/feedback-service/internal/platform/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackEndpoint(t *testing.T) {
	userID := uuid.New()
	feedbackID := uuid.New()
	sentiment := domain.SentimentPositive

	feedback := &mockFeedbackService{
		submitFn: func(_ context.Context, gotUser uuid.UUID, rating int, comment string) (*domain.Feedback, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, 5, rating)
			assert.Equal(t, "love it", comment)
			return &domain.Feedback{ID: feedbackID, UserID: gotUser, Rating: rating, Comment: comment, Sentiment: &sentiment}, nil
		},
	}
	auth := &mockAuthService{validateFn: userIdentity("user-token", userID)}
	srv := newTestServer(t, withAuth(auth), withFeedback(feedback))

	rec := doJSON(srv, http.MethodPost, "/api/feedback",
		`{"session_token":"user-token","rating":5,"comment":"love it"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Feedback submitted successfully", body["message"])
	assert.Equal(t, feedbackID.String(), body["feedback_id"])
	assert.Equal(t, "positive", body["sentiment"])
}

func TestSubmitFeedbackRequiresSession(t *testing.T) {
	srv := newTestServer(t, withAuth(&mockAuthService{}))

	for _, body := range []string{
		`{"rating":5,"comment":"hi"}`,
		`{"session_token":"bogus","rating":5,"comment":"hi"}`,
	} {
		rec := doJSON(srv, http.MethodPost, "/api/feedback", body)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "body %q", body)
		decoded := decodeBody(t, rec.Body.String())
		assert.Equal(t, "Unauthorized: Please login", decoded["message"])
	}
}

func TestSubmitFeedbackRejectsAdmins(t *testing.T) {
	auth := &mockAuthService{validateFn: adminIdentity("admin-token")}
	srv := newTestServer(t, withAuth(auth))

	rec := doJSON(srv, http.MethodPost, "/api/feedback",
		`{"session_token":"admin-token","rating":5,"comment":"hi"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admins cannot submit feedback", decodeBody(t, rec.Body.String())["message"])
}

func TestSubmitFeedbackValidationFailure(t *testing.T) {
	auth := &mockAuthService{validateFn: userIdentity("user-token", uuid.New())}
	feedback := &mockFeedbackService{
		submitFn: func(context.Context, uuid.UUID, int, string) (*domain.Feedback, error) {
			return nil, apperrors.ValidationError("Rating must be between 1 and 5; Comment cannot be empty")
		},
	}
	srv := newTestServer(t, withAuth(auth), withFeedback(feedback))

	rec := doJSON(srv, http.MethodPost, "/api/feedback",
		`{"session_token":"user-token","rating":0,"comment":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	decoded := decodeBody(t, rec.Body.String())
	assert.Equal(t, "Rating must be between 1 and 5; Comment cannot be empty", decoded["message"])
}

func TestListFeedbackRequiresAdmin(t *testing.T) {
	auth := &mockAuthService{validateFn: userIdentity("user-token", uuid.New())}
	srv := newTestServer(t, withAuth(auth))

	for _, path := range []string{
		"/api/feedback",
		"/api/feedback?session_token=bogus",
		"/api/feedback?session_token=user-token",
	} {
		rec := doJSON(srv, http.MethodGet, path, "")

		require.Equal(t, http.StatusForbidden, rec.Code, "path %s", path)
		decoded := decodeBody(t, rec.Body.String())
		assert.Equal(t, "Unauthorized: Admin access required", decoded["message"])
	}
}

func TestListFeedbackAppliesFilters(t *testing.T) {
	var gotFilter domain.FeedbackFilter
	feedback := &mockFeedbackService{
		listFn: func(_ context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
			gotFilter = filter
			return []domain.FeedbackEntry{}, nil
		},
	}
	auth := &mockAuthService{validateFn: adminIdentity("admin-token")}
	srv := newTestServer(t, withAuth(auth), withFeedback(feedback))

	rec := doJSON(srv, http.MethodGet,
		"/api/feedback?session_token=admin-token&sentiment=negative&rating=2&search=slow", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter.Sentiment)
	assert.Equal(t, domain.SentimentNegative, *gotFilter.Sentiment)
	require.NotNil(t, gotFilter.Rating)
	assert.Equal(t, 2, *gotFilter.Rating)
	assert.Equal(t, "slow", gotFilter.Search)
}

func TestListFeedbackIgnoresBadRating(t *testing.T) {
	var gotFilter domain.FeedbackFilter
	feedback := &mockFeedbackService{
		listFn: func(_ context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
			gotFilter = filter
			return []domain.FeedbackEntry{}, nil
		},
	}
	auth := &mockAuthService{validateFn: adminIdentity("admin-token")}
	srv := newTestServer(t, withAuth(auth), withFeedback(feedback))

	rec := doJSON(srv, http.MethodGet, "/api/feedback?session_token=admin-token&rating=abc", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotFilter.Rating)
}

func TestListFeedbackReturnsEntries(t *testing.T) {
	sentiment := domain.SentimentNeutral
	entries := []domain.FeedbackEntry{
		{ID: uuid.New(), UserID: uuid.New(), Username: "alice", Rating: 3, Comment: "it works", Sentiment: &sentiment},
	}
	feedback := &mockFeedbackService{
		listFn: func(context.Context, domain.FeedbackFilter) ([]domain.FeedbackEntry, error) {
			return entries, nil
		},
	}
	auth := &mockAuthService{validateFn: adminIdentity("admin-token")}
	srv := newTestServer(t, withAuth(auth), withFeedback(feedback))

	rec := doJSON(srv, http.MethodGet, "/api/feedback?session_token=admin-token", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body.String())
	assert.Equal(t, true, body["success"])

	list, ok := body["feedback"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	entry := list[0].(map[string]any)
	assert.Equal(t, "alice", entry["username"])
	assert.Equal(t, "neutral", entry["sentiment"])
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	api_models "docuchat-backend/internal/models"
	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRetriever is a scriptable services.Retriever.
type stubRetriever struct {
	SearchFn func(ctx context.Context, query string) ([]db_models.Article, error)
}

func (r *stubRetriever) Search(ctx context.Context, query string) ([]db_models.Article, error) {
	return r.SearchFn(ctx, query)
}

var _ services.Retriever = (*stubRetriever)(nil)

const pollInterval = 5 * time.Millisecond

func waitForStatus(t *testing.T, svc *services.ChatService, id uuid.UUID, want api_models.SessionStatus) *api_models.SessionResponse {
	t.Helper()
	var snap *api_models.SessionResponse
	require.Eventually(t, func() bool {
		s, err := svc.GetSession(id)
		if err != nil {
			return false
		}
		snap = s
		return s.Status == want
	}, 2*time.Second, pollInterval)
	return snap
}

func TestChatService_CreateSession(t *testing.T) {
	t.Parallel()

	svc := services.NewChatService(&stubRetriever{}, time.Second)

	sess := svc.CreateSession()

	assert.Equal(t, api_models.SessionIdle, sess.Status)
	require.Len(t, sess.Turns, 1)
	assert.Equal(t, api_models.TurnRoleAssistant, sess.Turns[0].Role)
	assert.Equal(t, services.GreetingMessage, sess.Turns[0].Content)
}

func TestChatService_GetSession_NotFound(t *testing.T) {
	t.Parallel()

	svc := services.NewChatService(&stubRetriever{}, time.Second)

	_, err := svc.GetSession(uuid.New())

	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestChatService_Submit(t *testing.T) {
	t.Parallel()

	t.Run("appends user turn immediately and assistant turn asynchronously", func(t *testing.T) {
		t.Parallel()

		docker := db_models.Article{ID: uuid.New(), Title: "Docker Deployment Guide", Category: "DevOps", Content: "Build and ship."}
		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(_ context.Context, _ string) ([]db_models.Article, error) {
				return []db_models.Article{docker}, nil
			},
		}, time.Second)
		sess := svc.CreateSession()

		snap, accepted, err := svc.Submit(sess.ID, "How do I deploy with Docker")

		require.NoError(t, err)
		assert.True(t, accepted)
		require.Len(t, snap.Turns, 2)
		assert.Equal(t, api_models.TurnRoleUser, snap.Turns[1].Role)
		assert.Equal(t, "How do I deploy with Docker", snap.Turns[1].Content)
		assert.Equal(t, api_models.SessionBusy, snap.Status)

		done := waitForStatus(t, svc, sess.ID, api_models.SessionIdle)
		require.Len(t, done.Turns, 3)
		last := done.Turns[2]
		assert.Equal(t, api_models.TurnRoleAssistant, last.Role)
		assert.Contains(t, last.Content, "Docker Deployment Guide")
		require.Len(t, last.Articles, 1)
		assert.Equal(t, docker.ID, last.Articles[0].ID)
	})

	t.Run("blank query is a silent no-op", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{}, time.Second)
		sess := svc.CreateSession()

		snap, accepted, err := svc.Submit(sess.ID, "   ")

		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Len(t, snap.Turns, 1) // Greeting only
		assert.Equal(t, api_models.SessionIdle, snap.Status)
	})

	t.Run("second submit while in flight is a no-op", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(_ context.Context, _ string) ([]db_models.Article, error) {
				<-release
				return nil, nil
			},
		}, 5*time.Second)
		sess := svc.CreateSession()

		first, accepted, err := svc.Submit(sess.ID, "first question")
		require.NoError(t, err)
		require.True(t, accepted)
		require.Len(t, first.Turns, 2)

		second, accepted, err := svc.Submit(sess.ID, "second question")
		require.NoError(t, err)
		assert.False(t, accepted)
		// Turn log unchanged until the first cycle resolves
		assert.Len(t, second.Turns, 2)
		assert.Equal(t, api_models.SessionBusy, second.Status)

		close(release)

		done := waitForStatus(t, svc, sess.ID, api_models.SessionIdle)
		assert.Len(t, done.Turns, 3)
	})

	t.Run("retrieval failure appends apology turn and never propagates", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(_ context.Context, _ string) ([]db_models.Article, error) {
				return nil, errors.New("store unreachable")
			},
		}, time.Second)
		sess := svc.CreateSession()

		_, accepted, err := svc.Submit(sess.ID, "anything at all")
		require.NoError(t, err)
		require.True(t, accepted)

		done := waitForStatus(t, svc, sess.ID, api_models.SessionError)
		require.Len(t, done.Turns, 3)
		last := done.Turns[2]
		assert.Equal(t, api_models.TurnRoleAssistant, last.Role)
		assert.Equal(t, services.ApologyMessage, last.Content)
		assert.Empty(t, last.Articles)
	})

	t.Run("session accepts new submissions after a failure", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(_ context.Context, _ string) ([]db_models.Article, error) {
				return nil, errors.New("store unreachable")
			},
		}, time.Second)
		sess := svc.CreateSession()

		_, accepted, err := svc.Submit(sess.ID, "first")
		require.NoError(t, err)
		require.True(t, accepted)
		waitForStatus(t, svc, sess.ID, api_models.SessionError)

		_, accepted, err = svc.Submit(sess.ID, "second")
		require.NoError(t, err)
		assert.True(t, accepted)
	})

	t.Run("no results still yields an assistant turn without references", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(_ context.Context, _ string) ([]db_models.Article, error) {
				return nil, nil
			},
		}, time.Second)
		sess := svc.CreateSession()

		_, accepted, err := svc.Submit(sess.ID, "completely unknown topic")
		require.NoError(t, err)
		require.True(t, accepted)

		done := waitForStatus(t, svc, sess.ID, api_models.SessionIdle)
		require.Len(t, done.Turns, 3)
		assert.Empty(t, done.Turns[2].Articles)
		assert.NotEmpty(t, done.Turns[2].Content)
	})

	t.Run("assistant turn carries at most three article references", func(t *testing.T) {
		t.Parallel()

		articles := make([]db_models.Article, 5)
		for i := range articles {
			articles[i] = db_models.Article{ID: uuid.New(), Title: "T", Category: "General", Content: "c"}
		}
		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(_ context.Context, _ string) ([]db_models.Article, error) {
				return articles, nil
			},
		}, time.Second)
		sess := svc.CreateSession()

		_, _, err := svc.Submit(sess.ID, "broad topic")
		require.NoError(t, err)

		done := waitForStatus(t, svc, sess.ID, api_models.SessionIdle)
		assert.Len(t, done.Turns[2].Articles, 3)
	})

	t.Run("unknown session returns not found", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{}, time.Second)

		_, _, err := svc.Submit(uuid.New(), "question")

		assert.ErrorIs(t, err, services.ErrSessionNotFound)
	})
}

func TestChatService_CloseSession(t *testing.T) {
	t.Parallel()

	t.Run("removes the session", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{}, time.Second)
		sess := svc.CreateSession()

		require.NoError(t, svc.CloseSession(sess.ID))

		_, err := svc.GetSession(sess.ID)
		assert.ErrorIs(t, err, services.ErrSessionNotFound)
	})

	t.Run("unknown session returns not found", func(t *testing.T) {
		t.Parallel()

		svc := services.NewChatService(&stubRetriever{}, time.Second)

		assert.ErrorIs(t, svc.CloseSession(uuid.New()), services.ErrSessionNotFound)
	})

	t.Run("cancels any in-flight cycle", func(t *testing.T) {
		t.Parallel()

		cancelled := make(chan struct{})
		svc := services.NewChatService(&stubRetriever{
			SearchFn: func(ctx context.Context, _ string) ([]db_models.Article, error) {
				<-ctx.Done()
				close(cancelled)
				return nil, ctx.Err()
			},
		}, time.Minute)
		sess := svc.CreateSession()

		_, accepted, err := svc.Submit(sess.ID, "slow question")
		require.NoError(t, err)
		require.True(t, accepted)

		require.NoError(t, svc.CloseSession(sess.ID))

		select {
		case <-cancelled:
		case <-time.After(2 * time.Second):
			t.Fatal("in-flight cycle was not cancelled on teardown")
		}
	})
}

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/infra/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionStore interface {
	Get(ctx context.Context, userID int64) (*model.UserSession, error)
	Put(ctx context.Context, session *model.UserSession) error
	DeleteAll(ctx context.Context, userID int64) error
}

func testSession(userID int64, id string) *model.UserSession {
	ticket := 3
	answer := "3"
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &model.UserSession{
		ID:     id,
		UserID: userID,
		CurrentTest: []model.SessionQuestion{
			{
				Question:   model.Question{Text: "2+2?", CorrectAnswer: "4", Options: []string{"4", "3", "5", "2"}},
				UserAnswer: &answer,
			},
			{
				Question: model.Question{Text: "3+3?", CorrectAnswer: "6", Options: []string{"5", "6", "7", "8"}},
			},
		},
		CurrentQuestionIndex: 1,
		CurrentCorrectIndex:  1,
		Score:                0,
		IsRandomTest:         false,
		TicketNumber:         &ticket,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func stores(t *testing.T) map[string]sessionStore {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqlDB, err := db.OpenSQLite(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return map[string]sessionStore{
		"memory": NewMemorySessionRepository(),
		"sqlite": NewSQLiteSessionRepository(sqlDB),
	}
}

// TestSessionStores проверяет одинаковое поведение хранилищ сессий
func TestSessionStores(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			missing, err := store.Get(ctx, 1)
			require.NoError(t, err)
			assert.Nil(t, missing)

			session := testSession(1, "first")
			require.NoError(t, store.Put(ctx, session))

			got, err := store.Get(ctx, 1)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, session, got)

			// повторная запись заменяет сессию пользователя целиком
			replacement := testSession(1, "second")
			replacement.CurrentTest = replacement.CurrentTest[:1]
			replacement.CurrentQuestionIndex = 0
			replacement.TicketNumber = nil
			replacement.IsRandomTest = true
			require.NoError(t, store.Put(ctx, replacement))

			got, err = store.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, replacement, got)

			require.NoError(t, store.Put(ctx, testSession(2, "other")))

			require.NoError(t, store.DeleteAll(ctx, 1))
			require.NoError(t, store.DeleteAll(ctx, 1))

			got, err = store.Get(ctx, 1)
			require.NoError(t, err)
			assert.Nil(t, got)

			other, err := store.Get(ctx, 2)
			require.NoError(t, err)
			require.NotNil(t, other)
			assert.Equal(t, "other", other.ID)
		})
	}
}

// TestMemorySessionRepository_Isolation проверяет, что хранилище держит копии
func TestMemorySessionRepository_Isolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	session := testSession(1, "s")

	require.NoError(t, repo.Put(ctx, session))
	session.Score = 10
	session.CurrentTest[0].Options[0] = "x"

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testSession(1, "s"), got)
	assert.Equal(t, 1, repo.Len())
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository хранилище сессий пользователей в PostgreSQL
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository создает новый экземпляр SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get получает сессию пользователя. Если сессии нет, возвращает nil
func (r *SessionRepository) Get(ctx context.Context, userID int64) (*model.UserSession, error) {
	var data []byte
	err := r.db.QueryRow(ctx, "SELECT data FROM user_sessions WHERE user_id=$1", userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session model.UserSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Put сохраняет сессию, заменяя существующую сессию того же пользователя
func (r *SessionRepository) Put(ctx context.Context, session *model.UserSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = r.db.Exec(ctx, `
                INSERT INTO user_sessions (user_id, session_id, data, updated_at)
                VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
                ON CONFLICT (user_id) DO UPDATE
                SET session_id = EXCLUDED.session_id,
                    data = EXCLUDED.data,
                    updated_at = CURRENT_TIMESTAMP
        `, session.UserID, session.ID, string(data))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteAll удаляет сессию пользователя. Отсутствие сессии ошибкой не считается
func (r *SessionRepository) DeleteAll(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM user_sessions WHERE user_id=$1", userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

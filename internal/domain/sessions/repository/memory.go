package repository

import (
	"context"
	"sync"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// MemorySessionRepository in-memory хранилище сессий.
// Хранит копии, поэтому изменения у вызывающего не попадают в хранилище без Put.
type MemorySessionRepository struct {
	data map[int64]*model.UserSession
	mu   sync.RWMutex
}

// NewMemorySessionRepository создает новый MemorySessionRepository
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{data: make(map[int64]*model.UserSession)}
}

func (m *MemorySessionRepository) Get(_ context.Context, userID int64) (*model.UserSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.data[userID]
	if !ok {
		return nil, nil
	}
	return session.Clone(), nil
}

func (m *MemorySessionRepository) Put(_ context.Context, session *model.UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[session.UserID] = session.Clone()
	return nil
}

func (m *MemorySessionRepository) DeleteAll(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

// Len возвращает количество хранимых сессий
func (m *MemorySessionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

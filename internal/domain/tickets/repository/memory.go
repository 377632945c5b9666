package repository

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// MemoryTicketRepository in-memory хранилище билетов.
// Случайная выборка использует переданный генератор, что делает ее воспроизводимой в тестах.
type MemoryTicketRepository struct {
	tickets map[int]model.Ticket
	mu      sync.RWMutex

	rnd   *rand.Rand
	rndMu sync.Mutex
}

// NewMemoryTicketRepository создает новый MemoryTicketRepository
func NewMemoryTicketRepository(rnd *rand.Rand) *MemoryTicketRepository {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MemoryTicketRepository{
		tickets: make(map[int]model.Ticket),
		rnd:     rnd,
	}
}

func (m *MemoryTicketRepository) GetTicket(_ context.Context, ticketNumber int) (*model.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ticket, ok := m.tickets[ticketNumber]
	if !ok {
		return nil, nil
	}
	clone := ticket.Clone()
	return &clone, nil
}

func (m *MemoryTicketRepository) ListTicketNumbers(_ context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedNumbers(), nil
}

// SampleRandomQuestions выбирает до n различных вопросов из всех билетов
func (m *MemoryTicketRepository) SampleRandomQuestions(_ context.Context, n int) ([]model.Question, error) {
	m.mu.RLock()
	var pool []model.Question
	for _, number := range m.sortedNumbers() {
		pool = append(pool, m.tickets[number].Questions...)
	}
	m.mu.RUnlock()

	selected := m.randomIndices(len(pool), n)
	result := make([]model.Question, 0, len(selected))
	for _, idx := range selected {
		result = append(result, pool[idx].Clone())
	}
	return result, nil
}

func (m *MemoryTicketRepository) AppendTickets(_ context.Context, tickets []model.Ticket) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ticket := range tickets {
		if _, exists := m.tickets[ticket.TicketNumber]; exists {
			return 0, fmt.Errorf("ticket %d already exists", ticket.TicketNumber)
		}
	}
	now := time.Now().UTC()
	for _, ticket := range tickets {
		clone := ticket.Clone()
		clone.CreatedAt = now
		m.tickets[ticket.TicketNumber] = clone
	}
	return len(tickets), nil
}

// sortedNumbers вызывается под m.mu
func (m *MemoryTicketRepository) sortedNumbers() []int {
	numbers := make([]int, 0, len(m.tickets))
	for n := range m.tickets {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// randomIndices выбирает count различных индексов из [0, size) частичной перетасовкой Фишера-Йейтса
func (m *MemoryTicketRepository) randomIndices(size, count int) []int {
	if count > size {
		count = size
	}
	if count <= 0 {
		return nil
	}
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}

	m.rndMu.Lock()
	defer m.rndMu.Unlock()
	for i := 0; i < count; i++ {
		j := i + m.rnd.Intn(size-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:count]
}

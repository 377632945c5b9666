package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// ErrNoQuestions в загруженных данных нет ни одного корректного вопроса
var ErrNoQuestions = errors.New("no valid questions found")

// TicketStore часть хранилища билетов, нужная для загрузки
type TicketStore interface {
	ListTicketNumbers(ctx context.Context) ([]int, error)
	AppendTickets(ctx context.Context, tickets []model.Ticket) (int, error)
}

// IngestService загружает вопросы из таблиц и сохраняет их билетами
type IngestService struct {
	tickets    TicketStore
	ticketSize int

	// mu защищает rnd и последовательность "узнать номер - записать билеты"
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewIngestService создает новый экземпляр IngestService
func NewIngestService(tickets TicketStore, ticketSize int, rnd *rand.Rand) *IngestService {
	if ticketSize <= 0 {
		ticketSize = model.TicketSize
	}
	return &IngestService{
		tickets:    tickets,
		ticketSize: ticketSize,
		rnd:        rnd,
	}
}

// Ingest разбирает строки, создает билеты и возвращает количество созданных билетов.
// Новые билеты нумеруются после последнего существующего.
func (s *IngestService) Ingest(ctx context.Context, rows [][]string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := ParseRows(rows, s.rnd)
	if len(questions) == 0 {
		return 0, ErrNoQuestions
	}

	existing, err := s.tickets.ListTicketNumbers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	firstNumber := 1
	if len(existing) > 0 {
		firstNumber = existing[len(existing)-1] + 1
	}

	tickets := BuildTickets(questions, s.ticketSize, firstNumber)
	count, err := s.tickets.AppendTickets(ctx, tickets)
	if err != nil {
		return 0, fmt.Errorf("failed to save tickets: %w", err)
	}

	log.Info().
		Int("rows", len(rows)).
		Int("questions", len(questions)).
		Int("tickets", count).
		Int("first_ticket", firstNumber).
		Msg("questions ingested")
	return count, nil
}

// IngestXLSX читает первый лист XLSX и загружает его строки
func (s *IngestService) IngestXLSX(ctx context.Context, r io.Reader) (int, error) {
	rows, err := ReadXLSXRows(r)
	if err != nil {
		return 0, err
	}
	return s.Ingest(ctx, rows)
}

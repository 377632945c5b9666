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

// TicketRepository хранилище билетов в PostgreSQL
type TicketRepository struct {
	db *pgxpool.Pool
}

// NewTicketRepository создает новый экземпляр TicketRepository
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

// GetTicket получает билет по номеру. Если билета нет, возвращает nil
func (r *TicketRepository) GetTicket(ctx context.Context, ticketNumber int) (*model.Ticket, error) {
	ticket := model.Ticket{TicketNumber: ticketNumber}
	err := r.db.QueryRow(ctx, "SELECT created_at FROM tickets WHERE ticket_number=$1", ticketNumber).
		Scan(&ticket.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	rows, err := r.db.Query(ctx, `
                SELECT question_text, correct_answer, options
                FROM ticket_questions
                WHERE ticket_number = $1
                ORDER BY position
        `, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket questions: %w", err)
	}
	defer rows.Close()

	ticket.Questions, err = scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListTicketNumbers возвращает номера всех билетов по возрастанию
func (r *TicketRepository) ListTicketNumbers(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, "SELECT ticket_number FROM tickets ORDER BY ticket_number")
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	numbers := make([]int, 0)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan ticket number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return numbers, nil
}

// SampleRandomQuestions выбирает до n различных вопросов из всех билетов
func (r *TicketRepository) SampleRandomQuestions(ctx context.Context, n int) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, `
                SELECT question_text, correct_answer, options
                FROM ticket_questions
                ORDER BY random()
                LIMIT $1
        `, n)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// AppendTickets сохраняет билеты в одной транзакции и возвращает их количество
func (r *TicketRepository) AppendTickets(ctx context.Context, tickets []model.Ticket) (int, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, ticket := range tickets {
			_, err := tx.Exec(ctx,
				"INSERT INTO tickets (ticket_number, created_at) VALUES ($1, CURRENT_TIMESTAMP)",
				ticket.TicketNumber)
			if err != nil {
				return fmt.Errorf("failed to insert ticket %d: %w", ticket.TicketNumber, err)
			}

			for position, q := range ticket.Questions {
				options, err := json.Marshal(q.Options)
				if err != nil {
					return fmt.Errorf("failed to marshal options: %w", err)
				}
				_, err = tx.Exec(ctx, `
                        INSERT INTO ticket_questions (ticket_number, position, question_text, correct_answer, options)
                        VALUES ($1, $2, $3, $4, $5)
                `, ticket.TicketNumber, position, q.Text, q.CorrectAnswer, string(options))
				if err != nil {
					return fmt.Errorf("failed to insert question %d of ticket %d: %w", position+1, ticket.TicketNumber, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(tickets), nil
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	questions := make([]model.Question, 0)
	for rows.Next() {
		var q model.Question
		var options []byte
		if err := rows.Scan(&q.Text, &q.CorrectAnswer, &options); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return questions, nil
}

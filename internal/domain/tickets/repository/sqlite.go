package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// SQLiteTicketRepository хранилище билетов в SQLite
type SQLiteTicketRepository struct {
	db *sql.DB
}

// NewSQLiteTicketRepository создает новый экземпляр SQLiteTicketRepository
func NewSQLiteTicketRepository(db *sql.DB) *SQLiteTicketRepository {
	return &SQLiteTicketRepository{db: db}
}

// GetTicket получает билет по номеру. Если билета нет, возвращает nil
func (r *SQLiteTicketRepository) GetTicket(ctx context.Context, ticketNumber int) (*model.Ticket, error) {
	var createdAt int64
	err := r.db.QueryRowContext(ctx, "SELECT created_at FROM tickets WHERE ticket_number = ?", ticketNumber).
		Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
                SELECT question_text, correct_answer, options
                FROM ticket_questions
                WHERE ticket_number = ?
                ORDER BY position
        `, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket questions: %w", err)
	}
	defer rows.Close()

	questions, err := scanSQLQuestions(rows)
	if err != nil {
		return nil, err
	}
	return &model.Ticket{
		TicketNumber: ticketNumber,
		Questions:    questions,
		CreatedAt:    time.Unix(createdAt, 0).UTC(),
	}, nil
}

// ListTicketNumbers возвращает номера всех билетов по возрастанию
func (r *SQLiteTicketRepository) ListTicketNumbers(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT ticket_number FROM tickets ORDER BY ticket_number")
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
func (r *SQLiteTicketRepository) SampleRandomQuestions(ctx context.Context, n int) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
                SELECT question_text, correct_answer, options
                FROM ticket_questions
                ORDER BY random()
                LIMIT ?
        `, n)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	defer rows.Close()

	return scanSQLQuestions(rows)
}

// AppendTickets сохраняет билеты в одной транзакции и возвращает их количество
func (r *SQLiteTicketRepository) AppendTickets(ctx context.Context, tickets []model.Ticket) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, ticket := range tickets {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tickets (ticket_number, created_at) VALUES (?, ?)",
			ticket.TicketNumber, now); err != nil {
			return 0, fmt.Errorf("failed to insert ticket %d: %w", ticket.TicketNumber, err)
		}

		for position, q := range ticket.Questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal options: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
                        INSERT INTO ticket_questions (ticket_number, position, question_text, correct_answer, options)
                        VALUES (?, ?, ?, ?, ?)
                `, ticket.TicketNumber, position, q.Text, q.CorrectAnswer, string(options))
			if err != nil {
				return 0, fmt.Errorf("failed to insert question %d of ticket %d: %w", position+1, ticket.TicketNumber, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tickets: %w", err)
	}
	return len(tickets), nil
}

func scanSQLQuestions(rows *sql.Rows) ([]model.Question, error) {
	questions := make([]model.Question, 0)
	for rows.Next() {
		var q model.Question
		var options string
		if err := rows.Scan(&q.Text, &q.CorrectAnswer, &options); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return questions, nil
}

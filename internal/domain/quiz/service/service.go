package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QuestionStore хранилище билетов
type QuestionStore interface {
	GetTicket(ctx context.Context, ticketNumber int) (*model.Ticket, error)
	ListTicketNumbers(ctx context.Context) ([]int, error)
	SampleRandomQuestions(ctx context.Context, n int) ([]model.Question, error)
	AppendTickets(ctx context.Context, tickets []model.Ticket) (int, error)
}

// SessionStore хранилище сессий, не больше одной сессии на пользователя
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*model.UserSession, error)
	Put(ctx context.Context, session *model.UserSession) error
	DeleteAll(ctx context.Context, userID int64) error
}

// QuizService управляет сессиями тестов пользователей
type QuizService struct {
	questions QuestionStore
	sessions  SessionStore
	now       func() time.Time
	newID     func() string
}

// NewQuizService создает новый экземпляр QuizService
func NewQuizService(questions QuestionStore, sessions SessionStore) *QuizService {
	return &QuizService{
		questions: questions,
		sessions:  sessions,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ListTicketNumbers возвращает номера всех билетов по возрастанию
func (s *QuizService) ListTicketNumbers(ctx context.Context) ([]int, error) {
	numbers, err := s.questions.ListTicketNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return numbers, nil
}

// GetTicket возвращает билет целиком, включая правильные ответы
func (s *QuizService) GetTicket(ctx context.Context, ticketNumber int) (*model.Ticket, error) {
	ticket, err := s.questions.GetTicket(ctx, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %d: %w", ticketNumber, err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %d: %w", ticketNumber, ErrTicketNotFound)
	}
	return ticket, nil
}

// StartSession заменяет прежнюю сессию пользователя новой в заданном режиме.
// Новая сессия записывается одним Put поверх старой; при ошибке хранилища старая сохраняется.
// Если билета нет или вопросов не хватает, прежняя сессия удаляется.
func (s *QuizService) StartSession(ctx context.Context, userID int64, mode Mode) (*model.UserSession, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}

	questions, err := s.selectQuestions(ctx, mode)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) || errors.Is(err, ErrInsufficientData) {
			if delErr := s.sessions.DeleteAll(ctx, userID); delErr != nil {
				return nil, fmt.Errorf("failed to delete previous session: %w", delErr)
			}
		}
		return nil, err
	}

	now := s.now()
	session := &model.UserSession{
		ID:                   s.newID(),
		UserID:               userID,
		CurrentTest:          make([]model.SessionQuestion, len(questions)),
		CurrentQuestionIndex: 0,
		CurrentCorrectIndex:  model.UnsetIndex,
		Score:                0,
		IsRandomTest:         mode.random,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for i, q := range questions {
		session.CurrentTest[i] = model.SessionQuestion{Question: q.Clone()}
	}
	if !mode.random {
		n := mode.ticketNumber
		session.TicketNumber = &n
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Str("session_id", session.ID).
		Stringer("mode", mode).
		Int("questions", session.Total()).
		Msg("quiz session started")

	return session, nil
}

func (s *QuizService) selectQuestions(ctx context.Context, mode Mode) ([]model.Question, error) {
	if mode.random {
		questions, err := s.questions.SampleRandomQuestions(ctx, mode.count)
		if err != nil {
			return nil, fmt.Errorf("failed to sample questions: %w", err)
		}
		if len(questions) < mode.count {
			return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientData, mode.count, len(questions))
		}
		return questions[:mode.count], nil
	}

	ticket, err := s.questions.GetTicket(ctx, mode.ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %d: %w", mode.ticketNumber, err)
	}
	if ticket == nil || len(ticket.Questions) == 0 {
		return nil, fmt.Errorf("ticket %d: %w", mode.ticketNumber, ErrTicketNotFound)
	}
	return ticket.Questions, nil
}

// GetSession возвращает активную сессию пользователя
func (s *QuizService) GetSession(ctx context.Context, userID int64) (*model.UserSession, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// EndSession удаляет сессию пользователя без подсчета результата
func (s *QuizService) EndSession(ctx context.Context, userID int64) error {
	if err := s.sessions.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// NextQuestion вычисляет индекс правильного ответа для текущего вопроса,
// сохраняет сессию и возвращает данные для показа. Индекс вопроса не меняется.
func (s *QuizService) NextQuestion(ctx context.Context, session *model.UserSession) (*QuestionView, error) {
	if session.Exhausted() {
		return nil, ErrSessionExhausted
	}

	updated := session.Clone()
	current := updated.CurrentTest[updated.CurrentQuestionIndex]
	updated.CurrentCorrectIndex = current.CorrectIndex()
	updated.UpdatedAt = s.now()

	if err := s.sessions.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	*session = *updated

	view := &QuestionView{
		Number:       session.CurrentQuestionIndex + 1,
		Total:        session.Total(),
		Text:         current.Text,
		Options:      make([]Option, len(current.Options)),
		IsRandomTest: session.IsRandomTest,
	}
	for i, text := range current.Options {
		view.Options[i] = Option{Label: Label(i), Text: text}
	}
	if session.TicketNumber != nil {
		view.TicketNumber = *session.TicketNumber
	}
	return view, nil
}

// SubmitAnswer записывает ответ на текущий вопрос, обновляет счет и решает,
// переходить ли к следующему вопросу. Когда вопросы заканчиваются, сессия удаляется.
// При ошибке сохранения session остается в прежнем состоянии.
func (s *QuizService) SubmitAnswer(ctx context.Context, session *model.UserSession, selectedOptionIndex int) (*AnswerResult, error) {
	if session.Exhausted() {
		return nil, ErrNoActiveQuestion
	}
	if session.CurrentCorrectIndex == model.UnsetIndex {
		return nil, fmt.Errorf("%w: question %d was not served", ErrNoActiveQuestion, session.CurrentQuestionIndex+1)
	}

	updated := session.Clone()
	current := &updated.CurrentTest[updated.CurrentQuestionIndex]
	if selectedOptionIndex < 0 || selectedOptionIndex >= len(current.Options) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOption, selectedOptionIndex)
	}

	selected := current.Options[selectedOptionIndex]
	current.UserAnswer = &selected

	isCorrect := selectedOptionIndex == updated.CurrentCorrectIndex
	if isCorrect {
		updated.Score++
	}

	step := AdvancerFor(updated).Step(isCorrect)
	updated.CurrentQuestionIndex += step
	if step > 0 {
		updated.CurrentCorrectIndex = model.UnsetIndex
	}
	updated.UpdatedAt = s.now()

	result := &AnswerResult{
		IsCorrect:     isCorrect,
		SelectedText:  selected,
		CorrectAnswer: current.CorrectAnswer,
		Score:         updated.Score,
	}

	if updated.Exhausted() {
		if err := s.sessions.DeleteAll(ctx, updated.UserID); err != nil {
			return nil, fmt.Errorf("failed to finish session: %w", err)
		}
		*session = *updated
		result.Finished = true
		result.Result = Result{Score: updated.Score, Total: updated.Total()}

		log.Info().
			Int64("user_id", updated.UserID).
			Str("session_id", updated.ID).
			Int("score", updated.Score).
			Int("total", updated.Total()).
			Msg("quiz session finished")
		return result, nil
	}

	if err := s.sessions.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	*session = *updated
	return result, nil
}

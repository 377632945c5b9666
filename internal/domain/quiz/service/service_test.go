package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	sessionsRepo "github.com/IT-Nick/quizbot/internal/domain/sessions/repository"
	ticketsRepo "github.com/IT-Nick/quizbot/internal/domain/tickets/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID int64 = 42

// failingSessions хранилище сессий, у которого можно сломать запись
type failingSessions struct {
	*sessionsRepo.MemorySessionRepository
	failPut    bool
	failDelete bool
}

func (f *failingSessions) Put(ctx context.Context, session *model.UserSession) error {
	if f.failPut {
		return errors.New("connection reset")
	}
	return f.MemorySessionRepository.Put(ctx, session)
}

func (f *failingSessions) DeleteAll(ctx context.Context, userID int64) error {
	if f.failDelete {
		return errors.New("connection reset")
	}
	return f.MemorySessionRepository.DeleteAll(ctx, userID)
}

func newQuestion(text, correct string, options ...string) model.Question {
	return model.Question{Text: text, CorrectAnswer: correct, Options: options}
}

// numberedQuestions создает n вопросов, правильный ответ всегда на позиции n%4
func numberedQuestions(prefix string, n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		options := []string{"a", "b", "c", "d"}
		correct := fmt.Sprintf("%s-%d", prefix, i)
		options[i%4] = correct
		questions[i] = newQuestion(fmt.Sprintf("%s вопрос %d", prefix, i), correct, options...)
	}
	return questions
}

type fixture struct {
	tickets  *ticketsRepo.MemoryTicketRepository
	sessions *failingSessions
	quiz     *service.QuizService
}

func newFixture(t *testing.T, tickets ...model.Ticket) *fixture {
	t.Helper()
	f := &fixture{
		tickets:  ticketsRepo.NewMemoryTicketRepository(rand.New(rand.NewSource(1))),
		sessions: &failingSessions{MemorySessionRepository: sessionsRepo.NewMemorySessionRepository()},
	}
	if len(tickets) > 0 {
		_, err := f.tickets.AppendTickets(context.Background(), tickets)
		require.NoError(t, err)
	}
	f.quiz = service.NewQuizService(f.tickets, f.sessions)
	return f
}

// serve показывает текущий вопрос и возвращает индекс правильного варианта
func serve(t *testing.T, f *fixture, session *model.UserSession) int {
	t.Helper()
	_, err := f.quiz.NextQuestion(context.Background(), session)
	require.NoError(t, err)
	return session.CurrentCorrectIndex
}

func wrongIndex(correct int) int {
	return (correct + 1) % model.OptionsCount
}

// TestStartSession_FixedTicket проверяет создание сессии по билету в сохраненном порядке
func TestStartSession_FixedTicket(t *testing.T) {
	questions := numberedQuestions("t1", 10)
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: questions})

	session, err := f.quiz.StartSession(context.Background(), userID, service.FixedTicket(1))
	require.NoError(t, err)

	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, 0, session.Score)
	assert.Equal(t, model.UnsetIndex, session.CurrentCorrectIndex)
	assert.False(t, session.IsRandomTest)
	require.NotNil(t, session.TicketNumber)
	assert.Equal(t, 1, *session.TicketNumber)
	assert.NotEmpty(t, session.ID)
	require.Len(t, session.CurrentTest, 10)
	for i, q := range session.CurrentTest {
		assert.Equal(t, questions[i], q.Question)
		assert.Nil(t, q.UserAnswer)
	}

	stored, err := f.quiz.GetSession(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, stored.ID)
}

// TestStartSession_TicketNotFound проверяет, что для отсутствующего билета сессия не создается
func TestStartSession_TicketNotFound(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)})

	_, err := f.quiz.StartSession(context.Background(), userID, service.FixedTicket(7))
	require.ErrorIs(t, err, service.ErrTicketNotFound)

	_, err = f.quiz.GetSession(context.Background(), userID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

// TestStartSession_EmptyStore проверяет поведение при пустом хранилище билетов
func TestStartSession_EmptyStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.quiz.StartSession(context.Background(), userID, service.FixedTicket(1))
	assert.ErrorIs(t, err, service.ErrTicketNotFound)

	_, err = f.quiz.StartSession(context.Background(), userID, service.Random(1))
	assert.ErrorIs(t, err, service.ErrInsufficientData)
}

// TestStartSession_InvalidMode проверяет отказ при неположительных параметрах режима
func TestStartSession_InvalidMode(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)})

	_, err := f.quiz.StartSession(context.Background(), userID, service.Random(0))
	assert.ErrorIs(t, err, service.ErrInvalidMode)

	_, err = f.quiz.StartSession(context.Background(), userID, service.FixedTicket(-1))
	assert.ErrorIs(t, err, service.ErrInvalidMode)
}

// TestStartSession_Random проверяет выборку различных вопросов из всех билетов
func TestStartSession_Random(t *testing.T) {
	f := newFixture(t,
		model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 10)},
		model.Ticket{TicketNumber: 2, Questions: numberedQuestions("t2", 10)},
		model.Ticket{TicketNumber: 3, Questions: numberedQuestions("t3", 5)},
	)

	session, err := f.quiz.StartSession(context.Background(), userID, service.Random(20))
	require.NoError(t, err)

	assert.True(t, session.IsRandomTest)
	assert.Nil(t, session.TicketNumber)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, 0, session.Score)
	require.Len(t, session.CurrentTest, 20)

	seen := make(map[string]bool)
	for _, q := range session.CurrentTest {
		assert.False(t, seen[q.Text], "вопрос %q выбран дважды", q.Text)
		seen[q.Text] = true
	}
}

// TestStartSession_InsufficientData проверяет, что при нехватке вопросов тест не сокращается молча
func TestStartSession_InsufficientData(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 5)})

	_, err := f.quiz.StartSession(context.Background(), userID, service.Random(6))
	require.ErrorIs(t, err, service.ErrInsufficientData)

	session, err := f.quiz.StartSession(context.Background(), userID, service.Random(5))
	require.NoError(t, err)
	assert.Len(t, session.CurrentTest, 5)
}

// TestStartSession_ReplacesPrevious проверяет, что старая сессия удаляется, а не объединяется
func TestStartSession_ReplacesPrevious(t *testing.T) {
	f := newFixture(t,
		model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)},
		model.Ticket{TicketNumber: 2, Questions: numberedQuestions("t2", 2)},
	)
	ctx := context.Background()

	first, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	correct := serve(t, f, first)
	_, err = f.quiz.SubmitAnswer(ctx, first, correct)
	require.NoError(t, err)
	require.Equal(t, 1, first.CurrentQuestionIndex)

	second, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(2))
	require.NoError(t, err)
	assert.Equal(t, 0, second.CurrentQuestionIndex)
	assert.Equal(t, 0, second.Score)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, second.CurrentTest, 2)
	assert.Equal(t, 1, f.sessions.Len())

	stored, err := f.quiz.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
	assert.Equal(t, 2, *stored.TicketNumber)
}

// TestStartSession_CopyIsolation проверяет, что ответы в сессии не меняют сохраненный билет
func TestStartSession_CopyIsolation(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 2)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	correct := serve(t, f, session)
	_, err = f.quiz.SubmitAnswer(ctx, session, correct)
	require.NoError(t, err)
	require.NotNil(t, session.CurrentTest[0].UserAnswer)

	session.CurrentTest[1].Options[0] = "изменено"

	ticket, err := f.quiz.GetTicket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, numberedQuestions("t1", 2), ticket.Questions)
}

// TestNextQuestion проверяет вычисление правильного индекса и метки вариантов
func TestNextQuestion(t *testing.T) {
	q := newQuestion("2+2?", "4", "3", "5", "4", "2")
	f := newFixture(t, model.Ticket{TicketNumber: 5, Questions: []model.Question{q}})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(5))
	require.NoError(t, err)

	view, err := f.quiz.NextQuestion(ctx, session)
	require.NoError(t, err)

	assert.Equal(t, 2, session.CurrentCorrectIndex)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, 1, view.Number)
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, "2+2?", view.Text)
	assert.Equal(t, 5, view.TicketNumber)
	assert.False(t, view.IsRandomTest)
	assert.Equal(t, []service.Option{
		{Label: "А", Text: "3"},
		{Label: "Б", Text: "5"},
		{Label: "В", Text: "4"},
		{Label: "Г", Text: "2"},
	}, view.Options)

	stored, err := f.quiz.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentCorrectIndex)
}

// TestSubmitAnswer_FixedTicketScenario воспроизводит сценарий "2+2?" в режиме билета
func TestSubmitAnswer_FixedTicketScenario(t *testing.T) {
	q := newQuestion("2+2?", "4", "4", "3", "5", "2")
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: []model.Question{q}})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	serve(t, f, session)

	result, err := f.quiz.SubmitAnswer(ctx, session, 1)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.False(t, result.Finished)
	assert.Equal(t, "3", result.SelectedText)
	assert.Equal(t, "4", result.CorrectAnswer)
	assert.Equal(t, 0, session.Score)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	require.NotNil(t, session.CurrentTest[0].UserAnswer)
	assert.Equal(t, "3", *session.CurrentTest[0].UserAnswer)

	serve(t, f, session)
	result, err = f.quiz.SubmitAnswer(ctx, session, 0)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 1, result.Score)
	assert.True(t, result.Finished)
	assert.Equal(t, service.Result{Score: 1, Total: 1}, result.Result)

	_, err = f.quiz.GetSession(ctx, userID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

// TestSubmitAnswer_RandomScenario воспроизводит сценарий "неверно, неверно, верно" в случайном тесте
func TestSubmitAnswer_RandomScenario(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.Random(3))
	require.NoError(t, err)

	plan := []bool{false, false, true}
	for i, answerCorrectly := range plan {
		correct := serve(t, f, session)
		choice := wrongIndex(correct)
		if answerCorrectly {
			choice = correct
		}

		result, err := f.quiz.SubmitAnswer(ctx, session, choice)
		require.NoError(t, err)
		assert.Equal(t, answerCorrectly, result.IsCorrect)
		assert.Equal(t, i+1, session.CurrentQuestionIndex)
		assert.Equal(t, i == len(plan)-1, result.Finished)
	}

	assert.Equal(t, 1, session.Score)
	assert.Equal(t, 0, f.sessions.Len())
}

// TestSubmitAnswer_RepeatedWrongAnswers проверяет, что повторные ошибки в билете не двигают индекс и не меняют счет
func TestSubmitAnswer_RepeatedWrongAnswers(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 2)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		correct := serve(t, f, session)
		result, err := f.quiz.SubmitAnswer(ctx, session, wrongIndex(correct))
		require.NoError(t, err)
		assert.False(t, result.IsCorrect)
		assert.Equal(t, 0, session.CurrentQuestionIndex)
		assert.Equal(t, 0, session.Score)
	}

	correct := serve(t, f, session)
	_, err = f.quiz.SubmitAnswer(ctx, session, correct)
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentQuestionIndex)
	assert.Equal(t, 1, session.Score)
	assert.Equal(t, model.UnsetIndex, session.CurrentCorrectIndex)
}

// TestSubmitAnswer_ScoreCountsCorrect проверяет, что счет равен числу правильных ответов
func TestSubmitAnswer_ScoreCountsCorrect(t *testing.T) {
	f := newFixture(t,
		model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 10)},
		model.Ticket{TicketNumber: 2, Questions: numberedQuestions("t2", 10)},
	)
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(7))

	session, err := f.quiz.StartSession(ctx, userID, service.Random(15))
	require.NoError(t, err)

	expected := 0
	for answered := 0; answered < 15; answered++ {
		correct := serve(t, f, session)
		choice := rnd.Intn(model.OptionsCount)
		if choice == correct {
			expected++
		}
		result, err := f.quiz.SubmitAnswer(ctx, session, choice)
		require.NoError(t, err)
		assert.Equal(t, expected, result.Score)
		assert.LessOrEqual(t, session.Score, answered+1)
	}
	assert.Equal(t, expected, session.Score)
}

// TestTerminatedSession проверяет, что завершенная сессия больше не обслуживается
func TestTerminatedSession(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 1)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.Random(1))
	require.NoError(t, err)
	correct := serve(t, f, session)
	result, err := f.quiz.SubmitAnswer(ctx, session, correct)
	require.NoError(t, err)
	require.True(t, result.Finished)

	_, err = f.quiz.NextQuestion(ctx, session)
	assert.ErrorIs(t, err, service.ErrSessionExhausted)
	assert.True(t, service.IsStale(err))

	_, err = f.quiz.SubmitAnswer(ctx, session, 0)
	assert.ErrorIs(t, err, service.ErrNoActiveQuestion)
	assert.True(t, service.IsStale(err))
}

// TestSubmitAnswer_NotServed проверяет отказ, если вопрос еще не был показан
func TestSubmitAnswer_NotServed(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 2)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)

	_, err = f.quiz.SubmitAnswer(ctx, session, 0)
	assert.ErrorIs(t, err, service.ErrNoActiveQuestion)
}

// TestSubmitAnswer_InvalidOption проверяет отказ для индекса вне диапазона
func TestSubmitAnswer_InvalidOption(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 2)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	serve(t, f, session)

	for _, idx := range []int{-1, model.OptionsCount} {
		_, err = f.quiz.SubmitAnswer(ctx, session, idx)
		assert.ErrorIs(t, err, service.ErrInvalidOption)
	}
	assert.Nil(t, session.CurrentTest[0].UserAnswer)
}

// TestSubmitAnswer_PersistFailure проверяет, что при ошибке записи сессия остается прежней
func TestSubmitAnswer_PersistFailure(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.Random(3))
	require.NoError(t, err)
	correct := serve(t, f, session)
	before := session.Clone()

	f.sessions.failPut = true
	_, err = f.quiz.SubmitAnswer(ctx, session, correct)
	require.Error(t, err)
	assert.False(t, service.IsStale(err))
	assert.Equal(t, before, session)

	stored, err := f.quiz.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentQuestionIndex)
	assert.Equal(t, 0, stored.Score)

	f.sessions.failPut = false
	result, err := f.quiz.SubmitAnswer(ctx, session, correct)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 1, session.Score)
}

// TestSubmitAnswer_FinishFailure проверяет, что ошибка удаления на последнем вопросе не засчитывается как успех
func TestSubmitAnswer_FinishFailure(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 1)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	correct := serve(t, f, session)

	f.sessions.failDelete = true
	result, err := f.quiz.SubmitAnswer(ctx, session, correct)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, 0, session.Score)
}

// TestNextQuestion_PersistFailure проверяет, что индекс не фиксируется без записи
func TestNextQuestion_PersistFailure(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 1)})
	ctx := context.Background()

	session, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)

	f.sessions.failPut = true
	_, err = f.quiz.NextQuestion(ctx, session)
	require.Error(t, err)
	assert.Equal(t, model.UnsetIndex, session.CurrentCorrectIndex)
}

// TestEndSession проверяет удаление сессии, в том числе отсутствующей
func TestEndSession(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 1)})
	ctx := context.Background()

	require.NoError(t, f.quiz.EndSession(ctx, userID))

	_, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	require.NoError(t, f.quiz.EndSession(ctx, userID))

	_, err = f.quiz.GetSession(ctx, userID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

// TestListTicketNumbers проверяет порядок номеров билетов
func TestListTicketNumbers(t *testing.T) {
	f := newFixture(t,
		model.Ticket{TicketNumber: 3, Questions: numberedQuestions("t3", 1)},
		model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 1)},
	)

	numbers, err := f.quiz.ListTicketNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, numbers)
}

// brokenTickets хранилище билетов, которое не отвечает
type brokenTickets struct {
	*ticketsRepo.MemoryTicketRepository
}

func (brokenTickets) GetTicket(context.Context, int) (*model.Ticket, error) {
	return nil, errors.New("connection reset")
}

func (brokenTickets) SampleRandomQuestions(context.Context, int) ([]model.Question, error) {
	return nil, errors.New("connection reset")
}

// TestStartSession_PersistFailure проверяет, что при ошибке записи новой сессии прежняя остается
func TestStartSession_PersistFailure(t *testing.T) {
	f := newFixture(t,
		model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)},
		model.Ticket{TicketNumber: 2, Questions: numberedQuestions("t2", 2)},
	)
	ctx := context.Background()

	first, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)

	f.sessions.failPut = true
	_, err = f.quiz.StartSession(ctx, userID, service.FixedTicket(2))
	require.Error(t, err)
	assert.False(t, service.IsStale(err))

	stored, err := f.quiz.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, 1, *stored.TicketNumber)
}

// TestStartSession_StoreFailure проверяет, что ошибка чтения билетов не удаляет прежнюю сессию
func TestStartSession_StoreFailure(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)})
	ctx := context.Background()

	first, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)

	broken := service.NewQuizService(brokenTickets{f.tickets}, f.sessions)
	_, err = broken.StartSession(ctx, userID, service.FixedTicket(1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrTicketNotFound)

	_, err = broken.StartSession(ctx, userID, service.Random(2))
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInsufficientData)

	stored, err := f.quiz.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
}

// TestStartSession_MissingTicketDropsPrevious проверяет, что запрос отсутствующего билета удаляет прежнюю сессию
func TestStartSession_MissingTicketDropsPrevious(t *testing.T) {
	f := newFixture(t, model.Ticket{TicketNumber: 1, Questions: numberedQuestions("t1", 3)})
	ctx := context.Background()

	_, err := f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	_, err = f.quiz.StartSession(ctx, userID, service.FixedTicket(5))
	require.ErrorIs(t, err, service.ErrTicketNotFound)
	_, err = f.quiz.GetSession(ctx, userID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	_, err = f.quiz.StartSession(ctx, userID, service.FixedTicket(1))
	require.NoError(t, err)
	_, err = f.quiz.StartSession(ctx, userID, service.Random(10))
	require.ErrorIs(t, err, service.ErrInsufficientData)
	_, err = f.quiz.GetSession(ctx, userID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

package random_test_handler

import (
	"context"
	"errors"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/question_sender"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// RandomTestHandler запускает экзамен из случайных вопросов всех билетов
type RandomTestHandler struct {
	quizService    *quiz.QuizService
	messageService *messageService.MessageService
	sender         *question_sender.QuestionSender
	questionCount  int
}

// NewRandomTestHandler возвращает структуру обработчика
func NewRandomTestHandler(
	quizService *quiz.QuizService,
	messageService *messageService.MessageService,
	sender *question_sender.QuestionSender,
	questionCount int,
) *RandomTestHandler {
	return &RandomTestHandler{
		quizService:    quizService,
		messageService: messageService,
		sender:         sender,
		questionCount:  questionCount,
	}
}

// Handle создает новую случайную сессию и показывает первый вопрос
func (h *RandomTestHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	session, err := h.quizService.StartSession(ctx, userID, quiz.Random(h.questionCount))
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to start random test")
		if errors.Is(err, quiz.ErrInsufficientData) {
			return c.Send(h.messageService.Text(messageService.InsufficientData))
		}
		return c.Send(h.messageService.Text(messageService.StartFailed))
	}

	if err := h.sender.Send(ctx, c, session); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("session_id", session.ID).Msg("failed to send first question")
		return c.Send(h.messageService.Text(messageService.StartFailed))
	}
	return nil
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *RandomTestHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

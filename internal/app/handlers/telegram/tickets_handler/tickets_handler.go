package tickets_handler

import (
	"context"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/keyboards"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/presenter"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// TicketsHandler показывает список билетов. Текущая сессия пользователя удаляется.
type TicketsHandler struct {
	quizService    *quiz.QuizService
	messageService *messageService.MessageService
	presenter      *presenter.Presenter
}

// NewTicketsHandler возвращает структуру обработчика
func NewTicketsHandler(
	quizService *quiz.QuizService,
	messageService *messageService.MessageService,
	presenter *presenter.Presenter,
) *TicketsHandler {
	return &TicketsHandler{
		quizService:    quizService,
		messageService: messageService,
		presenter:      presenter,
	}
}

func (h *TicketsHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	if err := h.quizService.EndSession(ctx, userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to end session")
		return c.Send(h.messageService.Text(messageService.TryAgain))
	}

	numbers, err := h.quizService.ListTicketNumbers(ctx)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("failed to list tickets")
		return c.Send(h.messageService.Text(messageService.TryAgain))
	}
	if len(numbers) == 0 {
		return c.Send(h.messageService.Text(messageService.NoTickets))
	}

	markup := keyboards.TicketsWithSolve(numbers, h.presenter.TicketButton, h.messageService.Text(messageService.ButtonSolveTicket))
	return c.Send(h.messageService.Text(messageService.ChooseTicket), markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TicketsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

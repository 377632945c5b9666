package ticket_view_handler

import (
	"context"
	"errors"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/callback"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/presenter"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// TicketViewHandler показывает билет целиком с отмеченными правильными ответами.
// Сессия пользователя заменяется сессией по этому билету.
type TicketViewHandler struct {
	quizService    *quiz.QuizService
	messageService *messageService.MessageService
	presenter      *presenter.Presenter
}

// NewTicketViewHandler возвращает структуру обработчика
func NewTicketViewHandler(
	quizService *quiz.QuizService,
	messageService *messageService.MessageService,
	presenter *presenter.Presenter,
) *TicketViewHandler {
	return &TicketViewHandler{
		quizService:    quizService,
		messageService: messageService,
		presenter:      presenter,
	}
}

// Handle обрабатывает callback вида "bilet_<номер>"
func (h *TicketViewHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	ticketNumber, err := callback.ParseInt(c.Callback().Data, model.TicketViewPrefix)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("bad ticket callback")
		return c.Send(h.messageService.Text(messageService.TicketNotFound))
	}

	session, err := h.quizService.StartSession(ctx, userID, quiz.FixedTicket(ticketNumber))
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int("ticket", ticketNumber).Msg("failed to start ticket session")
		if errors.Is(err, quiz.ErrTicketNotFound) || errors.Is(err, quiz.ErrInvalidMode) {
			return c.Send(h.messageService.Text(messageService.TicketNotFound))
		}
		return c.Send(h.messageService.Text(messageService.StartFailed))
	}

	ticket := &model.Ticket{TicketNumber: ticketNumber}
	for _, q := range session.CurrentTest {
		ticket.Questions = append(ticket.Questions, q.Question)
	}
	for _, text := range h.presenter.TicketMessages(ticket, presenter.MaxMessageLength) {
		if err := c.Send(text); err != nil {
			return err
		}
	}
	return nil
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TicketViewHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

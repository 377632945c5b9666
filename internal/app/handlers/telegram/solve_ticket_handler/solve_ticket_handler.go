package solve_ticket_handler

import (
	"context"
	"errors"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/callback"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/question_sender"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// SolveTicketHandler запускает решение выбранного билета
type SolveTicketHandler struct {
	quizService    *quiz.QuizService
	messageService *messageService.MessageService
	sender         *question_sender.QuestionSender
}

// NewSolveTicketHandler возвращает структуру обработчика
func NewSolveTicketHandler(
	quizService *quiz.QuizService,
	messageService *messageService.MessageService,
	sender *question_sender.QuestionSender,
) *SolveTicketHandler {
	return &SolveTicketHandler{
		quizService:    quizService,
		messageService: messageService,
		sender:         sender,
	}
}

// Handle обрабатывает callback вида "solve_<номер>"
func (h *SolveTicketHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	ticketNumber, err := callback.ParseInt(c.Callback().Data, model.TicketSolvePrefix)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("bad solve callback")
		return c.Send(h.messageService.Text(messageService.TicketNotFound))
	}

	session, err := h.quizService.StartSession(ctx, userID, quiz.FixedTicket(ticketNumber))
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int("ticket", ticketNumber).Msg("failed to start ticket test")
		if errors.Is(err, quiz.ErrTicketNotFound) || errors.Is(err, quiz.ErrInvalidMode) {
			return c.Send(h.messageService.Text(messageService.TicketNotFound))
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
func (h *SolveTicketHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

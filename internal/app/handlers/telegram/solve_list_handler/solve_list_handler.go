package solve_list_handler

import (
	"context"
	"strconv"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/keyboards"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// SolveListHandler показывает билеты, доступные для решения
type SolveListHandler struct {
	quizService    *quiz.QuizService
	messageService *messageService.MessageService
}

// NewSolveListHandler возвращает структуру обработчика
func NewSolveListHandler(quizService *quiz.QuizService, messageService *messageService.MessageService) *SolveListHandler {
	return &SolveListHandler{
		quizService:    quizService,
		messageService: messageService,
	}
}

func (h *SolveListHandler) Handle(c telebot.Context) error {
	numbers, err := h.quizService.ListTicketNumbers(context.Background())
	if err != nil {
		log.Error().Err(err).Int64("user_id", c.Sender().ID).Msg("failed to list tickets")
		return c.Send(h.messageService.Text(messageService.TryAgain))
	}
	if len(numbers) == 0 {
		return c.Send(h.messageService.Text(messageService.NoTickets))
	}

	markup := keyboards.Tickets(numbers, model.TicketSolvePrefix, strconv.Itoa)
	return c.Send(h.messageService.Text(messageService.ChooseTicketToSolve), markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *SolveListHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

package start_handler

import (
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/keyboards"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"gopkg.in/telebot.v4"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	messageService *messageService.MessageService
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(messageService *messageService.MessageService) *StartHandler {
	return &StartHandler{messageService: messageService}
}

// Handle отправляет приветствие с клавиатурой главного меню
func (h *StartHandler) Handle(c telebot.Context) error {
	menu := keyboards.MainMenu(
		h.messageService.Text(messageService.ButtonRandomTest),
		h.messageService.Text(messageService.ButtonTickets),
	)
	return c.Send(h.messageService.Text(messageService.Welcome), menu)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

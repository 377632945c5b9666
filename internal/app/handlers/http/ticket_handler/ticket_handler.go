package ticket_handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
	"github.com/go-chi/chi/v5"
)

// TicketHandler возвращает билет с вопросами и правильными ответами
type TicketHandler struct {
	quizService *quiz.QuizService
}

// NewTicketHandler создает новый экземпляр обработчика
func NewTicketHandler(quizService *quiz.QuizService) *TicketHandler {
	return &TicketHandler{quizService: quizService}
}

func (h *TicketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ticket, status, err := LoadTicket(h.quizService, r)
	if err != nil {
		httpError.ErrorResponse(w, status, err.Error())
		return
	}
	httpError.JSONResponse(w, http.StatusOK, ticket)
}

// LoadTicket читает номер билета из пути и загружает билет.
// При ошибке возвращает HTTP-статус для ответа.
func LoadTicket(quizService *quiz.QuizService, r *http.Request) (*model.Ticket, int, error) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number <= 0 {
		return nil, http.StatusBadRequest, errors.New("Invalid ticket number")
	}

	ticket, err := quizService.GetTicket(r.Context(), number)
	if errors.Is(err, quiz.ErrTicketNotFound) {
		return nil, http.StatusNotFound, fmt.Errorf("Ticket %d not found", number)
	}
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("Failed to get ticket: %v", err)
	}
	return ticket, http.StatusOK, nil
}

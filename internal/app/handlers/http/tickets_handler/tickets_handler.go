package tickets_handler

import (
	"fmt"
	"net/http"

	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// TicketsResponse структура для ответа
type TicketsResponse struct {
	Tickets []int `json:"tickets"`
	Count   int   `json:"count"`
}

// TicketsHandler возвращает номера всех билетов
type TicketsHandler struct {
	quizService *quiz.QuizService
}

// NewTicketsHandler создает новый экземпляр обработчика
func NewTicketsHandler(quizService *quiz.QuizService) *TicketsHandler {
	return &TicketsHandler{quizService: quizService}
}

func (h *TicketsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.quizService.ListTicketNumbers(r.Context())
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list tickets: %v", err))
		return
	}
	if numbers == nil {
		numbers = []int{}
	}
	httpError.JSONResponse(w, http.StatusOK, TicketsResponse{Tickets: numbers, Count: len(numbers)})
}

package answer_sheet_handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/quizbot/internal/app/handlers/http/ticket_handler"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
	"github.com/rs/zerolog/log"
)

// AnswerSheetHandler отдает PDF с ответами билета
type AnswerSheetHandler struct {
	quizService *quiz.QuizService
	sheet       *report.AnswerSheet
}

// NewAnswerSheetHandler создает новый экземпляр обработчика
func NewAnswerSheetHandler(quizService *quiz.QuizService, sheet *report.AnswerSheet) *AnswerSheetHandler {
	return &AnswerSheetHandler{
		quizService: quizService,
		sheet:       sheet,
	}
}

func (h *AnswerSheetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ticket, status, err := ticket_handler.LoadTicket(h.quizService, r)
	if err != nil {
		httpError.ErrorResponse(w, status, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.sheet.Write(&buf, ticket); err != nil {
		log.Error().Err(err).Int("ticket", ticket.TicketNumber).Msg("failed to render answer sheet")
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to render answer sheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ticket_"+strconv.Itoa(ticket.TicketNumber)+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Int("ticket", ticket.TicketNumber).Msg("failed to write answer sheet")
	}
}

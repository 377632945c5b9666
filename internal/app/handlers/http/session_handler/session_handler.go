package session_handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
	"github.com/go-chi/chi/v5"
)

// SessionResponse краткое состояние сессии без правильных ответов
type SessionResponse struct {
	SessionID            string    `json:"session_id"`
	UserID               int64     `json:"user_id"`
	IsRandomTest         bool      `json:"is_random_test"`
	TicketNumber         *int      `json:"ticket_number,omitempty"`
	CurrentQuestionIndex int       `json:"current_question_index"`
	Total                int       `json:"total"`
	Score                int       `json:"score"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SessionHandler показывает и сбрасывает сессию пользователя
type SessionHandler struct {
	quizService *quiz.QuizService
}

// NewSessionHandler создает новый экземпляр обработчика
func NewSessionHandler(quizService *quiz.QuizService) *SessionHandler {
	return &SessionHandler{quizService: quizService}
}

// Get GET /sessions/{userID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	session, err := h.quizService.GetSession(r.Context(), userID)
	if errors.Is(err, quiz.ErrSessionNotFound) {
		httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("No active session for user %d", userID))
		return
	}
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get session: %v", err))
		return
	}

	httpError.JSONResponse(w, http.StatusOK, SessionResponse{
		SessionID:            session.ID,
		UserID:               session.UserID,
		IsRandomTest:         session.IsRandomTest,
		TicketNumber:         session.TicketNumber,
		CurrentQuestionIndex: session.CurrentQuestionIndex,
		Total:                session.Total(),
		Score:                session.Score,
		UpdatedAt:            session.UpdatedAt,
	})
}

// Delete DELETE /sessions/{userID}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	if err := h.quizService.EndSession(r.Context(), userID); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete session: %v", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return userID, true
}

package health_handler

import (
	"net/http"

	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// HealthHandler отвечает на проверку доступности сервиса
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
